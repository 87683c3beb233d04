package domain

// Contextos de análise reconhecidos pelas rotas de consulta. Cada contexto
// define quais métricas derivadas entram na agregação e qual template de
// narrativa é usado no fallback.
const (
	ContextSourcing        = "sourcing"
	ContextScoring         = "scoring"
	ContextContractValue   = "contract-value"
	ContextAccountOverview = "account-overview"
)

// QueryContexts lista os contextos válidos na ordem de exibição.
var QueryContexts = []string{
	ContextSourcing,
	ContextScoring,
	ContextContractValue,
	ContextAccountOverview,
}

// ValidContext informa se o rótulo de contexto é reconhecido.
func ValidContext(context string) bool {
	for _, c := range QueryContexts {
		if c == context {
			return true
		}
	}
	return false
}

// Aggregation é o resultado estatístico de uma população filtrada.
//
// Uma população vazia produz Count == 0, médias zeradas e distribuições
// vazias: nunca um erro aritmético.
type Aggregation struct {
	Context string `json:"context"`
	Count   int    `json:"count"`

	// Averages: média aritmética de cada campo numérico pontuado.
	Averages map[string]float64 `json:"averages"`

	// Distributions: contagem por valor distinto das dimensões categóricas
	// (industry, lead_source, value_tier, competitor_tool).
	Distributions map[string]map[string]int `json:"distributions"`

	// Highlights: métricas derivadas do contexto, como contagem de leads de
	// alto potencial ou valor total de pipeline.
	Highlights map[string]float64 `json:"highlights"`
}

// QueryResponse é a resposta completa de uma consulta: registros filtrados,
// agregação e narrativa, sempre juntos.
type QueryResponse struct {
	Context     string       `json:"context"`
	Records     []*Lead      `json:"records"`
	Aggregation *Aggregation `json:"aggregation"`
	Narrative   string       `json:"narrative"`
	SnapshotID  string       `json:"snapshot_id"`
}
