package domain

import "errors"

// Erros de validação de filtros. São devolvidos antes de qualquer varredura
// da população.
var (
	ErrInvalidFilterRange = errors.New("intervalo de filtro inválido: min maior que max")
	ErrUnknownFilterField = errors.New("campo de filtro desconhecido")
)

// ScoreRange é um intervalo numérico inclusivo. Limites ausentes (nil) não
// restringem o campo.
type ScoreRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Valid devolve falso quando os dois limites estão presentes e invertidos.
func (r ScoreRange) Valid() bool {
	if r.Min != nil && r.Max != nil {
		return *r.Min <= *r.Max
	}
	return true
}

// LeadFilters descreve o conjunto de predicados de uma consulta. Todos os
// predicados são combinados com AND lógico; um conjunto vazio seleciona a
// população inteira (respeitando o Limit).
type LeadFilters struct {
	// Equality: igualdade exata em campos categóricos (industry,
	// lead_source, value_tier, competitor_tool, company_name).
	Equality map[string]string `json:"equality,omitempty"`

	// Ranges: intervalos inclusivos em campos numéricos (employee_count,
	// revenue, dias desde a criação e qualquer campo pontuado).
	Ranges map[string]ScoreRange `json:"ranges,omitempty"`

	// Limit limita o tamanho do resultado. Zero significa sem limite.
	Limit int `json:"limit,omitempty"`
}

// Empty informa se nenhum predicado foi fornecido.
func (f *LeadFilters) Empty() bool {
	return f == nil || (len(f.Equality) == 0 && len(f.Ranges) == 0 && f.Limit == 0)
}
