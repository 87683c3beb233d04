package domain

// NarrativeRequest é o pedido estruturado enviado ao serviço de geração de
// narrativas: rótulo de contexto, números agregados e uma amostra opcional
// de leads para dar textura ao texto.
type NarrativeRequest struct {
	Context     string       `json:"context"`
	Aggregation *Aggregation `json:"aggregation"`
	Sample      []*Lead      `json:"sample,omitempty"`
}
