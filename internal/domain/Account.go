package domain

import "time"

// AccountScore é o resultado da reconciliação dos leads de uma mesma
// empresa em uma única pontuação de decisão.
//
// PrioritizedScore é sempre PropensityParent * ValueParent e pode ser
// recalculado a qualquer momento a partir do conjunto atual de leads.
type AccountScore struct {
	AccountID        string  `json:"account_id"`
	CompanyName      string  `json:"company_name"`
	Industry         string  `json:"industry"`
	EmployeeCount    int     `json:"employee_count"`
	Revenue          float64 `json:"revenue"`
	LeadCount        int     `json:"lead_count"`
	DrivingLeadID    string  `json:"driving_lead_id"`
	PropensityParent float64 `json:"propensity_parent"`
	ValueParent      float64 `json:"value_parent"`
	PrioritizedScore float64 `json:"prioritized_score"`
	Position         int     `json:"position"`
}

// ExcludedAccount registra uma conta deixada de fora do ranking porque o
// preditor de valor falhou ou devolveu um valor inválido para ela.
type ExcludedAccount struct {
	AccountID string `json:"account_id"`
	Reason    string `json:"reason"`
}

// AccountRankingResponse é a resposta da rota de ranking de contas.
type AccountRankingResponse struct {
	Ranking    []*AccountScore   `json:"ranking"`
	Excluded   []ExcludedAccount `json:"excluded,omitempty"`
	SnapshotID string            `json:"snapshot_id"`
	LastUpdate time.Time         `json:"last_update"`
}
