package domain

// LeadFeatures é o vetor de atributos enviado ao preditor de propensão.
// O conteúdo é opaco para este serviço: a engenharia de features acontece
// do lado do serviço de modelos.
type LeadFeatures struct {
	LeadID           string   `json:"lead_id"`
	CompanyName      string   `json:"company_name"`
	Industry         string   `json:"industry"`
	EmployeeCount    int      `json:"employee_count"`
	Revenue          float64  `json:"revenue"`
	LeadSource       string   `json:"lead_source"`
	DaysSinceCreated int      `json:"days_since_created"`
	TechStack        []string `json:"tech_stack"`
	HiringSignals    []string `json:"hiring_signals"`
	CompetitorTool   *string  `json:"competitor_tool,omitempty"`
	EngagementScore  float64  `json:"engagement_score"`
	FitScore         float64  `json:"fit_score"`
}

// AccountFeatures é o vetor de atributos da conta-mãe enviado ao preditor
// de valor esperado de contrato.
type AccountFeatures struct {
	AccountID        string   `json:"account_id"`
	CompanyName      string   `json:"company_name"`
	Industry         string   `json:"industry"`
	EmployeeCount    int      `json:"employee_count"`
	Revenue          float64  `json:"revenue"`
	LeadCount        int      `json:"lead_count"`
	TechStack        []string `json:"tech_stack"`
	PropensityParent float64  `json:"propensity_parent"`
}
