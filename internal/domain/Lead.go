package domain

// Lead representa um registro de contato/subsidiária já pontuado pelos
// modelos de propensão e valor. Todos os campos de probabilidade ficam em
// [0,1] e o valor estimado de contrato é sempre >= 0.
type Lead struct {
	ID               string   `json:"id"`
	CompanyName      string   `json:"company_name"`
	Industry         string   `json:"industry"`
	EmployeeCount    int      `json:"employee_count"`
	Revenue          float64  `json:"revenue"`
	LeadSource       string   `json:"lead_source"`
	DaysSinceCreated int      `json:"days_since_created"`
	TechStack        []string `json:"tech_stack"`
	HiringSignals    []string `json:"hiring_signals"`

	SourcingScore         float64 `json:"sourcing_score"`
	EngagementScore       float64 `json:"engagement_score"`
	UrgencyScore          float64 `json:"urgency_score"`
	ConversionProbability float64 `json:"conversion_probability"`
	CompositeScore        float64 `json:"composite_score"`
	FitScore              float64 `json:"fit_score"`

	EstimatedContractValue float64 `json:"estimated_contract_value"`
	ValueTier              string  `json:"value_tier"`
	UpsellPotential        float64 `json:"upsell_potential"`
	RenewalProbability     float64 `json:"renewal_probability"`
	CompetitorTool         *string `json:"competitor_tool"`
}

// Níveis de contrato, em ordem crescente de valor
const (
	ValueTierStandard     = "Standard"
	ValueTierProfessional = "Professional"
	ValueTierEnterprise   = "Enterprise"
	ValueTierStrategic    = "Strategic"
)

// Cortes de valor estimado de contrato para cada nível
const (
	valueTierProfessionalMin = 50_000
	valueTierEnterpriseMin   = 150_000
	valueTierStrategicMin    = 500_000
)

// ValueTierFor classifica um valor estimado de contrato em um nível. A
// função é pura e monotônica: valores maiores nunca resultam em nível menor.
func ValueTierFor(estimatedContractValue float64) string {
	switch {
	case estimatedContractValue >= valueTierStrategicMin:
		return ValueTierStrategic
	case estimatedContractValue >= valueTierEnterpriseMin:
		return ValueTierEnterprise
	case estimatedContractValue >= valueTierProfessionalMin:
		return ValueTierProfessional
	default:
		return ValueTierStandard
	}
}
