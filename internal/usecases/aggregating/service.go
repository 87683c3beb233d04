// Package aggregating calcula estatísticas descritivas sobre uma população
// filtrada de leads, em uma única passada, para consumo do dashboard e do
// gerador de narrativas.
package aggregating

import (
	"github.com/vfg2006/lead-intelligence-api/internal/config"
	"github.com/vfg2006/lead-intelligence-api/internal/domain"
)

// Aggregator resume uma população filtrada em contagens, médias e
// distribuições. Uma população vazia produz um resultado zerado bem
// definido, nunca um erro de divisão.
type Aggregator interface {
	Aggregate(leads []*domain.Lead, context string) *domain.Aggregation
}

// Campos numéricos incluídos nas médias, em ordem de exibição
var averagedFields = []string{
	"employee_count",
	"revenue",
	"days_since_created",
	"sourcing_score",
	"engagement_score",
	"urgency_score",
	"conversion_probability",
	"composite_score",
	"fit_score",
	"estimated_contract_value",
	"upsell_potential",
	"renewal_probability",
}

// Dimensões categóricas com distribuição de contagens
var distributionFields = []string{
	"industry",
	"lead_source",
	"value_tier",
	"competitor_tool",
}

type Service struct {
	thresholds config.Scoring
}

func NewService(thresholds config.Scoring) Aggregator {
	return &Service{thresholds: thresholds}
}

// Aggregate percorre os leads uma única vez acumulando somas, distribuições
// e os contadores derivados do contexto, e só então calcula as médias.
func (s *Service) Aggregate(leads []*domain.Lead, context string) *domain.Aggregation {
	agg := &domain.Aggregation{
		Context:       context,
		Count:         len(leads),
		Averages:      make(map[string]float64, len(averagedFields)),
		Distributions: make(map[string]map[string]int, len(distributionFields)),
		Highlights:    make(map[string]float64),
	}

	for _, field := range averagedFields {
		agg.Averages[field] = 0
	}
	for _, field := range distributionFields {
		agg.Distributions[field] = map[string]int{}
	}

	sums := make(map[string]float64, len(averagedFields))
	var totalPipeline float64
	var highPotential, highPriority, highQuality float64
	var enterprise, strategic float64

	for _, lead := range leads {
		sums["employee_count"] += float64(lead.EmployeeCount)
		sums["revenue"] += lead.Revenue
		sums["days_since_created"] += float64(lead.DaysSinceCreated)
		sums["sourcing_score"] += lead.SourcingScore
		sums["engagement_score"] += lead.EngagementScore
		sums["urgency_score"] += lead.UrgencyScore
		sums["conversion_probability"] += lead.ConversionProbability
		sums["composite_score"] += lead.CompositeScore
		sums["fit_score"] += lead.FitScore
		sums["estimated_contract_value"] += lead.EstimatedContractValue
		sums["upsell_potential"] += lead.UpsellPotential
		sums["renewal_probability"] += lead.RenewalProbability

		agg.Distributions["industry"][lead.Industry]++
		agg.Distributions["lead_source"][lead.LeadSource]++
		agg.Distributions["value_tier"][lead.ValueTier]++
		if lead.CompetitorTool != nil && *lead.CompetitorTool != "" {
			agg.Distributions["competitor_tool"][*lead.CompetitorTool]++
		}

		totalPipeline += lead.EstimatedContractValue
		if lead.SourcingScore > s.thresholds.HighPotentialThreshold {
			highPotential++
		}
		if lead.CompositeScore > s.thresholds.HighPriorityThreshold {
			highPriority++
		}
		if lead.FitScore > s.thresholds.HighQualityThreshold {
			highQuality++
		}
		switch lead.ValueTier {
		case domain.ValueTierEnterprise:
			enterprise++
		case domain.ValueTierStrategic:
			strategic++
		}
	}

	if agg.Count > 0 {
		for field, sum := range sums {
			agg.Averages[field] = sum / float64(agg.Count)
		}
	}

	// Métricas derivadas por contexto, espelhando as visões do dashboard
	switch context {
	case domain.ContextSourcing:
		agg.Highlights["high_potential_leads"] = highPotential
	case domain.ContextScoring:
		agg.Highlights["high_priority_leads"] = highPriority
	case domain.ContextContractValue:
		agg.Highlights["total_pipeline_value"] = totalPipeline
		agg.Highlights["enterprise_leads"] = enterprise
		agg.Highlights["strategic_leads"] = strategic
	case domain.ContextAccountOverview:
		agg.Highlights["high_quality_leads"] = highQuality
		agg.Highlights["total_pipeline_value"] = totalPipeline
	}

	return agg
}
