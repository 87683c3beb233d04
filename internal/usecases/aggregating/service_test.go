package aggregating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/lead-intelligence-api/internal/config"
	"github.com/vfg2006/lead-intelligence-api/internal/domain"
)

func thresholds() config.Scoring {
	return config.Scoring{
		HighPotentialThreshold: 0.7,
		HighPriorityThreshold:  0.8,
		HighQualityThreshold:   0.7,
	}
}

func TestAggregate_PopulacaoVaziaProduzResultadoZerado(t *testing.T) {
	service := NewService(thresholds())

	agg := service.Aggregate(nil, domain.ContextSourcing)

	require.NotNil(t, agg)
	assert.Equal(t, 0, agg.Count)
	assert.Equal(t, 0.0, agg.Averages["sourcing_score"])
	assert.Empty(t, agg.Distributions["industry"])
	assert.Equal(t, 0.0, agg.Highlights["high_potential_leads"])
}

func TestAggregate_MediasEDistribuicoes(t *testing.T) {
	service := NewService(thresholds())

	tool := "Outreach"
	leads := []*domain.Lead{
		{Industry: "SaaS", LeadSource: "inbound", ValueTier: domain.ValueTierStandard, SourcingScore: 0.80, Revenue: 100},
		{Industry: "SaaS", LeadSource: "outbound", ValueTier: domain.ValueTierEnterprise, SourcingScore: 0.60, Revenue: 300, CompetitorTool: &tool},
		{Industry: "Fintech", LeadSource: "inbound", ValueTier: domain.ValueTierStrategic, SourcingScore: 0.40, Revenue: 200},
	}

	agg := service.Aggregate(leads, domain.ContextSourcing)

	assert.Equal(t, 3, agg.Count)
	assert.InDelta(t, 0.60, agg.Averages["sourcing_score"], 1e-9)
	assert.InDelta(t, 200.0, agg.Averages["revenue"], 1e-9)

	assert.Equal(t, 2, agg.Distributions["industry"]["SaaS"])
	assert.Equal(t, 1, agg.Distributions["industry"]["Fintech"])
	assert.Equal(t, 2, agg.Distributions["lead_source"]["inbound"])

	// Competidor ausente não entra na distribuição
	assert.Equal(t, 1, agg.Distributions["competitor_tool"]["Outreach"])
	assert.Len(t, agg.Distributions["competitor_tool"], 1)
}

func TestAggregate_MetricasDerivadasPorContexto(t *testing.T) {
	service := NewService(thresholds())

	leads := []*domain.Lead{
		{SourcingScore: 0.90, CompositeScore: 0.85, FitScore: 0.90, EstimatedContractValue: 400_000, ValueTier: domain.ValueTierEnterprise},
		{SourcingScore: 0.50, CompositeScore: 0.50, FitScore: 0.50, EstimatedContractValue: 600_000, ValueTier: domain.ValueTierStrategic},
		{SourcingScore: 0.75, CompositeScore: 0.90, FitScore: 0.80, EstimatedContractValue: 20_000, ValueTier: domain.ValueTierStandard},
	}

	sourcing := service.Aggregate(leads, domain.ContextSourcing)
	assert.Equal(t, 2.0, sourcing.Highlights["high_potential_leads"])

	scoring := service.Aggregate(leads, domain.ContextScoring)
	assert.Equal(t, 2.0, scoring.Highlights["high_priority_leads"])

	contractValue := service.Aggregate(leads, domain.ContextContractValue)
	assert.InDelta(t, 1_020_000.0, contractValue.Highlights["total_pipeline_value"], 1e-6)
	assert.Equal(t, 1.0, contractValue.Highlights["enterprise_leads"])
	assert.Equal(t, 1.0, contractValue.Highlights["strategic_leads"])

	overview := service.Aggregate(leads, domain.ContextAccountOverview)
	assert.Equal(t, 2.0, overview.Highlights["high_quality_leads"])
	assert.InDelta(t, 1_020_000.0, overview.Highlights["total_pipeline_value"], 1e-6)
}

func TestAggregate_UmaUnicaPassadaPreservaEntrada(t *testing.T) {
	service := NewService(thresholds())

	leads := []*domain.Lead{
		{ID: "L001", SourcingScore: 0.30},
		{ID: "L002", SourcingScore: 0.70},
	}

	_ = service.Aggregate(leads, domain.ContextSourcing)

	// A agregação nunca modifica os leads
	assert.Equal(t, 0.30, leads[0].SourcingScore)
	assert.Equal(t, 0.70, leads[1].SourcingScore)
}
