package insighting

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/lead-intelligence-api/infrastructure/integrator/gemini/mocks"
	"github.com/vfg2006/lead-intelligence-api/internal/config"
	"github.com/vfg2006/lead-intelligence-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func testConfig() *config.Config {
	return &config.Config{}
}

func sampleRequest() domain.NarrativeRequest {
	return domain.NarrativeRequest{
		Context: domain.ContextSourcing,
		Aggregation: &domain.Aggregation{
			Context: domain.ContextSourcing,
			Count:   12,
			Averages: map[string]float64{
				"sourcing_score": 0.64,
			},
			Distributions: map[string]map[string]int{
				"industry": {"SaaS": 7, "Fintech": 3, "Healthcare": 2},
			},
			Highlights: map[string]float64{
				"high_potential_leads": 4,
			},
		},
	}
}

func TestNarrate_SemClienteUsaTemplate(t *testing.T) {
	service := NewService(testConfig(), nil)

	narrative, err := service.Narrate(context.Background(), sampleRequest())

	require.NoError(t, err)
	assert.Contains(t, narrative, "12 leads")
	assert.Contains(t, narrative, "0.64")
}

func TestNarrate_TemplateDeterministico(t *testing.T) {
	service := NewService(testConfig(), nil)

	first, err := service.Narrate(context.Background(), sampleRequest())
	require.NoError(t, err)

	second, err := service.Narrate(context.Background(), sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNarrate_PopulacaoVaziaMencionaZeroRegistros(t *testing.T) {
	service := NewService(testConfig(), nil)

	narrative, err := service.Narrate(context.Background(), domain.NarrativeRequest{
		Context:     domain.ContextScoring,
		Aggregation: &domain.Aggregation{Context: domain.ContextScoring, Count: 0},
	})

	require.NoError(t, err)
	assert.Contains(t, narrative, "0 records")
}

func TestNarrate_FalhaDoModeloCaiParaTemplate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockNarrativeClient(ctrl)
	client.EXPECT().
		GenerateNarrative(gomock.Any(), gomock.Any()).
		Return("", errors.New("timeout"))

	service := NewService(testConfig(), client)

	narrative, err := service.Narrate(context.Background(), sampleRequest())

	// A consulta nunca falha por causa da narrativa
	require.NoError(t, err)
	assert.Contains(t, narrative, "12 leads")
}

func TestNarrate_ModeloDisponivelUsaAResposta(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockNarrativeClient(ctrl)
	client.EXPECT().
		GenerateNarrative(gomock.Any(), gomock.Any()).
		Return("Resumo gerado pelo modelo.", nil)

	service := NewService(testConfig(), client)

	narrative, err := service.Narrate(context.Background(), sampleRequest())

	require.NoError(t, err)
	assert.Equal(t, "Resumo gerado pelo modelo.", narrative)
}

func TestNarrate_TemplatesPorContexto(t *testing.T) {
	service := NewService(testConfig(), nil)

	tests := []struct {
		context  string
		agg      *domain.Aggregation
		expected string
	}{
		{
			context: domain.ContextScoring,
			agg: &domain.Aggregation{
				Count:      5,
				Averages:   map[string]float64{"composite_score": 0.72, "conversion_probability": 0.41},
				Highlights: map[string]float64{"high_priority_leads": 2},
			},
			expected: "alta prioridade",
		},
		{
			context: domain.ContextContractValue,
			agg: &domain.Aggregation{
				Count:      5,
				Highlights: map[string]float64{"total_pipeline_value": 900_000, "enterprise_leads": 3},
			},
			expected: "pipeline",
		},
		{
			context: domain.ContextAccountOverview,
			agg: &domain.Aggregation{
				Count:      5,
				Averages:   map[string]float64{"fit_score": 0.66},
				Highlights: map[string]float64{"total_pipeline_value": 900_000},
			},
			expected: "fit score",
		},
	}

	for _, tt := range tests {
		t.Run(tt.context, func(t *testing.T) {
			narrative, err := service.Narrate(context.Background(), domain.NarrativeRequest{
				Context:     tt.context,
				Aggregation: tt.agg,
			})
			require.NoError(t, err)
			assert.Contains(t, narrative, tt.expected)
		})
	}
}

func TestNarrate_ContratoSomaEnterpriseEStrategic(t *testing.T) {
	service := NewService(testConfig(), nil)

	narrative, err := service.Narrate(context.Background(), domain.NarrativeRequest{
		Context: domain.ContextContractValue,
		Aggregation: &domain.Aggregation{
			Context: domain.ContextContractValue,
			Count:   5,
			Highlights: map[string]float64{
				"total_pipeline_value": 900_000,
				"enterprise_leads":     2,
				"strategic_leads":      1,
			},
		},
	})

	require.NoError(t, err)
	assert.Contains(t, narrative, "3 oportunidades")
}

func TestNarrate_SetorVazioNaoEntraNaNarrativa(t *testing.T) {
	service := NewService(testConfig(), nil)

	narrative, err := service.Narrate(context.Background(), domain.NarrativeRequest{
		Context: domain.ContextSourcing,
		Aggregation: &domain.Aggregation{
			Context:  domain.ContextSourcing,
			Count:    3,
			Averages: map[string]float64{"sourcing_score": 0.50},
			Distributions: map[string]map[string]int{
				"industry": {"": 3},
			},
		},
	})

	require.NoError(t, err)
	assert.NotContains(t, narrative, "Setores mais representados")
}

func TestTopSegments_OrdemEstavel(t *testing.T) {
	distribution := map[string]int{
		"SaaS":       5,
		"Fintech":    5,
		"Healthcare": 2,
		"EdTech":     1,
	}

	segments := topSegments(distribution, 3)

	// Empate entre SaaS e Fintech resolvido por ordem alfabética
	assert.Equal(t, []string{"Fintech", "SaaS", "Healthcare"}, segments)
}

func TestTopSegments_IgnoraRotuloVazio(t *testing.T) {
	segments := topSegments(map[string]int{"": 9, "SaaS": 2}, 3)
	assert.Equal(t, []string{"SaaS"}, segments)

	assert.Nil(t, topSegments(map[string]int{"": 4}, 3))
}
