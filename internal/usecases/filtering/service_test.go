package filtering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/lead-intelligence-api/internal/domain"
)

func ptr(f float64) *float64 { return &f }

func testLeads() []*domain.Lead {
	return []*domain.Lead{
		{ID: "L001", CompanyName: "Acme", Industry: "SaaS", SourcingScore: 0.90, EmployeeCount: 50},
		{ID: "L002", CompanyName: "Beta", Industry: "Fintech", SourcingScore: 0.70, EmployeeCount: 500},
		{ID: "L003", CompanyName: "Gama", Industry: "SaaS", SourcingScore: 0.40, EmployeeCount: 2000},
		{ID: "L004", CompanyName: "Delta", Industry: "Healthcare", SourcingScore: 0.85, EmployeeCount: 120},
	}
}

func TestApply_CombinacaoDePredicadosComAND(t *testing.T) {
	service := NewService()

	result, err := service.Apply(testLeads(), &domain.LeadFilters{
		Equality: map[string]string{"industry": "SaaS"},
		Ranges: map[string]domain.ScoreRange{
			"sourcing_score": {Min: ptr(0.5)},
		},
	})

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "L001", result[0].ID)
}

func TestApply_IntervaloInvertidoFalhaAntesDaVarredura(t *testing.T) {
	service := NewService()

	result, err := service.Apply(testLeads(), &domain.LeadFilters{
		Ranges: map[string]domain.ScoreRange{
			"sourcing_score": {Min: ptr(0.9), Max: ptr(0.1)},
		},
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInvalidFilterRange)
}

func TestApply_CampoDesconhecido(t *testing.T) {
	service := NewService()

	tests := []struct {
		name    string
		filters *domain.LeadFilters
	}{
		{
			name: "igualdade em campo inexistente",
			filters: &domain.LeadFilters{
				Equality: map[string]string{"nonexistent_field": "x"},
			},
		},
		{
			name: "intervalo em campo inexistente",
			filters: &domain.LeadFilters{
				Ranges: map[string]domain.ScoreRange{"nonexistent_field": {Min: ptr(1)}},
			},
		},
		{
			name: "intervalo em campo categórico",
			filters: &domain.LeadFilters{
				Ranges: map[string]domain.ScoreRange{"industry": {Min: ptr(1)}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := service.Apply(testLeads(), tt.filters)
			assert.Nil(t, result)
			assert.ErrorIs(t, err, domain.ErrUnknownFilterField)
		})
	}
}

func TestApply_FiltroVazioDevolveTudoNaMesmaOrdem(t *testing.T) {
	service := NewService()
	leads := testLeads()

	result, err := service.Apply(leads, nil)

	require.NoError(t, err)
	require.Len(t, result, len(leads))
	for i := range leads {
		assert.Equal(t, leads[i].ID, result[i].ID)
	}
}

func TestApply_Idempotente(t *testing.T) {
	service := NewService()
	filters := &domain.LeadFilters{
		Ranges: map[string]domain.ScoreRange{
			"sourcing_score": {Min: ptr(0.6)},
		},
	}

	once, err := service.Apply(testLeads(), filters)
	require.NoError(t, err)

	twice, err := service.Apply(once, filters)
	require.NoError(t, err)

	require.Equal(t, len(once), len(twice))
	for i := range once {
		assert.Equal(t, once[i].ID, twice[i].ID)
	}
}

func TestApply_LimiteInterrompeAVarredura(t *testing.T) {
	service := NewService()

	result, err := service.Apply(testLeads(), &domain.LeadFilters{Limit: 2})

	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "L001", result[0].ID)
	assert.Equal(t, "L002", result[1].ID)
}

func TestApply_IntervaloInclusivo(t *testing.T) {
	service := NewService()

	result, err := service.Apply(testLeads(), &domain.LeadFilters{
		Ranges: map[string]domain.ScoreRange{
			"employee_count": {Min: ptr(50), Max: ptr(500)},
		},
	})

	require.NoError(t, err)
	require.Len(t, result, 3)
}

func TestFieldNames_Ordenados(t *testing.T) {
	categorical := CategoricalFieldNames()
	numeric := NumericFieldNames()

	assert.Contains(t, categorical, "industry")
	assert.Contains(t, numeric, "sourcing_score")
	assert.True(t, IsNumericField("revenue"))
	assert.False(t, IsNumericField("industry"))
	assert.True(t, IsCategoricalField("value_tier"))
}
