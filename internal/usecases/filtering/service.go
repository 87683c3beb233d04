// Package filtering avalia conjuntos de predicados sobre a população de
// leads. Todos os predicados são combinados com AND e a seleção acontece em
// uma única passada, preservando a ordem de entrada.
package filtering

import (
	"sort"

	"github.com/vfg2006/lead-intelligence-api/internal/domain"
)

// Filterer seleciona a subsequência de leads que satisfaz um conjunto de
// predicados.
type Filterer interface {
	Apply(leads []*domain.Lead, filters *domain.LeadFilters) ([]*domain.Lead, error)
}

// Acessores dos campos categóricos filtráveis
var categoricalFields = map[string]func(*domain.Lead) string{
	"company_name": func(l *domain.Lead) string { return l.CompanyName },
	"industry":     func(l *domain.Lead) string { return l.Industry },
	"lead_source":  func(l *domain.Lead) string { return l.LeadSource },
	"value_tier":   func(l *domain.Lead) string { return l.ValueTier },
	"competitor_tool": func(l *domain.Lead) string {
		if l.CompetitorTool == nil {
			return ""
		}
		return *l.CompetitorTool
	},
}

// Acessores dos campos numéricos filtráveis
var numericFields = map[string]func(*domain.Lead) float64{
	"employee_count":           func(l *domain.Lead) float64 { return float64(l.EmployeeCount) },
	"revenue":                  func(l *domain.Lead) float64 { return l.Revenue },
	"days_since_created":       func(l *domain.Lead) float64 { return float64(l.DaysSinceCreated) },
	"sourcing_score":           func(l *domain.Lead) float64 { return l.SourcingScore },
	"engagement_score":         func(l *domain.Lead) float64 { return l.EngagementScore },
	"urgency_score":            func(l *domain.Lead) float64 { return l.UrgencyScore },
	"conversion_probability":   func(l *domain.Lead) float64 { return l.ConversionProbability },
	"composite_score":          func(l *domain.Lead) float64 { return l.CompositeScore },
	"fit_score":                func(l *domain.Lead) float64 { return l.FitScore },
	"estimated_contract_value": func(l *domain.Lead) float64 { return l.EstimatedContractValue },
	"upsell_potential":         func(l *domain.Lead) float64 { return l.UpsellPotential },
	"renewal_probability":      func(l *domain.Lead) float64 { return l.RenewalProbability },
}

// CategoricalFieldNames lista, em ordem alfabética, os campos que aceitam
// filtro de igualdade.
func CategoricalFieldNames() []string {
	names := make([]string, 0, len(categoricalFields))
	for name := range categoricalFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NumericFieldNames lista, em ordem alfabética, os campos que aceitam
// filtro de intervalo.
func NumericFieldNames() []string {
	names := make([]string, 0, len(numericFields))
	for name := range numericFields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsNumericField informa se o campo aceita filtro de intervalo.
func IsNumericField(name string) bool {
	_, ok := numericFields[name]
	return ok
}

// IsCategoricalField informa se o campo aceita filtro de igualdade.
func IsCategoricalField(name string) bool {
	_, ok := categoricalFields[name]
	return ok
}

type Service struct{}

func NewService() Filterer {
	return &Service{}
}

// Apply devolve a subsequência de leads que satisfaz todos os predicados.
// A validação acontece antes de qualquer varredura: intervalos invertidos
// devolvem domain.ErrInvalidFilterRange e campos desconhecidos devolvem
// domain.ErrUnknownFilterField. Um conjunto vazio de predicados devolve a
// entrada inalterada, respeitando apenas o Limit.
func (s *Service) Apply(leads []*domain.Lead, filters *domain.LeadFilters) ([]*domain.Lead, error) {
	if filters == nil {
		filters = &domain.LeadFilters{}
	}

	if err := validate(filters); err != nil {
		return nil, err
	}

	limit := filters.Limit
	capacity := len(leads)
	if limit > 0 && limit < capacity {
		capacity = limit
	}

	result := make([]*domain.Lead, 0, capacity)
	for _, lead := range leads {
		if !matches(lead, filters) {
			continue
		}

		result = append(result, lead)
		if limit > 0 && len(result) == limit {
			break
		}
	}

	return result, nil
}

func validate(filters *domain.LeadFilters) error {
	for field := range filters.Equality {
		if !IsCategoricalField(field) {
			return domain.ErrUnknownFilterField
		}
	}

	for field, scoreRange := range filters.Ranges {
		if !IsNumericField(field) {
			return domain.ErrUnknownFilterField
		}
		if !scoreRange.Valid() {
			return domain.ErrInvalidFilterRange
		}
	}

	return nil
}

func matches(lead *domain.Lead, filters *domain.LeadFilters) bool {
	for field, expected := range filters.Equality {
		if categoricalFields[field](lead) != expected {
			return false
		}
	}

	for field, scoreRange := range filters.Ranges {
		value := numericFields[field](lead)
		if scoreRange.Min != nil && value < *scoreRange.Min {
			return false
		}
		if scoreRange.Max != nil && value > *scoreRange.Max {
			return false
		}
	}

	return true
}
