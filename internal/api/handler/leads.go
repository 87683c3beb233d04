package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-intelligence-api/internal/domain"
	"github.com/vfg2006/lead-intelligence-api/internal/usecases/filtering"
	"github.com/vfg2006/lead-intelligence-api/internal/usecases/querying"
	"github.com/vfg2006/lead-intelligence-api/pkg/apiErrors"
)

// QueryLeads executa uma consulta filtrada em um contexto de análise.
//
// Filtros numéricos chegam como min_<campo>/max_<campo>, filtros categóricos
// como <campo>=<valor> e o limite de registros como limit=<n>.
func QueryLeads(service querying.Querier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		queryContext := httprouter.ParamsFromContext(r.Context()).ByName("context")

		filters, err := parseLeadFilters(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		response, err := service.Query(r.Context(), queryContext, filters)
		if err != nil {
			handleQueryError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(response); err != nil {
			logrus.Error("Erro ao enviar resposta da consulta de leads:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}

// ListFilterableFields expõe os campos aceitos nos filtros, para o frontend
// montar os controles dinamicamente.
func ListFilterableFields() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"categorical": filtering.CategoricalFieldNames(),
			"numeric":     filtering.NumericFieldNames(),
			"contexts":    domain.QueryContexts,
		})
	}
}

func parseLeadFilters(r *http.Request) (*domain.LeadFilters, error) {
	filters := &domain.LeadFilters{
		Equality: map[string]string{},
		Ranges:   map[string]domain.ScoreRange{},
	}

	for key, values := range r.URL.Query() {
		if len(values) == 0 || values[0] == "" {
			continue
		}
		value := values[0]

		switch {
		case key == "limit":
			limit, err := strconv.Atoi(value)
			if err != nil || limit < 0 {
				return nil, errors.New("limit deve ser um inteiro não negativo")
			}
			filters.Limit = limit

		case strings.HasPrefix(key, "min_"):
			field := strings.TrimPrefix(key, "min_")
			min, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, errors.Errorf("valor inválido para %s: %s", key, value)
			}
			scoreRange := filters.Ranges[field]
			scoreRange.Min = &min
			filters.Ranges[field] = scoreRange

		case strings.HasPrefix(key, "max_"):
			field := strings.TrimPrefix(key, "max_")
			max, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return nil, errors.Errorf("valor inválido para %s: %s", key, value)
			}
			scoreRange := filters.Ranges[field]
			scoreRange.Max = &max
			filters.Ranges[field] = scoreRange

		default:
			filters.Equality[key] = value
		}
	}

	return filters, nil
}

func handleQueryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownContext):
		apiErrors.WriteError(w, apiErrors.ErrUnknownContext, err.Error(), map[string]any{
			"contexts": domain.QueryContexts,
		})

	case errors.Is(err, domain.ErrInvalidFilterRange):
		apiErrors.WriteError(w, apiErrors.ErrInvalidFilterRange, err.Error(), nil)

	case errors.Is(err, domain.ErrUnknownFilterField):
		apiErrors.WriteError(w, apiErrors.ErrUnknownFilterField, err.Error(), map[string]any{
			"categorical": filtering.CategoricalFieldNames(),
			"numeric":     filtering.NumericFieldNames(),
		})

	case errors.Is(err, domain.ErrSnapshotEmpty):
		apiErrors.WriteError(w, apiErrors.ErrSnapshotEmpty, err.Error(), nil)

	default:
		logrus.Error("Erro ao consultar leads:", err)
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao consultar leads", nil)
	}
}
