package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-intelligence-api/internal/domain"
	"github.com/vfg2006/lead-intelligence-api/internal/usecases/querying"
	"github.com/vfg2006/lead-intelligence-api/pkg/apiErrors"
)

// GetAccountRanking retorna o ranking de contas do snapshot corrente, com os
// diagnósticos das contas excluídas pelo preditor de valor.
func GetAccountRanking(service querying.Querier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ranking, err := service.Ranking(r.Context())
		if err != nil {
			if errors.Is(err, domain.ErrSnapshotEmpty) {
				apiErrors.WriteError(w, apiErrors.ErrSnapshotEmpty, err.Error(), nil)
				return
			}

			logrus.Error("Erro ao buscar ranking de contas:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao buscar ranking de contas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(ranking); err != nil {
			logrus.Error("Erro ao enviar resposta do ranking:", err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	}
}
