// Package scorerclient implementa o cliente HTTP do serviço de modelos de
// ML. O serviço expõe os dois preditores como funções puras: vetor de
// features -> probabilidade (propensão) ou valor monetário (contrato).
package scorerclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-intelligence-api/internal/config"
	"github.com/vfg2006/lead-intelligence-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrPredictorUnavailable indica falha de comunicação ou resposta não-2xx
// do serviço de modelos.
var ErrPredictorUnavailable = errors.New("serviço de predição indisponível")

type Client interface {
	PredictPropensity(ctx context.Context, features domain.LeadFeatures) (float64, error)
	PredictValue(ctx context.Context, features domain.AccountFeatures) (float64, error)
}

type ScorerClient struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewClient(cfg *config.Config) Client {
	return &ScorerClient{
		cfg: cfg,
		httpClient: &http.Client{
			// Timeout explícito: chamada de preditor nunca bloqueia uma
			// atualização indefinidamente
			Timeout: cfg.Scorer.RequestTimeout,
		},
	}
}

type propensityResponse struct {
	Probability float64 `json:"probability"`
}

type valueResponse struct {
	Amount float64 `json:"amount"`
}

// PredictPropensity chama o preditor de propensão para um lead.
func (c *ScorerClient) PredictPropensity(ctx context.Context, features domain.LeadFeatures) (float64, error) {
	body, err := c.post(ctx, "/v1/predict/propensity", features)
	if err != nil {
		return 0, err
	}

	var response propensityResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar resposta do preditor de propensão")
		return 0, errors.Wrap(ErrPredictorUnavailable, "resposta inválida do preditor de propensão")
	}

	return response.Probability, nil
}

// PredictValue chama o preditor de valor esperado de contrato para uma
// conta.
func (c *ScorerClient) PredictValue(ctx context.Context, features domain.AccountFeatures) (float64, error) {
	body, err := c.post(ctx, "/v1/predict/value", features)
	if err != nil {
		return 0, err
	}

	var response valueResponse
	if err := json.Unmarshal(body, &response); err != nil {
		logrus.WithError(err).Error("Erro ao decodificar resposta do preditor de valor")
		return 0, errors.Wrap(ErrPredictorUnavailable, "resposta inválida do preditor de valor")
	}

	return response.Amount, nil
}

func (c *ScorerClient) post(ctx context.Context, path string, payload any) ([]byte, error) {
	requestBody, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao serializar features")
	}

	url := c.cfg.Scorer.URL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(requestBody))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithError(err).WithField("url", url).Error("Erro ao chamar o serviço de predição")
		return nil, errors.Wrap(ErrPredictorUnavailable, err.Error())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(ErrPredictorUnavailable, "erro ao ler resposta do preditor")
	}

	if resp.StatusCode != http.StatusOK {
		logrus.WithFields(logrus.Fields{
			"url":    url,
			"status": resp.Status,
		}).Error("Serviço de predição respondeu com erro")
		return nil, errors.Wrap(ErrPredictorUnavailable, fmt.Sprintf("status %s", resp.Status))
	}

	return body, nil
}
