// Package scorer expõe os preditores do serviço de modelos com validação
// de domínio: propensão fora de [0,1] ou valor negativo/NaN são tratados
// como indisponibilidade do preditor para aquela entidade.
package scorer

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/vfg2006/lead-intelligence-api/infrastructure/integrator/scorer/scorerclient"
	"github.com/vfg2006/lead-intelligence-api/internal/config"
	"github.com/vfg2006/lead-intelligence-api/internal/domain"
	"github.com/vfg2006/lead-intelligence-api/pkg/utils"
)

// ErrInvalidScore indica que o preditor respondeu, mas com um valor fora
// do domínio esperado.
var ErrInvalidScore = errors.New("preditor devolveu valor fora do domínio esperado")

// ScorerIntegrator agrupa os dois preditores externos.
type ScorerIntegrator interface {
	// PredictLeadPropensity devolve a probabilidade de conversão de um
	// lead, sempre em [0,1].
	PredictLeadPropensity(ctx context.Context, features domain.LeadFeatures) (float64, error)

	// PredictAccountValue devolve o valor esperado de contrato de uma
	// conta, sempre >= 0.
	PredictAccountValue(ctx context.Context, features domain.AccountFeatures) (float64, error)
}

type Integrator struct {
	cfg    *config.Config
	Client scorerclient.Client
}

func New(cfg *config.Config, client scorerclient.Client) *Integrator {
	return &Integrator{
		cfg:    cfg,
		Client: client,
	}
}

func (s *Integrator) PredictLeadPropensity(ctx context.Context, features domain.LeadFeatures) (float64, error) {
	probability, err := s.Client.PredictPropensity(ctx, features)
	if err != nil {
		return 0, err
	}

	if !utils.ValidProbability(probability) {
		return 0, errors.Wrap(ErrInvalidScore, fmt.Sprintf("propensão %v para o lead %s", probability, features.LeadID))
	}

	return probability, nil
}

func (s *Integrator) PredictAccountValue(ctx context.Context, features domain.AccountFeatures) (float64, error) {
	amount, err := s.Client.PredictValue(ctx, features)
	if err != nil {
		return 0, err
	}

	if !utils.ValidAmount(amount) {
		return 0, errors.Wrap(ErrInvalidScore, fmt.Sprintf("valor %v para a conta %s", amount, features.AccountID))
	}

	return amount, nil
}
