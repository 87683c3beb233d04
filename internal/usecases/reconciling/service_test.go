package reconciling

import (
	"context"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/lead-intelligence-api/infrastructure/integrator/scorer/mocks"
	"github.com/vfg2006/lead-intelligence-api/internal/domain"
	"go.uber.org/mock/gomock"
)

func lead(id, company string, probability float64) *domain.Lead {
	return &domain.Lead{
		ID:                    id,
		CompanyName:           company,
		Industry:              "SaaS",
		EmployeeCount:         100,
		Revenue:               1_000_000,
		ConversionProbability: probability,
	}
}

func TestReconcile_RollupEMultiplicacao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	predictor := mocks.NewMockScorerIntegrator(ctrl)

	leads := []*domain.Lead{
		lead("L001", "Acme", 0.40),
		lead("L002", "Acme", 0.90),
		lead("L003", "Acme", 0.70),
	}

	predictor.EXPECT().
		PredictAccountValue(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, features domain.AccountFeatures) (float64, error) {
			// Uma única chamada por conta, já com a propensão consolidada
			assert.Equal(t, "Acme", features.AccountID)
			assert.Equal(t, 3, features.LeadCount)
			assert.InDelta(t, 0.90, features.PropensityParent, 1e-9)
			return 200_000.0, nil
		}).
		Times(1)

	service := NewService(predictor)
	ranking, excluded := service.Reconcile(context.Background(), leads)

	require.Len(t, ranking, 1)
	assert.Empty(t, excluded)

	account := ranking[0]
	assert.Equal(t, "Acme", account.AccountID)
	assert.InDelta(t, 0.90, account.PropensityParent, 1e-9)
	assert.InDelta(t, 200_000.0, account.ValueParent, 1e-9)
	assert.InDelta(t, 0.90*200_000.0, account.PrioritizedScore, 1e-6)
	assert.Equal(t, "L002", account.DrivingLeadID)
	assert.Equal(t, 1, account.Position)
}

func TestRollup_EmpateEscolheMenorID(t *testing.T) {
	leads := []*domain.Lead{
		lead("L009", "Acme", 0.80),
		lead("L002", "Acme", 0.80),
		lead("L005", "Acme", 0.10),
	}

	score := Rollup("Acme", leads)

	assert.InDelta(t, 0.80, score.PropensityParent, 1e-9)
	assert.Equal(t, "L002", score.DrivingLeadID)
}

func TestReconcile_PreditorComFalhaExcluiSomenteAConta(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	predictor := mocks.NewMockScorerIntegrator(ctrl)

	leads := []*domain.Lead{
		lead("L001", "Acme", 0.90),
		lead("L002", "Beta", 0.50),
		lead("L003", "Gama", 0.60),
	}

	// Contas processadas em ordem de chave: Acme, Beta, Gama
	gomock.InOrder(
		predictor.EXPECT().
			PredictAccountValue(gomock.Any(), gomock.Any()).
			Return(100_000.0, nil),
		predictor.EXPECT().
			PredictAccountValue(gomock.Any(), gomock.Any()).
			Return(0.0, errors.New("preditor indisponível")),
		predictor.EXPECT().
			PredictAccountValue(gomock.Any(), gomock.Any()).
			Return(50_000.0, nil),
	)

	service := NewService(predictor)
	ranking, excluded := service.Reconcile(context.Background(), leads)

	require.Len(t, ranking, 2)
	require.Len(t, excluded, 1)
	assert.Equal(t, "Beta", excluded[0].AccountID)
	assert.NotEmpty(t, excluded[0].Reason)

	// As demais contas seguem ranqueadas normalmente
	assert.Equal(t, "Acme", ranking[0].AccountID)
	assert.Equal(t, "Gama", ranking[1].AccountID)
}

func TestReconcile_ValorInvalidoExcluiAConta(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	predictor := mocks.NewMockScorerIntegrator(ctrl)

	predictor.EXPECT().
		PredictAccountValue(gomock.Any(), gomock.Any()).
		Return(math.NaN(), nil)

	service := NewService(predictor)
	ranking, excluded := service.Reconcile(context.Background(), []*domain.Lead{
		lead("L001", "Acme", 0.90),
	})

	assert.Empty(t, ranking)
	require.Len(t, excluded, 1)
	assert.Equal(t, "Acme", excluded[0].AccountID)
}

func TestRank_OrdenacaoEDesempate(t *testing.T) {
	ranking := []*domain.AccountScore{
		{AccountID: "Beta", PrioritizedScore: 100},
		{AccountID: "Acme", PrioritizedScore: 100},
		{AccountID: "Zeta", PrioritizedScore: 300},
	}

	Rank(ranking)

	// Pontuação decrescente, empate resolvido por ID crescente
	assert.Equal(t, "Zeta", ranking[0].AccountID)
	assert.Equal(t, "Acme", ranking[1].AccountID)
	assert.Equal(t, "Beta", ranking[2].AccountID)

	assert.Equal(t, 1, ranking[0].Position)
	assert.Equal(t, 2, ranking[1].Position)
	assert.Equal(t, 3, ranking[2].Position)
}

func TestReconcile_Deterministico(t *testing.T) {
	run := func() []*domain.AccountScore {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		predictor := mocks.NewMockScorerIntegrator(ctrl)
		predictor.EXPECT().
			PredictAccountValue(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, features domain.AccountFeatures) (float64, error) {
				return float64(features.LeadCount) * 10_000, nil
			}).
			AnyTimes()

		service := NewService(predictor)
		ranking, _ := service.Reconcile(context.Background(), []*domain.Lead{
			lead("L001", "Acme", 0.50),
			lead("L002", "Beta", 0.50),
			lead("L003", "Beta", 0.50),
			lead("L004", "Gama", 0.25),
		})
		return ranking
	}

	first := run()
	second := run()

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].AccountID, second[i].AccountID)
		assert.Equal(t, first[i].Position, second[i].Position)
		assert.Equal(t, first[i].PrioritizedScore, second[i].PrioritizedScore)
	}
}
