package refreshing

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	scorermocks "github.com/vfg2006/lead-intelligence-api/infrastructure/integrator/scorer/mocks"
	repositorymocks "github.com/vfg2006/lead-intelligence-api/infrastructure/repository/mocks"
	"github.com/vfg2006/lead-intelligence-api/internal/config"
	"github.com/vfg2006/lead-intelligence-api/internal/domain"
	"github.com/vfg2006/lead-intelligence-api/internal/snapshot"
	"github.com/vfg2006/lead-intelligence-api/internal/usecases/reconciling"
	"go.uber.org/mock/gomock"
)

func testLead(id, company string) *domain.Lead {
	return &domain.Lead{
		ID:                     id,
		CompanyName:            company,
		Industry:               "SaaS",
		EmployeeCount:          100,
		Revenue:                1_000_000,
		SourcingScore:          0.80,
		EngagementScore:        0.60,
		UrgencyScore:           0.50,
		FitScore:               0.70,
		EstimatedContractValue: 120_000,
	}
}

func TestRefresh_PublicaSnapshotComCamposDerivados(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	leads := repositorymocks.NewMockLeadRepository(ctrl)
	leads.EXPECT().
		ListLeads(gomock.Any()).
		Return([]*domain.Lead{testLead("L001", "Acme")}, nil)

	predictor := scorermocks.NewMockScorerIntegrator(ctrl)
	predictor.EXPECT().
		PredictLeadPropensity(gomock.Any(), gomock.Any()).
		Return(0.50, nil)
	predictor.EXPECT().
		PredictAccountValue(gomock.Any(), gomock.Any()).
		Return(200_000.0, nil)

	store := snapshot.NewStore()
	service := NewService(&config.Config{}, leads, predictor, reconciling.NewService(predictor), store)

	result, err := service.Refresh(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.LeadsScored)
	assert.Equal(t, 0, result.LeadsSkipped)
	assert.Equal(t, 1, result.AccountsTotal)
	assert.Equal(t, int64(1), result.Version)
	assert.NotEmpty(t, result.SnapshotID)

	snap := store.Current()
	require.Len(t, snap.Leads, 1)

	lead := snap.Leads[0]
	assert.Equal(t, 0.50, lead.ConversionProbability)
	// 0.25*0.80 + 0.25*0.60 + 0.20*0.50 + 0.30*0.50 = 0.60
	assert.InDelta(t, 0.60, lead.CompositeScore, 1e-9)
	assert.Equal(t, domain.ValueTierProfessional, lead.ValueTier)

	require.Len(t, snap.Ranking, 1)
	assert.Equal(t, "Acme", snap.Ranking[0].AccountID)
}

func TestRefresh_FalhaDePropensaoIgnoraApenasOLead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	leads := repositorymocks.NewMockLeadRepository(ctrl)
	leads.EXPECT().
		ListLeads(gomock.Any()).
		Return([]*domain.Lead{
			testLead("L001", "Acme"),
			testLead("L002", "Beta"),
		}, nil)

	predictor := scorermocks.NewMockScorerIntegrator(ctrl)
	gomock.InOrder(
		predictor.EXPECT().
			PredictLeadPropensity(gomock.Any(), gomock.Any()).
			Return(0.0, errors.New("preditor indisponível")),
		predictor.EXPECT().
			PredictLeadPropensity(gomock.Any(), gomock.Any()).
			Return(0.70, nil),
	)
	predictor.EXPECT().
		PredictAccountValue(gomock.Any(), gomock.Any()).
		Return(100_000.0, nil)

	store := snapshot.NewStore()
	service := NewService(&config.Config{}, leads, predictor, reconciling.NewService(predictor), store)

	result, err := service.Refresh(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.LeadsScored)
	assert.Equal(t, 1, result.LeadsSkipped)

	snap := store.Current()
	require.Len(t, snap.Leads, 1)
	assert.Equal(t, "L002", snap.Leads[0].ID)
}

func TestRefresh_FalhaNoRepositorioNaoPublicaSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	leads := repositorymocks.NewMockLeadRepository(ctrl)
	leads.EXPECT().
		ListLeads(gomock.Any()).
		Return(nil, errors.New("conexão recusada"))

	predictor := scorermocks.NewMockScorerIntegrator(ctrl)

	store := snapshot.NewStore()
	service := NewService(&config.Config{}, leads, predictor, reconciling.NewService(predictor), store)

	result, err := service.Refresh(context.Background())

	assert.Nil(t, result)
	assert.Error(t, err)
	assert.True(t, store.Current().Empty())
}

func TestRefresh_VersaoMonotonica(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	leads := repositorymocks.NewMockLeadRepository(ctrl)
	leads.EXPECT().
		ListLeads(gomock.Any()).
		Return([]*domain.Lead{testLead("L001", "Acme")}, nil).
		Times(2)

	predictor := scorermocks.NewMockScorerIntegrator(ctrl)
	predictor.EXPECT().
		PredictLeadPropensity(gomock.Any(), gomock.Any()).
		Return(0.50, nil).
		Times(2)
	predictor.EXPECT().
		PredictAccountValue(gomock.Any(), gomock.Any()).
		Return(200_000.0, nil).
		Times(2)

	store := snapshot.NewStore()
	service := NewService(&config.Config{}, leads, predictor, reconciling.NewService(predictor), store)

	first, err := service.Refresh(context.Background())
	require.NoError(t, err)

	second, err := service.Refresh(context.Background())
	require.NoError(t, err)

	assert.Greater(t, second.Version, first.Version)
	assert.NotEqual(t, first.SnapshotID, second.SnapshotID)
}
