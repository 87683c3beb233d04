package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/lead-intelligence-api/internal/usecases/refreshing"
	"github.com/vfg2006/lead-intelligence-api/internal/usecases/refreshing/mocks"
	"go.uber.org/mock/gomock"
)

func newTestService(refresher refreshing.Refresher) *LeadRefreshService {
	return &LeadRefreshService{
		refresher: refresher,
		config: LeadRefreshConfig{
			CronSchedule: "0 5 * * *",
			Enabled:      true,
		},
	}
}

func TestRefreshSnapshot_AtualizaStatusAposExecucao(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	refresher := mocks.NewMockRefresher(ctrl)
	refresher.EXPECT().
		Refresh(gomock.Any()).
		Return(&refreshing.RefreshResult{SnapshotID: "snap42", Version: 7}, nil)

	service := newTestService(refresher)

	err := service.RefreshSnapshot(context.Background())

	require.NoError(t, err)

	status := service.GetStatus()
	assert.Equal(t, "snap42", status["last_snapshot_id"])
	assert.Equal(t, false, status["sync_running"])
	assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
}

func TestRefreshSnapshot_ErroDoRefresherEhPropagado(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	refresher := mocks.NewMockRefresher(ctrl)
	refresher.EXPECT().
		Refresh(gomock.Any()).
		Return(nil, errors.New("banco indisponível"))

	service := newTestService(refresher)

	err := service.RefreshSnapshot(context.Background())

	assert.Error(t, err)

	// A falha não pode deixar o agendador travado como "em execução"
	status := service.GetStatus()
	assert.Equal(t, false, status["sync_running"])
}

func TestRefreshSnapshot_ExecucaoSobrepostaEhIgnorada(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	started := make(chan struct{})
	release := make(chan struct{})

	refresher := mocks.NewMockRefresher(ctrl)
	refresher.EXPECT().
		Refresh(gomock.Any()).
		DoAndReturn(func(context.Context) (*refreshing.RefreshResult, error) {
			close(started)
			<-release
			return &refreshing.RefreshResult{SnapshotID: "snap01"}, nil
		}).
		Times(1)

	service := newTestService(refresher)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = service.RefreshSnapshot(context.Background())
	}()

	<-started

	// Segunda chamada enquanto a primeira está em andamento: retorna sem
	// disparar outra atualização
	err := service.RefreshSnapshot(context.Background())
	require.NoError(t, err)

	close(release)
	wg.Wait()

	status := service.GetStatus()
	assert.Equal(t, "snap01", status["last_snapshot_id"])
}

func TestTriggerManualSync_RodaComContextoProprio(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	observed := make(chan error, 1)

	refresher := mocks.NewMockRefresher(ctrl)
	refresher.EXPECT().
		Refresh(gomock.Any()).
		DoAndReturn(func(ctx context.Context) (*refreshing.RefreshResult, error) {
			observed <- ctx.Err()
			return &refreshing.RefreshResult{SnapshotID: "snap01"}, nil
		})

	service := newTestService(refresher)

	// O disparo manual vem de um handler HTTP cujo contexto morre junto com
	// a resposta; a atualização em segundo plano não pode depender dele
	service.TriggerManualSync()

	select {
	case err := <-observed:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("atualização manual não foi executada")
	}
}

func TestGetStatus_ExpoeConfiguracaoDoCron(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := newTestService(mocks.NewMockRefresher(ctrl))

	status := service.GetStatus()

	assert.Equal(t, true, status["sync_enabled"])
	assert.Equal(t, "0 5 * * *", status["sync_cron"])
	assert.Equal(t, false, status["sync_running"])
}
