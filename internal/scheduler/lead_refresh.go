// Package scheduler contém o agendamento da atualização periódica do
// snapshot de leads.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-intelligence-api/internal/config"
	"github.com/vfg2006/lead-intelligence-api/internal/usecases/refreshing"
)

type LeadRefreshConfig struct {
	CronSchedule string
	Enabled      bool
}

type LeadRefreshService struct {
	scheduler           *gocron.Scheduler
	refresher           refreshing.Refresher
	config              LeadRefreshConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSnapshotID      string
}

func NewLeadRefreshService(
	refresher refreshing.Refresher,
	cfg *config.Config,
) *LeadRefreshService {
	refreshConfig := LeadRefreshConfig{
		CronSchedule: cfg.LeadRefresh.CronSchedule, // Default: 5h da manhã todos os dias
		Enabled:      cfg.LeadRefresh.Enabled,      // Default: desabilitado
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": refreshConfig.CronSchedule,
	}).Info("Configuração do agendador de atualização de leads carregada")

	return &LeadRefreshService{
		scheduler: scheduler,
		refresher: refresher,
		config:    refreshConfig,
	}
}

func (s *LeadRefreshService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron de atualização do snapshot de leads desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de atualização do snapshot de leads")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RefreshSnapshot(ctx); err != nil {
			logrus.WithError(err).Error("Erro na atualização do snapshot de leads")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar atualização do snapshot de leads: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron de atualização do snapshot de leads")
		s.scheduler.Stop()
	}()

	return nil
}

// RefreshSnapshot executa uma atualização completa do snapshot, com guarda
// contra execuções sobrepostas.
func (s *LeadRefreshService) RefreshSnapshot(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Warn("Atualização do snapshot de leads já está em execução")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando atualização do snapshot de leads")

	result, err := s.refresher.Refresh(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao reconstruir o snapshot de leads")
		return err
	}

	s.syncMutex.Lock()
	s.lastSnapshotID = result.SnapshotID
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"snapshot_id": result.SnapshotID,
		"version":     result.Version,
	}).Info("Atualização do snapshot de leads concluída")

	return nil
}

// TriggerManualSync inicia manualmente uma atualização do snapshot. A
// execução acontece em segundo plano com contexto próprio: o contexto da
// requisição HTTP é cancelado assim que a resposta é escrita e derrubaria a
// atualização no meio.
func (s *LeadRefreshService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Atualização do snapshot já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando atualização manual do snapshot de leads")
	go func() {
		if err := s.RefreshSnapshot(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na atualização manual do snapshot de leads")
		}
	}()
}

// GetStatus retorna o status atual do agendador
func (s *LeadRefreshService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           s.syncRunning,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
		"last_snapshot_id":       s.lastSnapshotID,
	}
}
