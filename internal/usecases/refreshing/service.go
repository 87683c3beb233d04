// Package refreshing reconstrói o snapshot pontuado a partir da base de
// leads: carrega a população, chama o preditor de propensão por lead,
// deriva os campos compostos, reconcilia as contas e publica o resultado
// como um snapshot novo, trocado atomicamente.
package refreshing

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-intelligence-api/infrastructure/integrator/scorer"
	"github.com/vfg2006/lead-intelligence-api/infrastructure/repository"
	"github.com/vfg2006/lead-intelligence-api/internal/config"
	"github.com/vfg2006/lead-intelligence-api/internal/domain"
	"github.com/vfg2006/lead-intelligence-api/internal/snapshot"
	"github.com/vfg2006/lead-intelligence-api/internal/usecases/reconciling"
	"github.com/vfg2006/lead-intelligence-api/pkg/utils"
)

// Pesos do score composto, derivado das pontuações individuais do lead
const (
	weightSourcing   = 0.25
	weightEngagement = 0.25
	weightUrgency    = 0.20
	weightConversion = 0.30
)

// RefreshResult resume uma atualização concluída.
type RefreshResult struct {
	SnapshotID    string        `json:"snapshot_id"`
	Version       int64         `json:"version"`
	LeadsScored   int           `json:"leads_scored"`
	LeadsSkipped  int           `json:"leads_skipped"`
	AccountsTotal int           `json:"accounts_total"`
	Excluded      int           `json:"accounts_excluded"`
	Duration      time.Duration `json:"duration"`
}

type Refresher interface {
	// Refresh reconstrói e publica um snapshot novo. Leitores continuam
	// servidos pelo snapshot anterior até a publicação.
	Refresh(ctx context.Context) (*RefreshResult, error)
}

type Service struct {
	cfg        *config.Config
	leads      repository.LeadRepository
	scorer     scorer.ScorerIntegrator
	reconciler reconciling.Reconciler
	snapshots  *snapshot.Store
}

func NewService(
	cfg *config.Config,
	leads repository.LeadRepository,
	scorerIntegrator scorer.ScorerIntegrator,
	reconciler reconciling.Reconciler,
	snapshots *snapshot.Store,
) Refresher {
	return &Service{
		cfg:        cfg,
		leads:      leads,
		scorer:     scorerIntegrator,
		reconciler: reconciler,
		snapshots:  snapshots,
	}
}

func (s *Service) Refresh(ctx context.Context) (*RefreshResult, error) {
	startedAt := time.Now()

	population, err := s.leads.ListLeads(ctx)
	if err != nil {
		return nil, err
	}

	scored := make([]*domain.Lead, 0, len(population))
	skipped := 0

	for _, lead := range population {
		// Falha de propensão exclui apenas o lead; a atualização continua
		probability, err := s.scorer.PredictLeadPropensity(ctx, leadFeatures(lead))
		if err != nil {
			logrus.WithError(err).WithField("lead_id", lead.ID).
				Warn("Lead ignorado na atualização: preditor de propensão indisponível")
			skipped++
			continue
		}

		lead.ConversionProbability = probability
		lead.CompositeScore = utils.RoundWithTwoDecimalPlace(
			weightSourcing*lead.SourcingScore +
				weightEngagement*lead.EngagementScore +
				weightUrgency*lead.UrgencyScore +
				weightConversion*probability,
		)
		lead.ValueTier = domain.ValueTierFor(lead.EstimatedContractValue)

		scored = append(scored, lead)
	}

	ranking, excluded := s.reconciler.Reconcile(ctx, scored)

	snapshotID, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	snap := s.snapshots.Publish(&snapshot.Snapshot{
		ID:       snapshotID,
		TakenAt:  time.Now(),
		Leads:    scored,
		Ranking:  ranking,
		Excluded: excluded,
	})

	result := &RefreshResult{
		SnapshotID:    snap.ID,
		Version:       snap.Version,
		LeadsScored:   len(scored),
		LeadsSkipped:  skipped,
		AccountsTotal: len(ranking),
		Excluded:      len(excluded),
		Duration:      time.Since(startedAt),
	}

	logrus.WithFields(logrus.Fields{
		"snapshot_id":       result.SnapshotID,
		"version":           result.Version,
		"leads_scored":      result.LeadsScored,
		"leads_skipped":     result.LeadsSkipped,
		"accounts_total":    result.AccountsTotal,
		"accounts_excluded": result.Excluded,
		"duration":          result.Duration.String(),
	}).Info("Snapshot de leads atualizado")

	return result, nil
}

func leadFeatures(lead *domain.Lead) domain.LeadFeatures {
	return domain.LeadFeatures{
		LeadID:           lead.ID,
		CompanyName:      lead.CompanyName,
		Industry:         lead.Industry,
		EmployeeCount:    lead.EmployeeCount,
		Revenue:          lead.Revenue,
		LeadSource:       lead.LeadSource,
		DaysSinceCreated: lead.DaysSinceCreated,
		TechStack:        lead.TechStack,
		HiringSignals:    lead.HiringSignals,
		CompetitorTool:   lead.CompetitorTool,
		EngagementScore:  lead.EngagementScore,
		FitScore:         lead.FitScore,
	}
}
