// Package querying compõe o pipeline de consulta: snapshot corrente ->
// filtragem -> agregação -> narrativa. Cada consulta trabalha sobre uma
// única referência de snapshot, então filtro, agregação e narrativa são
// sempre consistentes entre si.
package querying

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-intelligence-api/internal/config"
	"github.com/vfg2006/lead-intelligence-api/internal/domain"
	"github.com/vfg2006/lead-intelligence-api/internal/snapshot"
	"github.com/vfg2006/lead-intelligence-api/internal/usecases/aggregating"
	"github.com/vfg2006/lead-intelligence-api/internal/usecases/filtering"
	"github.com/vfg2006/lead-intelligence-api/internal/usecases/insighting"
)

type Querier interface {
	// Query executa uma consulta completa em um contexto de análise.
	Query(ctx context.Context, queryContext string, filters *domain.LeadFilters) (*domain.QueryResponse, error)

	// Ranking devolve o ranking de contas do snapshot corrente.
	Ranking(ctx context.Context) (*domain.AccountRankingResponse, error)
}

type Service struct {
	cfg        *config.Config
	snapshots  *snapshot.Store
	filterer   filtering.Filterer
	aggregator aggregating.Aggregator
	narrator   insighting.Narrator
}

func NewService(
	cfg *config.Config,
	snapshots *snapshot.Store,
	filterer filtering.Filterer,
	aggregator aggregating.Aggregator,
	narrator insighting.Narrator,
) Querier {
	return &Service{
		cfg:        cfg,
		snapshots:  snapshots,
		filterer:   filterer,
		aggregator: aggregator,
		narrator:   narrator,
	}
}

func (s *Service) Query(ctx context.Context, queryContext string, filters *domain.LeadFilters) (*domain.QueryResponse, error) {
	if !domain.ValidContext(queryContext) {
		return nil, domain.ErrUnknownContext
	}

	// A referência é carregada uma única vez: atualizações publicadas no
	// meio da consulta não afetam esta resposta.
	snap := s.snapshots.Current()
	if snap.Empty() {
		return nil, domain.ErrSnapshotEmpty
	}

	if filters == nil {
		filters = &domain.LeadFilters{}
	}

	// A varredura ignora o limite: agregação e narrativa descrevem a
	// população filtrada inteira. O corte vale só para os registros
	// devolvidos, sem alterar os filtros do chamador.
	matched, err := s.filterer.Apply(snap.Leads, &domain.LeadFilters{
		Equality: filters.Equality,
		Ranges:   filters.Ranges,
	})
	if err != nil {
		return nil, err
	}

	aggregation := s.aggregator.Aggregate(matched, queryContext)

	limit := filters.Limit
	if limit <= 0 {
		limit = s.cfg.Scoring.DefaultQueryLimit
	}
	records := matched
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	narrative, err := s.narrator.Narrate(ctx, domain.NarrativeRequest{
		Context:     queryContext,
		Aggregation: aggregation,
		Sample:      sample(matched, s.cfg.Scoring.NarrativeSampleSize),
	})
	if err != nil {
		// O narrador já faz fallback internamente; erro aqui é inesperado e
		// não deve derrubar a consulta.
		logrus.WithError(err).WithField("context", queryContext).
			Warn("Erro inesperado ao gerar narrativa")
		narrative = ""
	}

	logrus.WithFields(logrus.Fields{
		"context":  queryContext,
		"records":  len(records),
		"snapshot": snap.ID,
	}).Info("Consulta executada")

	return &domain.QueryResponse{
		Context:     queryContext,
		Records:     records,
		Aggregation: aggregation,
		Narrative:   narrative,
		SnapshotID:  snap.ID,
	}, nil
}

// Ranking devolve o ranking de contas e os diagnósticos de exclusão do
// snapshot corrente.
func (s *Service) Ranking(_ context.Context) (*domain.AccountRankingResponse, error) {
	snap := s.snapshots.Current()
	if snap.Empty() {
		return nil, domain.ErrSnapshotEmpty
	}

	return &domain.AccountRankingResponse{
		Ranking:    snap.Ranking,
		Excluded:   snap.Excluded,
		SnapshotID: snap.ID,
		LastUpdate: snap.TakenAt,
	}, nil
}

func sample(leads []*domain.Lead, size int) []*domain.Lead {
	if size <= 0 || len(leads) <= size {
		return leads
	}
	return leads[:size]
}
