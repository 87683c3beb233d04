// Package snapshot guarda a população pontuada de leads como um valor
// imutável e versionado, trocado por inteiro a cada atualização. Leitores
// concorrentes enxergam sempre o snapshot anterior completo ou o novo
// completo, nunca uma reconstrução parcial.
package snapshot

import (
	"sync/atomic"
	"time"

	"github.com/vfg2006/lead-intelligence-api/internal/domain"
)

// Snapshot é uma visão imutável da população pontuada. Nenhum campo pode
// ser modificado depois da publicação; atualizações produzem um snapshot
// novo.
type Snapshot struct {
	ID       string
	Version  int64
	TakenAt  time.Time
	Leads    []*domain.Lead
	Ranking  []*domain.AccountScore
	Excluded []domain.ExcludedAccount
}

// Empty informa se o snapshot ainda não tem leads carregados.
func (s *Snapshot) Empty() bool {
	return s == nil || len(s.Leads) == 0
}

// Store publica snapshots por troca atômica de referência.
type Store struct {
	current atomic.Pointer[Snapshot]
	version atomic.Int64
}

// NewStore cria um Store com um snapshot inicial vazio, para que leitores
// nunca observem referência nula.
func NewStore() *Store {
	s := &Store{}
	s.current.Store(&Snapshot{TakenAt: time.Now()})
	return s
}

// Current devolve o snapshot publicado no momento da chamada.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Publish atribui a próxima versão ao snapshot e o torna visível para
// novos leitores. Requisições em andamento continuam com a referência que
// já carregaram.
func (s *Store) Publish(snap *Snapshot) *Snapshot {
	snap.Version = s.version.Add(1)
	if snap.TakenAt.IsZero() {
		snap.TakenAt = time.Now()
	}
	s.current.Store(snap)
	return snap
}
