package domain

import "errors"

// Erros de consulta
var (
	// ErrUnknownContext indica um rótulo de contexto de análise que não
	// está em QueryContexts.
	ErrUnknownContext = errors.New("contexto de análise desconhecido")

	// ErrSnapshotEmpty indica que nenhum snapshot com leads foi publicado
	// ainda (nenhuma atualização concluída desde a subida do serviço).
	ErrSnapshotEmpty = errors.New("nenhum snapshot de leads disponível")
)
