package insighting

import (
	"context"

	"github.com/vfg2006/lead-intelligence-api/internal/domain"
)

// Narrator define a interface para gerar o resumo executivo de um conjunto
// filtrado de leads. As duas implementações (Gemini e template
// determinístico) são intercambiáveis; a escolha acontece na construção do
// serviço e nunca durante uma consulta.
type Narrator interface {
	// Narrate gera o resumo em prosa a partir do pedido estruturado.
	// Nunca devolve string vazia sem erro.
	Narrate(ctx context.Context, request domain.NarrativeRequest) (string, error)
}
