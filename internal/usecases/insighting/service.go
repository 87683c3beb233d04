package insighting

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-intelligence-api/infrastructure/integrator/gemini"
	"github.com/vfg2006/lead-intelligence-api/internal/config"
	"github.com/vfg2006/lead-intelligence-api/internal/domain"
)

// Service seleciona a estratégia de narrativa na construção: com cliente do
// Gemini configurado usa o modelo e cai para o template em caso de falha;
// sem cliente usa somente o template determinístico.
type Service struct {
	cfg      *config.Config
	remote   gemini.NarrativeClient
	useModel bool
}

func NewService(cfg *config.Config, narrativeClient gemini.NarrativeClient) Narrator {
	return &Service{
		cfg:      cfg,
		remote:   narrativeClient,
		useModel: narrativeClient != nil,
	}
}

// Narrate gera o resumo executivo. Falha do serviço externo nunca falha a
// consulta: o template assume silenciosamente.
func (s *Service) Narrate(ctx context.Context, request domain.NarrativeRequest) (string, error) {
	if s.useModel {
		narrative, err := s.remote.GenerateNarrative(ctx, request)
		if err == nil {
			return narrative, nil
		}

		logrus.WithError(err).WithField("context", request.Context).
			Warn("Narrativa do modelo indisponível, usando template")
	}

	return s.template(request), nil
}

// template é a estratégia determinística: mesma agregação, mesmo texto.
func (s *Service) template(request domain.NarrativeRequest) string {
	agg := request.Aggregation

	if agg == nil || agg.Count == 0 {
		return fmt.Sprintf("A consulta no contexto %q retornou 0 records com os filtros aplicados. Amplie os intervalos ou remova filtros categóricos para obter resultados.", request.Context)
	}

	var sb strings.Builder

	switch request.Context {
	case domain.ContextSourcing:
		fmt.Fprintf(&sb, "Foram encontrados %d leads no contexto de sourcing, com score médio de sourcing de %.2f.",
			agg.Count, agg.Averages["sourcing_score"])
		if high, ok := agg.Highlights["high_potential_leads"]; ok && high > 0 {
			fmt.Fprintf(&sb, " %d leads estão acima do corte de alto potencial e merecem triagem imediata.", int(high))
		}
	case domain.ContextScoring:
		fmt.Fprintf(&sb, "Foram encontrados %d leads no contexto de scoring, com score composto médio de %.2f e probabilidade média de conversão de %.2f.",
			agg.Count, agg.Averages["composite_score"], agg.Averages["conversion_probability"])
		if high, ok := agg.Highlights["high_priority_leads"]; ok && high > 0 {
			fmt.Fprintf(&sb, " %d leads estão na faixa de alta prioridade.", int(high))
		}
	case domain.ContextContractValue:
		fmt.Fprintf(&sb, "Foram encontrados %d leads no contexto de valor de contrato, somando %.2f de pipeline estimado.",
			agg.Count, agg.Highlights["total_pipeline_value"])
		if top := agg.Highlights["enterprise_leads"] + agg.Highlights["strategic_leads"]; top > 0 {
			fmt.Fprintf(&sb, " %d oportunidades estão nas faixas Enterprise ou Strategic.", int(top))
		}
	default:
		fmt.Fprintf(&sb, "A visão geral cobre %d leads, com fit score médio de %.2f e pipeline estimado de %.2f.",
			agg.Count, agg.Averages["fit_score"], agg.Highlights["total_pipeline_value"])
	}

	if industries := topSegments(agg.Distributions["industry"], 3); len(industries) > 0 {
		fmt.Fprintf(&sb, " Setores mais representados: %s.", strings.Join(industries, ", "))
	}

	return sb.String()
}

// topSegments devolve os rótulos mais frequentes de uma distribuição em
// ordem estável: contagem decrescente, nome crescente no empate. Rótulos
// vazios (campo não preenchido no lead) ficam de fora.
func topSegments(distribution map[string]int, limit int) []string {
	labels := make([]string, 0, len(distribution))
	for label := range distribution {
		if label == "" {
			continue
		}
		labels = append(labels, label)
	}
	if len(labels) == 0 {
		return nil
	}

	sort.Slice(labels, func(i, j int) bool {
		if distribution[labels[i]] != distribution[labels[j]] {
			return distribution[labels[i]] > distribution[labels[j]]
		}
		return labels[i] < labels[j]
	})

	if len(labels) > limit {
		labels = labels[:limit]
	}

	return labels
}
