// Package gemini implementa o gerador de narrativas baseado no Gemini.
// Qualquer falha aqui (timeout, erro de API, resposta vazia) é absorvida
// pelo chamador, que usa o template determinístico no lugar.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-intelligence-api/internal/config"
	"github.com/vfg2006/lead-intelligence-api/internal/domain"
	"github.com/vfg2006/lead-intelligence-api/pkg/utils"
	"google.golang.org/genai"
)

// ErrNarrativeUnavailable indica falha na geração da narrativa pelo
// serviço externo.
var ErrNarrativeUnavailable = errors.New("serviço de narrativas indisponível")

type NarrativeClient interface {
	GenerateNarrative(ctx context.Context, request domain.NarrativeRequest) (string, error)
}

type Integrator struct {
	cfg    *config.Config
	client *genai.Client
}

// New cria o cliente do Gemini. Deve ser chamado apenas quando a chave de
// API está configurada; sem chave o serviço nem é instanciado.
func New(ctx context.Context, cfg *config.Config) (*Integrator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar cliente do Gemini")
	}

	logrus.WithField("model", cfg.Gemini.Model).Info("Cliente do Gemini inicializado")

	return &Integrator{
		cfg:    cfg,
		client: client,
	}, nil
}

// GenerateNarrative monta o prompt a partir do pedido estruturado e chama o
// modelo com timeout explícito.
func (g *Integrator) GenerateNarrative(ctx context.Context, request domain.NarrativeRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Gemini.RequestTimeout)
	defer cancel()

	prompt := buildPrompt(request)

	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.Gemini.Model, genai.Text(prompt), nil)
	if err != nil {
		logrus.WithError(err).WithField("context", request.Context).
			Warn("Erro ao gerar narrativa com o Gemini")
		return "", errors.Wrap(ErrNarrativeUnavailable, err.Error())
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.Wrap(ErrNarrativeUnavailable, "resposta vazia do modelo")
	}

	return text, nil
}

// buildPrompt espelha os prompts de resumo executivo por contexto do
// dashboard.
func buildPrompt(request domain.NarrativeRequest) string {
	var sb strings.Builder

	switch request.Context {
	case domain.ContextAccountOverview:
		sb.WriteString("You are a GTM intelligence analyst. Produce a 4-5 sentence executive summary of the account overview below. ")
		sb.WriteString("Focus on pipeline health, industry and size opportunities, competitive signals and priority actions. ")
	case domain.ContextContractValue:
		sb.WriteString("Executive summary (2-3 sentences) for the contract value view below. ")
		sb.WriteString("Highlight total pipeline value, enterprise opportunities and revenue optimization levers. ")
	case domain.ContextScoring:
		sb.WriteString("Executive summary (2-3 sentences) for the lead scoring view below. ")
		sb.WriteString("Highlight conversion momentum and which segments to prioritize. ")
	default:
		sb.WriteString("Executive summary (2-3 sentences) for the filtered lead dataset below. ")
		sb.WriteString("Give key findings, implications and a next step. ")
	}

	fmt.Fprintf(&sb, "Context: %s. Records: %d.\n", request.Context, request.Aggregation.Count)
	fmt.Fprintf(&sb, "Metrics:\n%s\n", utils.PrettyJson(request.Aggregation))

	if len(request.Sample) > 0 {
		sb.WriteString("Sample leads:\n")
		for _, lead := range request.Sample {
			fmt.Fprintf(&sb, "- %s (%s)\n", lead.CompanyName, lead.Industry)
		}
	}

	sb.WriteString("Keep it concise, strategic and data-driven.")

	return sb.String()
}
