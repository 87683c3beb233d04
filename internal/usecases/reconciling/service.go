// Package reconciling consolida as pontuações de muitos leads em uma única
// pontuação de decisão por conta-mãe e produz o ranking de contas.
package reconciling

import (
	"context"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/lead-intelligence-api/internal/domain"
	"github.com/vfg2006/lead-intelligence-api/pkg/utils"
)

// ValuePredictor é o preditor externo de valor esperado de contrato por
// conta. É chamado exatamente uma vez por conta em cada reconciliação.
type ValuePredictor interface {
	PredictAccountValue(ctx context.Context, features domain.AccountFeatures) (float64, error)
}

// Reconciler agrupa leads por empresa e produz o ranking de contas.
type Reconciler interface {
	Reconcile(ctx context.Context, leads []*domain.Lead) ([]*domain.AccountScore, []domain.ExcludedAccount)
}

type Service struct {
	valuePredictor ValuePredictor
}

func NewService(valuePredictor ValuePredictor) Reconciler {
	return &Service{valuePredictor: valuePredictor}
}

// Reconcile calcula, para cada conta:
//
//	propensity_parent = max(conversion_probability dos leads)
//	value_parent      = preditor de valor (uma chamada por conta)
//	prioritized_score = propensity_parent * value_parent
//
// Contas cujo preditor falhou ou devolveu valor inválido (negativo/NaN) são
// excluídas do ranking e registradas para diagnóstico; a reconciliação das
// demais continua. Para entradas idênticas o resultado é idêntico: as
// contas são processadas em ordem de chave e o desempate é determinístico.
func (s *Service) Reconcile(ctx context.Context, leads []*domain.Lead) ([]*domain.AccountScore, []domain.ExcludedAccount) {
	groups := groupByAccount(leads)

	accountIDs := make([]string, 0, len(groups))
	for accountID := range groups {
		accountIDs = append(accountIDs, accountID)
	}
	sort.Strings(accountIDs)

	ranking := make([]*domain.AccountScore, 0, len(groups))
	excluded := make([]domain.ExcludedAccount, 0)

	for _, accountID := range accountIDs {
		accountLeads := groups[accountID]
		score := Rollup(accountID, accountLeads)

		valueParent, err := s.valuePredictor.PredictAccountValue(ctx, featuresFor(score, accountLeads))
		if err != nil {
			logrus.WithError(err).WithField("account_id", accountID).
				Warn("Conta excluída do ranking: preditor de valor indisponível")
			excluded = append(excluded, domain.ExcludedAccount{
				AccountID: accountID,
				Reason:    err.Error(),
			})
			continue
		}

		if !utils.ValidAmount(valueParent) {
			logrus.WithFields(logrus.Fields{
				"account_id":   accountID,
				"value_parent": valueParent,
			}).Warn("Conta excluída do ranking: valor previsto inválido")
			excluded = append(excluded, domain.ExcludedAccount{
				AccountID: accountID,
				Reason:    "valor previsto inválido",
			})
			continue
		}

		score.ValueParent = valueParent
		score.PrioritizedScore = score.PropensityParent * valueParent
		ranking = append(ranking, score)
	}

	Rank(ranking)
	return ranking, excluded
}

// Rollup consolida os leads de uma conta: a propensão da conta é o máximo
// das probabilidades de conversão e, em caso de empate, o lead de menor ID
// fica registrado como lead condutor (o valor escolhido não muda).
func Rollup(accountID string, leads []*domain.Lead) *domain.AccountScore {
	score := &domain.AccountScore{
		AccountID: accountID,
		LeadCount: len(leads),
	}

	for _, lead := range leads {
		if score.CompanyName == "" {
			score.CompanyName = lead.CompanyName
			score.Industry = lead.Industry
		}
		if lead.EmployeeCount > score.EmployeeCount {
			score.EmployeeCount = lead.EmployeeCount
		}
		if lead.Revenue > score.Revenue {
			score.Revenue = lead.Revenue
		}

		better := lead.ConversionProbability > score.PropensityParent
		tie := lead.ConversionProbability == score.PropensityParent &&
			score.DrivingLeadID != "" && lead.ID < score.DrivingLeadID

		if score.DrivingLeadID == "" || better || tie {
			score.PropensityParent = lead.ConversionProbability
			score.DrivingLeadID = lead.ID
		}
	}

	return score
}

// Rank ordena o ranking por pontuação decrescente, com desempate estável
// por ID de conta crescente, e atribui as posições.
func Rank(ranking []*domain.AccountScore) {
	sort.SliceStable(ranking, func(i, j int) bool {
		if ranking[i].PrioritizedScore != ranking[j].PrioritizedScore {
			return ranking[i].PrioritizedScore > ranking[j].PrioritizedScore
		}
		return ranking[i].AccountID < ranking[j].AccountID
	})

	for position, score := range ranking {
		score.Position = position + 1
	}
}

// groupByAccount agrupa leads pela chave da conta-mãe. Todo lead pertence a
// exatamente uma conta.
func groupByAccount(leads []*domain.Lead) map[string][]*domain.Lead {
	groups := make(map[string][]*domain.Lead)
	for _, lead := range leads {
		accountID := lead.CompanyName
		groups[accountID] = append(groups[accountID], lead)
	}
	return groups
}

// featuresFor monta o vetor de atributos da conta enviado ao preditor de
// valor.
func featuresFor(score *domain.AccountScore, leads []*domain.Lead) domain.AccountFeatures {
	techStack := make([]string, 0)
	seen := make(map[string]bool)
	for _, lead := range leads {
		for _, tech := range lead.TechStack {
			if !seen[tech] {
				seen[tech] = true
				techStack = append(techStack, tech)
			}
		}
	}
	sort.Strings(techStack)

	return domain.AccountFeatures{
		AccountID:        score.AccountID,
		CompanyName:      score.CompanyName,
		Industry:         score.Industry,
		EmployeeCount:    score.EmployeeCount,
		Revenue:          score.Revenue,
		LeadCount:        score.LeadCount,
		TechStack:        techStack,
		PropensityParent: score.PropensityParent,
	}
}
