package repository

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/vfg2006/lead-intelligence-api/infrastructure/database/postgres"
	"github.com/vfg2006/lead-intelligence-api/internal/domain"
)

const leadsTable = "leads"

// Colunas da tabela de leads, na ordem de scan
var leadColumns = []string{
	"id",
	"company_name",
	"industry",
	"employee_count",
	"revenue",
	"lead_source",
	"days_since_created",
	"tech_stack",
	"hiring_signals",
	"sourcing_score",
	"engagement_score",
	"urgency_score",
	"fit_score",
	"estimated_contract_value",
	"upsell_potential",
	"renewal_probability",
	"competitor_tool",
}

type LeadRepository interface {
	// ListLeads carrega a população completa de leads para uma atualização
	// de snapshot.
	ListLeads(ctx context.Context) ([]*domain.Lead, error)

	// CountLeads devolve o total de leads cadastrados.
	CountLeads(ctx context.Context) (int, error)
}

type leadRepository struct {
	conn *postgres.Connection
}

func NewLeadRepository(conn *postgres.Connection) LeadRepository {
	return &leadRepository{
		conn: conn,
	}
}

func (r *leadRepository) ListLeads(ctx context.Context) ([]*domain.Lead, error) {
	queryBuilder := squirrel.
		Select(leadColumns...).
		From(leadsTable).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar)

	leadsSQL, leadsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.QueryContext(ctx, leadsSQL, leadsArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leads []*domain.Lead
	for rows.Next() {
		var lead domain.Lead
		if err := rows.Scan(
			&lead.ID,
			&lead.CompanyName,
			&lead.Industry,
			&lead.EmployeeCount,
			&lead.Revenue,
			&lead.LeadSource,
			&lead.DaysSinceCreated,
			pq.Array(&lead.TechStack),
			pq.Array(&lead.HiringSignals),
			&lead.SourcingScore,
			&lead.EngagementScore,
			&lead.UrgencyScore,
			&lead.FitScore,
			&lead.EstimatedContractValue,
			&lead.UpsellPotential,
			&lead.RenewalProbability,
			&lead.CompetitorTool,
		); err != nil {
			return nil, err
		}

		leads = append(leads, &lead)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return leads, nil
}

func (r *leadRepository) CountLeads(ctx context.Context) (int, error) {
	queryBuilder := squirrel.
		Select("COUNT(*)").
		From(leadsTable).
		PlaceholderFormat(squirrel.Dollar)

	countSQL, countArgs, err := queryBuilder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.conn.QueryRowContext(ctx, countSQL, countArgs...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}
