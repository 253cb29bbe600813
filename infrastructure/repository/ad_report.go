package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pvilarim/ecomdash-api/infrastructure/database/postgres"
	"github.com/pvilarim/ecomdash-api/internal/domain"
)

const (
	adReportsTable = "ad_reports ar"
)

type AdReportRepository interface {
	SaveOrUpdate(report *domain.AdReport) error
	GetByDateRange(startDate, endDate time.Time) ([]*domain.AdReport, error)
}

type adReportRepository struct {
	conn *postgres.Connection
}

func NewAdReportRepository(conn *postgres.Connection) AdReportRepository {
	return &adReportRepository{
		conn: conn,
	}
}

// SaveOrUpdate insere a linha do relatório de anúncios. O relatório traz uma
// linha por campanha por dia, então o conflito é resolvido por (date, campaign_name).
func (r *adReportRepository) SaveOrUpdate(report *domain.AdReport) error {
	query := squirrel.StatementBuilder.
		Insert("ad_reports").
		Columns("id", "date", "campaign_name", "spend", "impressions", "clicks").
		Values(
			report.ID,
			report.Date.Format(time.DateOnly),
			report.CampaignName,
			report.Spend,
			report.Impressions,
			report.Clicks,
		).
		Suffix(`
			ON CONFLICT (date, campaign_name) DO UPDATE SET
				spend = EXCLUDED.spend,
				impressions = EXCLUDED.impressions,
				clicks = EXCLUDED.clicks,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)

	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

func (r *adReportRepository) GetByDateRange(startDate, endDate time.Time) ([]*domain.AdReport, error) {
	query, args, err := squirrel.
		Select("ar.id, ar.date, ar.campaign_name, ar.spend, ar.impressions, ar.clicks, ar.created_at, ar.updated_at").
		From(adReportsTable).
		Where(squirrel.GtOrEq{"ar.date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"ar.date": endDate.Format(time.DateOnly)}).
		OrderBy("ar.date ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	reports := make([]*domain.AdReport, 0)
	for rows.Next() {
		report := &domain.AdReport{}
		err := rows.Scan(
			&report.ID,
			&report.Date,
			&report.CampaignName,
			&report.Spend,
			&report.Impressions,
			&report.Clicks,
			&report.CreatedAt,
			&report.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear relatório de anúncios: %w", err)
		}
		reports = append(reports, report)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return reports, nil
}
