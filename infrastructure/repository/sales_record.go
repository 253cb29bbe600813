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
	salesRecordsTable = "sales_records sr"
)

type SalesRecordRepository interface {
	SaveOrUpdate(record *domain.SalesRecord) error
	GetByDateRange(startDate, endDate time.Time) ([]*domain.SalesRecord, error)
}

type salesRecordRepository struct {
	conn *postgres.Connection
}

func NewSalesRecordRepository(conn *postgres.Connection) SalesRecordRepository {
	return &salesRecordRepository{
		conn: conn,
	}
}

// SaveOrUpdate insere o registro de vendas do dia. O relatório da plataforma
// tem uma linha por dia, então o conflito é resolvido pela data.
func (r *salesRecordRepository) SaveOrUpdate(record *domain.SalesRecord) error {
	query := squirrel.StatementBuilder.
		Insert("sales_records").
		Columns("id", "date", "gross_sales", "discounts", "returns", "net_sales", "shipping", "taxes", "total_sales").
		Values(
			record.ID,
			record.Date.Format(time.DateOnly),
			record.GrossSales,
			record.Discounts,
			record.Returns,
			record.NetSales,
			record.Shipping,
			record.Taxes,
			record.TotalSales,
		).
		Suffix(`
			ON CONFLICT (date) DO UPDATE SET
				gross_sales = EXCLUDED.gross_sales,
				discounts = EXCLUDED.discounts,
				returns = EXCLUDED.returns,
				net_sales = EXCLUDED.net_sales,
				shipping = EXCLUDED.shipping,
				taxes = EXCLUDED.taxes,
				total_sales = EXCLUDED.total_sales,
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

func (r *salesRecordRepository) GetByDateRange(startDate, endDate time.Time) ([]*domain.SalesRecord, error) {
	query, args, err := squirrel.
		Select("sr.id, sr.date, sr.gross_sales, sr.discounts, sr.returns, sr.net_sales, sr.shipping, sr.taxes, sr.total_sales, sr.created_at, sr.updated_at").
		From(salesRecordsTable).
		Where(squirrel.GtOrEq{"sr.date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"sr.date": endDate.Format(time.DateOnly)}).
		OrderBy("sr.date ASC").
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

	records := make([]*domain.SalesRecord, 0)
	for rows.Next() {
		record := &domain.SalesRecord{}
		err := rows.Scan(
			&record.ID,
			&record.Date,
			&record.GrossSales,
			&record.Discounts,
			&record.Returns,
			&record.NetSales,
			&record.Shipping,
			&record.Taxes,
			&record.TotalSales,
			&record.CreatedAt,
			&record.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear registro de vendas: %w", err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return records, nil
}
