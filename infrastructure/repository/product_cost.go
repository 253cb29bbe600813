package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pvilarim/ecomdash-api/infrastructure/database/postgres"
	"github.com/pvilarim/ecomdash-api/internal/domain"
)

const (
	productCostsTable = "product_costs pc"
)

type ProductCostRepository interface {
	Upsert(cost *domain.ProductCost) error
	ListAll() ([]*domain.ProductCost, error)
}

type productCostRepository struct {
	conn *postgres.Connection
}

func NewProductCostRepository(conn *postgres.Connection) ProductCostRepository {
	return &productCostRepository{
		conn: conn,
	}
}

// Upsert grava o custo unitário do SKU. A tabela mantém uma entrada por SKU
// e a última escrita vence.
func (r *productCostRepository) Upsert(cost *domain.ProductCost) error {
	query := squirrel.StatementBuilder.
		Insert("product_costs").
		Columns("sku", "product_name", "unit_cost").
		Values(cost.SKU, cost.ProductName, cost.UnitCost).
		Suffix(`
			ON CONFLICT (sku) DO UPDATE SET
				product_name = EXCLUDED.product_name,
				unit_cost = EXCLUDED.unit_cost,
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

func (r *productCostRepository) ListAll() ([]*domain.ProductCost, error) {
	query, args, err := squirrel.
		Select("pc.sku, pc.product_name, pc.unit_cost, pc.updated_at").
		From(productCostsTable).
		OrderBy("pc.sku ASC").
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

	costs := make([]*domain.ProductCost, 0)
	for rows.Next() {
		cost := &domain.ProductCost{}
		err := rows.Scan(
			&cost.SKU,
			&cost.ProductName,
			&cost.UnitCost,
			&cost.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear custo de produto: %w", err)
		}
		costs = append(costs, cost)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return costs, nil
}
