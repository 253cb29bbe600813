package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pvilarim/ecomdash-api/infrastructure/database/postgres"
	"github.com/pvilarim/ecomdash-api/internal/domain"
)

const (
	ordersTable = "orders o"
)

type OrderRepository interface {
	SaveOrUpdate(order *domain.Order) error
	GetByDateRange(startDate, endDate time.Time) ([]*domain.Order, error)
	CountAll() (int, error)
}

type orderRepository struct {
	conn *postgres.Connection
}

func NewOrderRepository(conn *postgres.Connection) OrderRepository {
	return &orderRepository{
		conn: conn,
	}
}

func (r *orderRepository) SaveOrUpdate(order *domain.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("erro ao serializar itens do pedido para JSON: %w", err)
	}

	query := squirrel.StatementBuilder.
		Insert("orders").
		Columns("id", "external_id", "name", "date", "total", "subtotal", "tax", "shipping", "fulfillment_status", "items").
		Values(
			order.ID,
			order.ExternalID,
			order.Name,
			order.Date.Format(time.DateOnly),
			order.Total,
			order.Subtotal,
			order.Tax,
			order.Shipping,
			order.FulfillmentStatus,
			itemsJSON,
		).
		Suffix(`
			ON CONFLICT (external_id) DO UPDATE SET
				name = EXCLUDED.name,
				date = EXCLUDED.date,
				total = EXCLUDED.total,
				subtotal = EXCLUDED.subtotal,
				tax = EXCLUDED.tax,
				shipping = EXCLUDED.shipping,
				fulfillment_status = EXCLUDED.fulfillment_status,
				items = EXCLUDED.items,
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

func (r *orderRepository) GetByDateRange(startDate, endDate time.Time) ([]*domain.Order, error) {
	query, args, err := squirrel.
		Select("o.id, o.external_id, o.name, o.date, o.total, o.subtotal, o.tax, o.shipping, o.fulfillment_status, o.items, o.created_at, o.updated_at").
		From(ordersTable).
		Where(squirrel.GtOrEq{"o.date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"o.date": endDate.Format(time.DateOnly)}).
		OrderBy("o.date ASC").
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

	orders := make([]*domain.Order, 0)
	for rows.Next() {
		order, err := r.scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear pedido: %w", err)
		}
		orders = append(orders, order)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) CountAll() (int, error) {
	query, args, err := squirrel.
		Select("COUNT(*)").
		From("orders").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar pedidos: %w", err)
	}

	return count, nil
}

func (r *orderRepository) scanOrder(rows *sql.Rows) (*domain.Order, error) {
	order := &domain.Order{}
	var itemsJSON []byte

	err := rows.Scan(
		&order.ID,
		&order.ExternalID,
		&order.Name,
		&order.Date,
		&order.Total,
		&order.Subtotal,
		&order.Tax,
		&order.Shipping,
		&order.FulfillmentStatus,
		&itemsJSON,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if itemsJSON != nil {
		items := make([]domain.OrderItem, 0)
		if err := json.Unmarshal(itemsJSON, &items); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de itens: %w", err)
		}
		order.Items = items
	}

	return order, nil
}
