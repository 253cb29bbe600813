package repository

import (
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/pvilarim/ecomdash-api/infrastructure/database/postgres"
	"github.com/pvilarim/ecomdash-api/internal/domain"
)

const (
	expensesTable = "expenses e"
)

type ExpenseRepository interface {
	Insert(expense *domain.Expense) error
	ListAll() ([]*domain.Expense, error)
	Delete(id string) error
}

type expenseRepository struct {
	conn *postgres.Connection
}

func NewExpenseRepository(conn *postgres.Connection) ExpenseRepository {
	return &expenseRepository{
		conn: conn,
	}
}

func (r *expenseRepository) Insert(expense *domain.Expense) error {
	query, args, err := squirrel.
		Insert("expenses").
		Columns("id", "category", "amount", "note").
		Values(expense.ID, expense.Category, expense.Amount, expense.Note).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

// ListAll retorna todas as despesas manuais. Despesas não participam do
// filtro de período do relatório, então não há variante por data.
func (r *expenseRepository) ListAll() ([]*domain.Expense, error) {
	query, args, err := squirrel.
		Select("e.id, e.category, e.amount, e.note, e.created_at").
		From(expensesTable).
		OrderBy("e.created_at ASC").
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

	expenses := make([]*domain.Expense, 0)
	for rows.Next() {
		expense := &domain.Expense{}
		err := rows.Scan(
			&expense.ID,
			&expense.Category,
			&expense.Amount,
			&expense.Note,
			&expense.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear despesa: %w", err)
		}
		expenses = append(expenses, expense)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return expenses, nil
}

func (r *expenseRepository) Delete(id string) error {
	query, args, err := squirrel.
		Delete("expenses").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}
