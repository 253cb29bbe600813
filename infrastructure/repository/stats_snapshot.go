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
	statsSnapshotsTable = "stats_snapshots ss"
)

type StatsSnapshotRepository interface {
	GetByDate(date time.Time) (*domain.StatsSnapshot, error)
	SaveOrUpdate(snapshot *domain.StatsSnapshot) error
	DeleteOlderThan(days int) (int64, error)
	GetByDateRange(startDate, endDate time.Time) ([]*domain.StatsSnapshot, error)
}

type statsSnapshotRepository struct {
	conn *postgres.Connection
}

func NewStatsSnapshotRepository(conn *postgres.Connection) StatsSnapshotRepository {
	return &statsSnapshotRepository{
		conn: conn,
	}
}

func (r *statsSnapshotRepository) GetByDate(date time.Time) (*domain.StatsSnapshot, error) {
	query, args, err := squirrel.
		Select("ss.id, ss.date, ss.summary, ss.created_at, ss.updated_at").
		From(statsSnapshotsTable).
		Where(squirrel.Eq{"ss.date": date.Format(time.DateOnly)}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	row := r.conn.QueryRow(query, args...)
	snapshot, err := r.scanSnapshotRow(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear snapshot: %w", err)
	}

	return snapshot, nil
}

func (r *statsSnapshotRepository) GetByDateRange(startDate, endDate time.Time) ([]*domain.StatsSnapshot, error) {
	query, args, err := squirrel.
		Select("ss.id, ss.date, ss.summary, ss.created_at, ss.updated_at").
		From(statsSnapshotsTable).
		Where(squirrel.GtOrEq{"ss.date": startDate.Format(time.DateOnly)}).
		Where(squirrel.LtOrEq{"ss.date": endDate.Format(time.DateOnly)}).
		OrderBy("ss.date ASC").
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

	snapshots := make([]*domain.StatsSnapshot, 0)
	for rows.Next() {
		snapshot, err := r.scanSnapshotRows(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear snapshots: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return snapshots, nil
}

func (r *statsSnapshotRepository) SaveOrUpdate(snapshot *domain.StatsSnapshot) error {
	var summaryJSON []byte
	var err error

	if snapshot.Summary != nil {
		summaryJSON, err = json.Marshal(snapshot.Summary)
		if err != nil {
			return fmt.Errorf("erro ao serializar StatsSummary para JSON: %w", err)
		}
	}

	query := squirrel.StatementBuilder.
		Insert("stats_snapshots").
		Columns("date", "summary").
		Values(
			snapshot.Date.Format(time.DateOnly),
			summaryJSON,
		).
		Suffix(`
			ON CONFLICT (date) DO UPDATE SET
				summary = EXCLUDED.summary,
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

func (r *statsSnapshotRepository) DeleteOlderThan(days int) (int64, error) {
	cutoffDate := time.Now().AddDate(0, 0, -days).Format(time.DateOnly)

	query, args, err := squirrel.
		Delete("stats_snapshots").
		Where(squirrel.Lt{"date": cutoffDate}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

func (r *statsSnapshotRepository) scanSnapshotRow(row *sql.Row) (*domain.StatsSnapshot, error) {
	snapshot := &domain.StatsSnapshot{}
	var summaryJSON []byte

	err := row.Scan(
		&snapshot.ID,
		&snapshot.Date,
		&summaryJSON,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if summaryJSON != nil {
		summary := &domain.StatsSummary{}
		if err := json.Unmarshal(summaryJSON, summary); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de summary: %w", err)
		}
		snapshot.Summary = summary
	}

	return snapshot, nil
}

func (r *statsSnapshotRepository) scanSnapshotRows(rows *sql.Rows) (*domain.StatsSnapshot, error) {
	snapshot := &domain.StatsSnapshot{}
	var summaryJSON []byte

	err := rows.Scan(
		&snapshot.ID,
		&snapshot.Date,
		&summaryJSON,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if summaryJSON != nil {
		summary := &domain.StatsSummary{}
		if err := json.Unmarshal(summaryJSON, summary); err != nil {
			return nil, fmt.Errorf("erro ao deserializar JSON de summary: %w", err)
		}
		snapshot.Summary = summary
	}

	return snapshot, nil
}
