package worklogs

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// CreateEntries inserts one submission's entries in a single transaction.
func (s *Store) CreateEntries(ctx context.Context, entries []Entry) error {
	tx, err := s.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, e := range entries {
		_, err := tx.Exec(ctx, `
      INSERT INTO worklog_entries (tenant_id, employee_id, submission_id, tag, description, minutes, log_date, submitted_at)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    `, e.TenantID, e.EmployeeID, e.SubmissionID, e.Tag, e.Description, e.Minutes, e.LogDate, e.SubmittedAt)
		if err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (s *Store) List(ctx context.Context, tenantID, employeeID string, limit, offset int) ([]Entry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, submission_id, tag, COALESCE(description, ''), minutes, log_date, submitted_at
    FROM worklog_entries
    WHERE tenant_id = $1 AND employee_id = $2
    ORDER BY log_date DESC, submitted_at DESC
    LIMIT $3 OFFSET $4
  `, tenantID, employeeID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.SubmissionID, &e.Tag, &e.Description, &e.Minutes, &e.LogDate, &e.SubmittedAt); err != nil {
			return nil, err
		}
		e.TenantID = tenantID
		out = append(out, e)
	}
	return out, rows.Err()
}

// DistinctLogDays counts distinct log dates inside [from, to).
func (s *Store) DistinctLogDays(ctx context.Context, tenantID, employeeID string, from, to time.Time) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(DISTINCT log_date)
    FROM worklog_entries
    WHERE tenant_id = $1 AND employee_id = $2
      AND log_date >= $3 AND log_date < $4
  `, tenantID, employeeID, from, to).Scan(&count)
	return count, err
}

// TotalMinutes sums logged minutes inside [from, to).
func (s *Store) TotalMinutes(ctx context.Context, tenantID, employeeID string, from, to time.Time) (int, error) {
	var total int
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(SUM(minutes), 0)
    FROM worklog_entries
    WHERE tenant_id = $1 AND employee_id = $2
      AND log_date >= $3 AND log_date < $4
  `, tenantID, employeeID, from, to).Scan(&total)
	return total, err
}
