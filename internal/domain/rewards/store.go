package rewards

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// AppendTransactions inserts a batch of ledger rows in one transaction.
// The batch is all-or-nothing. Rows carrying a related reference are
// deduplicated by the partial unique index on
// (tenant_id, related_type, related_id, point_type): a retried award for
// the same underlying event inserts nothing instead of double-counting.
// Returns the rows actually inserted.
func (s *Store) AppendTransactions(ctx context.Context, entries []PointTransaction) ([]PointTransaction, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyBatch
	}

	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var inserted []PointTransaction
	for _, entry := range entries {
		var id string
		err := tx.QueryRow(ctx, `
      INSERT INTO point_transactions (tenant_id, employee_id, points, point_type, reason, related_type, related_id, earned_at)
      VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
      ON CONFLICT (tenant_id, related_type, related_id, point_type) WHERE related_id <> '' DO NOTHING
      RETURNING id
    `, entry.TenantID, entry.EmployeeID, entry.Points, entry.PointType, entry.Reason, entry.RelatedType, entry.RelatedID, entry.EarnedAt).Scan(&id)
		if err == pgx.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, err
		}
		entry.ID = id
		inserted = append(inserted, entry)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return inserted, nil
}

func (s *Store) Balance(ctx context.Context, tenantID, employeeID string) (int, error) {
	var balance int
	err := s.DB.QueryRow(ctx, `
    SELECT COALESCE(SUM(points), 0)
    FROM point_transactions
    WHERE tenant_id = $1 AND employee_id = $2
  `, tenantID, employeeID).Scan(&balance)
	return balance, err
}

// SumWindow returns the point totals for one employee inside [from, to),
// split by point-type category the way the leaderboard reports them.
func (s *Store) SumWindow(ctx context.Context, tenantID, employeeID string, from, to time.Time) (WindowSums, error) {
	var sums WindowSums
	err := s.DB.QueryRow(ctx, `
    SELECT
      COALESCE(SUM(points), 0),
      COALESCE(SUM(points) FILTER (WHERE point_type IN ($4,$5,$6)), 0),
      COALESCE(SUM(points) FILTER (WHERE point_type IN ($7,$8)), 0),
      COALESCE(SUM(points) FILTER (WHERE point_type = $9), 0)
    FROM point_transactions
    WHERE tenant_id = $1 AND employee_id = $2 AND earned_at >= $3 AND earned_at < $10
  `, tenantID, employeeID, from,
		PointTypeAttendance, PointTypePunctuality, PointTypeOvertime,
		PointTypeWorklog, PointTypeConsistency,
		PointTypeAchievement, to,
	).Scan(&sums.Total, &sums.Attendance, &sums.Worklog, &sums.Achievement)
	return sums, err
}

func (s *Store) CountTransactions(ctx context.Context, tenantID, employeeID string) (int, error) {
	var total int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1)
    FROM point_transactions
    WHERE tenant_id = $1 AND employee_id = $2
  `, tenantID, employeeID).Scan(&total)
	return total, err
}

func (s *Store) ListTransactions(ctx context.Context, tenantID, employeeID string, limit, offset int) ([]PointTransaction, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, points, point_type, reason, related_type, related_id, earned_at
    FROM point_transactions
    WHERE tenant_id = $1 AND employee_id = $2
    ORDER BY earned_at DESC, id DESC
    LIMIT $3 OFFSET $4
  `, tenantID, employeeID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PointTransaction
	for rows.Next() {
		var entry PointTransaction
		if err := rows.Scan(&entry.ID, &entry.EmployeeID, &entry.Points, &entry.PointType, &entry.Reason, &entry.RelatedType, &entry.RelatedID, &entry.EarnedAt); err != nil {
			return nil, err
		}
		entry.TenantID = tenantID
		out = append(out, entry)
	}
	return out, rows.Err()
}
