package attendance

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

// UpsertRecord writes one record per (employee, work date). A re-uploaded
// day updates in place and keeps the original row id, so downstream point
// awards referencing the record stay idempotent.
func (s *Store) UpsertRecord(ctx context.Context, rec Record) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, `
    INSERT INTO attendance_records (tenant_id, employee_id, work_date, status, check_in_at, check_out_at, overtime_hours, notes)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    ON CONFLICT (tenant_id, employee_id, work_date) DO UPDATE
    SET status = EXCLUDED.status,
        check_in_at = EXCLUDED.check_in_at,
        check_out_at = EXCLUDED.check_out_at,
        overtime_hours = EXCLUDED.overtime_hours,
        notes = EXCLUDED.notes
    RETURNING id
  `, rec.TenantID, rec.EmployeeID, rec.WorkDate, rec.Status, rec.CheckInAt, rec.CheckOutAt, rec.OvertimeHours, rec.Notes).Scan(&id)
	return id, err
}

func (s *Store) ListRecords(ctx context.Context, tenantID, employeeID string, limit, offset int) ([]Record, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, work_date, status, check_in_at, check_out_at, overtime_hours, COALESCE(notes, ''), created_at
    FROM attendance_records
    WHERE tenant_id = $1 AND employee_id = $2
    ORDER BY work_date DESC
    LIMIT $3 OFFSET $4
  `, tenantID, employeeID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.EmployeeID, &rec.WorkDate, &rec.Status, &rec.CheckInAt, &rec.CheckOutAt, &rec.OvertimeHours, &rec.Notes, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.TenantID = tenantID
		out = append(out, rec)
	}
	return out, rows.Err()
}

// DaysPresent counts distinct work days with a present-or-approved-WFH
// status inside [from, to).
func (s *Store) DaysPresent(ctx context.Context, tenantID, employeeID string, from, to time.Time) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(DISTINCT work_date)
    FROM attendance_records
    WHERE tenant_id = $1 AND employee_id = $2
      AND work_date >= $3 AND work_date < $4
      AND status IN ($5, $6)
  `, tenantID, employeeID, from, to, StatusPresent, StatusWFHApproved).Scan(&count)
	return count, err
}

// DaysPunctual counts distinct work days with a check-in at or before 09:30.
func (s *Store) DaysPunctual(ctx context.Context, tenantID, employeeID string, from, to time.Time) (int, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(DISTINCT work_date)
    FROM attendance_records
    WHERE tenant_id = $1 AND employee_id = $2
      AND work_date >= $3 AND work_date < $4
      AND check_in_at IS NOT NULL
      AND check_in_at::time < $5
  `, tenantID, employeeID, from, to, punctualCutoffExclusive).Scan(&count)
	return count, err
}

// WindowStats returns the attendance-rate numerator and denominator plus
// the average recorded work hours for [from, to).
func (s *Store) WindowStats(ctx context.Context, tenantID, employeeID string, from, to time.Time) (int, int, float64, error) {
	var presentDays, totalRecords int
	var avgHours float64
	err := s.DB.QueryRow(ctx, `
    SELECT
      COUNT(1) FILTER (WHERE status IN ($5, $6)),
      COUNT(1),
      COALESCE(AVG(EXTRACT(EPOCH FROM (check_out_at - check_in_at)) / 3600)
        FILTER (WHERE check_in_at IS NOT NULL AND check_out_at IS NOT NULL), 0)
    FROM attendance_records
    WHERE tenant_id = $1 AND employee_id = $2
      AND work_date >= $3 AND work_date < $4
  `, tenantID, employeeID, from, to, StatusPresent, StatusWFHApproved).Scan(&presentDays, &totalRecords, &avgHours)
	return presentDays, totalRecords, avgHours, err
}
