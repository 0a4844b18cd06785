package leaderboard

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// UpsertEntry writes exactly one row per composite key. Concurrent
// recomputes for the same key-scope land on the same row instead of
// creating duplicates.
func (s *Store) UpsertEntry(ctx context.Context, entry Entry) error {
	_, err := s.DB.Exec(ctx, `
    INSERT INTO leaderboard_entries
      (tenant_id, employee_id, period, year, month, week,
       total_points, attendance_points, worklog_points, achievement_points,
       attendance_rate, avg_work_hours, achievement_count)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
    ON CONFLICT (tenant_id, employee_id, period, year, month, week) DO UPDATE
    SET total_points = EXCLUDED.total_points,
        attendance_points = EXCLUDED.attendance_points,
        worklog_points = EXCLUDED.worklog_points,
        achievement_points = EXCLUDED.achievement_points,
        attendance_rate = EXCLUDED.attendance_rate,
        avg_work_hours = EXCLUDED.avg_work_hours,
        achievement_count = EXCLUDED.achievement_count,
        computed_at = now()
  `, entry.TenantID, entry.EmployeeID, entry.Period, entry.Year, entry.Month, entry.Week,
		entry.TotalPoints, entry.AttendancePoints, entry.WorklogPoints, entry.AchievementPoints,
		entry.AttendanceRate, entry.AvgWorkHours, entry.AchievementCount)
	return err
}

func (s *Store) ListScope(ctx context.Context, tenantID string, period Period, year, month, week int) ([]Entry, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, employee_id, total_points, attendance_points, worklog_points, achievement_points,
           attendance_rate, avg_work_hours, achievement_count, overall_rank
    FROM leaderboard_entries
    WHERE tenant_id = $1 AND period = $2 AND year = $3 AND month = $4 AND week = $5
  `, tenantID, period, year, month, week)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		entry := Entry{TenantID: tenantID, Period: period, Year: year, Month: month, Week: week}
		if err := rows.Scan(&entry.ID, &entry.EmployeeID, &entry.TotalPoints, &entry.AttendancePoints, &entry.WorklogPoints, &entry.AchievementPoints,
			&entry.AttendanceRate, &entry.AvgWorkHours, &entry.AchievementCount, &entry.OverallRank); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

// UpdateRanks writes the assigned ranks for a scope in one transaction.
func (s *Store) UpdateRanks(ctx context.Context, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, entry := range entries {
		if _, err := tx.Exec(ctx, "UPDATE leaderboard_entries SET overall_rank = $1 WHERE id = $2", entry.OverallRank, entry.ID); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (s *Store) EmployeeEntry(ctx context.Context, tenantID, employeeID string, period Period, year, month, week int) (Entry, error) {
	entry := Entry{TenantID: tenantID, EmployeeID: employeeID, Period: period, Year: year, Month: month, Week: week}
	err := s.DB.QueryRow(ctx, `
    SELECT id, total_points, attendance_points, worklog_points, achievement_points,
           attendance_rate, avg_work_hours, achievement_count, overall_rank
    FROM leaderboard_entries
    WHERE tenant_id = $1 AND employee_id = $2 AND period = $3 AND year = $4 AND month = $5 AND week = $6
  `, tenantID, employeeID, period, year, month, week).Scan(&entry.ID, &entry.TotalPoints, &entry.AttendancePoints, &entry.WorklogPoints, &entry.AchievementPoints,
		&entry.AttendanceRate, &entry.AvgWorkHours, &entry.AchievementCount, &entry.OverallRank)
	return entry, err
}
