package leaderboard

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"workpulse/internal/domain/rewards"
)

type EmployeeDirectory interface {
	ListActiveEmployeeIDs(ctx context.Context, tenantID string) ([]string, error)
}

type AttendanceStats interface {
	WindowStats(ctx context.Context, tenantID, employeeID string, from, to time.Time) (presentDays, totalRecords int, avgHours float64, err error)
}

type LedgerSums interface {
	SumWindow(ctx context.Context, tenantID, employeeID string, from, to time.Time) (rewards.WindowSums, error)
}

type AchievementStats interface {
	CompletedInWindow(ctx context.Context, tenantID, employeeID string, from, to time.Time) (int, error)
}

type Service struct {
	store        *Store
	employees    EmployeeDirectory
	attendance   AttendanceStats
	ledger       LedgerSums
	achievements AchievementStats
}

func NewService(store *Store, employees EmployeeDirectory, attendance AttendanceStats, ledger LedgerSums, achievements AchievementStats) *Service {
	return &Service{store: store, employees: employees, attendance: attendance, ledger: ledger, achievements: achievements}
}

// Recompute rebuilds the snapshot for the period instance containing now.
// Each employee is computed independently: a failure is logged and skipped,
// leaving that employee's previous entry stale rather than aborting the
// batch. Running it twice with no new activity produces the same rows and
// the same ranks. Returns the number of employees recomputed.
func (s *Service) Recompute(ctx context.Context, tenantID string, period Period, now time.Time) (int, error) {
	window := WindowFor(period, now)

	employeeIDs, err := s.employees.ListActiveEmployeeIDs(ctx, tenantID)
	if err != nil {
		return 0, err
	}

	recomputed := 0
	for _, employeeID := range employeeIDs {
		if err := s.recomputeEmployee(ctx, tenantID, employeeID, period, window); err != nil {
			slog.Warn("leaderboard employee recompute failed",
				"tenantId", tenantID,
				"employeeId", employeeID,
				"period", period,
				"err", err,
			)
			continue
		}
		recomputed++
	}

	return recomputed, s.assignRanks(ctx, tenantID, period, window)
}

func (s *Service) recomputeEmployee(ctx context.Context, tenantID, employeeID string, period Period, window Window) error {
	sums, err := s.ledger.SumWindow(ctx, tenantID, employeeID, window.Start, window.End)
	if err != nil {
		return err
	}

	presentDays, totalRecords, avgHours, err := s.attendance.WindowStats(ctx, tenantID, employeeID, window.Start, window.End)
	if err != nil {
		return err
	}
	rate := 0.0
	if totalRecords > 0 {
		rate = float64(presentDays) / float64(totalRecords)
	}

	unlocked, err := s.achievements.CompletedInWindow(ctx, tenantID, employeeID, window.Start, window.End)
	if err != nil {
		return err
	}

	return s.store.UpsertEntry(ctx, Entry{
		TenantID:          tenantID,
		EmployeeID:        employeeID,
		Period:            period,
		Year:              window.Year,
		Month:             window.Month,
		Week:              window.Week,
		TotalPoints:       sums.Total,
		AttendancePoints:  sums.Attendance,
		WorklogPoints:     sums.Worklog,
		AchievementPoints: sums.Achievement,
		AttendanceRate:    rate,
		AvgWorkHours:      avgHours,
		AchievementCount:  unlocked,
	})
}

func (s *Service) assignRanks(ctx context.Context, tenantID string, period Period, window Window) error {
	entries, err := s.store.ListScope(ctx, tenantID, period, window.Year, window.Month, window.Week)
	if err != nil {
		return err
	}
	return s.store.UpdateRanks(ctx, rankEntries(entries))
}

// rankEntries sorts descending by total points, breaking ties by ascending
// employee id so reruns are reproducible, and assigns ranks 1..N.
func rankEntries(entries []Entry) []Entry {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].EmployeeID < entries[j].EmployeeID
	})
	for i := range entries {
		entries[i].OverallRank = i + 1
	}
	return entries
}

// Standings returns the ranked snapshot for the period instance containing now.
func (s *Service) Standings(ctx context.Context, tenantID string, period Period, now time.Time) ([]Entry, error) {
	window := WindowFor(period, now)
	entries, err := s.store.ListScope(ctx, tenantID, period, window.Year, window.Month, window.Week)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].OverallRank < entries[j].OverallRank })
	return entries, nil
}

func (s *Service) EmployeeStanding(ctx context.Context, tenantID, employeeID string, period Period, now time.Time) (Entry, error) {
	window := WindowFor(period, now)
	return s.store.EmployeeEntry(ctx, tenantID, employeeID, period, window.Year, window.Month, window.Week)
}
