package achievements

import (
	"context"
	"time"
)

type AttendanceHistory interface {
	DaysPresent(ctx context.Context, tenantID, employeeID string, from, to time.Time) (int, error)
	DaysPunctual(ctx context.Context, tenantID, employeeID string, from, to time.Time) (int, error)
}

type WorkLogHistory interface {
	DistinctLogDays(ctx context.Context, tenantID, employeeID string, from, to time.Time) (int, error)
}

type Ledger interface {
	Balance(ctx context.Context, tenantID, employeeID string) (int, error)
}

type Service struct {
	store      *Store
	attendance AttendanceHistory
	worklogs   WorkLogHistory
	ledger     Ledger
}

func NewService(store *Store, attendance AttendanceHistory, worklogs WorkLogHistory, ledger Ledger) *Service {
	return &Service{store: store, attendance: attendance, worklogs: worklogs, ledger: ledger}
}

// Evaluate recomputes progress for every active definition the employee has
// not yet completed and returns the definitions newly unlocked by this call.
// Calling it again with no new activity changes nothing: completed pairs are
// skipped, completion is terminal, and unlock ledger rows are deduplicated.
func (s *Service) Evaluate(ctx context.Context, tenantID, employeeID string, now time.Time) ([]Definition, error) {
	defs, err := s.store.ListDefinitions(ctx, tenantID, true)
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, nil
	}

	existing, err := s.store.ProgressByEmployee(ctx, tenantID, employeeID)
	if err != nil {
		return nil, err
	}

	input, err := s.gatherInput(ctx, tenantID, employeeID, now)
	if err != nil {
		return nil, err
	}

	var updates []progressUpdate
	for _, def := range defs {
		if existing[def.ID].IsCompleted {
			continue
		}
		updates = append(updates, progressUpdate{
			AchievementID: def.ID,
			Progress:      ComputeProgress(def.Code, def.Requirements, input),
			PointValue:    def.PointValue,
			Name:          def.Name,
		})
	}

	completedIDs, err := s.store.SaveProgress(ctx, tenantID, employeeID, updates, now)
	if err != nil {
		return nil, err
	}
	if len(completedIDs) == 0 {
		return nil, nil
	}

	byID := map[string]Definition{}
	for _, def := range defs {
		byID[def.ID] = def
	}
	var unlocked []Definition
	for _, id := range completedIDs {
		if def, ok := byID[id]; ok {
			unlocked = append(unlocked, def)
		}
	}
	return unlocked, nil
}

func (s *Service) gatherInput(ctx context.Context, tenantID, employeeID string, now time.Time) (ProgressInput, error) {
	var input ProgressInput
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, 0, -30)

	var err error
	if input.DaysPresentLast7, err = s.attendance.DaysPresent(ctx, tenantID, employeeID, weekAgo, now); err != nil {
		return input, err
	}
	if input.DaysPresentLast30, err = s.attendance.DaysPresent(ctx, tenantID, employeeID, monthAgo, now); err != nil {
		return input, err
	}
	if input.DaysPunctualLast7, err = s.attendance.DaysPunctual(ctx, tenantID, employeeID, weekAgo, now); err != nil {
		return input, err
	}
	if input.DistinctLogDays7, err = s.worklogs.DistinctLogDays(ctx, tenantID, employeeID, weekAgo, now); err != nil {
		return input, err
	}
	if input.LifetimePoints, err = s.ledger.Balance(ctx, tenantID, employeeID); err != nil {
		return input, err
	}
	return input, nil
}

func (s *Service) ListDefinitions(ctx context.Context, tenantID string, activeOnly bool) ([]Definition, error) {
	return s.store.ListDefinitions(ctx, tenantID, activeOnly)
}

func (s *Service) CreateDefinition(ctx context.Context, tenantID string, def Definition) (string, error) {
	return s.store.CreateDefinition(ctx, tenantID, def)
}

func (s *Service) UpdateDefinition(ctx context.Context, tenantID, id string, def Definition) error {
	return s.store.UpdateDefinition(ctx, tenantID, id, def)
}

func (s *Service) EmployeeProgress(ctx context.Context, tenantID, employeeID string) (map[string]Progress, error) {
	return s.store.ProgressByEmployee(ctx, tenantID, employeeID)
}

func (s *Service) CompletedInWindow(ctx context.Context, tenantID, employeeID string, from, to time.Time) (int, error) {
	return s.store.CountCompletedInWindow(ctx, tenantID, employeeID, from, to)
}
