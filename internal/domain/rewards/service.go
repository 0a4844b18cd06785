package rewards

import (
	"context"
	"strings"
	"time"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) Store() *Store {
	return s.store
}

// AwardAttendancePoints appends the ledger entries an attendance event
// qualifies for and returns them. An event that earns nothing returns an
// empty list and no error.
func (s *Service) AwardAttendancePoints(ctx context.Context, tenantID, employeeID string, ev AttendanceEvent) ([]PointTransaction, error) {
	entries := AttendanceAwards(tenantID, employeeID, ev, time.Now())
	if len(entries) == 0 {
		return nil, nil
	}
	return s.store.AppendTransactions(ctx, entries)
}

// AwardWorkLogPoints appends entries for one work-log submission. The
// submission's own timestamp drives the consistency bonus cutoff.
func (s *Service) AwardWorkLogPoints(ctx context.Context, tenantID, employeeID, submissionID string, logs []WorkLogEntry, submittedAt time.Time) ([]PointTransaction, error) {
	entries := WorkLogAwards(tenantID, employeeID, submissionID, logs, submittedAt)
	if len(entries) == 0 {
		return nil, nil
	}
	return s.store.AppendTransactions(ctx, entries)
}

// ManualAdjustment records an admin-entered bonus or penalty.
func (s *Service) ManualAdjustment(ctx context.Context, tenantID, employeeID string, points int, reason string) (PointTransaction, error) {
	if points == 0 || strings.TrimSpace(reason) == "" {
		return PointTransaction{}, ErrInvalidAdjustment
	}
	inserted, err := s.store.AppendTransactions(ctx, []PointTransaction{{
		TenantID:   tenantID,
		EmployeeID: employeeID,
		Points:     points,
		PointType:  PointTypeManual,
		Reason:     strings.TrimSpace(reason),
		EarnedAt:   time.Now(),
	}})
	if err != nil {
		return PointTransaction{}, err
	}
	return inserted[0], nil
}

func (s *Service) Balance(ctx context.Context, tenantID, employeeID string) (int, error) {
	return s.store.Balance(ctx, tenantID, employeeID)
}

func (s *Service) History(ctx context.Context, tenantID, employeeID string, limit, offset int) ([]PointTransaction, int, error) {
	total, err := s.store.CountTransactions(ctx, tenantID, employeeID)
	if err != nil {
		return nil, 0, err
	}
	entries, err := s.store.ListTransactions(ctx, tenantID, employeeID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}
