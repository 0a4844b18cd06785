package worklogs

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptySubmission = errors.New("worklog submission has no entries")
	ErrInvalidMinutes  = errors.New("worklog minutes must be positive")
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Submit stores one batch of worklog entries under a fresh submission id
// and returns the stored entries. All entries in a batch share the same
// submission id and submission timestamp.
func (s *Service) Submit(ctx context.Context, tenantID, employeeID string, entries []Entry, submittedAt time.Time) ([]Entry, string, error) {
	if len(entries) == 0 {
		return nil, "", ErrEmptySubmission
	}
	submissionID := uuid.NewString()
	for i := range entries {
		if entries[i].Minutes <= 0 {
			return nil, "", ErrInvalidMinutes
		}
		entries[i].TenantID = tenantID
		entries[i].EmployeeID = employeeID
		entries[i].SubmissionID = submissionID
		entries[i].SubmittedAt = submittedAt
		if entries[i].LogDate.IsZero() {
			entries[i].LogDate = submittedAt
		}
	}
	if err := s.store.CreateEntries(ctx, entries); err != nil {
		return nil, "", err
	}
	return entries, submissionID, nil
}

func (s *Service) List(ctx context.Context, tenantID, employeeID string, limit, offset int) ([]Entry, error) {
	return s.store.List(ctx, tenantID, employeeID, limit, offset)
}

func (s *Service) DistinctLogDays(ctx context.Context, tenantID, employeeID string, from, to time.Time) (int, error) {
	return s.store.DistinctLogDays(ctx, tenantID, employeeID, from, to)
}

func (s *Service) TotalMinutes(ctx context.Context, tenantID, employeeID string, from, to time.Time) (int, error) {
	return s.store.TotalMinutes(ctx, tenantID, employeeID, from, to)
}
