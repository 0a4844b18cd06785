package attendance

import (
	"context"
	"errors"
	"time"
)

var ErrInvalidStatus = errors.New("invalid attendance status")

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// RecordDay persists one attendance day and returns the record with its id.
// Persisting never depends on downstream point awards succeeding.
func (s *Service) RecordDay(ctx context.Context, rec Record) (Record, error) {
	if !ValidStatuses[rec.Status] {
		return Record{}, ErrInvalidStatus
	}
	id, err := s.store.UpsertRecord(ctx, rec)
	if err != nil {
		return Record{}, err
	}
	rec.ID = id
	return rec, nil
}

func (s *Service) List(ctx context.Context, tenantID, employeeID string, limit, offset int) ([]Record, error) {
	return s.store.ListRecords(ctx, tenantID, employeeID, limit, offset)
}

func (s *Service) DaysPresent(ctx context.Context, tenantID, employeeID string, from, to time.Time) (int, error) {
	return s.store.DaysPresent(ctx, tenantID, employeeID, from, to)
}

func (s *Service) DaysPunctual(ctx context.Context, tenantID, employeeID string, from, to time.Time) (int, error) {
	return s.store.DaysPunctual(ctx, tenantID, employeeID, from, to)
}

func (s *Service) WindowStats(ctx context.Context, tenantID, employeeID string, from, to time.Time) (int, int, float64, error) {
	return s.store.WindowStats(ctx, tenantID, employeeID, from, to)
}
