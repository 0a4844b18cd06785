package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

const UserStatusActive = "active"

type Service struct {
	Store *Store
}

func NewService(store *Store) *Service {
	return &Service{Store: store}
}

func (s *Service) FindActiveUserByEmail(ctx context.Context, email string) (AuthUser, error) {
	return s.Store.FindActiveUserByEmail(ctx, email, UserStatusActive)
}

func (s *Service) CreateSession(ctx context.Context, userID, refreshToken string, expires time.Time) error {
	return s.Store.CreateSession(ctx, userID, HashToken(refreshToken), expires)
}

func (s *Service) UpdateLastLogin(ctx context.Context, userID string) error {
	return s.Store.UpdateLastLogin(ctx, userID)
}

func (s *Service) RevokeSession(ctx context.Context, userID, refreshToken string) error {
	return s.Store.RevokeSession(ctx, userID, HashToken(refreshToken))
}

func (s *Service) SessionValid(ctx context.Context, userID, refreshToken string) (bool, error) {
	return s.Store.SessionValid(ctx, userID, HashToken(refreshToken))
}

func (s *Service) RotateSession(ctx context.Context, userID, oldToken, newToken string, expires time.Time) error {
	return s.Store.RotateSession(ctx, userID, HashToken(oldToken), HashToken(newToken), expires)
}

func (s *Service) UserEmail(ctx context.Context, userID string) (string, error) {
	return s.Store.UserEmail(ctx, userID)
}

// HashToken stores refresh tokens hashed so a leaked sessions table
// cannot be replayed.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
