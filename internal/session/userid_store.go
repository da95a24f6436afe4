package session

import (
	"context"
	"time"
)

// UserIDStore is the legacy scheme where the cookie carries the raw user id.
// Any client presenting a valid user id is authenticated as that user; keep
// it for demos only. Expiry is enforced by the cookie Max-Age alone.
type UserIDStore struct {
	exists func(userID string) bool
}

func NewUserIDStore(exists func(userID string) bool) *UserIDStore {
	return &UserIDStore{exists: exists}
}

func (s *UserIDStore) Create(_ context.Context, userID string, expiresAt time.Time) (Session, error) {
	now := time.Now()
	if userID == "" || !expiresAt.After(now) {
		return Session{}, ErrInvalidSession
	}
	return Session{Token: userID, UserID: userID, CreatedAt: now, ExpiresAt: expiresAt}, nil
}

func (s *UserIDStore) Get(_ context.Context, token string) (*Session, error) {
	if token == "" || !s.exists(token) {
		return nil, nil
	}
	return &Session{Token: token, UserID: token, ExpiresAt: time.Now().Add(DefaultTTL)}, nil
}

func (s *UserIDStore) Delete(context.Context, string) error { return nil }
