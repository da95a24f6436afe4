// Package session maps opaque cookie tokens to user ids.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidSession = errors.New("session: missing user id or expiry in the past")
	ErrInvalidToken   = errors.New("session: invalid token")
)

type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store issues, resolves and revokes sessions. Get returns nil, nil for
// unknown or expired tokens.
type Store interface {
	Create(ctx context.Context, userID string, expiresAt time.Time) (Session, error)
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}

// GenerateID returns 32 random bytes, base64url encoded.
func GenerateID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("session: failed to generate id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func newSession(userID string, now, expiresAt time.Time) (Session, error) {
	if userID == "" || !expiresAt.After(now) {
		return Session{}, ErrInvalidSession
	}
	token, err := GenerateID()
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, UserID: userID, CreatedAt: now, ExpiresAt: expiresAt}, nil
}
