package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTStore issues self-contained HS256 tokens. Nothing is stored server
// side, so Delete cannot revoke a token; logout relies on clearing the cookie.
type JWTStore struct {
	key []byte
	now func() time.Time
}

func NewJWTStore(secret string) (*JWTStore, error) {
	if secret == "" {
		return nil, errors.New("session: jwt secret is empty")
	}
	return &JWTStore{key: []byte(secret), now: time.Now}, nil
}

func (j *JWTStore) Create(_ context.Context, userID string, expiresAt time.Time) (Session, error) {
	now := j.now()
	if userID == "" || !expiresAt.After(now) {
		return Session{}, ErrInvalidSession
	}
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.key)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: tok, UserID: userID, CreatedAt: now, ExpiresAt: expiresAt}, nil
}

func (j *JWTStore) Get(_ context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, nil
	}
	s, err := j.verify(token)
	if err != nil {
		return nil, nil
	}
	return &s, nil
}

func (j *JWTStore) verify(token string) (Session, error) {
	var claims jwt.RegisteredClaims
	tok, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return j.key, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(j.now), jwt.WithExpirationRequired())
	if err != nil || !tok.Valid || claims.Subject == "" {
		return Session{}, ErrInvalidToken
	}
	s := Session{Token: token, UserID: claims.Subject, ExpiresAt: claims.ExpiresAt.Time}
	if claims.IssuedAt != nil {
		s.CreatedAt = claims.IssuedAt.Time
	}
	return s, nil
}

func (j *JWTStore) Delete(context.Context, string) error { return nil }
