package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"robotdemo/internal/models"
)

// GormStore persists sessions in the sessions table. Delete marks the row
// revoked instead of removing it.
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, now: time.Now}
}

func (g *GormStore) Create(ctx context.Context, userID string, expiresAt time.Time) (Session, error) {
	s, err := newSession(userID, g.now(), expiresAt)
	if err != nil {
		return Session{}, err
	}
	row := models.Session{Token: s.Token, UserID: s.UserID, ExpiresAt: s.ExpiresAt, CreatedAt: s.CreatedAt}
	if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
		return Session{}, fmt.Errorf("session: insert: %w", err)
	}
	return s, nil
}

func (g *GormStore) Get(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, nil
	}
	var row models.Session
	err := g.db.WithContext(ctx).First(&row, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session: lookup: %w", err)
	}
	s := Session{Token: row.Token, UserID: row.UserID, CreatedAt: row.CreatedAt, ExpiresAt: row.ExpiresAt}
	if row.RevokedAt != nil || s.Expired(g.now()) {
		return nil, nil
	}
	return &s, nil
}

func (g *GormStore) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	now := g.now()
	err := g.db.WithContext(ctx).Model(&models.Session{}).
		Where("token = ? AND revoked_at IS NULL", token).
		Update("revoked_at", &now).Error
	if err != nil {
		return fmt.Errorf("session: revoke: %w", err)
	}
	return nil
}

// PurgeExpired removes rows past their expiry.
func (g *GormStore) PurgeExpired(ctx context.Context) (int64, error) {
	res := g.db.WithContext(ctx).Where("expires_at <= ?", g.now()).Delete(&models.Session{})
	return res.RowsAffected, res.Error
}
