package robot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"robotdemo/internal/models"
)

// GormRepository stores robots in a SQL database. Rows are listed by
// (created_at, id); ids are UUIDv7, which sort in creation order within a
// process, so robots created in the same clock tick keep insertion order.
type GormRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db, now: time.Now}
}

func (r *GormRepository) ordered(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Robot{}).Order("created_at asc").Order("id asc")
}

func (r *GormRepository) List(ctx context.Context) ([]models.Robot, error) {
	var rs []models.Robot
	if err := r.ordered(ctx).Find(&rs).Error; err != nil {
		return nil, fmt.Errorf("robot: list: %w", err)
	}
	return rs, nil
}

func (r *GormRepository) ListPaginated(ctx context.Context, page, perPage int) (Page, error) {
	if page < 1 || perPage < 1 {
		return Page{}, ErrInvalidPagination
	}
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Robot{}).Count(&total).Error; err != nil {
		return Page{}, fmt.Errorf("robot: count: %w", err)
	}
	pages := totalPages(int(total), perPage)
	items := []models.Robot{}
	if page-1 < pages {
		if err := r.ordered(ctx).Offset((page - 1) * perPage).Limit(perPage).Find(&items).Error; err != nil {
			return Page{}, fmt.Errorf("robot: page: %w", err)
		}
	}
	return Page{
		Items:       items,
		Total:       int(total),
		TotalPages:  pages,
		CurrentPage: page,
	}, nil
}

func (r *GormRepository) GetByID(ctx context.Context, id string) (*models.Robot, error) {
	var rb models.Robot
	err := r.db.WithContext(ctx).First(&rb, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("robot: get %s: %w", id, err)
	}
	return &rb, nil
}

func (r *GormRepository) Create(ctx context.Context, in CreateInput) (models.Robot, error) {
	status := in.Status
	if status == "" {
		status = models.StatusInactive
	}
	id, err := uuid.NewV7()
	if err != nil {
		return models.Robot{}, fmt.Errorf("robot: new id: %w", err)
	}
	now := r.now()
	rb := models.Robot{ID: id.String(), Name: in.Name, Status: status, CreatedAt: now, UpdatedAt: now}
	if err := r.db.WithContext(ctx).Create(&rb).Error; err != nil {
		return models.Robot{}, fmt.Errorf("robot: create: %w", err)
	}
	return rb, nil
}

func (r *GormRepository) Update(ctx context.Context, id string, in UpdateInput) (*models.Robot, error) {
	var out *models.Robot
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rb models.Robot
		err := tx.First(&rb, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if in.Name != nil {
			rb.Name = *in.Name
		}
		if in.Status != nil {
			rb.Status = *in.Status
		}
		if now := r.now(); now.After(rb.UpdatedAt) {
			rb.UpdatedAt = now
		}
		// UpdateColumns keeps gorm from stamping updated_at with its own clock.
		err = tx.Model(&rb).UpdateColumns(map[string]any{
			"name":       rb.Name,
			"status":     rb.Status,
			"updated_at": rb.UpdatedAt,
		}).Error
		if err != nil {
			return err
		}
		out = &rb
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("robot: update %s: %w", id, err)
	}
	return out, nil
}

func (r *GormRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Robot{}, "id = ?", id)
	if res.Error != nil {
		return false, fmt.Errorf("robot: delete %s: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// SeedIfEmpty inserts seed when the robots table has no rows.
func SeedIfEmpty(ctx context.Context, db *gorm.DB, seed []models.Robot) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(&models.Robot{}).Count(&n).Error; err != nil {
		return false, err
	}
	if n > 0 || len(seed) == 0 {
		return false, nil
	}
	if err := db.WithContext(ctx).Create(&seed).Error; err != nil {
		return false, err
	}
	return true, nil
}
