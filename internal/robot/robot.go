// Package robot owns the robot collection: validation, the Repository
// contract and its in-memory and gorm implementations.
package robot

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"robotdemo/internal/models"
)

// MaxNameLength is measured against the untrimmed name.
const MaxNameLength = 50

const DefaultPerPage = 10

var (
	ErrEmptyName         = errors.New("robot: name is empty")
	ErrNameTooLong       = errors.New("robot: name is too long")
	ErrInvalidPagination = errors.New("robot: page must be >= 1 and perPage > 0")
)

type CreateInput struct {
	Name   string
	Status models.RobotStatus // empty means inactive
}

// UpdateInput holds the fields to overwrite. Nil fields are left unchanged.
type UpdateInput struct {
	Name   *string
	Status *models.RobotStatus
}

type Page struct {
	Items       []models.Robot `json:"items"`
	Total       int            `json:"total"`
	TotalPages  int            `json:"total_pages"`
	CurrentPage int            `json:"current_page"`
}

// Repository is the persistence boundary for robots. Lookups that miss
// return nil (or false for Delete) rather than an error; errors are
// reserved for the backing store failing.
type Repository interface {
	List(ctx context.Context) ([]models.Robot, error)
	ListPaginated(ctx context.Context, page, perPage int) (Page, error)
	GetByID(ctx context.Context, id string) (*models.Robot, error)
	Create(ctx context.Context, in CreateInput) (models.Robot, error)
	Update(ctx context.Context, id string, in UpdateInput) (*models.Robot, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ValidateName reports ErrEmptyName when the trimmed name is empty and
// ErrNameTooLong when the raw name exceeds MaxNameLength characters.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}

func ParseStatus(s string) (models.RobotStatus, bool) {
	switch st := models.RobotStatus(s); st {
	case models.StatusActive, models.StatusInactive, models.StatusMaintenance:
		return st, true
	}
	return "", false
}

func totalPages(total, perPage int) int {
	n := total / perPage
	if total%perPage != 0 {
		n++
	}
	return n
}

// pageBounds returns the [start, end) slice window for page, clamped to total.
// Pages past the last one yield an empty window.
func pageBounds(total, page, perPage int) (int, int) {
	if page-1 >= totalPages(total, perPage) {
		return total, total
	}
	start := (page - 1) * perPage
	end := total
	if perPage < total-start {
		end = start + perPage
	}
	return start, end
}
