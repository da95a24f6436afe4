package robot

import (
	"time"

	"robotdemo/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Seed returns the demo fleet loaded at startup.
func Seed() []models.Robot {
	return []models.Robot{
		{ID: "1", Name: "Alpha-01", Status: models.StatusActive, CreatedAt: date(2024, 1, 1), UpdatedAt: date(2024, 1, 1)},
		{ID: "2", Name: "Beta-02", Status: models.StatusMaintenance, CreatedAt: date(2024, 2, 1), UpdatedAt: date(2024, 3, 15)},
		{ID: "3", Name: "Gamma-03", Status: models.StatusInactive, CreatedAt: date(2024, 3, 1), UpdatedAt: date(2024, 3, 1)},
	}
}
