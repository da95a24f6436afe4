package database

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"robotdemo/internal/models"
	"robotdemo/internal/robot"
)

func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}
	return db, nil
}

// Migrate creates the robots and sessions tables and seeds the demo fleet
// into an empty robots table.
func Migrate(ctx context.Context, db *gorm.DB, lg *zap.SugaredLogger) error {
	if err := db.WithContext(ctx).AutoMigrate(&models.Robot{}, &models.Session{}); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	seeded, err := robot.SeedIfEmpty(ctx, db, robot.Seed())
	if err != nil {
		return fmt.Errorf("seed robots: %w", err)
	}
	if seeded {
		lg.Infow("seeded robots", "count", len(robot.Seed()))
	}
	return nil
}
