package infra

import (
	"fmt"

	"moviesbackend/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx and runs
// AutoMigrate so the schema (tables, unique indexes, defaults) always
// matches the models. Constraint violations surface as translated GORM
// errors (gorm.ErrDuplicatedKey et al.) instead of raw SQLSTATEs.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return db, nil
}

// RunMigrations creates or updates all tables from the model structs.
// Idempotent — safe on every startup and in integration tests.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Genre{},
	)
}
