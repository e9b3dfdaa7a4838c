package config

import (
	"fmt"

	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"farm_market/internal/models"
)

// OpenDB connects to Postgres through lib/pq and migrates the marketplace
// schema. The returned handle is injected into the repositories; nothing
// keeps a package-level copy.
func OpenDB(cfg *Config, sqlLogger gormlogger.Interface) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DriverName: "postgres",
		DSN:        cfg.DSN(),
	}), &gorm.Config{
		Logger:         sqlLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the users, shops and products tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Shop{}, &models.Product{}); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	return nil
}
