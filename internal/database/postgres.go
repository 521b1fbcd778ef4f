package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/vladimiradmaev/nutrilyzer/internal/config"
	"github.com/vladimiradmaev/nutrilyzer/internal/database/migrations"
	"github.com/vladimiradmaev/nutrilyzer/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Models lists every table managed by AutoMigrate
func Models() []interface{} {
	return []interface{}{
		&domain.User{},
		&domain.FoodItem{},
		&domain.Meal{},
		&domain.DailyLog{},
	}
}

func NewPostgresDB(cfg config.DBConfig, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := Migrate(db, logger); err != nil {
		return nil, err
	}

	logger.Info("Database connection established and migrations completed")
	return db, nil
}

// Migrate creates the schema and then applies the SQL migrations on top of it
func Migrate(db *gorm.DB, logger *slog.Logger) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	m := migrations.NewMigrator(logger)
	if err := m.LoadSQL(migrations.Files, "sql"); err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	if err := m.Run(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
