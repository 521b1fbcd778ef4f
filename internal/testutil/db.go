// Package testutil provides an in-memory database for package tests.
package testutil

import (
	"io"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/nutrilyzer/internal/database"
	"github.com/vladimiradmaev/nutrilyzer/internal/domain"
	"github.com/vladimiradmaev/nutrilyzer/internal/logger"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with the full schema applied
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps the in-memory database alive and serializes transactions
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db, logger.New(io.Discard, logger.LevelError, "text")))
	return db
}

// CountLogs returns how many daily logs userID has for date
func CountLogs(t *testing.T, db *gorm.DB, userID, date string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&domain.DailyLog{}).Where("user_id = ? AND log_date = ?", userID, date).Count(&n).Error)
	return n
}
