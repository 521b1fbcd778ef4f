package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/vladimiradmaev/nutrilyzer/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a lookup matches no row
var ErrNotFound = errors.New("record not found")

// Store groups the repositories over one gorm handle, which is either the
// connection pool or an open transaction
type Store struct {
	db *gorm.DB
}

// NewStore creates a store over a database connection
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// GetDB returns the underlying GORM database instance
func (s *Store) GetDB() *gorm.DB {
	return s.db
}

// WithTx runs fn inside one transaction. It commits when fn returns nil and
// rolls back on error or panic; panics are rethrown.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// Ping checks that the database answers
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{db: s.db}
}

func (s *Store) FoodItems() *FoodItemRepository {
	return &FoodItemRepository{db: s.db}
}

func (s *Store) Meals() *MealRepository {
	return &MealRepository{db: s.db}
}

func (s *Store) DailyLogs() *DailyLogRepository {
	return &DailyLogRepository{db: s.db}
}

// RemoveOrHide hides a shared record for userID, or deletes an owned one.
// It reports whether the record was hidden rather than deleted.
func (s *Store) RemoveOrHide(ctx context.Context, record domain.Hideable, userID string) (bool, error) {
	db := s.db.WithContext(ctx)
	if record.Shared() {
		if !record.Hide(userID) {
			return true, nil
		}
		if err := db.Model(record).Select("hidden_by_users").Updates(record).Error; err != nil {
			return false, fmt.Errorf("failed to hide record: %w", err)
		}
		return true, nil
	}
	if err := db.Delete(record).Error; err != nil {
		return false, fmt.Errorf("failed to delete record: %w", err)
	}
	return false, nil
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func forUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
