package repository

import (
	"context"
	"time"

	"github.com/vladimiradmaev/nutrilyzer/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DailyLogRepository handles daily log data operations
type DailyLogRepository struct {
	db *gorm.DB
}

// Upsert writes the mealtimes of the (userID, date) log, creating the log when
// absent and replacing all four slots otherwise, and returns the stored row
func (r *DailyLogRepository) Upsert(ctx context.Context, userID, date string, mealtimes domain.Mealtimes) (*domain.DailyLog, error) {
	db := r.db.WithContext(ctx)
	now := time.Now()
	log := &domain.DailyLog{
		UserID:    userID,
		Date:      date,
		Mealtimes: mealtimes.Normalized(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "log_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"breakfast", "lunch", "dinner", "snacks", "updated_at"}),
	}).Create(log).Error
	if err != nil {
		return nil, err
	}

	// the id generated for the insert is not the stored one when the row already existed
	return r.GetByDate(ctx, userID, date)
}

// GetByID gets a log owned by userID
func (r *DailyLogRepository) GetByID(ctx context.Context, userID, id string) (*domain.DailyLog, error) {
	var log domain.DailyLog
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&log).Error; err != nil {
		return nil, notFound(err)
	}
	return &log, nil
}

// GetByDate gets the log of userID for one day
func (r *DailyLogRepository) GetByDate(ctx context.Context, userID, date string) (*domain.DailyLog, error) {
	var log domain.DailyLog
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND log_date = ?", userID, date).
		First(&log).Error; err != nil {
		return nil, notFound(err)
	}
	return &log, nil
}

// ListByUser returns every log of userID, newest day first
func (r *DailyLogRepository) ListByUser(ctx context.Context, userID string) ([]domain.DailyLog, error) {
	var logs []domain.DailyLog
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("log_date DESC").
		Find(&logs).Error
	return logs, err
}

// ListByUserForUpdate returns every log of userID with the rows locked
func (r *DailyLogRepository) ListByUserForUpdate(ctx context.Context, userID string) ([]domain.DailyLog, error) {
	var logs []domain.DailyLog
	err := forUpdate(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("log_date ASC").
		Find(&logs).Error
	return logs, err
}

// SaveMealtimes overwrites the four slots of an existing log
func (r *DailyLogRepository) SaveMealtimes(ctx context.Context, log *domain.DailyLog) error {
	log.Mealtimes = log.Mealtimes.Normalized()
	log.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).
		Model(log).
		Select("breakfast", "lunch", "dinner", "snacks", "updated_at").
		Updates(log).Error
}

// Delete removes a log
func (r *DailyLogRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.DailyLog{}).Error
}
