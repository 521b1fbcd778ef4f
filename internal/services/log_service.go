package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vladimiradmaev/nutrilyzer/internal/domain"
	apperrors "github.com/vladimiradmaev/nutrilyzer/internal/errors"
	"github.com/vladimiradmaev/nutrilyzer/internal/repository"
	"github.com/vladimiradmaev/nutrilyzer/internal/utils"
)

// LogService builds and maintains daily logs
type LogService struct {
	store  *repository.Store
	logger *slog.Logger
}

func NewLogService(store *repository.Store, logger *slog.Logger) *LogService {
	return &LogService{store: store, logger: logger}
}

// UpsertLog replaces the mealtimes of the user's log for date, creating the
// log if needed. A write that leaves the log empty deletes it instead and
// returns a nil log. Concurrent writers to the same day race; the last
// write wins and the emptiness check always sees the caller's own write.
func (s *LogService) UpsertLog(ctx context.Context, userID, date string, mealtimes domain.Mealtimes) (*domain.DailyLog, error) {
	day, err := utils.NormalizeDate(date)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	var out *domain.DailyLog
	err = s.store.WithTx(ctx, func(tx *repository.Store) error {
		out = nil
		if err := checkMeals(ctx, tx, userID, mealtimes.MealIDs()); err != nil {
			return err
		}

		log, err := tx.DailyLogs().Upsert(ctx, userID, day, mealtimes)
		if err != nil {
			return err
		}
		if log.Mealtimes.IsEmpty() {
			return tx.DailyLogs().Delete(ctx, log.ID)
		}
		out = log
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}

	if out == nil {
		s.logger.DebugContext(ctx, "Daily log emptied and removed", "user_id", userID, "date", day)
	}
	return out, nil
}

// ListLogs returns the user's logs, newest day first
func (s *LogService) ListLogs(ctx context.Context, userID string) ([]domain.DailyLog, error) {
	logs, err := s.store.DailyLogs().ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	return logs, nil
}

// GetLogDetails returns the fully resolved view of one of the user's logs.
// Logs of other users are reported as not found.
func (s *LogService) GetLogDetails(ctx context.Context, userID, logID string) (*domain.AggregatedLog, error) {
	log, err := s.store.DailyLogs().GetByID(ctx, userID, logID)
	if err != nil {
		return nil, lookupError(err, "daily log")
	}
	return s.aggregate(ctx, userID, log)
}

// GetLogDetailsByDate is GetLogDetails keyed by calendar date
func (s *LogService) GetLogDetailsByDate(ctx context.Context, userID, date string) (*domain.AggregatedLog, error) {
	day, err := utils.NormalizeDate(date)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	log, err := s.store.DailyLogs().GetByDate(ctx, userID, day)
	if err != nil {
		return nil, lookupError(err, "daily log")
	}
	return s.aggregate(ctx, userID, log)
}

// aggregate resolves meals and food items with one query each. References
// that no longer resolve, or meals the user can no longer see, are skipped.
func (s *LogService) aggregate(ctx context.Context, userID string, log *domain.DailyLog) (*domain.AggregatedLog, error) {
	meals, err := s.store.Meals().FindByIDs(ctx, log.Mealtimes.MealIDs())
	if err != nil {
		return nil, storeError(err)
	}

	var foodIDs []string
	seen := make(map[string]struct{})
	for _, meal := range meals {
		for _, id := range meal.FoodItemIDs() {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				foodIDs = append(foodIDs, id)
			}
		}
	}

	items, err := s.store.FoodItems().FindByIDs(ctx, foodIDs)
	if err != nil {
		return nil, storeError(err)
	}

	dropped := 0
	resolve := func(ids []string) []domain.AggregatedMeal {
		out := make([]domain.AggregatedMeal, 0, len(ids))
		for _, id := range ids {
			meal, ok := meals[id]
			if !ok || !domain.IsVisible(&meal, userID) {
				dropped++
				continue
			}
			agg := domain.AggregatedMeal{
				ID:          meal.ID,
				Name:        meal.Name,
				IsDefault:   meal.IsDefault,
				UserID:      meal.UserID,
				FoodEntries: make([]domain.AggregatedFoodEntry, 0, len(meal.FoodEntries)),
			}
			for _, entry := range meal.FoodEntries {
				item, ok := items[entry.FoodItemID]
				if !ok {
					dropped++
					continue
				}
				agg.FoodEntries = append(agg.FoodEntries, domain.AggregatedFoodEntry{FoodItem: item, Grams: entry.Grams})
			}
			out = append(out, agg)
		}
		return out
	}

	result := &domain.AggregatedLog{
		ID:        log.ID,
		Date:      log.Date,
		UserID:    log.UserID,
		CreatedAt: log.CreatedAt,
		UpdatedAt: log.UpdatedAt,
	}
	for _, t := range domain.MealtimeOrder {
		ids, err := log.Mealtimes.Slot(t)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		if err := result.Meals.Set(t, resolve(ids)); err != nil {
			return nil, apperrors.NewInternalError(err)
		}
	}

	if dropped > 0 {
		s.logger.DebugContext(ctx, "Skipped dangling references", "log_id", log.ID, "count", dropped)
	}
	return result, nil
}

// checkMeals requires every id to name a meal visible to the user
func checkMeals(ctx context.Context, store *repository.Store, userID string, ids []string) error {
	meals, err := store.Meals().FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		meal, ok := meals[id]
		if !ok || !domain.IsVisible(&meal, userID) {
			return apperrors.NewValidationError(fmt.Sprintf("meal %s does not exist", id)).
				WithContext("meal_id", id)
		}
	}
	return nil
}
