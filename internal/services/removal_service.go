package services

import (
	"context"
	"log/slog"

	"github.com/vladimiradmaev/nutrilyzer/internal/domain"
	apperrors "github.com/vladimiradmaev/nutrilyzer/internal/errors"
	"github.com/vladimiradmaev/nutrilyzer/internal/repository"
)

// RemovalService deletes or hides catalog records and cascades the removal
// into the meals and daily logs that reference them. Each removal is one
// transaction: either every step is applied or none is.
type RemovalService struct {
	store  *repository.Store
	logger *slog.Logger
}

func NewRemovalService(store *repository.Store, logger *slog.Logger) *RemovalService {
	return &RemovalService{store: store, logger: logger}
}

// CascadeResult counts what a removal touched
type CascadeResult struct {
	Hidden      bool
	MealsHit    int
	LogsUpdated int
	LogsDeleted int
}

// RemoveFoodItem hides a shared food item for userID or deletes an owned one,
// then removes or hides every meal visible to userID that contains it and
// prunes those meals from userID's daily logs.
func (s *RemovalService) RemoveFoodItem(ctx context.Context, userID, foodItemID string) (*CascadeResult, error) {
	res := &CascadeResult{}
	err := s.store.WithTx(ctx, func(tx *repository.Store) error {
		*res = CascadeResult{}

		item, err := tx.FoodItems().GetForUpdate(ctx, foodItemID)
		if err != nil {
			return lookupError(err, "food item")
		}
		if !domain.IsVisible(item, userID) {
			return apperrors.NewNotFoundError("food item")
		}

		if res.Hidden, err = tx.RemoveOrHide(ctx, item, userID); err != nil {
			return err
		}

		meals, err := tx.Meals().ListVisibleForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		affected := make(map[string]struct{})
		for i := range meals {
			meal := &meals[i]
			if !meal.References(foodItemID) {
				continue
			}
			if _, err := tx.RemoveOrHide(ctx, meal, userID); err != nil {
				return err
			}
			affected[meal.ID] = struct{}{}
		}
		res.MealsHit = len(affected)

		res.LogsUpdated, res.LogsDeleted, err = pruneLogs(ctx, tx, userID, affected)
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, err, "food_item_id", foodItemID, "user_id", userID)
	}

	s.logger.InfoContext(ctx, "Food item removed",
		"food_item_id", foodItemID,
		"user_id", userID,
		"hidden", res.Hidden,
		"meals", res.MealsHit,
		"logs_updated", res.LogsUpdated,
		"logs_deleted", res.LogsDeleted,
	)
	return res, nil
}

// RemoveMeal hides a shared meal for userID or deletes an owned one and
// prunes it from userID's daily logs.
func (s *RemovalService) RemoveMeal(ctx context.Context, userID, mealID string) (*CascadeResult, error) {
	res := &CascadeResult{}
	err := s.store.WithTx(ctx, func(tx *repository.Store) error {
		*res = CascadeResult{}

		meal, err := tx.Meals().GetForUpdate(ctx, mealID)
		if err != nil {
			return lookupError(err, "meal")
		}
		if !domain.IsVisible(meal, userID) {
			return apperrors.NewNotFoundError("meal")
		}

		if res.Hidden, err = tx.RemoveOrHide(ctx, meal, userID); err != nil {
			return err
		}
		res.MealsHit = 1

		res.LogsUpdated, res.LogsDeleted, err = pruneLogs(ctx, tx, userID, map[string]struct{}{mealID: {}})
		return err
	})
	if err != nil {
		return nil, s.fail(ctx, err, "meal_id", mealID, "user_id", userID)
	}

	s.logger.InfoContext(ctx, "Meal removed",
		"meal_id", mealID,
		"user_id", userID,
		"hidden", res.Hidden,
		"logs_updated", res.LogsUpdated,
		"logs_deleted", res.LogsDeleted,
	)
	return res, nil
}

// fail keeps NotFound as is; every other failure is reported as a server error
func (s *RemovalService) fail(ctx context.Context, err error, fields ...any) error {
	if apperrors.IsNotFound(err) {
		return err
	}
	appErr := apperrors.NewInternalError(err)
	for i := 0; i+1 < len(fields); i += 2 {
		if k, ok := fields[i].(string); ok {
			appErr.WithContext(k, fields[i+1])
		}
	}
	s.logger.ErrorContext(ctx, "Removal rolled back", appErr.LogFields()...)
	return appErr
}

// pruneLogs pulls the meal ids from every mealtime of userID's logs and
// deletes the logs that end up empty
func pruneLogs(ctx context.Context, tx *repository.Store, userID string, mealIDs map[string]struct{}) (updated, deleted int, err error) {
	if len(mealIDs) == 0 {
		return 0, 0, nil
	}

	logs, err := tx.DailyLogs().ListByUserForUpdate(ctx, userID)
	if err != nil {
		return 0, 0, err
	}

	for i := range logs {
		log := &logs[i]
		if !log.Mealtimes.References(mealIDs) {
			continue
		}
		log.Mealtimes = log.Mealtimes.Without(mealIDs)
		if log.Mealtimes.IsEmpty() {
			if err := tx.DailyLogs().Delete(ctx, log.ID); err != nil {
				return updated, deleted, err
			}
			deleted++
			continue
		}
		if err := tx.DailyLogs().SaveMealtimes(ctx, log); err != nil {
			return updated, deleted, err
		}
		updated++
	}
	return updated, deleted, nil
}
