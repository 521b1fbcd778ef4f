package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vladimiradmaev/nutrilyzer/internal/domain"
	apperrors "github.com/vladimiradmaev/nutrilyzer/internal/errors"
	"github.com/vladimiradmaev/nutrilyzer/internal/repository"
)

// MealInput is the user supplied part of a meal
type MealInput struct {
	Name        string
	FoodEntries []domain.FoodEntry
}

func (in MealInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return apperrors.NewValidationError("name is required")
	}
	if len(in.FoodEntries) == 0 {
		return apperrors.NewValidationError("a meal needs at least one food entry")
	}
	for i, e := range in.FoodEntries {
		if e.FoodItemID == "" {
			return apperrors.NewValidationError(fmt.Sprintf("food entry %d has no food item", i))
		}
		if e.Grams <= 0 {
			return apperrors.NewValidationError(fmt.Sprintf("food entry %d must weigh more than 0g", i))
		}
	}
	return nil
}

type MealService struct {
	store    *repository.Store
	removals *RemovalService
	logger   *slog.Logger
}

func NewMealService(store *repository.Store, removals *RemovalService, logger *slog.Logger) *MealService {
	return &MealService{store: store, removals: removals, logger: logger}
}

// Create adds a meal owned by userID
func (s *MealService) Create(ctx context.Context, userID string, in MealInput) (*domain.Meal, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	owner := userID
	meal := &domain.Meal{
		Name:          strings.TrimSpace(in.Name),
		FoodEntries:   in.FoodEntries,
		UserID:        &owner,
		HiddenByUsers: domain.NewUserSet(),
	}
	err := s.store.WithTx(ctx, func(tx *repository.Store) error {
		if err := checkFoodItems(ctx, tx, userID, in.FoodEntries); err != nil {
			return err
		}
		return tx.Meals().Create(ctx, meal)
	})
	if err != nil {
		return nil, storeError(err)
	}

	s.logger.InfoContext(ctx, "Meal created", "meal_id", meal.ID, "user_id", userID, "entries", len(meal.FoodEntries))
	return meal, nil
}

// Get returns a meal visible to userID
func (s *MealService) Get(ctx context.Context, userID, id string) (*domain.Meal, error) {
	meal, err := s.store.Meals().GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "meal")
	}
	if !domain.IsVisible(meal, userID) {
		return nil, apperrors.NewNotFoundError("meal")
	}
	return meal, nil
}

// GetMany returns the meals among ids that userID can see, in request order
func (s *MealService) GetMany(ctx context.Context, userID string, ids []string) ([]domain.Meal, error) {
	if len(ids) == 0 {
		return nil, apperrors.NewValidationError("mealIds must not be empty")
	}
	found, err := s.store.Meals().FindByIDs(ctx, ids)
	if err != nil {
		return nil, storeError(err)
	}

	meals := make([]domain.Meal, 0, len(found))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		meal, ok := found[id]
		if _, dup := seen[id]; dup || !ok || !domain.IsVisible(&meal, userID) {
			continue
		}
		seen[id] = struct{}{}
		meals = append(meals, meal)
	}
	if len(meals) == 0 {
		return nil, apperrors.NewNotFoundError("meals")
	}
	return meals, nil
}

// Update replaces name and entries of a meal owned by userID
func (s *MealService) Update(ctx context.Context, userID, id string, in MealInput) (*domain.Meal, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var meal *domain.Meal
	err := s.store.WithTx(ctx, func(tx *repository.Store) error {
		var err error
		meal, err = tx.Meals().GetForUpdate(ctx, id)
		if err != nil {
			return lookupError(err, "meal")
		}
		if meal.IsDefault || meal.OwnerID() != userID {
			return apperrors.NewNotFoundError("meal")
		}
		if err := checkFoodItems(ctx, tx, userID, in.FoodEntries); err != nil {
			return err
		}
		meal.Name = strings.TrimSpace(in.Name)
		meal.FoodEntries = in.FoodEntries
		return tx.Meals().UpdateDetails(ctx, meal)
	})
	if err != nil {
		return nil, storeError(err)
	}
	return meal, nil
}

// ListVisible returns every meal userID can see
func (s *MealService) ListVisible(ctx context.Context, userID string) ([]domain.Meal, error) {
	meals, err := s.store.Meals().ListVisible(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	return meals, nil
}

// Delete removes a meal for userID and prunes it from their daily logs
func (s *MealService) Delete(ctx context.Context, userID, id string) (*CascadeResult, error) {
	return s.removals.RemoveMeal(ctx, userID, id)
}

// checkFoodItems requires every entry to reference a food item visible to the user
func checkFoodItems(ctx context.Context, store *repository.Store, userID string, entries []domain.FoodEntry) error {
	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.FoodItemID)
	}
	items, err := store.FoodItems().FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		item, ok := items[id]
		if !ok || !domain.IsVisible(&item, userID) {
			return apperrors.NewValidationError(fmt.Sprintf("food item %s does not exist", id)).
				WithContext("food_item_id", id)
		}
	}
	return nil
}
