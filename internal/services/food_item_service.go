package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/vladimiradmaev/nutrilyzer/internal/domain"
	apperrors "github.com/vladimiradmaev/nutrilyzer/internal/errors"
	"github.com/vladimiradmaev/nutrilyzer/internal/repository"
)

// FoodItemInput is the user supplied part of a food item
type FoodItemInput struct {
	Name      string
	Nutrition domain.Nutrition
}

func (in FoodItemInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return apperrors.NewValidationError("name is required")
	}
	return ValidateNutrition(in.Nutrition)
}

type FoodItemService struct {
	store    *repository.Store
	removals *RemovalService
	logger   *slog.Logger
}

func NewFoodItemService(store *repository.Store, removals *RemovalService, logger *slog.Logger) *FoodItemService {
	return &FoodItemService{store: store, removals: removals, logger: logger}
}

// Create adds a food item owned by userID
func (s *FoodItemService) Create(ctx context.Context, userID string, in FoodItemInput) (*domain.FoodItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	owner := userID
	item := &domain.FoodItem{
		Name:          strings.TrimSpace(in.Name),
		Nutrition:     in.Nutrition,
		UserID:        &owner,
		HiddenByUsers: domain.NewUserSet(),
	}
	if err := s.store.FoodItems().Create(ctx, item); err != nil {
		return nil, storeError(err)
	}

	s.logger.InfoContext(ctx, "Food item created", "food_item_id", item.ID, "user_id", userID)
	return item, nil
}

// Get returns a food item visible to userID
func (s *FoodItemService) Get(ctx context.Context, userID, id string) (*domain.FoodItem, error) {
	item, err := s.store.FoodItems().GetByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "food item")
	}
	if !domain.IsVisible(item, userID) {
		return nil, apperrors.NewNotFoundError("food item")
	}
	return item, nil
}

// Update changes name and nutrition of a food item owned by userID.
// Shared items can not be edited.
func (s *FoodItemService) Update(ctx context.Context, userID, id string, in FoodItemInput) (*domain.FoodItem, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var item *domain.FoodItem
	err := s.store.WithTx(ctx, func(tx *repository.Store) error {
		var err error
		item, err = tx.FoodItems().GetForUpdate(ctx, id)
		if err != nil {
			return lookupError(err, "food item")
		}
		if item.IsDefault || item.OwnerID() != userID {
			return apperrors.NewNotFoundError("food item")
		}
		item.Name = strings.TrimSpace(in.Name)
		item.Nutrition = in.Nutrition
		return tx.FoodItems().UpdateDetails(ctx, item)
	})
	if err != nil {
		return nil, storeError(err)
	}
	return item, nil
}

// ListVisible returns every food item userID can see
func (s *FoodItemService) ListVisible(ctx context.Context, userID string) ([]domain.FoodItem, error) {
	items, err := s.store.FoodItems().ListVisible(ctx, userID)
	if err != nil {
		return nil, storeError(err)
	}
	return items, nil
}

// Delete removes a food item for userID together with everything depending on it
func (s *FoodItemService) Delete(ctx context.Context, userID, id string) (*CascadeResult, error) {
	return s.removals.RemoveFoodItem(ctx, userID, id)
}
