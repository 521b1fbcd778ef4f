package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/vladimiradmaev/nutrilyzer/internal/domain"
	apperrors "github.com/vladimiradmaev/nutrilyzer/internal/errors"
	"github.com/vladimiradmaev/nutrilyzer/internal/repository"
)

// Catalog is the file format of the default food items and meals.
// Meal entries name their food item instead of using its id.
type Catalog struct {
	FoodItems []CatalogFoodItem `json:"foodItems"`
	Meals     []CatalogMeal     `json:"meals"`
}

type CatalogFoodItem struct {
	Name      string           `json:"name"`
	Nutrition domain.Nutrition `json:"nutrition"`
}

type CatalogMeal struct {
	Name        string             `json:"name"`
	FoodEntries []CatalogFoodEntry `json:"foodEntries"`
}

type CatalogFoodEntry struct {
	FoodItem string  `json:"foodItem"`
	Grams    float64 `json:"grams"`
}

// ReadCatalog decodes a catalog file
func ReadCatalog(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}
	return &c, nil
}

// SeedResult counts what a seed run inserted and skipped
type SeedResult struct {
	FoodItemsCreated int
	FoodItemsSkipped int
	MealsCreated     int
	MealsSkipped     int
}

type SeedService struct {
	store  *repository.Store
	logger *slog.Logger
}

func NewSeedService(store *repository.Store, logger *slog.Logger) *SeedService {
	return &SeedService{store: store, logger: logger}
}

// SeedDefaults inserts the catalog as shared records. Names that already
// exist as shared records are kept as they are, so running it twice is safe.
func (s *SeedService) SeedDefaults(ctx context.Context, catalog *Catalog) (*SeedResult, error) {
	res := &SeedResult{}
	err := s.store.WithTx(ctx, func(tx *repository.Store) error {
		*res = SeedResult{}
		ids := make(map[string]string, len(catalog.FoodItems))

		for _, in := range catalog.FoodItems {
			existing, err := tx.FoodItems().FindDefaultByName(ctx, in.Name)
			switch {
			case err == nil:
				ids[in.Name] = existing.ID
				res.FoodItemsSkipped++
				continue
			case !errors.Is(err, repository.ErrNotFound):
				return err
			}

			if err := (FoodItemInput{Name: in.Name, Nutrition: in.Nutrition}).validate(); err != nil {
				return apperrors.NewValidationError(fmt.Sprintf("food item %q: %s", in.Name, apperrors.As(err).Message))
			}
			item := &domain.FoodItem{
				Name:          in.Name,
				Nutrition:     in.Nutrition,
				IsDefault:     true,
				HiddenByUsers: domain.NewUserSet(),
			}
			if err := tx.FoodItems().Create(ctx, item); err != nil {
				return err
			}
			ids[in.Name] = item.ID
			res.FoodItemsCreated++
		}

		for _, in := range catalog.Meals {
			_, err := tx.Meals().FindDefaultByName(ctx, in.Name)
			switch {
			case err == nil:
				res.MealsSkipped++
				continue
			case !errors.Is(err, repository.ErrNotFound):
				return err
			}

			entries := make([]domain.FoodEntry, 0, len(in.FoodEntries))
			for _, e := range in.FoodEntries {
				id, ok := ids[e.FoodItem]
				if !ok {
					item, err := tx.FoodItems().FindDefaultByName(ctx, e.FoodItem)
					if err != nil {
						return apperrors.NewValidationError(fmt.Sprintf("meal %q uses unknown food item %q", in.Name, e.FoodItem))
					}
					id = item.ID
				}
				entries = append(entries, domain.FoodEntry{FoodItemID: id, Grams: e.Grams})
			}
			if err := (MealInput{Name: in.Name, FoodEntries: entries}).validate(); err != nil {
				return apperrors.NewValidationError(fmt.Sprintf("meal %q: %s", in.Name, apperrors.As(err).Message))
			}

			meal := &domain.Meal{
				Name:          in.Name,
				FoodEntries:   entries,
				IsDefault:     true,
				HiddenByUsers: domain.NewUserSet(),
			}
			if err := tx.Meals().Create(ctx, meal); err != nil {
				return err
			}
			res.MealsCreated++
		}
		return nil
	})
	if err != nil {
		return nil, storeError(err)
	}

	s.logger.InfoContext(ctx, "Default catalog seeded",
		"food_items_created", res.FoodItemsCreated,
		"food_items_skipped", res.FoodItemsSkipped,
		"meals_created", res.MealsCreated,
		"meals_skipped", res.MealsSkipped,
	)
	return res, nil
}
