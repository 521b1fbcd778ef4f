package repository

import (
	"context"

	"github.com/vladimiradmaev/nutrilyzer/internal/domain"
	"gorm.io/gorm"
)

// MealRepository handles meal data operations
type MealRepository struct {
	db *gorm.DB
}

func (r *MealRepository) Create(ctx context.Context, meal *domain.Meal) error {
	return r.db.WithContext(ctx).Create(meal).Error
}

// GetByID gets a meal regardless of owner
func (r *MealRepository) GetByID(ctx context.Context, id string) (*domain.Meal, error) {
	var meal domain.Meal
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&meal).Error; err != nil {
		return nil, notFound(err)
	}
	return &meal, nil
}

// GetForUpdate gets a meal and locks its row until the transaction ends
func (r *MealRepository) GetForUpdate(ctx context.Context, id string) (*domain.Meal, error) {
	var meal domain.Meal
	if err := forUpdate(r.db.WithContext(ctx)).Where("id = ?", id).First(&meal).Error; err != nil {
		return nil, notFound(err)
	}
	return &meal, nil
}

// ListVisible returns the meals owned by userID plus the shared meals not hidden for them
func (r *MealRepository) ListVisible(ctx context.Context, userID string) ([]domain.Meal, error) {
	return r.listVisible(r.db.WithContext(ctx), userID)
}

// ListVisibleForUpdate is ListVisible with the candidate rows locked
func (r *MealRepository) ListVisibleForUpdate(ctx context.Context, userID string) ([]domain.Meal, error) {
	return r.listVisible(forUpdate(r.db.WithContext(ctx)), userID)
}

func (r *MealRepository) listVisible(db *gorm.DB, userID string) ([]domain.Meal, error) {
	var meals []domain.Meal
	if err := db.
		Where("user_id = ? OR is_default = ?", userID, true).
		Order("name ASC").
		Find(&meals).Error; err != nil {
		return nil, err
	}

	visible := meals[:0]
	for i := range meals {
		if domain.IsVisible(&meals[i], userID) {
			visible = append(visible, meals[i])
		}
	}
	return visible, nil
}

// FindByIDs returns the meals with the given ids keyed by id; unknown ids are absent
func (r *MealRepository) FindByIDs(ctx context.Context, ids []string) (map[string]domain.Meal, error) {
	out := make(map[string]domain.Meal, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var meals []domain.Meal
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&meals).Error; err != nil {
		return nil, err
	}
	for _, meal := range meals {
		out[meal.ID] = meal
	}
	return out, nil
}

// FindDefaultByName gets a shared meal by exact name
func (r *MealRepository) FindDefaultByName(ctx context.Context, name string) (*domain.Meal, error) {
	var meal domain.Meal
	if err := r.db.WithContext(ctx).
		Where("is_default = ? AND name = ?", true, name).
		First(&meal).Error; err != nil {
		return nil, notFound(err)
	}
	return &meal, nil
}

// UpdateDetails overwrites the name and entries of a meal
func (r *MealRepository) UpdateDetails(ctx context.Context, meal *domain.Meal) error {
	return r.db.WithContext(ctx).
		Model(meal).
		Select("name", "food_entries").
		Updates(meal).Error
}
