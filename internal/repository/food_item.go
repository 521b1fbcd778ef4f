package repository

import (
	"context"

	"github.com/vladimiradmaev/nutrilyzer/internal/domain"
	"gorm.io/gorm"
)

// FoodItemRepository handles food item data operations
type FoodItemRepository struct {
	db *gorm.DB
}

func (r *FoodItemRepository) Create(ctx context.Context, item *domain.FoodItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// GetByID gets a food item regardless of owner
func (r *FoodItemRepository) GetByID(ctx context.Context, id string) (*domain.FoodItem, error) {
	var item domain.FoodItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

// GetForUpdate gets a food item and locks its row until the transaction ends
func (r *FoodItemRepository) GetForUpdate(ctx context.Context, id string) (*domain.FoodItem, error) {
	var item domain.FoodItem
	if err := forUpdate(r.db.WithContext(ctx)).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

// ListVisible returns the items owned by userID plus the shared items not hidden for them
func (r *FoodItemRepository) ListVisible(ctx context.Context, userID string) ([]domain.FoodItem, error) {
	var items []domain.FoodItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? OR is_default = ?", userID, true).
		Order("name ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	visible := items[:0]
	for i := range items {
		if domain.IsVisible(&items[i], userID) {
			visible = append(visible, items[i])
		}
	}
	return visible, nil
}

// FindByIDs returns the items with the given ids keyed by id; unknown ids are absent
func (r *FoodItemRepository) FindByIDs(ctx context.Context, ids []string) (map[string]domain.FoodItem, error) {
	out := make(map[string]domain.FoodItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var items []domain.FoodItem
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	for _, item := range items {
		out[item.ID] = item
	}
	return out, nil
}

// FindDefaultByName gets a shared item by exact name
func (r *FoodItemRepository) FindDefaultByName(ctx context.Context, name string) (*domain.FoodItem, error) {
	var item domain.FoodItem
	if err := r.db.WithContext(ctx).
		Where("is_default = ? AND name = ?", true, name).
		First(&item).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

// UpdateDetails overwrites the name and nutrition of an item
func (r *FoodItemRepository) UpdateDetails(ctx context.Context, item *domain.FoodItem) error {
	return r.db.WithContext(ctx).
		Model(item).
		Select("name", "nutrition_calories", "nutrition_protein", "nutrition_carbs", "nutrition_fat", "nutrition_sodium").
		Updates(item).Error
}
