package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vladimiradmaev/nutrilyzer/internal/errors"
)

const testCatalog = `{
  "foodItems": [
    {"name": "Rolled oats", "nutrition": {"calories": 379, "protein": "13.2g", "carbs": "67.7g", "fat": "6.5g", "sodium": "6mg"}},
    {"name": "Whole milk", "nutrition": {"calories": 61, "protein": "3.2g", "carbs": "4.8g", "fat": "3.3g", "sodium": "43mg"}}
  ],
  "meals": [
    {"name": "Porridge", "foodEntries": [
      {"foodItem": "Rolled oats", "grams": 60},
      {"foodItem": "Whole milk", "grams": 200}
    ]}
  ]
}`

func TestSeedDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seeder := NewSeedService(f.store, quietLogger())

	catalog, err := ReadCatalog(strings.NewReader(testCatalog))
	require.NoError(t, err)

	res, err := seeder.SeedDefaults(ctx, catalog)
	require.NoError(t, err)
	assert.Equal(t, &SeedResult{FoodItemsCreated: 2, MealsCreated: 1}, res)

	meals, err := f.meals.ListVisible(ctx, "anyone")
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.True(t, meals[0].IsDefault)
	assert.Nil(t, meals[0].UserID)
	require.Len(t, meals[0].FoodEntries, 2)

	item, err := f.foods.Get(ctx, "anyone", meals[0].FoodEntries[0].FoodItemID)
	require.NoError(t, err)
	assert.Equal(t, "Rolled oats", item.Name)

	again, err := seeder.SeedDefaults(ctx, catalog)
	require.NoError(t, err)
	assert.Equal(t, &SeedResult{FoodItemsSkipped: 2, MealsSkipped: 1}, again)
}

func TestSeedDefaults_UnknownFoodItemRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	seeder := NewSeedService(f.store, quietLogger())

	catalog, err := ReadCatalog(strings.NewReader(`{
	  "foodItems": [{"name": "Egg", "nutrition": {"calories": 155, "protein": "13g", "carbs": "1.1g", "fat": "11g", "sodium": "124mg"}}],
	  "meals": [{"name": "Omelette", "foodEntries": [{"foodItem": "Cheese", "grams": 30}]}]
	}`))
	require.NoError(t, err)

	_, err = seeder.SeedDefaults(ctx, catalog)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))

	items, err := f.foods.ListVisible(ctx, "anyone")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestReadCatalog_RejectsUnknownFields(t *testing.T) {
	_, err := ReadCatalog(strings.NewReader(`{"drinks": []}`))
	assert.Error(t, err)
}
