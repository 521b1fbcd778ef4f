package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/nutrilyzer/internal/domain"
	"github.com/vladimiradmaev/nutrilyzer/internal/logger"
	"github.com/vladimiradmaev/nutrilyzer/internal/repository"
	"github.com/vladimiradmaev/nutrilyzer/internal/testutil"
)

type fixture struct {
	store    *repository.Store
	removals *RemovalService
	foods    *FoodItemService
	meals    *MealService
	logs     *LogService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repository.NewStore(testutil.NewDB(t))
	log := quietLogger()
	removals := NewRemovalService(store, log)
	return &fixture{
		store:    store,
		removals: removals,
		foods:    NewFoodItemService(store, removals, log),
		meals:    NewMealService(store, removals, log),
		logs:     NewLogService(store, log),
	}
}

func quietLogger() *slog.Logger {
	return logger.New(io.Discard, logger.LevelError, "text")
}

var oats = domain.Nutrition{Calories: 379, Protein: "13.2g", Carbs: "67.7g", Fat: "6.5g", Sodium: "6mg"}

func (f *fixture) ownFood(t *testing.T, userID, name string) *domain.FoodItem {
	t.Helper()
	item, err := f.foods.Create(context.Background(), userID, FoodItemInput{Name: name, Nutrition: oats})
	require.NoError(t, err)
	return item
}

func (f *fixture) sharedFood(t *testing.T, name string) *domain.FoodItem {
	t.Helper()
	item := &domain.FoodItem{Name: name, Nutrition: oats, IsDefault: true, HiddenByUsers: domain.NewUserSet()}
	require.NoError(t, f.store.FoodItems().Create(context.Background(), item))
	return item
}

func (f *fixture) ownMeal(t *testing.T, userID, name string, entries ...domain.FoodEntry) *domain.Meal {
	t.Helper()
	meal, err := f.meals.Create(context.Background(), userID, MealInput{Name: name, FoodEntries: entries})
	require.NoError(t, err)
	return meal
}

func (f *fixture) sharedMeal(t *testing.T, name string, entries ...domain.FoodEntry) *domain.Meal {
	t.Helper()
	meal := &domain.Meal{Name: name, FoodEntries: entries, IsDefault: true, HiddenByUsers: domain.NewUserSet()}
	require.NoError(t, f.store.Meals().Create(context.Background(), meal))
	return meal
}

func (f *fixture) upsert(t *testing.T, userID, date string, m domain.Mealtimes) *domain.DailyLog {
	t.Helper()
	log, err := f.logs.UpsertLog(context.Background(), userID, date, m)
	require.NoError(t, err)
	return log
}

func (f *fixture) logCount(t *testing.T, userID, date string) int64 {
	t.Helper()
	return testutil.CountLogs(t, f.store.GetDB(), userID, date)
}

func entry(item *domain.FoodItem, grams float64) domain.FoodEntry {
	return domain.FoodEntry{FoodItemID: item.ID, Grams: grams}
}
