package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/nutrilyzer/internal/domain"
	apperrors "github.com/vladimiradmaev/nutrilyzer/internal/errors"
)

func TestUpsertLog_CreatesThenReplaces(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	food := f.ownFood(t, "alice", "Oats")
	porridge := f.ownMeal(t, "alice", "Porridge", entry(food, 80))
	bowl := f.ownMeal(t, "alice", "Bowl", entry(food, 40))

	first := f.upsert(t, "alice", "2024-05-01", domain.Mealtimes{Breakfast: []string{porridge.ID}})
	require.NotNil(t, first)
	assert.Equal(t, []string{porridge.ID}, first.Mealtimes.Breakfast)
	assert.Empty(t, first.Mealtimes.Lunch)

	second := f.upsert(t, "alice", "2024-05-01", domain.Mealtimes{Lunch: []string{bowl.ID}})
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)
	assert.Empty(t, second.Mealtimes.Breakfast)
	assert.Equal(t, []string{bowl.ID}, second.Mealtimes.Lunch)

	assert.EqualValues(t, 1, f.logCount(t, "alice", "2024-05-01"))

	logs, err := f.logs.ListLogs(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestUpsertLog_Idempotent(t *testing.T) {
	f := newFixture(t)

	food := f.ownFood(t, "alice", "Oats")
	meal := f.ownMeal(t, "alice", "Porridge", entry(food, 80))
	m := domain.Mealtimes{Breakfast: []string{meal.ID}, Snacks: []string{meal.ID}}

	a := f.upsert(t, "alice", "2024-05-01", m)
	b := f.upsert(t, "alice", "2024-05-01", m)

	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, a.Mealtimes, b.Mealtimes)
	assert.EqualValues(t, 1, f.logCount(t, "alice", "2024-05-01"))
}

func TestUpsertLog_ConcurrentWritersShareOneLog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	food := f.ownFood(t, "alice", "Oats")
	meals := make([]*domain.Meal, 8)
	for i := range meals {
		meals[i] = f.ownMeal(t, "alice", "Meal", entry(food, float64(10*(i+1))))
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ids  = map[string]struct{}{}
		errs []error
	)
	for _, meal := range meals {
		wg.Add(1)
		go func(mealID string) {
			defer wg.Done()
			log, err := f.logs.UpsertLog(ctx, "alice", "2024-05-01", domain.Mealtimes{Dinner: []string{mealID}})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			ids[log.ID] = struct{}{}
		}(meal.ID)
	}
	wg.Wait()

	require.Empty(t, errs)
	assert.Len(t, ids, 1)
	assert.EqualValues(t, 1, f.logCount(t, "alice", "2024-05-01"))

	logs, err := f.logs.ListLogs(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Len(t, logs[0].Mealtimes.Dinner, 1)
	written := make([]string, 0, len(meals))
	for _, meal := range meals {
		written = append(written, meal.ID)
	}
	assert.Contains(t, written, logs[0].Mealtimes.Dinner[0])
}

func TestUpsertLog_EmptyDeletes(t *testing.T) {
	f := newFixture(t)

	food := f.ownFood(t, "alice", "Oats")
	meal := f.ownMeal(t, "alice", "Porridge", entry(food, 80))
	f.upsert(t, "alice", "2024-05-01", domain.Mealtimes{Dinner: []string{meal.ID}})

	log, err := f.logs.UpsertLog(context.Background(), "alice", "2024-05-01", domain.Mealtimes{})
	require.NoError(t, err)
	assert.Nil(t, log)
	assert.EqualValues(t, 0, f.logCount(t, "alice", "2024-05-01"))

	// an empty write on a day without a log stores nothing either
	log, err = f.logs.UpsertLog(context.Background(), "alice", "2024-05-02", domain.Mealtimes{Lunch: []string{}})
	require.NoError(t, err)
	assert.Nil(t, log)
	assert.EqualValues(t, 0, f.logCount(t, "alice", "2024-05-02"))
}

func TestUpsertLog_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	food := f.ownFood(t, "bob", "Oats")
	private := f.ownMeal(t, "bob", "Bob's porridge", entry(food, 80))

	tests := []struct {
		name string
		date string
		m    domain.Mealtimes
	}{
		{"bad date", "01/05/2024", domain.Mealtimes{}},
		{"unknown meal", "2024-05-01", domain.Mealtimes{Lunch: []string{"missing"}}},
		{"other user's meal", "2024-05-01", domain.Mealtimes{Lunch: []string{private.ID}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.logs.UpsertLog(ctx, "alice", tt.date, tt.m)
			require.Error(t, err)
			assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
		})
	}
	assert.EqualValues(t, 0, f.logCount(t, "alice", "2024-05-01"))
}

func TestUpsertLog_HiddenSharedMealRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	food := f.sharedFood(t, "Banana")
	meal := f.sharedMeal(t, "Banana split", entry(food, 120))

	_, err := f.removals.RemoveMeal(ctx, "alice", meal.ID)
	require.NoError(t, err)

	_, err = f.logs.UpsertLog(ctx, "alice", "2024-05-01", domain.Mealtimes{Snacks: []string{meal.ID}})
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))

	log := f.upsert(t, "bob", "2024-05-01", domain.Mealtimes{Snacks: []string{meal.ID}})
	assert.NotNil(t, log)
}

func TestGetLogDetails_Aggregates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rice := f.ownFood(t, "alice", "Rice")
	banana := f.sharedFood(t, "Banana")
	lunch := f.ownMeal(t, "alice", "Rice bowl", entry(rice, 150), entry(banana, 50))
	snack := f.sharedMeal(t, "Banana", entry(banana, 120))

	stored := f.upsert(t, "alice", "2024-05-01", domain.Mealtimes{
		Lunch:  []string{lunch.ID},
		Snacks: []string{snack.ID, lunch.ID},
	})

	log, err := f.logs.GetLogDetails(ctx, "alice", stored.ID)
	require.NoError(t, err)

	assert.Equal(t, stored.ID, log.ID)
	assert.Equal(t, "2024-05-01", log.Date)
	assert.Empty(t, log.Meals.Breakfast)
	assert.Empty(t, log.Meals.Dinner)

	require.Len(t, log.Meals.Lunch, 1)
	got := log.Meals.Lunch[0]
	assert.Equal(t, "Rice bowl", got.Name)
	require.Len(t, got.FoodEntries, 2)
	assert.Equal(t, rice.ID, got.FoodEntries[0].FoodItem.ID)
	assert.Equal(t, "13.2g", got.FoodEntries[0].FoodItem.Nutrition.Protein)
	assert.Equal(t, 150.0, got.FoodEntries[0].Grams)
	assert.Equal(t, banana.ID, got.FoodEntries[1].FoodItem.ID)
	assert.Equal(t, 50.0, got.FoodEntries[1].Grams)

	require.Len(t, log.Meals.Snacks, 2)
	assert.Equal(t, snack.ID, log.Meals.Snacks[0].ID)
	assert.True(t, log.Meals.Snacks[0].IsDefault)
	assert.Equal(t, lunch.ID, log.Meals.Snacks[1].ID)

	byDate, err := f.logs.GetLogDetailsByDate(ctx, "alice", "2024-05-01")
	require.NoError(t, err)
	assert.Equal(t, log.ID, byDate.ID)
	assert.Equal(t, log.Meals, byDate.Meals)
}

func TestGetLogDetails_SkipsDanglingReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	food := f.ownFood(t, "alice", "Oats")
	meal := f.ownMeal(t, "alice", "Porridge", entry(food, 80))
	stored := f.upsert(t, "alice", "2024-05-01", domain.Mealtimes{Breakfast: []string{meal.ID}})

	// break the references behind the service's back
	stored.Mealtimes.Breakfast = append(stored.Mealtimes.Breakfast, "gone")
	require.NoError(t, f.store.DailyLogs().SaveMealtimes(ctx, stored))
	require.NoError(t, f.store.GetDB().Delete(&domain.FoodItem{ID: food.ID}).Error)

	log, err := f.logs.GetLogDetails(ctx, "alice", stored.ID)
	require.NoError(t, err)
	require.Len(t, log.Meals.Breakfast, 1)
	assert.Equal(t, meal.ID, log.Meals.Breakfast[0].ID)
	assert.Empty(t, log.Meals.Breakfast[0].FoodEntries)
}

func TestGetLogDetails_OtherUserNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	food := f.ownFood(t, "alice", "Oats")
	meal := f.ownMeal(t, "alice", "Porridge", entry(food, 80))
	stored := f.upsert(t, "alice", "2024-05-01", domain.Mealtimes{Breakfast: []string{meal.ID}})

	_, err := f.logs.GetLogDetails(ctx, "bob", stored.ID)
	assert.True(t, apperrors.IsNotFound(err))

	_, err = f.logs.GetLogDetails(ctx, "alice", "missing")
	assert.True(t, apperrors.IsNotFound(err))

	_, err = f.logs.GetLogDetailsByDate(ctx, "bob", "2024-05-01")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestListLogs_NewestFirst(t *testing.T) {
	f := newFixture(t)

	food := f.ownFood(t, "alice", "Oats")
	meal := f.ownMeal(t, "alice", "Porridge", entry(food, 80))
	for _, d := range []string{"2024-05-02", "2024-04-30", "2024-05-10"} {
		f.upsert(t, "alice", d, domain.Mealtimes{Breakfast: []string{meal.ID}})
	}

	logs, err := f.logs.ListLogs(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, "2024-05-10", logs[0].Date)
	assert.Equal(t, "2024-05-02", logs[1].Date)
	assert.Equal(t, "2024-04-30", logs[2].Date)
}
