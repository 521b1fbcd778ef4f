package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/nutrilyzer/internal/domain"
	"github.com/vladimiradmaev/nutrilyzer/internal/repository"
	"github.com/vladimiradmaev/nutrilyzer/internal/testutil"
)

func TestDailyLogRepository_UpsertKeepsOneRow(t *testing.T) {
	store := repository.NewStore(testutil.NewDB(t))
	ctx := context.Background()
	logs := store.DailyLogs()

	first, err := logs.Upsert(ctx, "alice", "2024-05-01", domain.Mealtimes{Breakfast: []string{"m1"}})
	require.NoError(t, err)
	assert.Equal(t, []string{}, first.Mealtimes.Lunch)

	second, err := logs.Upsert(ctx, "alice", "2024-05-01", domain.Mealtimes{Dinner: []string{"m2"}})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, []string{}, second.Mealtimes.Breakfast)
	assert.Equal(t, []string{"m2"}, second.Mealtimes.Dinner)

	other, err := logs.Upsert(ctx, "bob", "2024-05-01", domain.Mealtimes{Dinner: []string{"m2"}})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)

	assert.EqualValues(t, 1, testutil.CountLogs(t, store.GetDB(), "alice", "2024-05-01"))

	_, err = logs.GetByID(ctx, "bob", first.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_WithTxRollsBack(t *testing.T) {
	store := repository.NewStore(testutil.NewDB(t))
	ctx := context.Background()

	err := store.WithTx(ctx, func(tx *repository.Store) error {
		if _, err := tx.DailyLogs().Upsert(ctx, "alice", "2024-05-01", domain.Mealtimes{Lunch: []string{"m"}}); err != nil {
			return err
		}
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)

	assert.Zero(t, testutil.CountLogs(t, store.GetDB(), "alice", "2024-05-01"))
}

func TestStore_RemoveOrHide(t *testing.T) {
	store := repository.NewStore(testutil.NewDB(t))
	ctx := context.Background()

	shared := &domain.FoodItem{Name: "Banana", IsDefault: true}
	require.NoError(t, store.FoodItems().Create(ctx, shared))

	hidden, err := store.RemoveOrHide(ctx, shared, "alice")
	require.NoError(t, err)
	assert.True(t, hidden)
	hidden, err = store.RemoveOrHide(ctx, shared, "alice")
	require.NoError(t, err)
	assert.True(t, hidden)

	got, err := store.FoodItems().GetByID(ctx, shared.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, got.HiddenByUsers.Slice())

	owner := "alice"
	owned := &domain.Meal{Name: "Porridge", UserID: &owner, FoodEntries: []domain.FoodEntry{{FoodItemID: shared.ID, Grams: 10}}}
	require.NoError(t, store.Meals().Create(ctx, owned))

	hidden, err = store.RemoveOrHide(ctx, owned, "alice")
	require.NoError(t, err)
	assert.False(t, hidden)
	_, err = store.Meals().GetByID(ctx, owned.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListVisibleAndFindByIDs(t *testing.T) {
	store := repository.NewStore(testutil.NewDB(t))
	ctx := context.Background()

	alice, bob := "alice", "bob"
	items := []*domain.FoodItem{
		{Name: "A", UserID: &alice},
		{Name: "B", UserID: &bob},
		{Name: "C", IsDefault: true},
		{Name: "D", IsDefault: true, HiddenByUsers: domain.NewUserSet("alice")},
	}
	for _, item := range items {
		require.NoError(t, store.FoodItems().Create(ctx, item))
	}

	visible, err := store.FoodItems().ListVisible(ctx, "alice")
	require.NoError(t, err)
	var names []string
	for _, v := range visible {
		names = append(names, v.Name)
	}
	assert.Equal(t, []string{"A", "C"}, names)

	found, err := store.FoodItems().FindByIDs(ctx, []string{items[1].ID, "missing"})
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Equal(t, "B", found[items[1].ID].Name)

	empty, err := store.FoodItems().FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
