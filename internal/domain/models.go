package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered account
type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Nutrition holds the per-100g values of a food item.
// Macronutrients are grams ("12.5g"), sodium is milligrams ("300mg").
type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  string  `json:"protein"`
	Carbs    string  `json:"carbs"`
	Fat      string  `json:"fat"`
	Sodium   string  `json:"sodium"`
}

// FoodItem is a catalog entry, either owned by one user or shared by default
type FoodItem struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name          string    `gorm:"not null;index" json:"name"`
	Nutrition     Nutrition `gorm:"embedded;embeddedPrefix:nutrition_" json:"nutrition"`
	IsDefault     bool      `gorm:"not null;index" json:"isDefault"`
	UserID        *string   `gorm:"type:varchar(36);index" json:"userId,omitempty"`
	HiddenByUsers UserSet   `gorm:"serializer:json" json:"hiddenByUsers"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (f *FoodItem) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

func (f *FoodItem) OwnerID() string          { return deref(f.UserID) }
func (f *FoodItem) Shared() bool             { return f.IsDefault }
func (f *FoodItem) HiddenFor(id string) bool { return f.HiddenByUsers.Contains(id) }
func (f *FoodItem) Hide(id string) bool      { return f.HiddenByUsers.Add(id) }

// FoodEntry is one weighed food item inside a meal
type FoodEntry struct {
	FoodItemID string  `json:"foodItem"`
	Grams      float64 `json:"grams"`
}

// Meal is an ordered list of food entries
type Meal struct {
	ID            string      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name          string      `gorm:"not null;index" json:"name"`
	FoodEntries   []FoodEntry `gorm:"serializer:json" json:"foodEntries"`
	IsDefault     bool        `gorm:"not null;index" json:"isDefault"`
	UserID        *string     `gorm:"type:varchar(36);index" json:"userId,omitempty"`
	HiddenByUsers UserSet     `gorm:"serializer:json" json:"hiddenByUsers"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

func (m *Meal) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *Meal) OwnerID() string          { return deref(m.UserID) }
func (m *Meal) Shared() bool             { return m.IsDefault }
func (m *Meal) HiddenFor(id string) bool { return m.HiddenByUsers.Contains(id) }
func (m *Meal) Hide(id string) bool      { return m.HiddenByUsers.Add(id) }

// References reports whether any entry points at the given food item
func (m *Meal) References(foodItemID string) bool {
	for _, e := range m.FoodEntries {
		if e.FoodItemID == foodItemID {
			return true
		}
	}
	return false
}

// FoodItemIDs returns the distinct food item ids in entry order
func (m *Meal) FoodItemIDs() []string {
	seen := make(map[string]struct{}, len(m.FoodEntries))
	ids := make([]string, 0, len(m.FoodEntries))
	for _, e := range m.FoodEntries {
		if _, ok := seen[e.FoodItemID]; ok {
			continue
		}
		seen[e.FoodItemID] = struct{}{}
		ids = append(ids, e.FoodItemID)
	}
	return ids
}

// DailyLog groups one user's meals for one calendar day.
// At most one log exists per (UserID, Date) and a stored log is never empty.
type DailyLog struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Date      string    `gorm:"column:log_date;type:varchar(10);not null;uniqueIndex:idx_daily_logs_user_date,priority:2" json:"date"`
	UserID    string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_daily_logs_user_date,priority:1" json:"userId"`
	Mealtimes Mealtimes `gorm:"embedded" json:"meals"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (l *DailyLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// AggregatedFoodEntry is a food entry with its food item resolved
type AggregatedFoodEntry struct {
	FoodItem FoodItem `json:"foodItem"`
	Grams    float64  `json:"grams"`
}

// AggregatedMeal is a meal with every entry resolved
type AggregatedMeal struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	IsDefault   bool                  `json:"isDefault"`
	UserID      *string               `json:"userId,omitempty"`
	FoodEntries []AggregatedFoodEntry `json:"foodEntries"`
}

type AggregatedMealtimes struct {
	Breakfast []AggregatedMeal `json:"breakfast"`
	Lunch     []AggregatedMeal `json:"lunch"`
	Dinner    []AggregatedMeal `json:"dinner"`
	Snacks    []AggregatedMeal `json:"snacks"`
}

// Set stores the resolved meals of one mealtime
func (m *AggregatedMealtimes) Set(t Mealtime, meals []AggregatedMeal) error {
	switch t {
	case Breakfast:
		m.Breakfast = meals
	case Lunch:
		m.Lunch = meals
	case Dinner:
		m.Dinner = meals
	case Snacks:
		m.Snacks = meals
	default:
		return fmt.Errorf("unknown mealtime %q", t)
	}
	return nil
}

// AggregatedLog is the denormalized view of a daily log
type AggregatedLog struct {
	ID        string              `json:"id"`
	Date      string              `json:"date"`
	UserID    string              `json:"userId"`
	Meals     AggregatedMealtimes `json:"meals"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
