package api

import (
	"context"
	"log/slog"

	"github.com/vladimiradmaev/nutrilyzer/internal/interfaces"
	"github.com/vladimiradmaev/nutrilyzer/internal/metrics"
	"github.com/vladimiradmaev/nutrilyzer/internal/ratelimit"
)

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	UserService     interfaces.UserServiceInterface
	FoodItemService interfaces.FoodItemServiceInterface
	MealService     interfaces.MealServiceInterface
	LogService      interfaces.LogServiceInterface
	Limiter         ratelimit.Limiter
	Metrics         *metrics.Metrics
	Health          func(ctx context.Context) error
	CORSOrigin      string
	Logger          *slog.Logger
}

type errorResponse struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type nutritionRequest struct {
	Calories *float64 `json:"calories" binding:"required"`
	Protein  string   `json:"protein" binding:"required"`
	Carbs    string   `json:"carbs" binding:"required"`
	Fat      string   `json:"fat" binding:"required"`
	Sodium   string   `json:"sodium" binding:"required"`
}

type foodItemRequest struct {
	Name      string           `json:"name" binding:"required"`
	Nutrition nutritionRequest `json:"nutrition"`
}

type foodEntryRequest struct {
	FoodItem string  `json:"foodItem" binding:"required"`
	Grams    float64 `json:"grams" binding:"required"`
}

type mealRequest struct {
	Name        string             `json:"name" binding:"required"`
	FoodEntries []foodEntryRequest `json:"foodEntries" binding:"required,dive"`
}

type mealBatchRequest struct {
	MealIDs []string `json:"mealIds" binding:"required"`
}

// Every slot must be present; an explicit [] is a valid empty slot.
type upsertMealsRequest struct {
	Breakfast []string `json:"breakfast" binding:"required"`
	Lunch     []string `json:"lunch" binding:"required"`
	Dinner    []string `json:"dinner" binding:"required"`
	Snacks    []string `json:"snacks" binding:"required"`
}

type upsertLogRequest struct {
	Meals *upsertMealsRequest `json:"meals" binding:"required"`
}

type deletedLogResponse struct {
	Deleted bool   `json:"deleted"`
	Date    string `json:"date"`
}

type removalResponse struct {
	ID          string `json:"id"`
	Hidden      bool   `json:"hidden"`
	Meals       int    `json:"meals"`
	LogsUpdated int    `json:"logsUpdated"`
	LogsDeleted int    `json:"logsDeleted"`
}
