package interfaces

import (
	"context"

	"github.com/vladimiradmaev/nutrilyzer/internal/domain"
	"github.com/vladimiradmaev/nutrilyzer/internal/services"
)

// UserServiceInterface defines the contract for account operations
type UserServiceInterface interface {
	Register(ctx context.Context, username, email, password string) (*services.Session, error)
	Login(ctx context.Context, email, password string) (*services.Session, error)
	Current(ctx context.Context, userID string) (*domain.User, error)
	Authenticate(token string) (string, error)
}

// FoodItemServiceInterface defines the contract for food item operations
type FoodItemServiceInterface interface {
	Create(ctx context.Context, userID string, in services.FoodItemInput) (*domain.FoodItem, error)
	Get(ctx context.Context, userID, id string) (*domain.FoodItem, error)
	Update(ctx context.Context, userID, id string, in services.FoodItemInput) (*domain.FoodItem, error)
	ListVisible(ctx context.Context, userID string) ([]domain.FoodItem, error)
	Delete(ctx context.Context, userID, id string) (*services.CascadeResult, error)
}

// MealServiceInterface defines the contract for meal operations
type MealServiceInterface interface {
	Create(ctx context.Context, userID string, in services.MealInput) (*domain.Meal, error)
	Get(ctx context.Context, userID, id string) (*domain.Meal, error)
	GetMany(ctx context.Context, userID string, ids []string) ([]domain.Meal, error)
	Update(ctx context.Context, userID, id string, in services.MealInput) (*domain.Meal, error)
	ListVisible(ctx context.Context, userID string) ([]domain.Meal, error)
	Delete(ctx context.Context, userID, id string) (*services.CascadeResult, error)
}

// LogServiceInterface defines the contract for daily log operations
type LogServiceInterface interface {
	UpsertLog(ctx context.Context, userID, date string, mealtimes domain.Mealtimes) (*domain.DailyLog, error)
	ListLogs(ctx context.Context, userID string) ([]domain.DailyLog, error)
	GetLogDetails(ctx context.Context, userID, logID string) (*domain.AggregatedLog, error)
	GetLogDetailsByDate(ctx context.Context, userID, date string) (*domain.AggregatedLog, error)
}

var (
	_ UserServiceInterface     = (*services.UserService)(nil)
	_ FoodItemServiceInterface = (*services.FoodItemService)(nil)
	_ MealServiceInterface     = (*services.MealService)(nil)
	_ LogServiceInterface      = (*services.LogService)(nil)
)
