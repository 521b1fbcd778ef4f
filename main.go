package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/vladimiradmaev/nutrilyzer/internal/api"
	"github.com/vladimiradmaev/nutrilyzer/internal/auth"
	"github.com/vladimiradmaev/nutrilyzer/internal/config"
	"github.com/vladimiradmaev/nutrilyzer/internal/database"
	"github.com/vladimiradmaev/nutrilyzer/internal/logger"
	"github.com/vladimiradmaev/nutrilyzer/internal/metrics"
	"github.com/vladimiradmaev/nutrilyzer/internal/ratelimit"
	"github.com/vladimiradmaev/nutrilyzer/internal/repository"
	"github.com/vladimiradmaev/nutrilyzer/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	}); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	appLogger := logger.GetLogger()
	appLogger.Info("Starting Nutrilyzer API...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(cfg.DB, appLogger)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	store := repository.NewStore(db)

	// Initialize services
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	removals := services.NewRemovalService(store, appLogger)
	userService := services.NewUserService(store, tokens, hasher, appLogger)
	foodItemService := services.NewFoodItemService(store, removals, appLogger)
	mealService := services.NewMealService(store, removals, appLogger)
	logService := services.NewLogService(store, appLogger)
	appLogger.Info("Services initialized successfully")

	limiter, closeLimiter := newLimiter(ctx, cfg, appLogger)
	defer closeLimiter()

	gin.SetMode(cfg.HTTP.Mode)
	router := api.NewRouter(api.Dependencies{
		UserService:     userService,
		FoodItemService: foodItemService,
		MealService:     mealService,
		LogService:      logService,
		Limiter:         limiter,
		Metrics:         metrics.New(),
		Health:          store.Ping,
		CORSOrigin:      cfg.HTTP.CORSOrigin,
		Logger:          appLogger,
	})

	server := api.NewServer(cfg.HTTP, router, appLogger)
	if err := server.Start(ctx); err != nil {
		logger.Fatal("Server stopped with error", "error", err)
	}
	appLogger.Info("Server stopped")
}

// newLimiter prefers Redis so that several instances share one window per
// client, and falls back to process memory when Redis is not configured or
// unreachable
func newLimiter(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ratelimit.Limiter, func()) {
	if !cfg.RateLimit.Enabled {
		logger.Info("Rate limiting disabled")
		return nil, func() {}
	}

	if cfg.Redis.Addr != "" {
		client, err := ratelimit.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err == nil {
			logger.Info("Using Redis rate limiter", "addr", cfg.Redis.Addr)
			limiter := ratelimit.NewRedisLimiter(client, cfg.RateLimit.Max, cfg.RateLimit.Window)
			return limiter, func() { _ = limiter.Close() }
		}
		logger.Warn("Redis unavailable, using in-memory rate limiter", "error", err)
	}

	return ratelimit.NewMemoryLimiter(cfg.RateLimit.Max, cfg.RateLimit.Window), func() {}
}
