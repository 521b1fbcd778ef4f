package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/vladimiradmaev/nutrilyzer/internal/errors"
)

// Router wires the handlers onto a gin engine
type Router struct {
	deps   Dependencies
	logger *slog.Logger
	errors *apperrors.Handler
	engine *gin.Engine
}

// NewRouter creates the engine with every route registered
func NewRouter(deps Dependencies) *Router {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &Router{
		deps:   deps,
		logger: logger,
		errors: apperrors.NewHandler(logger),
		engine: gin.New(),
	}
	r.engine.Use(gin.Recovery(), r.requestLogger(), r.cors())
	r.engine.NoRoute(func(c *gin.Context) {
		r.respondError(c, apperrors.NewNotFoundError("route"))
	})
	r.routes()
	return r
}

// Handler exposes the engine to http.Server and tests
func (r *Router) Handler() http.Handler {
	return r.engine
}

func (r *Router) routes() {
	r.engine.GET("/healthz", r.health)
	if r.deps.Metrics != nil {
		r.engine.GET("/metrics", gin.WrapH(r.deps.Metrics.Handler()))
	}

	api := r.engine.Group("/api", r.rateLimit())

	users := api.Group("/users")
	users.POST("/register", r.register)
	users.POST("/login", r.login)
	users.GET("/current", r.authenticate(), r.current)

	authed := api.Group("", r.authenticate())

	foods := authed.Group("/foodItems")
	foods.GET("", r.listFoodItems)
	foods.POST("", r.createFoodItem)
	foods.GET("/:id", r.getFoodItem)
	foods.PUT("/:id", r.updateFoodItem)
	foods.DELETE("/:id", r.deleteFoodItem)

	meals := authed.Group("/meals")
	meals.GET("", r.listMeals)
	meals.POST("", r.createMeal)
	meals.POST("/batch", r.getMeals)
	meals.GET("/:id", r.getMeal)
	meals.PUT("/:id", r.updateMeal)
	meals.DELETE("/:id", r.deleteMeal)

	logs := authed.Group("/dailyLogs")
	logs.GET("", r.listLogs)
	logs.GET("/date/:date", r.getLogByDate)
	logs.GET("/:id", r.getLog)
	logs.PUT("/:date", r.upsertLog)
}

func (r *Router) health(c *gin.Context) {
	if r.deps.Health != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := r.deps.Health(ctx); err != nil {
			r.logger.ErrorContext(ctx, "Health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
