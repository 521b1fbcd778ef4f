package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vladimiradmaev/nutrilyzer/internal/domain"
	"github.com/vladimiradmaev/nutrilyzer/internal/services"
)

func (req mealRequest) input() services.MealInput {
	entries := make([]domain.FoodEntry, 0, len(req.FoodEntries))
	for _, e := range req.FoodEntries {
		entries = append(entries, domain.FoodEntry{FoodItemID: e.FoodItem, Grams: e.Grams})
	}
	return services.MealInput{Name: req.Name, FoodEntries: entries}
}

func (r *Router) listMeals(c *gin.Context) {
	meals, err := r.deps.MealService.ListVisible(c.Request.Context(), currentUser(c))
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

func (r *Router) createMeal(c *gin.Context) {
	var req mealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		r.badRequest(c, err)
		return
	}

	meal, err := r.deps.MealService.Create(c.Request.Context(), currentUser(c), req.input())
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, meal)
}

func (r *Router) getMeals(c *gin.Context) {
	var req mealBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		r.badRequest(c, err)
		return
	}

	meals, err := r.deps.MealService.GetMany(c.Request.Context(), currentUser(c), req.MealIDs)
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

func (r *Router) getMeal(c *gin.Context) {
	meal, err := r.deps.MealService.Get(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (r *Router) updateMeal(c *gin.Context) {
	var req mealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		r.badRequest(c, err)
		return
	}

	meal, err := r.deps.MealService.Update(c.Request.Context(), currentUser(c), c.Param("id"), req.input())
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (r *Router) deleteMeal(c *gin.Context) {
	id := c.Param("id")
	res, err := r.deps.MealService.Delete(c.Request.Context(), currentUser(c), id)
	if err != nil {
		r.respondError(c, err)
		return
	}
	r.observeRemoval("meal", res)
	c.JSON(http.StatusOK, removal(id, res))
}
