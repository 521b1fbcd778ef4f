package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vladimiradmaev/nutrilyzer/internal/domain"
	"github.com/vladimiradmaev/nutrilyzer/internal/services"
)

func (req foodItemRequest) input() services.FoodItemInput {
	var calories float64
	if req.Nutrition.Calories != nil {
		calories = *req.Nutrition.Calories
	}
	return services.FoodItemInput{
		Name: req.Name,
		Nutrition: domain.Nutrition{
			Calories: calories,
			Protein:  req.Nutrition.Protein,
			Carbs:    req.Nutrition.Carbs,
			Fat:      req.Nutrition.Fat,
			Sodium:   req.Nutrition.Sodium,
		},
	}
}

func (r *Router) listFoodItems(c *gin.Context) {
	items, err := r.deps.FoodItemService.ListVisible(c.Request.Context(), currentUser(c))
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (r *Router) createFoodItem(c *gin.Context) {
	var req foodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		r.badRequest(c, err)
		return
	}

	item, err := r.deps.FoodItemService.Create(c.Request.Context(), currentUser(c), req.input())
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (r *Router) getFoodItem(c *gin.Context) {
	item, err := r.deps.FoodItemService.Get(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (r *Router) updateFoodItem(c *gin.Context) {
	var req foodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		r.badRequest(c, err)
		return
	}

	item, err := r.deps.FoodItemService.Update(c.Request.Context(), currentUser(c), c.Param("id"), req.input())
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (r *Router) deleteFoodItem(c *gin.Context) {
	id := c.Param("id")
	res, err := r.deps.FoodItemService.Delete(c.Request.Context(), currentUser(c), id)
	if err != nil {
		r.respondError(c, err)
		return
	}
	r.observeRemoval("food_item", res)
	c.JSON(http.StatusOK, removal(id, res))
}

func (r *Router) observeRemoval(kind string, res *services.CascadeResult) {
	if r.deps.Metrics != nil {
		r.deps.Metrics.ObserveRemoval(kind, res.Hidden, res.LogsUpdated, res.LogsDeleted)
	}
}

func removal(id string, res *services.CascadeResult) removalResponse {
	return removalResponse{
		ID:          id,
		Hidden:      res.Hidden,
		Meals:       res.MealsHit,
		LogsUpdated: res.LogsUpdated,
		LogsDeleted: res.LogsDeleted,
	}
}
