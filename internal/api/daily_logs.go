package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vladimiradmaev/nutrilyzer/internal/domain"
)

func (r *Router) listLogs(c *gin.Context) {
	logs, err := r.deps.LogService.ListLogs(c.Request.Context(), currentUser(c))
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (r *Router) getLog(c *gin.Context) {
	log, err := r.deps.LogService.GetLogDetails(c.Request.Context(), currentUser(c), c.Param("id"))
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

func (r *Router) getLogByDate(c *gin.Context) {
	log, err := r.deps.LogService.GetLogDetailsByDate(c.Request.Context(), currentUser(c), c.Param("date"))
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

// upsertLog answers with the stored log, or with a deletion notice when the
// write left the day empty
func (r *Router) upsertLog(c *gin.Context) {
	var req upsertLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		r.badRequest(c, err)
		return
	}

	date := c.Param("date")
	meals := req.Meals
	log, err := r.deps.LogService.UpsertLog(c.Request.Context(), currentUser(c), date, domain.Mealtimes{
		Breakfast: meals.Breakfast,
		Lunch:     meals.Lunch,
		Dinner:    meals.Dinner,
		Snacks:    meals.Snacks,
	})
	if err != nil {
		r.respondError(c, err)
		return
	}
	if log == nil {
		c.JSON(http.StatusOK, deletedLogResponse{Deleted: true, Date: date})
		return
	}
	c.JSON(http.StatusOK, log)
}
