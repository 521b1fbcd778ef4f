package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (r *Router) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		r.badRequest(c, err)
		return
	}

	session, err := r.deps.UserService.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

func (r *Router) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		r.badRequest(c, err)
		return
	}

	session, err := r.deps.UserService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (r *Router) current(c *gin.Context) {
	user, err := r.deps.UserService.Current(c.Request.Context(), currentUser(c))
	if err != nil {
		r.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
