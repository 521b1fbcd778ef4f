package api

import (
	"github.com/gin-gonic/gin"
	apperrors "github.com/vladimiradmaev/nutrilyzer/internal/errors"
)

// respondError logs err by severity and writes it as {title, message}.
// Server side details never reach the client.
func (r *Router) respondError(c *gin.Context, err error) {
	appErr := apperrors.As(err)
	r.errors.Handle(c.Request.Context(), appErr)

	message := appErr.Message
	if appErr.HTTPStatus() >= 500 {
		message = "Something went wrong, please try again"
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus(), errorResponse{Title: appErr.Title(), Message: message})
}

func (r *Router) badRequest(c *gin.Context, err error) {
	r.respondError(c, apperrors.NewValidationError(err.Error()))
}
