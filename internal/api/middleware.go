package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	apperrors "github.com/vladimiradmaev/nutrilyzer/internal/errors"
)

const userIDKey = "userID"

// authenticate requires a bearer token and stores the user id on the context
func (r *Router) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			r.respondError(c, apperrors.NewUnauthorizedError("authorization header required"))
			return
		}

		userID, err := r.deps.UserService.Authenticate(strings.TrimSpace(token))
		if err != nil {
			r.respondError(c, err)
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// rateLimit counts requests per client IP. Limiter failures let the request through.
func (r *Router) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if r.deps.Limiter == nil {
			c.Next()
			return
		}

		res, err := r.deps.Limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			r.logger.WarnContext(c.Request.Context(), "Rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		c.Header("RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("RateLimit-Remaining", strconv.Itoa(res.Remaining))
		c.Header("RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
		if !res.Allowed {
			if r.deps.Metrics != nil {
				r.deps.Metrics.ObserveThrottled()
			}
			c.Header("Retry-After", strconv.Itoa(int(time.Until(res.ResetAt).Seconds())+1))
			r.respondError(c, apperrors.NewRateLimitError())
			return
		}
		c.Next()
	}
}

// requestLogger logs every request once it has been served
func (r *Router) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		status := c.Writer.Status()
		if r.deps.Metrics != nil {
			r.deps.Metrics.ObserveRequest(c.Request.Method, c.FullPath(), status, elapsed)
		}

		args := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", elapsed.Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if userID := c.GetString(userIDKey); userID != "" {
			args = append(args, "user_id", userID)
		}
		if status >= http.StatusInternalServerError {
			r.logger.ErrorContext(c.Request.Context(), "Request failed", args...)
			return
		}
		r.logger.InfoContext(c.Request.Context(), "Request served", args...)
	}
}

// cors allows the configured web client origin
func (r *Router) cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case origin == "":
		case r.deps.CORSOrigin == "*":
			// Credentials are never allowed with a wildcard origin.
			c.Header("Access-Control-Allow-Origin", "*")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		case origin == r.deps.CORSOrigin:
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Vary", "Origin")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}
