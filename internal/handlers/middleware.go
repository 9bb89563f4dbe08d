package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"icecream_controller/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID   = "userId"
	ctxOperator = "operator"
)

func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	userId, err := h.services.ParseToken(parts[1])
	if err != nil {
		if h.log != nil {
			h.log.Debugw("auth_token_rejected", "err", err)
		}
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	c.Set(ctxUserID, userId)
	c.Next()
}

// operatorMiddleware resolves the token's user to an operator name and
// tags the request context with it. Runs after userIdMiddleware.
func (h *Handler) operatorMiddleware(c *gin.Context) {
	name, err := h.services.Operator(c.GetInt(ctxUserID))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown operator"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to resolve operator", "operator_lookup_failed", err)
		c.Abort()
		return
	}

	c.Set(ctxOperator, name)
	c.Request = c.Request.WithContext(service.WithOperator(c.Request.Context(), name))
	c.Next()
}

// metricsMiddleware records request count and latency per matched route.
func (h *Handler) metricsMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	h.metrics.ObserveHTTP(route, c.Writer.Status(), time.Since(start))
}
