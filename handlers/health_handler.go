// Package handlers provides HTTP request handlers for the link shortener service.
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HealthCheck handles the health check endpoint.
// It returns 200 OK when the link store answers a ping and 503 otherwise.
func (h *LinkHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.RequestTimeout)
	defer cancel()

	if err := h.service.Ping(ctx); err != nil {
		h.logger.Warn("Health check failed", zap.Error(err))
		c.String(http.StatusServiceUnavailable, "Store unavailable")
		return
	}
	c.String(http.StatusOK, "OK")
}
