// Package handlers provides HTTP request handlers for the link shortener service.
package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterRoutes sets up all the routes for the link shortener service
// and applies the request id, access log and CORS middleware.
func RegisterRoutes(r *gin.Engine, handler LinkHandlerInterface, logger *zap.Logger) {
	r.Use(RequestIDMiddleware(), RequestLogger(logger), CORSMiddleware())

	api := r.Group("/api")
	{
		api.POST("/shorten", handler.CreateLink)
	}

	r.GET("/health", handler.HealthCheck)

	// Redirection route (not under /api as it's user-facing)
	r.GET("/:slug", handler.RedirectLink)
}
