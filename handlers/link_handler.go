// Package handlers provides HTTP request handlers for the link shortener service.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go-link-shortener/config"
	"go-link-shortener/services"
	"go-link-shortener/types"
	"go.uber.org/zap"
)

const (
	invalidRequestBody = "Invalid request body"
	invalidURLProvided = "Invalid URL. Must start with http(s)."
	errorCreatingLink  = "Server error during link creation."
)

// LinkHandlerInterface defines the methods that a link handler should implement.
type LinkHandlerInterface interface {
	CreateLink(c *gin.Context)
	RedirectLink(c *gin.Context)
	HealthCheck(c *gin.Context)
}

// LinkHandler struct holds the dependencies for handling link-related operations.
type LinkHandler struct {
	service  services.LinkService
	validate *validator.Validate
	config   *config.Config
	logger   *zap.Logger
}

// NewLinkHandler creates and returns a new LinkHandler instance.
// It initializes the handler with the provided service and a new validator.
func NewLinkHandler(ctx context.Context, service services.LinkService, cfg *config.Config, logger *zap.Logger) (LinkHandlerInterface, error) {
	if service == nil {
		return nil, errors.New("service cannot be nil")
	}
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.RequestTimeout <= 0 {
		return nil, errors.New("invalid request timeout")
	}

	handler := &LinkHandler{
		service:  service,
		validate: validator.New(),
		config:   cfg,
		logger:   logger,
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return handler, nil
}

// CreateLink handles the creation of a new short link.
// It validates the input, generates a slug, and stores the link.
func (h *LinkHandler) CreateLink(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.RequestTimeout)
	defer cancel()

	var input types.ShortenRequest

	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Info("Error decoding request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: invalidRequestBody})
		return
	}

	if err := h.validate.Struct(input); err != nil {
		h.logger.Info("Invalid input", zap.String("url", input.URL), zap.Error(err))
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: invalidURLProvided})
		return
	}

	link, err := h.service.CreateLink(ctx, input.URL)
	if err != nil {
		h.handleCreateError(c, err, input.URL)
		return
	}

	h.logger.Info("Link created",
		zap.String("slug", link.Slug),
		zap.String("url", link.URL),
		zap.String("request_id", requestID(c)))
	c.JSON(http.StatusCreated, types.ShortenResponse{Slug: link.Slug})
}

func (h *LinkHandler) handleCreateError(c *gin.Context, err error, url string) {
	switch {
	case errors.Is(err, services.ErrInvalidURL):
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: invalidURLProvided})
	case errors.Is(err, services.ErrSlugSpaceExhausted):
		h.logger.Error("Slug collisions exhausted all attempts", zap.String("url", url))
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: errorCreatingLink})
	case errors.Is(err, context.DeadlineExceeded):
		h.logger.Warn("Create request timed out", zap.String("url", url))
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: errorCreatingLink})
	default:
		h.logger.Error("Error creating link", zap.String("url", url), zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: errorCreatingLink})
	}
}

// requestID returns the id assigned by RequestIDMiddleware, if any.
func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
