// Package handlers provides HTTP request handlers for the link shortener service.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go-link-shortener/services"
	"go.uber.org/zap"
)

const (
	errLinkNotFound     = "URL not found."
	errRedirectingToURL = "Redirection error."
)

// RedirectLink resolves a slug, counting the visit, and redirects to the stored URL.
func (h *LinkHandler) RedirectLink(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.RequestTimeout)
	defer cancel()

	code := c.Param("slug")

	link, err := h.service.ResolveLink(ctx, code)
	if err != nil {
		h.handleRedirectError(c, err, code)
		return
	}

	h.logger.Info("Redirecting",
		zap.String("slug", code),
		zap.String("url", link.URL),
		zap.Int64("visitCount", link.VisitCount),
		zap.String("ip", c.ClientIP()),
		zap.String("user_agent", c.Request.UserAgent()))
	// http.Redirect would rewrite scheme-less targets relative to the request path.
	c.Header("Location", link.URL)
	c.Status(http.StatusFound)
}

func (h *LinkHandler) handleRedirectError(c *gin.Context, err error, code string) {
	switch {
	case errors.Is(err, services.ErrLinkNotFound):
		h.logger.Info("Slug not found", zap.String("slug", code))
		c.String(http.StatusNotFound, errLinkNotFound)
	case errors.Is(err, context.DeadlineExceeded):
		h.logger.Warn("Redirect request timed out", zap.String("slug", code))
		c.String(http.StatusInternalServerError, errRedirectingToURL)
	default:
		h.logger.Error("Error resolving slug", zap.String("slug", code), zap.Error(err))
		c.String(http.StatusInternalServerError, errRedirectingToURL)
	}
}
