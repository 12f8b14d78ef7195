// Package server wires the link shortener components together and runs the HTTP server.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go-link-shortener/config"
	"go-link-shortener/handlers"
	"go-link-shortener/services"
	"go-link-shortener/storage"
	"go.uber.org/zap"
)

// Run serves the API on cfg.Addr() until ctx is cancelled, then shuts the
// server down gracefully. The caller owns store and closes it afterwards.
func Run(ctx context.Context, logger *zap.Logger, cfg *config.Config, store storage.Storage) error {
	linkHandler, err := setupLinkHandler(ctx, cfg, store, logger)
	if err != nil {
		return err
	}

	router := setupRouter(linkHandler, cfg, logger)
	srv := setupServer(cfg, router)

	serverErr := make(chan error, 1)
	go startServer(srv, logger, serverErr)

	return waitForShutdown(ctx, srv, logger, cfg.ShutdownTimeout, serverErr)
}

func setupLinkHandler(ctx context.Context, cfg *config.Config, store storage.Storage, logger *zap.Logger) (handlers.LinkHandlerInterface, error) {
	handlerCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()

	linkService := services.NewLinkService(store, cfg.MaxSlugAttempts, logger)

	handler, err := handlers.NewLinkHandler(handlerCtx, linkService, cfg, logger)
	if err != nil {
		logger.Error("Failed to create link handler", zap.Error(err))
		return nil, err
	}

	logger.Debug("Link handler created successfully")
	return handler, nil
}

func setupRouter(linkHandler handlers.LinkHandlerInterface, cfg *config.Config, logger *zap.Logger) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handlers.RegisterRoutes(router, linkHandler, logger)
	return router
}

func setupServer(cfg *config.Config, router *gin.Engine) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func startServer(srv *http.Server, logger *zap.Logger, serverErr chan<- error) {
	logger.Info("Server listening", zap.String("address", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", zap.Error(err))
		serverErr <- err
		return
	}
	logger.Debug("Server stopped")
}

func waitForShutdown(ctx context.Context, srv *http.Server, logger *zap.Logger, timeout time.Duration, serverErr <-chan error) error {
	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}
	logger.Info("Shutdown requested. Initiating server shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	logger.Info("Server gracefully stopped")
	return nil
}
