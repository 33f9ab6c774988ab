// Package api serves the repositories over HTTP for local consumers such as widgets and scripts.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/quotevault/internal/api/handler"
	"github.com/jon4hz/quotevault/internal/config"
	"github.com/jon4hz/quotevault/internal/engine"
)

const streamPath = "/api/quotes/stream"

type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
	engine    *engine.Engine
	logger    *log.Logger
}

func New(cfg *config.Config, e *engine.Engine) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if e == nil {
		return nil, fmt.Errorf("engine is required")
	}

	if log.GetLevel() > log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:       cfg,
		ginEngine: gin.New(),
		engine:    e,
		logger:    log.Default().WithPrefix("api"),
	}
	s.setupRoutes()
	return s, nil
}

// Handler returns the HTTP handler of the server.
func (s *Server) Handler() http.Handler {
	return s.ginEngine
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) setupRoutes() {
	s.ginEngine.Use(gin.Recovery(), s.requestLogger())
	s.ginEngine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{streamPath})))

	h := handler.New(s.engine, s.cfg.PageSize)

	api := s.ginEngine.Group("/api")

	// Quotes
	api.GET("/quotes", h.ListQuotes)
	api.GET("/quotes/search", h.SearchQuotes)
	api.GET("/quotes/stream", h.StreamQuotes)
	api.GET("/quotes/random", h.RandomQuote)
	api.GET("/quotes/:id", h.GetQuote)
	api.POST("/quotes/:id/share", h.ShareQuote)
	api.GET("/authors/:author/quotes", h.QuotesByAuthor)
	api.GET("/quote-of-day", h.QuoteOfDay)
	api.GET("/categories", h.Categories)

	// Favorites
	api.GET("/favorites", h.ListFavorites)
	api.POST("/favorites/:quoteId/toggle", h.ToggleFavorite)

	// Collections
	api.GET("/collections", h.ListCollections)
	api.POST("/collections", h.CreateCollection)
	api.GET("/collections/:id", h.GetCollection)
	api.PUT("/collections/:id", h.UpdateCollection)
	api.DELETE("/collections/:id", h.DeleteCollection)
	api.GET("/collections/:id/quotes", h.CollectionQuotes)
	api.POST("/collections/:id/quotes/:quoteId", h.AddQuoteToCollection)
	api.DELETE("/collections/:id/quotes/:quoteId", h.RemoveQuoteFromCollection)

	// Settings and account
	api.GET("/settings", h.GetSettings)
	api.PUT("/settings", h.UpdateSettings)
	api.GET("/me", h.Me)

	// Engine triggers
	api.POST("/refresh", h.Refresh)
	api.POST("/sync", h.Sync)
	api.POST("/daily", h.DeliverDaily)
	api.POST("/jobs/:id/run", h.RunJob)
	api.GET("/status", h.Status)
	api.GET("/links", h.ResolveLink)

	// Web push
	api.GET("/push/vapid-key", h.GetVAPIDKey)
	api.POST("/push/subscriptions", h.Subscribe)
	api.DELETE("/push/subscriptions", h.Unsubscribe)
}

// Run serves the API until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.ginEngine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}
