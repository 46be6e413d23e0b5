// Package httpapi exposes the ledger and the generation pipeline over HTTP
// with gin. Callers identify the user with the X-User-ID header; sessions and
// authentication live in front of this service.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bnema/fanthom/internal/application"
	"github.com/bnema/fanthom/internal/logging"
	"github.com/bnema/fanthom/internal/ports"
)

const (
	UserIDHeader = "X-User-ID"

	userIDKey       = "userID"
	shutdownTimeout = 10 * time.Second
)

type Server struct {
	ledger     *application.Ledger
	generator  *application.Generator
	completion ports.CompletionService
	settings   application.CompletionSettings
	logger     *slog.Logger
}

// NewServer wires the handlers. completion and settings back the relay
// endpoint; generator drives /api/generate and /api/drafts.
func NewServer(ledger *application.Ledger, generator *application.Generator, completion ports.CompletionService, settings application.CompletionSettings, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Server{
		ledger:     ledger,
		generator:  generator,
		completion: completion,
		settings:   settings,
		logger:     logger,
	}
}

func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.POST("/generate-email", s.relayGenerate)

		user := api.Group("")
		user.Use(requireUser())
		{
			user.GET("/credits", s.getCredits)
			user.GET("/credits/history", s.getHistory)
			user.POST("/generate", s.generate)
			user.POST("/drafts", s.saveDraft)
		}
	}

	return r
}

// Run serves on addr until ctx is canceled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http: %w", err)
	}
	return nil
}

func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(UserIDHeader)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": UserIDHeader + " header required"})
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.FullPath()),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("elapsed", time.Since(start)),
		)
	}
}
