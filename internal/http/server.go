// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	auditHTTP "github.com/allisson/sealfeed/internal/audit/http"
	authHTTP "github.com/allisson/sealfeed/internal/auth/http"
	"github.com/allisson/sealfeed/internal/config"
	contentHTTP "github.com/allisson/sealfeed/internal/content/http"
	cryptoHTTP "github.com/allisson/sealfeed/internal/crypto/http"
	"github.com/allisson/sealfeed/internal/metrics"
)

// Server represents the HTTP server
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new HTTP server. Call SetupRouter before Start.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter registers middleware and routes. ctx bounds background work started by
// middleware such as the rate limiter cleanup. meterProvider may be nil when metrics
// are disabled.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	contentHandler *contentHTTP.ContentHandler,
	keyHandler *cryptoHTTP.KeyHandler,
	auditEventHandler *auditHTTP.AuditEventHandler,
	meterProvider metric.MeterProvider,
	metricsNamespace string,
) {
	router := gin.New()

	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))
	router.Use(RecoveryMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if meterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(meterProvider, metricsNamespace))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	v1.Use(authHTTP.IdentityMiddleware(s.logger))
	if cfg.RateLimitEnabled {
		v1.Use(authHTTP.RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}

	content := v1.Group("/content")
	{
		content.POST("/:type", contentHandler.CreateHandler)
		content.GET("/:type/:id", contentHandler.GetHandler)
		content.DELETE("/:type/:id", contentHandler.DeleteHandler)
	}
	v1.POST("/feed", contentHandler.ReadFeedHandler)

	v1.GET("/keys/me/public", keyHandler.GetPublicKeyHandler)

	auditEvents := v1.Group("/audit-events")
	{
		auditEvents.GET("", auditEventHandler.ListHandler)
		auditEvents.GET("/verify", auditEventHandler.VerifyHandler)
	}

	s.router = router
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured: call SetupRouter first")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
