// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	auditService "github.com/allisson/sealfeed/internal/audit/service"
	auditUseCase "github.com/allisson/sealfeed/internal/audit/usecase"
	"github.com/allisson/sealfeed/internal/config"
	contentUseCase "github.com/allisson/sealfeed/internal/content/usecase"
	cryptoService "github.com/allisson/sealfeed/internal/crypto/service"
	cryptoUseCase "github.com/allisson/sealfeed/internal/crypto/usecase"
	"github.com/allisson/sealfeed/internal/database"
	"github.com/allisson/sealfeed/internal/http"
	"github.com/allisson/sealfeed/internal/metrics"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	config *config.Config

	// lifecycle is cancelled by Shutdown and bounds background work owned by components.
	lifecycle context.Context
	stop      context.CancelFunc

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	txManager       database.TxManager
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Crypto
	keySealer      cryptoService.KeySealer
	userKeysRepo   cryptoUseCase.UserKeysRepository
	keyUseCase     cryptoUseCase.KeyUseCase
	messageCodec   cryptoService.MessageCodec
	symmetric      cryptoService.SymmetricCipher
	keyGenerator   cryptoService.KeyGenerator
	integrityCheck cryptoService.IntegrityHasher

	// Audit
	auditSigner    auditService.AuditSigner
	auditEventRepo auditUseCase.AuditEventRepository
	auditUseCase   auditUseCase.AuditUseCase

	// Content
	payloadRepo    contentUseCase.EncryptedPayloadRepository
	contentUseCase contentUseCase.ContentUseCase

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	txManagerInit       sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	keySealerInit       sync.Once
	userKeysRepoInit    sync.Once
	keyUseCaseInit      sync.Once
	messageCodecInit    sync.Once
	symmetricInit       sync.Once
	keyGeneratorInit    sync.Once
	integrityInit       sync.Once
	auditSignerInit     sync.Once
	auditEventRepoInit  sync.Once
	auditUseCaseInit    sync.Once
	payloadRepoInit     sync.Once
	contentUseCaseInit  sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	lifecycle, stop := context.WithCancel(context.Background())
	return &Container{
		config:     cfg,
		lifecycle:  lifecycle,
		stop:       stop,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// once runs init the first time key is requested and replays its error afterwards.
func (c *Container) once(o *sync.Once, key string, init func() error) error {
	o.Do(func() {
		if err := init(); err != nil {
			c.mu.Lock()
			c.initErrors[key] = err
			c.mu.Unlock()
		}
	})
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initErrors[key]
}

// DB returns the database connection.
func (c *Container) DB() (*sql.DB, error) {
	err := c.once(&c.dbInit, "db", func() error {
		var err error
		c.db, err = c.initDB()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	err := c.once(&c.txManagerInit, "txManager", func() error {
		db, err := c.DB()
		if err != nil {
			return fmt.Errorf("failed to get database for tx manager: %w", err)
		}
		c.txManager = database.NewTxManager(db)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.txManager, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	err := c.once(&c.metricsProviderInit, "metricsProvider", func() error {
		if !c.config.MetricsEnabled {
			return nil
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			return fmt.Errorf("failed to create metrics provider: %w", err)
		}
		c.metricsProvider = provider
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. It is a no-op when metrics are
// disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	err := c.once(&c.businessMetricsInit, "businessMetrics", func() error {
		provider, err := c.MetricsProvider()
		if err != nil {
			return err
		}
		if provider == nil {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return nil
		}
		c.businessMetrics, err = metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			return fmt.Errorf("failed to create business metrics: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the API server with its router configured.
func (c *Container) HTTPServer() (*http.Server, error) {
	err := c.once(&c.httpServerInit, "httpServer", func() error {
		var err error
		c.httpServer, err = c.initHTTPServer()
		return err
	})
	if err != nil {
		return nil, err
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	err := c.once(&c.metricsServerInit, "metricsServer", func() error {
		provider, err := c.MetricsProvider()
		if err != nil {
			return err
		}
		if provider == nil {
			return nil
		}
		c.metricsServer = http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
func (c *Container) Shutdown(ctx context.Context) error {
	c.stop()

	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if closer, ok := c.keySealer.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("key sealer close: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %w", errors.Join(shutdownErrors...))
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler).With(slog.String("service", "sealfeed"))
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(c.lifecycle, database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initHTTPServer creates the HTTP server and registers every route.
func (c *Container) initHTTPServer() (*http.Server, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	contentHandler, err := c.ContentHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get content handler for http server: %w", err)
	}

	keyHandler, err := c.KeyHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get key handler for http server: %w", err)
	}

	auditEventHandler, err := c.AuditEventHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit event handler for http server: %w", err)
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, c.Logger())
	if provider != nil {
		server.SetupRouter(
			c.lifecycle, c.config, contentHandler, keyHandler, auditEventHandler,
			provider.MeterProvider(), c.config.MetricsNamespace,
		)
	} else {
		server.SetupRouter(c.lifecycle, c.config, contentHandler, keyHandler, auditEventHandler, nil, "")
	}

	return server, nil
}
