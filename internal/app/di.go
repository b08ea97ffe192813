// Package app provides the dependency injection container for assembling
// application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/allisson/earkms/internal/config"
	"github.com/allisson/earkms/internal/database"
	"github.com/allisson/earkms/internal/http"
	kmsRepository "github.com/allisson/earkms/internal/kms/repository"
	kmsService "github.com/allisson/earkms/internal/kms/service"
	kmsUsecase "github.com/allisson/earkms/internal/kms/usecase"
	"github.com/allisson/earkms/internal/metrics"
)

// Container holds all application dependencies and provides methods to access
// them. It follows the lazy initialization pattern - components are created on
// first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Managers
	txManager database.TxManager

	// Repositories
	configRepo kmsService.CredentialConfigRepository

	// Use cases
	keyUseCase    kmsUsecase.KeyUseCase
	configUseCase kmsUsecase.CredentialConfigUseCase

	// Servers
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                sync.Mutex
	loggerInit        sync.Once
	dbInit            sync.Once
	metricsInit       sync.Once
	txManagerInit     sync.Once
	configRepoInit    sync.Once
	keyUseCaseInit    sync.Once
	configUseCaseInit sync.Once
	metricsServerInit sync.Once
	initErrors        map[string]error
}

// NewContainer creates a new dependency injection container with the provided
// configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
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

// DB returns the database connection.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := c.initDB()
		if err != nil {
			c.initErrors["db"] = err
			return
		}
		c.db = db
	})
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["txManager"] = err
			return
		}
		c.txManager = database.NewTxManager(db)
	})
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are
// disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metrics"] = err
			return
		}
		business, err := metrics.NewBusinessMetrics(
			provider.MeterProvider(), c.config.MetricsNamespace,
		)
		if err != nil {
			c.initErrors["metrics"] = err
			return
		}
		c.metricsProvider = provider
		c.businessMetrics = business
	})
	if storedErr, exists := c.initErrors["metrics"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// CredentialConfigRepository returns the credential-config repository for the
// configured database driver.
func (c *Container) CredentialConfigRepository() (kmsService.CredentialConfigRepository, error) {
	c.configRepoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["configRepo"] = err
			return
		}
		if c.config.DBDriver == "mysql" {
			c.configRepo = kmsRepository.NewMySQLCredentialConfigRepository(db)
			return
		}
		c.configRepo = kmsRepository.NewPostgreSQLCredentialConfigRepository(db)
	})
	if storedErr, exists := c.initErrors["configRepo"]; exists {
		return nil, storedErr
	}
	return c.configRepo, nil
}

// KeyUseCase returns the tenant key-management use case, wrapped with metrics
// when metrics are enabled.
func (c *Container) KeyUseCase() (kmsUsecase.KeyUseCase, error) {
	c.keyUseCaseInit.Do(func() {
		configRepo, err := c.CredentialConfigRepository()
		if err != nil {
			c.initErrors["keyUseCase"] = err
			return
		}

		resolver := kmsService.NewCredentialResolver(configRepo)
		factory := kmsService.NewAWSClientFactory(os.Getenv("AWS_ENDPOINT_URL"))
		aliases := kmsService.NewAliasRegistry(
			c.config.AliasPageSize,
			c.config.ListRateLimitPerSec,
			c.config.ListRateLimitBurst,
		)
		lifecycle := kmsService.NewKeyLifecycleManager(
			aliases,
			kmsService.NewIdentityResolver(),
			c.config.KeyPageSize,
			c.config.ListRateLimitPerSec,
			c.config.ListRateLimitBurst,
		)
		reconciler := kmsService.NewReconciler(
			c.config.AliasPageSize,
			c.config.KeyPageSize,
			c.config.ListRateLimitPerSec,
			c.config.ListRateLimitBurst,
		)

		useCase := kmsUsecase.NewKeyUseCase(
			resolver,
			factory,
			lifecycle,
			kmsService.NewEnvelopeCipher(),
			reconciler,
		)

		if _, err := c.MetricsProvider(); err != nil {
			c.initErrors["keyUseCase"] = err
			return
		}
		if c.businessMetrics != nil {
			useCase = kmsUsecase.NewKeyUseCaseWithMetrics(useCase, c.businessMetrics)
		}

		c.keyUseCase = useCase
	})
	if storedErr, exists := c.initErrors["keyUseCase"]; exists {
		return nil, storedErr
	}
	return c.keyUseCase, nil
}

// CredentialConfigUseCase returns the credential-config management use case.
func (c *Container) CredentialConfigUseCase() (kmsUsecase.CredentialConfigUseCase, error) {
	c.configUseCaseInit.Do(func() {
		configRepo, err := c.CredentialConfigRepository()
		if err != nil {
			c.initErrors["configUseCase"] = err
			return
		}
		c.configUseCase = kmsUsecase.NewCredentialConfigUseCase(configRepo)
	})
	if storedErr, exists := c.initErrors["configUseCase"]; exists {
		return nil, storedErr
	}
	return c.configUseCase, nil
}

// MetricsServer returns the metrics HTTP server instance.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.ServerPort,
			c.Logger(),
			provider,
		)
	})
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown closes all initialized resources.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

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

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
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

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	return database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
}
