package app

import (
	"fmt"

	contentHTTP "github.com/allisson/sealfeed/internal/content/http"
	contentRepository "github.com/allisson/sealfeed/internal/content/repository"
	contentUseCase "github.com/allisson/sealfeed/internal/content/usecase"
	"github.com/allisson/sealfeed/internal/database"
)

// EncryptedPayloadRepository returns the payload repository for the configured driver.
func (c *Container) EncryptedPayloadRepository() (contentUseCase.EncryptedPayloadRepository, error) {
	err := c.once(&c.payloadRepoInit, "payloadRepo", func() error {
		db, err := c.DB()
		if err != nil {
			return fmt.Errorf("failed to get database for encrypted payload repository: %w", err)
		}

		switch c.config.DBDriver {
		case database.DriverPostgres:
			c.payloadRepo = contentRepository.NewPostgreSQLEncryptedPayloadRepository(db)
		case database.DriverMySQL:
			c.payloadRepo = contentRepository.NewMySQLEncryptedPayloadRepository(db)
		default:
			return fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.payloadRepo, nil
}

// ContentUseCase returns the secure content store wrapped with metrics.
func (c *Container) ContentUseCase() (contentUseCase.ContentUseCase, error) {
	err := c.once(&c.contentUseCaseInit, "contentUseCase", func() error {
		txManager, err := c.TxManager()
		if err != nil {
			return fmt.Errorf("failed to get tx manager for content use case: %w", err)
		}

		repo, err := c.EncryptedPayloadRepository()
		if err != nil {
			return fmt.Errorf("failed to get encrypted payload repository for content use case: %w", err)
		}

		keyUseCase, err := c.KeyUseCase()
		if err != nil {
			return fmt.Errorf("failed to get key use case for content use case: %w", err)
		}

		codec, err := c.MessageCodec()
		if err != nil {
			return fmt.Errorf("failed to get message codec for content use case: %w", err)
		}

		recorder, err := c.AuditUseCase()
		if err != nil {
			return fmt.Errorf("failed to get audit use case for content use case: %w", err)
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return fmt.Errorf("failed to get business metrics for content use case: %w", err)
		}

		useCase := contentUseCase.NewContentUseCase(
			txManager,
			repo,
			keyUseCase,
			codec,
			c.IntegrityHasher(),
			recorder,
			c.Logger(),
			c.config.ContentPlaceholderText,
		)
		c.contentUseCase = contentUseCase.NewContentUseCaseWithMetrics(useCase, businessMetrics)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.contentUseCase, nil
}

// ContentHandler returns the HTTP handler for encrypted content.
func (c *Container) ContentHandler() (*contentHTTP.ContentHandler, error) {
	useCase, err := c.ContentUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get content use case for content handler: %w", err)
	}
	return contentHTTP.NewContentHandler(useCase, contentHTTP.Limits{
		MaxContentBytes: c.config.ContentMaxBytes,
		MaxRecipients:   c.config.ChatMaxRecipients,
	}, c.Logger()), nil
}
