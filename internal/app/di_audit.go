package app

import (
	"fmt"

	auditHTTP "github.com/allisson/sealfeed/internal/audit/http"
	auditRepository "github.com/allisson/sealfeed/internal/audit/repository"
	auditService "github.com/allisson/sealfeed/internal/audit/service"
	auditUseCase "github.com/allisson/sealfeed/internal/audit/usecase"
	"github.com/allisson/sealfeed/internal/database"
)

// AuditSigner returns the audit event signer, or nil when AUDIT_SIGNING_KEY is empty.
func (c *Container) AuditSigner() (auditService.AuditSigner, error) {
	err := c.once(&c.auditSignerInit, "auditSigner", func() error {
		secret, err := c.config.AuditSigningSecret()
		if err != nil {
			return fmt.Errorf("failed to decode audit signing key: %w", err)
		}
		if len(secret) == 0 {
			c.Logger().Warn("audit signing disabled: events will be stored unsigned")
			return nil
		}
		c.auditSigner, err = auditService.NewAuditSigner(secret)
		if err != nil {
			return fmt.Errorf("failed to create audit signer: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.auditSigner, nil
}

// AuditEventRepository returns the audit event repository for the configured driver.
func (c *Container) AuditEventRepository() (auditUseCase.AuditEventRepository, error) {
	err := c.once(&c.auditEventRepoInit, "auditEventRepo", func() error {
		db, err := c.DB()
		if err != nil {
			return fmt.Errorf("failed to get database for audit event repository: %w", err)
		}

		switch c.config.DBDriver {
		case database.DriverPostgres:
			c.auditEventRepo = auditRepository.NewPostgreSQLAuditEventRepository(db)
		case database.DriverMySQL:
			c.auditEventRepo = auditRepository.NewMySQLAuditEventRepository(db)
		default:
			return fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.auditEventRepo, nil
}

// AuditUseCase returns the audit logger.
func (c *Container) AuditUseCase() (auditUseCase.AuditUseCase, error) {
	err := c.once(&c.auditUseCaseInit, "auditUseCase", func() error {
		repo, err := c.AuditEventRepository()
		if err != nil {
			return fmt.Errorf("failed to get audit event repository for audit use case: %w", err)
		}

		signer, err := c.AuditSigner()
		if err != nil {
			return fmt.Errorf("failed to get audit signer for audit use case: %w", err)
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return fmt.Errorf("failed to get business metrics for audit use case: %w", err)
		}

		c.auditUseCase = auditUseCase.NewAuditUseCase(
			repo, signer, businessMetrics, c.Logger(), c.config.AuditWriteTimeout,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.auditUseCase, nil
}

// AuditEventHandler returns the HTTP handler for the audit trail.
func (c *Container) AuditEventHandler() (*auditHTTP.AuditEventHandler, error) {
	useCase, err := c.AuditUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get audit use case for audit event handler: %w", err)
	}
	return auditHTTP.NewAuditEventHandler(useCase, c.Logger()), nil
}
