package app

import (
	"fmt"

	cryptoHTTP "github.com/allisson/sealfeed/internal/crypto/http"
	cryptoRepository "github.com/allisson/sealfeed/internal/crypto/repository"
	cryptoService "github.com/allisson/sealfeed/internal/crypto/service"
	cryptoUseCase "github.com/allisson/sealfeed/internal/crypto/usecase"
	"github.com/allisson/sealfeed/internal/database"
)

// SymmetricCipher returns the AES-256-GCM cipher.
func (c *Container) SymmetricCipher() cryptoService.SymmetricCipher {
	c.symmetricInit.Do(func() {
		c.symmetric = cryptoService.NewAESGCM(nil)
	})
	return c.symmetric
}

// KeyGenerator returns the RSA and content key generator.
func (c *Container) KeyGenerator() cryptoService.KeyGenerator {
	c.keyGeneratorInit.Do(func() {
		c.keyGenerator = cryptoService.NewKeyGenerator(nil)
	})
	return c.keyGenerator
}

// IntegrityHasher returns the hasher used for stored payload hashes.
func (c *Container) IntegrityHasher() cryptoService.IntegrityHasher {
	c.integrityInit.Do(func() {
		c.integrityCheck = cryptoService.NewSHA256Hasher()
	})
	return c.integrityCheck
}

// KeySealer returns the KMS sealer for stored key material, or a no-op sealer when no
// KEY_SEALER_URI is configured.
func (c *Container) KeySealer() (cryptoService.KeySealer, error) {
	err := c.once(&c.keySealerInit, "keySealer", func() error {
		sealer, err := cryptoService.OpenKeySealer(c.lifecycle, c.config.KeySealerURI)
		if err != nil {
			return fmt.Errorf("failed to open key sealer: %w", err)
		}
		c.keySealer = sealer
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.keySealer, nil
}

// UserKeysRepository returns the user keys repository for the configured driver.
func (c *Container) UserKeysRepository() (cryptoUseCase.UserKeysRepository, error) {
	err := c.once(&c.userKeysRepoInit, "userKeysRepo", func() error {
		db, err := c.DB()
		if err != nil {
			return fmt.Errorf("failed to get database for user keys repository: %w", err)
		}

		switch c.config.DBDriver {
		case database.DriverPostgres:
			c.userKeysRepo = cryptoRepository.NewPostgreSQLUserKeysRepository(db)
		case database.DriverMySQL:
			c.userKeysRepo = cryptoRepository.NewMySQLUserKeysRepository(db)
		default:
			return fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.userKeysRepo, nil
}

// KeyUseCase returns the key manager wrapped with metrics.
func (c *Container) KeyUseCase() (cryptoUseCase.KeyUseCase, error) {
	err := c.once(&c.keyUseCaseInit, "keyUseCase", func() error {
		repo, err := c.UserKeysRepository()
		if err != nil {
			return fmt.Errorf("failed to get user keys repository for key use case: %w", err)
		}

		sealer, err := c.KeySealer()
		if err != nil {
			return fmt.Errorf("failed to get key sealer for key use case: %w", err)
		}

		recorder, err := c.AuditUseCase()
		if err != nil {
			return fmt.Errorf("failed to get audit use case for key use case: %w", err)
		}

		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return fmt.Errorf("failed to get business metrics for key use case: %w", err)
		}

		useCase := cryptoUseCase.NewKeyUseCase(repo, c.KeyGenerator(), sealer, recorder)
		c.keyUseCase = cryptoUseCase.NewKeyUseCaseWithMetrics(useCase, businessMetrics)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.keyUseCase, nil
}

// MessageCodec returns the hybrid codec. Every encrypt and decrypt it performs is audited.
func (c *Container) MessageCodec() (cryptoService.MessageCodec, error) {
	err := c.once(&c.messageCodecInit, "messageCodec", func() error {
		recorder, err := c.AuditUseCase()
		if err != nil {
			return fmt.Errorf("failed to get audit use case for message codec: %w", err)
		}

		cipher := c.SymmetricCipher()
		c.messageCodec = cryptoService.NewHybridCodec(
			cipher,
			c.KeyGenerator(),
			cryptoService.NewRSAOAEPWrapper(nil),
			cryptoService.NewOwnerKeyWrapper(cipher),
			recorder,
			c.config.CodecWrapConcurrency,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.messageCodec, nil
}

// KeyHandler returns the HTTP handler for user keys.
func (c *Container) KeyHandler() (*cryptoHTTP.KeyHandler, error) {
	keyUseCase, err := c.KeyUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get key use case for key handler: %w", err)
	}
	return cryptoHTTP.NewKeyHandler(keyUseCase, c.Logger()), nil
}
