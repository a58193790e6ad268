package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/allisson/sealfeed/internal/audit/domain"
	cryptoDomain "github.com/allisson/sealfeed/internal/crypto/domain"
)

var errEntropy = errors.New("entropy source unavailable")

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errEntropy
}

func randomKey(t *testing.T) []byte {
	t.Helper()
	key, err := NewKeyGenerator(nil).GenerateContentKey()
	require.NoError(t, err)
	return key
}

var (
	testKeyPairOnce sync.Once
	testKeyPairs    []cryptoDomain.KeyPair
)

// testKeyPair returns one of a few cached key pairs; RSA generation is slow.
func testKeyPair(t *testing.T, i int) cryptoDomain.KeyPair {
	t.Helper()
	testKeyPairOnce.Do(func() {
		gen := NewKeyGenerator(nil)
		for range 3 {
			kp, err := gen.GenerateKeyPair()
			if err != nil {
				panic(err)
			}
			testKeyPairs = append(testKeyPairs, kp)
		}
	})
	return testKeyPairs[i]
}

// mockAuditRecorder is a mock implementation of AuditRecorder
type mockAuditRecorder struct {
	mock.Mock
}

func (m *mockAuditRecorder) Record(
	ctx context.Context,
	action auditDomain.Action,
	resource auditDomain.Resource,
	status auditDomain.EncryptionStatus,
) {
	m.Called(ctx, action, resource, status)
}
