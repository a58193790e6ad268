package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/sealfeed/internal/crypto/domain"
)

// generateLocalSecretsURI generates a base64key:// URI for testing.
func generateLocalSecretsURI(t *testing.T) string {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return "base64key://" + base64.URLEncoding.EncodeToString(key)
}

func openTestSealer(t *testing.T, uri string) *KMSKeySealer {
	t.Helper()
	sealer, err := OpenKeySealer(context.Background(), uri)
	require.NoError(t, err)
	kms, ok := sealer.(*KMSKeySealer)
	require.True(t, ok, "sealer should be *KMSKeySealer")
	t.Cleanup(func() {
		assert.NoError(t, kms.Close())
	})
	return kms
}

func TestOpenKeySealer(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_LocalSecrets", func(t *testing.T) {
		openTestSealer(t, generateLocalSecretsURI(t))
	})

	t.Run("Success_EmptyURIIsNoop", func(t *testing.T) {
		sealer, err := OpenKeySealer(ctx, "")
		require.NoError(t, err)
		assert.IsType(t, NoopKeySealer{}, sealer)
	})

	t.Run("Error_InvalidURI", func(t *testing.T) {
		sealer, err := OpenKeySealer(ctx, "invalid://uri")
		assert.Error(t, err)
		assert.Nil(t, sealer)
		assert.Contains(t, err.Error(), "failed to open KMS keeper")
	})
}

func TestKMSKeySealer_SealOpen(t *testing.T) {
	ctx := context.Background()
	sealer := openTestSealer(t, generateLocalSecretsURI(t))
	kp := testKeyPair(t, 0)

	testCases := []struct {
		name      string
		plaintext []byte
	}{
		{name: "SymmetricKey", plaintext: make([]byte, cryptoDomain.KeySize)},
		{name: "PrivateKey", plaintext: []byte(kp.PrivateKey)},
		{name: "BinaryData", plaintext: []byte{0x00, 0x01, 0xFF, 0xFE}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sealed, err := sealer.Seal(ctx, tc.plaintext)
			require.NoError(t, err)
			assert.NotEqual(t, tc.plaintext, sealed)

			opened, err := sealer.Open(ctx, sealed)
			require.NoError(t, err)
			assert.Equal(t, tc.plaintext, opened)
		})
	}

	t.Run("Error_InvalidCiphertext", func(t *testing.T) {
		opened, err := sealer.Open(ctx, []byte("not a valid ciphertext"))
		assert.ErrorIs(t, err, cryptoDomain.ErrKeySealing)
		assert.Nil(t, opened)
	})

	t.Run("Error_DifferentKeeper", func(t *testing.T) {
		other := openTestSealer(t, generateLocalSecretsURI(t))

		sealed, err := sealer.Seal(ctx, []byte("test data"))
		require.NoError(t, err)

		_, err = other.Open(ctx, sealed)
		assert.ErrorIs(t, err, cryptoDomain.ErrKeySealing)
	})
}

func TestNoopKeySealer(t *testing.T) {
	ctx := context.Background()
	data := []byte("plain")

	sealed, err := NoopKeySealer{}.Seal(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, data, sealed)

	opened, err := NoopKeySealer{}.Open(ctx, sealed)
	require.NoError(t, err)
	assert.Equal(t, data, opened)
}
