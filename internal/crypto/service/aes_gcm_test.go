package service

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/sealfeed/internal/crypto/domain"
)

func TestAESGCMCipher_Encrypt(t *testing.T) {
	cipher := NewAESGCM(nil)
	key := randomKey(t)

	t.Run("Success", func(t *testing.T) {
		plaintext := []byte("hello followers")

		sealed, err := cipher.Encrypt(plaintext, key)
		require.NoError(t, err)

		assert.Len(t, sealed.Nonce, cryptoDomain.NonceSize)
		assert.Len(t, sealed.AuthTag, cryptoDomain.TagSize)
		assert.Len(t, sealed.Ciphertext, len(plaintext))
		assert.NotEqual(t, plaintext, sealed.Ciphertext)
	})

	t.Run("Success_FreshNonceEachCall", func(t *testing.T) {
		plaintext := []byte("same input")

		first, err := cipher.Encrypt(plaintext, key)
		require.NoError(t, err)
		second, err := cipher.Encrypt(plaintext, key)
		require.NoError(t, err)

		assert.NotEqual(t, first.Nonce, second.Nonce)
		assert.NotEqual(t, first.Ciphertext, second.Ciphertext)
	})

	t.Run("Success_EmptyPlaintext", func(t *testing.T) {
		sealed, err := cipher.Encrypt([]byte{}, key)
		require.NoError(t, err)
		assert.Empty(t, sealed.Ciphertext)
		assert.Len(t, sealed.AuthTag, cryptoDomain.TagSize)
	})

	t.Run("Error_InvalidKeySize", func(t *testing.T) {
		for _, size := range []int{0, 16, 24, 31, 33} {
			_, err := cipher.Encrypt([]byte("data"), make([]byte, size))
			assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize, "size %d", size)
		}
	})

	t.Run("Error_EntropyFailure", func(t *testing.T) {
		_, err := NewAESGCM(failingReader{}).Encrypt([]byte("data"), key)
		assert.ErrorIs(t, err, cryptoDomain.ErrEncryptionFailed)
		assert.ErrorIs(t, err, errEntropy)
	})
}

func TestAESGCMCipher_Decrypt(t *testing.T) {
	cipher := NewAESGCM(nil)
	key := randomKey(t)
	plaintext := bytes.Repeat([]byte("lorem ipsum "), 100)

	seal := func(t *testing.T) cryptoDomain.SealedContent {
		t.Helper()
		sealed, err := cipher.Encrypt(plaintext, key)
		require.NoError(t, err)
		return sealed
	}

	t.Run("Success_RoundTrip", func(t *testing.T) {
		got, err := cipher.Decrypt(seal(t), key)
		require.NoError(t, err)
		assert.Equal(t, plaintext, got)
	})

	t.Run("Success_EmptyPlaintext", func(t *testing.T) {
		sealed, err := cipher.Encrypt(nil, key)
		require.NoError(t, err)

		got, err := cipher.Decrypt(sealed, key)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Error_WrongKey", func(t *testing.T) {
		got, err := cipher.Decrypt(seal(t), randomKey(t))
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
		assert.Nil(t, got)
	})

	t.Run("Error_TamperedCiphertext", func(t *testing.T) {
		sealed := seal(t)
		sealed.Ciphertext[0] ^= 0x01

		got, err := cipher.Decrypt(sealed, key)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
		assert.Nil(t, got)
	})

	t.Run("Error_TamperedTag", func(t *testing.T) {
		sealed := seal(t)
		sealed.AuthTag[cryptoDomain.TagSize-1] ^= 0x80

		_, err := cipher.Decrypt(sealed, key)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("Error_TamperedNonce", func(t *testing.T) {
		sealed := seal(t)
		sealed.Nonce[0] ^= 0x01

		_, err := cipher.Decrypt(sealed, key)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("Error_BadLengths", func(t *testing.T) {
		sealed := seal(t)

		short := sealed
		short.Nonce = sealed.Nonce[:12]
		_, err := cipher.Decrypt(short, key)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)

		short = sealed
		short.AuthTag = sealed.AuthTag[:8]
		_, err = cipher.Decrypt(short, key)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)

		_, err = cipher.Decrypt(sealed, key[:16])
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})
}
