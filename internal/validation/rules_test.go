package validation

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/sealfeed/internal/errors"
)

func TestWrapValidationError(t *testing.T) {
	assert.NoError(t, WrapValidationError(nil))

	err := WrapValidationError(errors.New("content: cannot be blank."))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "content: cannot be blank.")
}

func TestNoWhitespace(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{name: "no whitespace", value: "hello", shouldErr: false},
		{name: "inner whitespace", value: "hello world", shouldErr: false},
		{name: "leading whitespace", value: " hello", shouldErr: true},
		{name: "trailing whitespace", value: "hello ", shouldErr: true},
		{name: "trailing newline", value: "hello\n", shouldErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.value, NoWhitespace)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNotBlank(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{name: "text", value: "hello", shouldErr: false},
		{name: "spaces only", value: "   ", shouldErr: true},
		{name: "tabs and newlines", value: "\t\n", shouldErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.value, NotBlank)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUUID(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{name: "valid v4", value: uuid.New().String(), shouldErr: false},
		{name: "valid v7", value: uuid.Must(uuid.NewV7()).String(), shouldErr: false},
		{name: "nil uuid", value: uuid.Nil.String(), shouldErr: true},
		{name: "garbage", value: "user-1", shouldErr: true},
		{name: "empty is left to Required", value: "", shouldErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validation.Validate(tt.value, UUID)
			if tt.shouldErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUniqueStrings(t *testing.T) {
	id := uuid.New().String()

	assert.NoError(t, validation.Validate([]string{id, uuid.New().String()}, UniqueStrings))
	assert.Error(t, validation.Validate([]string{id, id}, UniqueStrings))
	assert.Error(t, validation.Validate(42, UniqueStrings))
}

func TestBase64Key(t *testing.T) {
	rule := Base64Key(8)

	assert.NoError(t, validation.Validate("c2lnbmluZy1rZXk=", rule))
	assert.NoError(t, validation.Validate("", rule))
	assert.Error(t, validation.Validate("c2hvcnQ=", rule))
	assert.Error(t, validation.Validate("not base64!", rule))
	assert.Error(t, validation.Validate(42, rule))
}
