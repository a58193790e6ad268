// Package validation provides custom validation rules for the application.
package validation

import (
	"encoding/base64"
	"strings"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/sealfeed/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// UUID validates that a string is a non-nil UUID.
var UUID = validation.NewStringRuleWithError(
	func(s string) bool {
		id, err := uuid.Parse(s)
		return err == nil && id != uuid.Nil
	},
	validation.NewError("validation_uuid", "must be a valid UUID"),
)

// UniqueStrings validates that a string slice has no duplicates.
var UniqueStrings = validation.By(func(value interface{}) error {
	values, ok := value.([]string)
	if !ok {
		return validation.NewError("validation_unique_type", "must be a list of strings")
	}
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		key := strings.ToLower(v)
		if _, ok := seen[key]; ok {
			return validation.NewError("validation_unique", "must not contain duplicates")
		}
		seen[key] = struct{}{}
	}
	return nil
})

// Base64Key validates that a string is standard base64 decoding to at least minBytes.
// Empty strings are left to Required.
func Base64Key(minBytes int) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, ok := value.(string)
		if !ok {
			return validation.NewError("validation_base64_type", "must be a string")
		}
		if s == "" {
			return nil
		}
		decoded, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return validation.NewError("validation_base64", "must be valid base64-encoded data")
		}
		if len(decoded) < minBytes {
			return validation.NewError("validation_base64_length", "decoded key is too short")
		}
		return nil
	})
}
