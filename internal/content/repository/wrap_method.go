package repository

import (
	cryptoDomain "github.com/allisson/sealfeed/internal/crypto/domain"
	apperrors "github.com/allisson/sealfeed/internal/errors"
)

// parseWrapMethod converts a wrap_method column value, rejecting unknown methods.
func parseWrapMethod(s string) (cryptoDomain.WrapMethod, error) {
	m := cryptoDomain.WrapMethod(s)
	if !m.IsValid() {
		return "", apperrors.Wrapf(cryptoDomain.ErrUnsupportedWrapMethod, "wrap method %q", s)
	}
	return m, nil
}
