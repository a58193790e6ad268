package domain

import (
	"github.com/allisson/sealfeed/internal/errors"
)

var (
	// ErrAuditWrite is logged and counted when an event cannot be persisted. It is
	// never returned to the caller of the audited operation.
	ErrAuditWrite = errors.New("audit write failed")

	// ErrSignatureInvalid indicates an audit event's signature does not match its content.
	ErrSignatureInvalid = errors.Wrap(errors.ErrConflict, "audit event signature invalid")

	// ErrSignatureMissing indicates an event was written without a signature.
	ErrSignatureMissing = errors.Wrap(errors.ErrConflict, "audit event signature missing")

	// ErrSigningDisabled indicates verification was requested but no signing key is configured.
	ErrSigningDisabled = errors.Wrap(errors.ErrInvalidInput, "audit signing key not configured")
)
