package domain

import (
	"github.com/allisson/sealfeed/internal/errors"
)

var (
	// ErrPayloadNotFound indicates no payload exists for the content and reader.
	ErrPayloadNotFound = errors.Wrap(errors.ErrNotFound, "encrypted payload not found")

	// ErrIntegrityCheckFailed indicates the stored payload no longer matches its content hash.
	ErrIntegrityCheckFailed = errors.Wrap(errors.ErrInvalidInput, "integrity check failed")

	// ErrInvalidContentType indicates an unknown content type.
	ErrInvalidContentType = errors.Wrap(errors.ErrInvalidInput, "invalid content type")

	// ErrNotContentOwner indicates the caller tried to delete content they do not own.
	ErrNotContentOwner = errors.Wrap(errors.ErrForbidden, "not the content owner")
)

// ErrPayloadAlreadyExists indicates a payload for the same content and recipient was already stored.
var ErrPayloadAlreadyExists = errors.Wrap(errors.ErrConflict, "encrypted payload already exists")
