// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/sealfeed/internal/errors"
)

// Error codes returned in ErrorResponse.Error.
const (
	CodeNotFound          = "not_found"
	CodeConflict          = "conflict"
	CodeInvalidInput      = "invalid_input"
	CodeIdentityRequired  = "identity_required"
	CodeNotOwner          = "not_owner"
	CodeCryptoUnavailable = "crypto_unavailable"
	CodeInternal          = "internal_error"
	CodeBadRequest        = "bad_request"
	CodeValidation        = "validation_error"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// errorMapping is the response for errors wrapping sentinel. An empty message means
// the error text itself is returned.
type errorMapping struct {
	sentinel error
	status   int
	code     string
	message  string
}

// errorMappings is matched in order; the first sentinel found in the chain wins.
var errorMappings = []errorMapping{
	{apperrors.ErrNotFound, http.StatusNotFound, CodeNotFound,
		"No content, key or audit record matches the request"},
	{apperrors.ErrConflict, http.StatusConflict, CodeConflict,
		"The request conflicts with stored keys or audit records"},
	{apperrors.ErrInvalidInput, http.StatusUnprocessableEntity, CodeInvalidInput, ""},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, CodeIdentityRequired,
		"A valid user identity is required"},
	{apperrors.ErrForbidden, http.StatusForbidden, CodeNotOwner,
		"Only the content owner may perform this request"},
	{apperrors.ErrUnavailable, http.StatusServiceUnavailable, CodeCryptoUnavailable,
		"Key material or ciphers are temporarily unavailable"},
}

var internalError = errorMapping{
	status:  http.StatusInternalServerError,
	code:    CodeInternal,
	message: "An internal error occurred",
}

func mapError(err error) (int, ErrorResponse) {
	m := internalError
	for _, candidate := range errorMappings {
		if apperrors.Is(err, candidate.sentinel) {
			m = candidate
			break
		}
	}

	message := m.message
	if message == "" {
		message = err.Error()
	}
	return m.status, ErrorResponse{Error: m.code, Message: message}
}

// HandleErrorGin maps domain errors to HTTP status codes and writes a JSON response.
// Errors outside the known sentinels become a 500 without details.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	statusCode, errorResponse := mapError(err)

	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", errorResponse.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, errorResponse)
}

// AbortWithInternalErrorGin aborts the chain with the generic 500 response.
func AbortWithInternalErrorGin(c *gin.Context) {
	c.AbortWithStatusJSON(internalError.status, ErrorResponse{
		Error:   internalError.code,
		Message: internalError.message,
	})
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{Error: CodeBadRequest, Message: err.Error()})
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity response for validation errors.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: CodeValidation, Message: err.Error()})
}
