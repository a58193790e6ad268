// Package http provides HTTP handlers for reading and verifying the audit trail.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/sealfeed/internal/audit/http/dto"
	auditUseCase "github.com/allisson/sealfeed/internal/audit/usecase"
	authHTTP "github.com/allisson/sealfeed/internal/auth/http"
	apperrors "github.com/allisson/sealfeed/internal/errors"
	"github.com/allisson/sealfeed/internal/httputil"
)

// AuditEventHandler handles HTTP requests for audit event operations.
type AuditEventHandler struct {
	auditUseCase auditUseCase.AuditUseCase
	logger       *slog.Logger
}

// NewAuditEventHandler creates a new audit event handler with required dependencies.
func NewAuditEventHandler(auditUseCase auditUseCase.AuditUseCase, logger *slog.Logger) *AuditEventHandler {
	return &AuditEventHandler{
		auditUseCase: auditUseCase,
		logger:       logger,
	}
}

// ListHandler retrieves the caller's audit events with pagination support.
// GET /v1/audit-events?offset=0&limit=50 - Returns 200 OK ordered by created_at descending.
func (h *AuditEventHandler) ListHandler(c *gin.Context) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	events, err := h.auditUseCase.List(c.Request.Context(), userID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAuditEventsToListResponse(events))
}

// VerifyHandler checks the signature of every audit event of the caller.
// GET /v1/audit-events/verify - Returns 200 OK with the summary, or 422 when signing is disabled.
func (h *AuditEventHandler) VerifyHandler(c *gin.Context) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	result, err := h.auditUseCase.Verify(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapVerificationResultToResponse(result))
}
