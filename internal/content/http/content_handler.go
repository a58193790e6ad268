// Package http provides HTTP handlers for encrypted content.
// Content is encrypted before it is stored and decrypted only for its recipients;
// readers who cannot decrypt get the placeholder text instead of an error.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/sealfeed/internal/auth/http"
	contentDomain "github.com/allisson/sealfeed/internal/content/domain"
	"github.com/allisson/sealfeed/internal/content/http/dto"
	contentUseCase "github.com/allisson/sealfeed/internal/content/usecase"
	apperrors "github.com/allisson/sealfeed/internal/errors"
	"github.com/allisson/sealfeed/internal/httputil"
	customValidation "github.com/allisson/sealfeed/internal/validation"
)

// maxFeedItems bounds a batch read.
const maxFeedItems = 100

// Limits bounds request sizes accepted by the content API.
type Limits struct {
	MaxContentBytes int
	MaxRecipients   int
}

// ContentHandler handles HTTP requests for encrypted content.
type ContentHandler struct {
	contentUseCase contentUseCase.ContentUseCase
	limits         Limits
	logger         *slog.Logger
}

// NewContentHandler creates a new content handler with required dependencies.
func NewContentHandler(
	contentUseCase contentUseCase.ContentUseCase,
	limits Limits,
	logger *slog.Logger,
) *ContentHandler {
	return &ContentHandler{
		contentUseCase: contentUseCase,
		limits:         limits,
		logger:         logger,
	}
}

// CreateHandler encrypts and stores new content for the caller.
// POST /v1/content/:type - posts and comments are single-owner; chat messages require
// recipient_ids and always include the caller. Returns 201 Created with the content id and
// the recipients who could not be served.
func (h *ContentHandler) CreateHandler(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	contentType, ok := h.parseContentType(c)
	if !ok {
		return
	}

	var req dto.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(contentType, h.limits.MaxContentBytes, h.limits.MaxRecipients); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	var result *contentDomain.CreateResult
	var err error
	if contentType.IsMultiRecipient() {
		result, err = h.contentUseCase.CreateEncryptedForRecipients(
			c.Request.Context(), contentType, req.Content, userID, req.ParsedRecipientIDs(),
		)
	} else {
		result, err = h.contentUseCase.CreateEncrypted(c.Request.Context(), contentType, req.Content, userID)
	}
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCreateResultToResponse(result))
}

// GetHandler decrypts one content entity for the caller.
// GET /v1/content/:type/:id - Returns 200 OK with the plaintext, or with the placeholder
// text when the caller cannot read it.
func (h *ContentHandler) GetHandler(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	ref, ok := h.parseContentRef(c)
	if !ok {
		return
	}

	content, err := h.contentUseCase.ReadDecrypted(c.Request.Context(), ref, userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapContentToResponse(ref, content))
}

// ReadFeedHandler decrypts a batch of content entities in request order.
// POST /v1/feed - Items the caller cannot read carry the placeholder text.
func (h *ContentHandler) ReadFeedHandler(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	var req dto.ReadFeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(maxFeedItems); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	refs := make([]contentDomain.ContentRef, 0, len(req.Items))
	for _, item := range req.Items {
		refs = append(refs, item.ToDomain())
	}

	contents, err := h.contentUseCase.ReadManyDecrypted(c.Request.Context(), refs, userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapFeedToResponse(refs, contents))
}

// DeleteHandler removes every payload of the content.
// DELETE /v1/content/:type/:id - Only the owner may delete. Returns 204 No Content.
func (h *ContentHandler) DeleteHandler(c *gin.Context) {
	userID, ok := h.requireUser(c)
	if !ok {
		return
	}

	ref, ok := h.parseContentRef(c)
	if !ok {
		return
	}

	ownerID, err := h.contentUseCase.GetOwner(c.Request.Context(), ref)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}
	if ownerID != userID {
		httputil.HandleErrorGin(c, contentDomain.ErrNotContentOwner, h.logger)
		return
	}

	if err := h.contentUseCase.Delete(c.Request.Context(), ref); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ContentHandler) requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return uuid.Nil, false
	}
	return userID, true
}

func (h *ContentHandler) parseContentType(c *gin.Context) (contentDomain.ContentType, bool) {
	contentType := contentDomain.ContentType(c.Param("type"))
	if !contentType.IsValid() {
		httputil.HandleValidationErrorGin(
			c,
			fmt.Errorf("invalid content type: must be one of post, comment, chat_message"),
			h.logger,
		)
		return "", false
	}
	return contentType, true
}

func (h *ContentHandler) parseContentRef(c *gin.Context) (contentDomain.ContentRef, bool) {
	contentType, ok := h.parseContentType(c)
	if !ok {
		return contentDomain.ContentRef{}, false
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleValidationErrorGin(c, fmt.Errorf("invalid content id: must be a valid UUID"), h.logger)
		return contentDomain.ContentRef{}, false
	}
	return contentDomain.ContentRef{Type: contentType, ID: id}, true
}
