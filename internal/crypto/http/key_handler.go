// Package http provides HTTP handlers for user key material.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/sealfeed/internal/auth/http"
	"github.com/allisson/sealfeed/internal/crypto/http/dto"
	cryptoUseCase "github.com/allisson/sealfeed/internal/crypto/usecase"
	apperrors "github.com/allisson/sealfeed/internal/errors"
	"github.com/allisson/sealfeed/internal/httputil"
)

// KeyHandler handles HTTP requests for user keys.
type KeyHandler struct {
	keyUseCase cryptoUseCase.KeyUseCase
	logger     *slog.Logger
}

// NewKeyHandler creates a new key handler with required dependencies.
func NewKeyHandler(keyUseCase cryptoUseCase.KeyUseCase, logger *slog.Logger) *KeyHandler {
	return &KeyHandler{
		keyUseCase: keyUseCase,
		logger:     logger,
	}
}

// GetPublicKeyHandler returns the caller's public key, provisioning keys on first use.
// GET /v1/keys/me/public - Private and symmetric keys never leave the server.
func (h *KeyHandler) GetPublicKeyHandler(c *gin.Context) {
	userID, ok := authHTTP.GetUserID(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	keys, err := h.keyUseCase.GetOrCreateUserKeys(c.Request.Context(), userID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapKeyPairToPublicKeyResponse(userID, keys))
}
