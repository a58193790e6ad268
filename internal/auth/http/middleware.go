package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	auditDomain "github.com/allisson/sealfeed/internal/audit/domain"
	apperrors "github.com/allisson/sealfeed/internal/errors"
	"github.com/allisson/sealfeed/internal/httputil"
)

// UserIDHeader carries the user identified by the upstream wallet-login gateway.
const UserIDHeader = "X-User-ID"

// IdentityMiddleware identifies the caller from the UserIDHeader set by the gateway.
//
// The middleware:
// 1. Parses the header as a UUID
// 2. Stores the user ID in the request context (GetUserID)
// 3. Stores the audit actor (user, client IP, user agent) in the request context so that
// every audit event recorded while serving the request carries them
//
// Error handling:
//   - Missing header → 401 Unauthorized
//   - Malformed or nil UUID → 401 Unauthorized
func IdentityMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if header == "" {
			logger.Debug("identification failed: missing user header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		userID, err := uuid.Parse(header)
		if err != nil || userID == uuid.Nil {
			logger.Debug("identification failed: malformed user header", slog.String("header", header))
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		ctx := WithUserID(c.Request.Context(), userID)
		ctx = auditDomain.WithActor(ctx, auditDomain.Actor{
			UserID:    userID,
			IPAddress: c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
