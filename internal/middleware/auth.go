package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/maryrl/loja-fullstack/internal/apperrors"
	"github.com/maryrl/loja-fullstack/internal/models"
	"go.uber.org/zap"
)

// CurrentUserKey is the gin context key holding the authenticated user.
const CurrentUserKey = "currentUser"

// Authenticator resolves a bearer token to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(authn Authenticator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			apperrors.Respond(c, logger, apperrors.ErrUnauthorized)
			return
		}

		user, err := authn.Authenticate(c.Request.Context(), token)
		if err != nil {
			apperrors.Respond(c, logger, err)
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// OptionalAuth attaches the user when a valid token is present and lets
// the request through either way.
func OptionalAuth(authn Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if user, err := authn.Authenticate(c.Request.Context(), token); err == nil {
				c.Set(CurrentUserKey, user)
			}
		}
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func RequireAdmin(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			apperrors.Respond(c, logger, apperrors.ErrUnauthorized)
			return
		}
		if !user.IsAdmin {
			apperrors.Respond(c, logger, apperrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
