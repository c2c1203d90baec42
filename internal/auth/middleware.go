package auth

import (
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/mes-platform/production-tracker/pkg/errors"
	"github.com/mes-platform/production-tracker/pkg/middleware"
)

// ContextKeyPrincipal is the gin context key holding the authenticated
// username.
const ContextKeyPrincipal = "principal"

// RequireAuth rejects requests without a valid token and exposes the
// principal on the context. A "Bearer" prefix on the Authorization header is
// accepted but not required.
func RequireAuth(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			middleware.AbortWithAppError(c, apperrors.ErrUnauthorized("missing authorization token"))
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		username, err := svc.Verify(token)
		if err != nil {
			middleware.AbortWithAppError(c, apperrors.ErrUnauthorized("invalid or expired token"))
			return
		}

		c.Set(ContextKeyPrincipal, username)
		c.Next()
	}
}

// Principal returns the authenticated username from the gin context.
func Principal(c *gin.Context) string {
	return c.GetString(ContextKeyPrincipal)
}
