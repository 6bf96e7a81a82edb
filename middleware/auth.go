package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"feedboard/apierror"
	"feedboard/token"
)

// UserIDKey is the gin context key holding the authenticated user's id.
const UserIDKey = "userId"

// RequireAuth is the single authorization gate for protected routes. It
// extracts the bearer token, verifies it and attaches the resolved user
// identity to the request context; no further business logic happens here.
func RequireAuth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abort(c, "not authenticated")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abort(c, "invalid authorization header")
			return
		}

		claims, err := tokens.Verify(parts[1])
		if err != nil {
			abort(c, "not authenticated")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Next()
	}
}

func abort(c *gin.Context, message string) {
	c.Error(apierror.Unauthenticated(message))
	c.Abort()
}
