// middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sidhant-sriv/home-maintenance-api/apperr"
	"github.com/sidhant-sriv/home-maintenance-api/auth"
)

const (
	userKey   = "user"
	userIDKey = "user_id"
)

// AuthMiddleware verifies the bearer token on every request and stores the
// caller's identity in the gin context.
func AuthMiddleware(verifier auth.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get the Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Not authenticated")
			return
		}

		// Check if Authorization header has the right format
		scheme, token, ok := strings.Cut(strings.TrimSpace(authHeader), " ")
		token = strings.TrimSpace(token)
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
			abortUnauthorized(c, "Invalid authentication scheme")
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			_ = c.Error(err)
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(userKey, identity)
		c.Set(userIDKey, identity.ID)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	err := apperr.Unauthenticated("%s", message)
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(err.Code.HTTPStatus(), gin.H{
		"error": err.Message,
		"code":  err.Code,
	})
}

// GetUser returns the identity stored by AuthMiddleware, or nil.
func GetUser(c *gin.Context) *auth.Identity {
	v, exists := c.Get(userKey)
	if !exists {
		return nil
	}
	identity, _ := v.(*auth.Identity)
	return identity
}

// GetUserID retrieves the authenticated user ID from the Gin context
func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
