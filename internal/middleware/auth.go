package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/qbankhq/qbank-backend/internal/response"
	"github.com/qbankhq/qbank-backend/internal/service"
)

const (
	// ContextKeyIdentity is the Gin context key for the verified caller
	// identity.
	ContextKeyIdentity = "identity"
)

// RequireAuth validates the bearer credential from the Authorization header
// against the external identity provider's signing key and stores the
// verified identity on the context.
func RequireAuth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractBearer(c)
		if tokenStr == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		identity, err := authService.VerifyToken(tokenStr)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		c.Set(ContextKeyIdentity, identity)
		c.Next()
	}
}

// GetIdentity retrieves the verified identity from the Gin context. Returns
// nil when RequireAuth did not run on this route.
func GetIdentity(c *gin.Context) *service.Identity {
	val, exists := c.Get(ContextKeyIdentity)
	if !exists {
		return nil
	}
	identity, ok := val.(*service.Identity)
	if !ok {
		return nil
	}
	return identity
}

func extractBearer(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
