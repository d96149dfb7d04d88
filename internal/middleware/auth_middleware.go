// internal/middleware/auth_middleware.go
package middleware

import (
	"net/http"
	"strings"

	"crm-service/internal/domain/identity"
	"crm-service/internal/pkg/partition"
	"crm-service/internal/pkg/response"
	"crm-service/internal/service/auth"

	"github.com/gin-gonic/gin"
)

const (
	identityContextKey  = "identity"
	partitionContextKey = "partition"
	jtiContextKey       = "jti"
)

type AuthMiddleware struct {
	authService *auth.AuthService
}

func NewAuthMiddleware(authService *auth.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Identify resolves the caller's identity for every request. A missing or
// invalid token is not an error, the request simply proceeds as a guest.
// The resolved identity and its customer partition are stored in the
// request context so handlers never re-derive them.
func (m *AuthMiddleware) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := identity.Guest()

		if token := extractToken(c); token != "" {
			claims, err := m.authService.ValidateToken(c.Request.Context(), token)
			if err == nil {
				id = identity.User(claims.IdentityKey, claims.Email, claims.Roles)
				c.Set(jtiContextKey, claims.ID)
			}
		}

		c.Set(identityContextKey, id)
		c.Set(partitionContextKey, partition.Resolve(id))
		c.Next()
	}
}

// RequireUser rejects guest requests. MUST be used after Identify().
func (m *AuthMiddleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := GetIdentity(c)
		if !id.Authenticated() {
			response.Error(c, http.StatusUnauthorized, "authentication required", nil)
			return
		}
		c.Next()
	}
}

// RequireRole requires the caller to hold at least one of the given roles.
// MUST be used after Identify().
func (m *AuthMiddleware) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := GetIdentity(c)
		if !id.Authenticated() {
			response.Error(c, http.StatusUnauthorized, "authentication required", nil)
			return
		}

		for _, have := range id.Roles {
			for _, want := range roles {
				if have == want {
					c.Next()
					return
				}
			}
		}

		response.Error(c, http.StatusForbidden, "insufficient permissions", nil)
	}
}

// extractToken extracts Bearer token from Authorization header
func extractToken(c *gin.Context) string {
	// Try header first
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}

	// Fallback to query param, the websocket client cannot set headers
	token := c.Query("token")
	if token != "" {
		return token
	}

	return ""
}
