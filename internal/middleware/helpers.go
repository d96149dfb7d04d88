// internal/middleware/helpers.go
package middleware

import (
	"crm-service/internal/domain/identity"

	"github.com/gin-gonic/gin"
)

// GetIdentity returns the identity resolved by Identify(). Requests that
// never passed through the middleware are treated as guests.
func GetIdentity(c *gin.Context) identity.Identity {
	v, exists := c.Get(identityContextKey)
	if !exists {
		return identity.Guest()
	}

	id, ok := v.(identity.Identity)
	if !ok {
		return identity.Guest()
	}
	return id
}

// GetPartition returns the customer partition resolved by Identify().
func GetPartition(c *gin.Context) string {
	v, exists := c.Get(partitionContextKey)
	if !exists {
		return ""
	}

	p, ok := v.(string)
	if !ok {
		return ""
	}
	return p
}

// GetJTI gets the token id of the current session from context.
func GetJTI(c *gin.Context) (string, bool) {
	v, exists := c.Get(jtiContextKey)
	if !exists {
		return "", false
	}

	jti, ok := v.(string)
	return jti, ok
}

// IsAuthenticated checks if the request carries a signed-in identity.
func IsAuthenticated(c *gin.Context) bool {
	return GetIdentity(c).Authenticated()
}
