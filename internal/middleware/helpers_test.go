// internal/middleware/helpers_test.go
package middleware

import (
	"net/http/httptest"
	"testing"

	"crm-service/internal/domain/identity"
	"crm-service/internal/pkg/partition"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(t *testing.T) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	return c
}

func TestGetIdentityDefaultsToGuest(t *testing.T) {
	c := testContext(t)

	id := GetIdentity(c)
	assert.Equal(t, identity.ModeGuest, id.Mode)
	assert.False(t, id.Authenticated())
	assert.False(t, IsAuthenticated(c))
}

func TestGetIdentityReturnsStoredIdentity(t *testing.T) {
	c := testContext(t)

	id := identity.User("01ARZ3NDEKTSV4RRFFQ69G5FAV", "a@example.com", []string{"user"})
	c.Set(identityContextKey, id)
	c.Set(partitionContextKey, partition.Resolve(id))

	got := GetIdentity(c)
	assert.Equal(t, id, got)
	assert.True(t, IsAuthenticated(c))
	assert.Equal(t, "customers_01ARZ3NDEKTSV4RRFFQ69G5FAV", GetPartition(c))
}

func TestGetJTIMissing(t *testing.T) {
	c := testContext(t)

	jti, ok := GetJTI(c)
	assert.False(t, ok)
	assert.Empty(t, jti)
}
