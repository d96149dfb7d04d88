// internal/pkg/partition/partition_test.go
package partition

import (
	"testing"

	"crm-service/internal/domain/identity"

	"github.com/stretchr/testify/assert"
)

func TestResolveGuest(t *testing.T) {
	assert.Equal(t, "customers_public", Resolve(identity.Guest()))
	// Constant across calls.
	assert.Equal(t, Resolve(identity.Guest()), Resolve(identity.Guest()))
}

func TestResolveAuthenticated(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{"plain key", "01JABCDEF", "customers_01JABCDEF"},
		{"email key", "ana.li@example.com", "customers_ana_li_example_com"},
		{"special chars", "a+b/c d", "customers_a_b_c_d"},
		{"empty key falls back", "", "customers_user"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := identity.User(tt.key, "", nil)
			assert.Equal(t, tt.want, Resolve(id))
		})
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	id := identity.User("user@example.com", "user@example.com", nil)
	assert.Equal(t, Resolve(id), Resolve(id))
}

func TestResolveDistinctKeys(t *testing.T) {
	a := Resolve(identity.User("alice@example.com", "", nil))
	b := Resolve(identity.User("bob@example.com", "", nil))
	assert.NotEqual(t, a, b)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "abc123", Sanitize("abc123"))
	assert.Equal(t, "a_b_c", Sanitize("a.b.c"))
	assert.Equal(t, "user", Sanitize(""))
	assert.Equal(t, "___", Sanitize("äöü"))
}
