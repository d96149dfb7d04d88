// internal/domain/customer/normalize_test.go
package customer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatusDefaults(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]interface{}
		want Status
	}{
		{"missing status", map[string]interface{}{}, StatusActive},
		{"explicit active", map[string]interface{}{"status": "active"}, StatusActive},
		{"explicit inactive", map[string]interface{}{"status": "inactive"}, StatusInactive},
		{"unknown value", map[string]interface{}{"status": "archived"}, StatusActive},
		{"null status", map[string]interface{}{"status": nil}, StatusActive},
		{"wrong type", map[string]interface{}{"status": 7}, StatusActive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize("x", tt.raw).Status)
		})
	}
}

func TestNormalizeTimestamps(t *testing.T) {
	t.Run("missing timestamps default to zero", func(t *testing.T) {
		c := Normalize("x", map[string]interface{}{})
		assert.Equal(t, int64(0), c.CreatedAt)
		assert.Equal(t, int64(0), c.UpdatedAt)
	})

	t.Run("non-numeric createdAt defaults to zero", func(t *testing.T) {
		c := Normalize("x", map[string]interface{}{"createdAt": "yesterday"})
		assert.Equal(t, int64(0), c.CreatedAt)
	})

	t.Run("missing updatedAt falls back to createdAt", func(t *testing.T) {
		c := Normalize("x", map[string]interface{}{"createdAt": float64(1700000000000)})
		assert.Equal(t, int64(1700000000000), c.CreatedAt)
		assert.Equal(t, c.CreatedAt, c.UpdatedAt)
	})

	t.Run("wrong-typed updatedAt falls back to createdAt", func(t *testing.T) {
		c := Normalize("x", map[string]interface{}{
			"createdAt": float64(1700000000000),
			"updatedAt": "later",
		})
		assert.Equal(t, c.CreatedAt, c.UpdatedAt)
	})

	t.Run("numeric timestamps pass through", func(t *testing.T) {
		c := Normalize("x", map[string]interface{}{
			"createdAt": float64(1700000000000),
			"updatedAt": float64(1700000001000),
		})
		assert.Equal(t, int64(1700000000000), c.CreatedAt)
		assert.Equal(t, int64(1700000001000), c.UpdatedAt)
	})
}

func TestNormalizeFieldsPassThrough(t *testing.T) {
	c := Normalize("abc", map[string]interface{}{
		"type":        "company",
		"companyName": "Acme",
		"country":     "DE",
		"email":       "info@acme.example",
	})
	assert.Equal(t, "abc", c.ID)
	assert.Equal(t, TypeCompany, c.Type)
	assert.Equal(t, "Acme", c.CompanyName)
	assert.Equal(t, "DE", c.Country)
	assert.Equal(t, "info@acme.example", c.Email)
	assert.Empty(t, c.FirstName)
}

func TestNormalizeNeverPanics(t *testing.T) {
	assert.NotPanics(t, func() {
		Normalize("x", nil)
		Normalize("x", map[string]interface{}{
			"type":      []string{"company"},
			"firstName": 12,
			"createdAt": map[string]interface{}{"seconds": 1},
		})
	})
}
