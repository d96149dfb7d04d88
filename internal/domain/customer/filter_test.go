// internal/domain/customer/filter_test.go
package customer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sampleRecords() []Customer {
	return []Customer{
		{ID: "1", Type: TypeCompany, CompanyName: "Acme", Status: StatusActive, Country: "DE"},
		{ID: "2", Type: TypePrivate, FirstName: "Ana", LastName: "Li", Status: StatusInactive, Country: "FR"},
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Acme", DisplayName(Customer{Type: TypeCompany, CompanyName: "Acme"}))
	assert.Equal(t, "Ana Li", DisplayName(Customer{Type: TypePrivate, FirstName: "Ana", LastName: "Li"}))
	assert.Equal(t, "Ana", DisplayName(Customer{Type: TypePrivate, FirstName: "Ana"}))
	// Missing both names collapses to empty, which matches the empty search.
	assert.Equal(t, "", DisplayName(Customer{Type: TypePrivate}))
}

func TestFilterSearch(t *testing.T) {
	got := Filter(sampleRecords(), ListFilters{Search: "ac"})
	assert.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	// Case-insensitive
	got = Filter(sampleRecords(), ListFilters{Search: "ANA"})
	assert.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	// Empty search matches everything
	assert.Len(t, Filter(sampleRecords(), ListFilters{}), 2)
}

func TestFilterStatus(t *testing.T) {
	got := Filter(sampleRecords(), ListFilters{Status: "active"})
	assert.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)

	// A record with no stored status counts as active.
	records := append(sampleRecords(), Customer{ID: "3", Type: TypePrivate})
	got = Filter(records, ListFilters{Status: "active"})
	assert.Len(t, got, 2)
}

func TestFilterCountry(t *testing.T) {
	got := Filter(sampleRecords(), ListFilters{Country: "FR"})
	assert.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	// Exact, case-sensitive match
	assert.Empty(t, Filter(sampleRecords(), ListFilters{Country: "fr"}))
	assert.Len(t, Filter(sampleRecords(), ListFilters{Country: "all"}), 2)
}

func TestFilterType(t *testing.T) {
	got := Filter(sampleRecords(), ListFilters{Type: "company"})
	assert.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestFiltersAreConjunctive(t *testing.T) {
	got := Filter(sampleRecords(), ListFilters{Type: "company", Country: "FR"})
	assert.Empty(t, got)
}

func TestCountryOptions(t *testing.T) {
	records := []Customer{
		{Country: "FR"},
		{Country: "DE"},
		{Country: "  "},
		{Country: "DE"},
		{},
	}
	assert.Equal(t, []string{"DE", "FR"}, CountryOptions(records))
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.Local)
	thisMonth := time.Date(2026, time.March, 2, 0, 0, 0, 0, time.Local).UnixMilli()
	lastMonth := time.Date(2026, time.February, 20, 0, 0, 0, 0, time.Local).UnixMilli()

	records := []Customer{
		{Status: StatusActive, CreatedAt: thisMonth},
		{Status: StatusInactive, CreatedAt: lastMonth},
		{Status: StatusActive, CreatedAt: lastMonth},
	}
	stats := ComputeStats(records, now)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.Active)
	assert.Equal(t, 1, stats.NewThisMonth)
}

func TestComputeStatsIgnoresZeroCreatedAt(t *testing.T) {
	// createdAt == 0 means "unknown", not January 1970.
	stats := ComputeStats([]Customer{{Status: StatusActive}}, time.Now())
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 0, stats.NewThisMonth)
}
