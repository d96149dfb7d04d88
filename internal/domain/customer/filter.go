// internal/domain/customer/filter.go
package customer

import (
	"sort"
	"strings"
	"time"
)

// DisplayName is the name shown in lists and matched by search: the
// company name for company records, "firstName lastName" for private ones.
func DisplayName(c Customer) string {
	if c.Type == TypeCompany {
		return c.CompanyName
	}
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Filter applies search and the type/status/country predicates to an
// already-fetched record set. Predicates are independent and conjunctive.
// The record set is expected to be small; a full scan per call is fine.
func Filter(records []Customer, f ListFilters) []Customer {
	search := strings.ToLower(f.Search)
	out := make([]Customer, 0, len(records))

	for _, c := range records {
		if !strings.Contains(strings.ToLower(DisplayName(c)), search) {
			continue
		}
		if f.Type != "" && f.Type != "all" && string(c.Type) != f.Type {
			continue
		}
		if f.Status != "" && f.Status != "all" && string(effectiveStatus(c)) != f.Status {
			continue
		}
		if f.Country != "" && f.Country != "all" && strings.TrimSpace(c.Country) != f.Country {
			continue
		}
		out = append(out, c)
	}
	return out
}

// CountryOptions returns the deduplicated, sorted set of non-blank
// countries present in the record set, for the country filter dropdown.
func CountryOptions(records []Customer) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range records {
		country := strings.TrimSpace(c.Country)
		if country == "" {
			continue
		}
		if _, ok := seen[country]; ok {
			continue
		}
		seen[country] = struct{}{}
		out = append(out, country)
	}
	sort.Strings(out)
	return out
}

// ComputeStats recomputes the KPI aggregates over the full record set.
// "New this month" compares against now in the local calendar.
func ComputeStats(records []Customer, now time.Time) Stats {
	stats := Stats{Total: len(records)}
	for _, c := range records {
		if effectiveStatus(c) == StatusActive {
			stats.Active++
		}
		if c.CreatedAt == 0 {
			continue
		}
		created := time.UnixMilli(c.CreatedAt)
		if created.Year() == now.Year() && created.Month() == now.Month() {
			stats.NewThisMonth++
		}
	}
	return stats
}

// effectiveStatus treats a missing stored status as active, matching the
// normalizer's default.
func effectiveStatus(c Customer) Status {
	if c.Status == "" {
		return StatusActive
	}
	return c.Status
}
