// internal/domain/customer/normalize.go
package customer

import "encoding/json"

// Normalize converts a raw store document into a fully-defaulted Customer.
// Documents written by older application versions (or by hand) may omit
// fields or carry the wrong types; normalization is total over arbitrary
// shapes and never fails. This is the single place where defaulting
// happens on the read path.
func Normalize(id string, raw map[string]interface{}) Customer {
	createdAt, _ := asMillis(raw["createdAt"])
	updatedAt, ok := asMillis(raw["updatedAt"])
	if !ok {
		updatedAt = createdAt
	}

	return Customer{
		ID:          id,
		Type:        normalizeType(asString(raw["type"])),
		FirstName:   asString(raw["firstName"]),
		LastName:    asString(raw["lastName"]),
		CompanyName: asString(raw["companyName"]),
		Street:      asString(raw["street"]),
		PostalCode:  asString(raw["postalCode"]),
		City:        asString(raw["city"]),
		Country:     asString(raw["country"]),
		Email:       asString(raw["email"]),
		Phone:       asString(raw["phone"]),
		Status:      NormalizeStatus(asString(raw["status"])),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// NormalizeStatus passes "inactive" through and maps everything else
// (missing, null, unknown values) to "active". Applied on read by
// Normalize and on the write path before a create is persisted, so stored
// documents are self-describing.
func NormalizeStatus(raw string) Status {
	if raw == string(StatusInactive) {
		return StatusInactive
	}
	return StatusActive
}

func normalizeType(raw string) Type {
	if raw == string(TypeCompany) {
		return TypeCompany
	}
	return TypePrivate
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// asMillis accepts the numeric shapes a JSON document store hands back.
// Anything non-numeric reports false.
func asMillis(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
