// internal/domain/customer/entity.go
package customer

// Type distinguishes business and private customers.
type Type string

const (
	TypePrivate Type = "private"
	TypeCompany Type = "company"
)

// Status is the activity state of a customer.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Customer is the only in-memory representation of a customer record.
// Raw store documents are converted through Normalize at the store
// boundary; nothing downstream ever sees an untyped document.
type Customer struct {
	ID   string `json:"id"`
	Type Type   `json:"type"`

	// Personal names, meaningful when Type is private
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`

	// Company name, meaningful when Type is company
	CompanyName string `json:"companyName,omitempty"`

	// Address
	Street     string `json:"street,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"`

	// Contact
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`

	Status Status `json:"status"`

	// Milliseconds since epoch
	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}

// Stats are the KPI aggregates shown above the customer list.
type Stats struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	NewThisMonth int `json:"new_this_month"`
}
