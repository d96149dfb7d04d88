// internal/domain/customer/dto.go
package customer

type CreateCustomerRequest struct {
	Type        Type   `json:"type" binding:"required,oneof=private company"`
	FirstName   string `json:"firstName" binding:"max=255"`
	LastName    string `json:"lastName" binding:"max=255"`
	CompanyName string `json:"companyName" binding:"max=255"`
	Street      string `json:"street" binding:"max=255"`
	PostalCode  string `json:"postalCode" binding:"max=20"`
	City        string `json:"city" binding:"max=255"`
	Country     string `json:"country" binding:"max=255"`
	Email       string `json:"email" binding:"omitempty,email,max=255"`
	Phone       string `json:"phone" binding:"max=50"`
	Status      string `json:"status"`
}

type UpdateCustomerRequest struct {
	Type        *Type   `json:"type" binding:"omitempty,oneof=private company"`
	FirstName   *string `json:"firstName" binding:"omitempty,max=255"`
	LastName    *string `json:"lastName" binding:"omitempty,max=255"`
	CompanyName *string `json:"companyName" binding:"omitempty,max=255"`
	Street      *string `json:"street" binding:"omitempty,max=255"`
	PostalCode  *string `json:"postalCode" binding:"omitempty,max=20"`
	City        *string `json:"city" binding:"omitempty,max=255"`
	Country     *string `json:"country" binding:"omitempty,max=255"`
	Email       *string `json:"email" binding:"omitempty,email,max=255"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	Status      *string `json:"status" binding:"omitempty"`
}

// ListFilters are conjunctive predicates over an already-fetched record
// set. "all" (or empty) disables the corresponding predicate.
type ListFilters struct {
	Search  string `form:"search"`
	Type    string `form:"type" binding:"omitempty,oneof=all private company"`
	Status  string `form:"status" binding:"omitempty,oneof=all active inactive"`
	Country string `form:"country"`
}

type ListResponse struct {
	Customers []Customer `json:"customers"`
	Total     int        `json:"total"`
}
