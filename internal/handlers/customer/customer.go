// internal/handlers/customer/customer_handler.go
package customer

import (
	"errors"
	"net/http"

	"crm-service/internal/domain/customer"
	"crm-service/internal/middleware"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/pkg/response"
	service "crm-service/internal/service/customer"

	"github.com/gin-gonic/gin"
)

// CustomerHandler serves the customer CRUD endpoints. The partition every
// operation runs against was resolved by the identity middleware; handlers
// never look at the token themselves.
type CustomerHandler struct {
	customerService *service.CustomerService
}

func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
	}
}

// CreateCustomer creates a new customer
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req customer.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.customerService.Create(c.Request.Context(), middleware.GetPartition(c), &req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to create customer", err)
		return
	}

	response.Success(c, http.StatusCreated, "customer created successfully", result)
}

// GetCustomer retrieves a customer by ID
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	customerID := c.Param("id")
	if customerID == "" {
		response.Error(c, http.StatusBadRequest, "customer ID is required", nil)
		return
	}

	result, err := h.customerService.Get(c.Request.Context(), middleware.GetPartition(c), customerID)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "customer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to get customer", err)
		return
	}

	response.Success(c, http.StatusOK, "customer retrieved", result)
}

// ListCustomers retrieves customers with optional filters
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	var filters customer.ListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	records, err := h.customerService.Search(c.Request.Context(), middleware.GetPartition(c), filters)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list customers", err)
		return
	}

	response.Success(c, http.StatusOK, "customers retrieved", customer.ListResponse{
		Customers: records,
		Total:     len(records),
	})
}

// GetCustomerStats returns the list KPIs for the caller's partition
func (h *CustomerHandler) GetCustomerStats(c *gin.Context) {
	stats, err := h.customerService.Stats(c.Request.Context(), middleware.GetPartition(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to compute stats", err)
		return
	}

	response.Success(c, http.StatusOK, "customer stats retrieved", stats)
}

// GetCountryOptions returns the distinct countries usable as filter values
func (h *CustomerHandler) GetCountryOptions(c *gin.Context) {
	countries, err := h.customerService.Countries(c.Request.Context(), middleware.GetPartition(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list countries", err)
		return
	}

	response.Success(c, http.StatusOK, "countries retrieved", map[string]interface{}{
		"countries": countries,
	})
}

// UpdateCustomer merges the supplied fields into an existing customer
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	customerID := c.Param("id")
	if customerID == "" {
		response.Error(c, http.StatusBadRequest, "customer ID is required", nil)
		return
	}

	var req customer.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.customerService.Update(c.Request.Context(), middleware.GetPartition(c), customerID, &req)
	if err != nil {
		if errors.Is(err, xerrors.ErrNotFound) {
			response.NotFound(c, "customer not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to update customer", err)
		return
	}

	response.Success(c, http.StatusOK, "customer updated successfully", result)
}

// DeleteCustomer removes a customer. Deleting an unknown id succeeds.
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	customerID := c.Param("id")
	if customerID == "" {
		response.Error(c, http.StatusBadRequest, "customer ID is required", nil)
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), middleware.GetPartition(c), customerID); err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to delete customer", err)
		return
	}

	response.Success(c, http.StatusOK, "customer deleted successfully", nil)
}
