package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/domain/partner"
)

// CreateCustomerRequest represents a request to create a new customer
type CreateCustomerRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Email       string `json:"email" binding:"required,email,max=200"`
	Industry    string `json:"industry" binding:"max=100"`
	Tier        string `json:"tier" binding:"omitempty,oneof=STANDARD PREMIUM ENTERPRISE VIP"`
	ContactName string `json:"contact_name" binding:"max=100"`
	Phone       string `json:"phone" binding:"max=50"`
	Website     string `json:"website" binding:"max=200"`
	Address     string `json:"address" binding:"max=500"`
	Notes       string `json:"notes"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Email       *string `json:"email" binding:"omitempty,email,max=200"`
	Industry    *string `json:"industry" binding:"omitempty,max=100"`
	Tier        *string `json:"tier" binding:"omitempty,oneof=STANDARD PREMIUM ENTERPRISE VIP"`
	ContactName *string `json:"contact_name" binding:"omitempty,max=100"`
	Phone       *string `json:"phone" binding:"omitempty,max=50"`
	Website     *string `json:"website" binding:"omitempty,max=200"`
	Address     *string `json:"address" binding:"omitempty,max=500"`
	Notes       *string `json:"notes"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenant_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Industry    string    `json:"industry"`
	Tier        string    `json:"tier"`
	Status      string    `json:"status"`
	ContactName string    `json:"contact_name"`
	Phone       string    `json:"phone"`
	Website     string    `json:"website"`
	Address     string    `json:"address"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Version     int       `json:"version"`
}

// CustomerListFilter represents filter options for customer list
type CustomerListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Tier     string `form:"tier" binding:"omitempty,oneof=STANDARD PREMIUM ENTERPRISE VIP"`
	Industry string `form:"industry"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToCustomerResponse converts a domain customer to a response DTO
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          c.ID,
		TenantID:    c.TenantID,
		Name:        c.Name,
		Email:       c.Email,
		Industry:    c.Industry,
		Tier:        string(c.Tier),
		Status:      string(c.Status),
		ContactName: c.ContactName,
		Phone:       c.Phone,
		Website:     c.Website,
		Address:     c.Address,
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		Version:     c.Version,
	}
}

// ToCustomerResponses converts a slice of domain customers
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses
}
