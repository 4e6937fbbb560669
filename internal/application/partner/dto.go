package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/storebooks/backend/internal/domain/partner"
)

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	CompanyName string `json:"company_name" binding:"max=200"`
	Phone       string `json:"phone" binding:"required,min=6,max=20"`
	Email       string `json:"email" binding:"omitempty,email"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
}

// UpdateCustomerRequest represents a request to update a customer
type UpdateCustomerRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	CompanyName string `json:"company_name" binding:"max=200"`
	Phone       string `json:"phone" binding:"required,min=6,max=20"`
	Email       string `json:"email" binding:"omitempty,email"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
}

// CustomerListFilter represents filter options for the customer list
type CustomerListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CustomerResponse represents a customer in responses
type CustomerResponse struct {
	ID          uuid.UUID `json:"id"`
	StoreID     uuid.UUID `json:"store_id"`
	Name        string    `json:"name"`
	CompanyName string    `json:"company_name,omitempty"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCustomerResponse converts a domain customer to a response DTO
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:          c.ID,
		StoreID:     c.StoreID,
		Name:        c.Name,
		CompanyName: c.CompanyName,
		Phone:       c.Phone,
		Email:       c.Email,
		Address:     c.Address,
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// CreateSupplierRequest represents a request to create a supplier
type CreateSupplierRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	CompanyName string `json:"company_name" binding:"max=200"`
	Phone       string `json:"phone" binding:"required,min=6,max=20"`
	Email       string `json:"email" binding:"omitempty,email"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
}

// UpdateSupplierRequest represents a request to update a supplier
type UpdateSupplierRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	CompanyName string `json:"company_name" binding:"max=200"`
	Phone       string `json:"phone" binding:"required,min=6,max=20"`
	Email       string `json:"email" binding:"omitempty,email"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
}

// SupplierListFilter represents filter options for the supplier list
type SupplierListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SupplierResponse represents a supplier in responses
type SupplierResponse struct {
	ID          uuid.UUID `json:"id"`
	StoreID     uuid.UUID `json:"store_id"`
	Name        string    `json:"name"`
	CompanyName string    `json:"company_name,omitempty"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToSupplierResponse converts a domain supplier to a response DTO
func ToSupplierResponse(s *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:          s.ID,
		StoreID:     s.StoreID,
		Name:        s.Name,
		CompanyName: s.CompanyName,
		Phone:       s.Phone,
		Email:       s.Email,
		Address:     s.Address,
		Notes:       s.Notes,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
