package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/storebooks/backend/internal/domain/store"
)

// CreateStoreRequest represents a request to register a store
type CreateStoreRequest struct {
	Code string `json:"code" binding:"required,min=2,max=30"`
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// UpdateStoreRequest represents a request to rename a store
type UpdateStoreRequest struct {
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// StoreListFilter represents filter options for the store list
type StoreListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// StoreResponse represents a store in responses
type StoreResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToStoreResponse converts a domain store to a response DTO
func ToStoreResponse(s *store.Store) StoreResponse {
	return StoreResponse{
		ID:        s.ID,
		Code:      s.Code,
		Name:      s.Name,
		IsActive:  s.IsActive,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
