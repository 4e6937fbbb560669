package shared

import (
	"context"

	"github.com/google/uuid"
)

// StoreRepository is the base interface for repositories holding store-scoped
// aggregates. Every read is filtered by store and excludes tombstoned rows.
type StoreRepository[T any] interface {
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*T, error)
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter Filter) ([]T, error)
	CountForStore(ctx context.Context, storeID uuid.UUID, filter Filter) (int64, error)
	Save(ctx context.Context, entity *T) error
	SoftDeleteForStore(ctx context.Context, storeID, id uuid.UUID) error
}

// Filter represents query filter options
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
