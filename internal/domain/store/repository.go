package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/storebooks/backend/internal/domain/shared"
)

// Repository defines the interface for store persistence
type Repository interface {
	// FindByID finds a store by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Store, error)

	// FindByCode finds a store by its unique code
	FindByCode(ctx context.Context, code string) (*Store, error)

	// FindActive finds an active store by ID; inactive stores do not resolve
	FindActive(ctx context.Context, id uuid.UUID) (*Store, error)

	// FindAll finds all stores matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Store, error)

	// Save creates or updates a store
	Save(ctx context.Context, store *Store) error

	// Count counts stores matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByCode checks if a store with the given code exists
	ExistsByCode(ctx context.Context, code string) (bool, error)
}
