package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/storebooks/backend/internal/domain/shared"
)

// CustomerRepository defines the persistence contract for customers
type CustomerRepository interface {
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*Customer, error)
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]Customer, error)
	CountForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByPhone(ctx context.Context, storeID uuid.UUID, phone string, excludeID *uuid.UUID) (bool, error)
	Save(ctx context.Context, customer *Customer) error
	SoftDeleteForStore(ctx context.Context, storeID, id uuid.UUID) error
}

// SupplierRepository defines the persistence contract for suppliers
type SupplierRepository interface {
	FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*Supplier, error)
	FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]Supplier, error)
	CountForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error)
	ExistsByPhone(ctx context.Context, storeID uuid.UUID, phone string, excludeID *uuid.UUID) (bool, error)
	Save(ctx context.Context, supplier *Supplier) error
	SoftDeleteForStore(ctx context.Context, storeID, id uuid.UUID) error
}
