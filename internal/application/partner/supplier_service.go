package partner

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/storebooks/backend/internal/domain/partner"
	"github.com/storebooks/backend/internal/domain/shared"
)

// SupplierService handles supplier registry operations
type SupplierService struct {
	supplierRepo partner.SupplierRepository
}

// NewSupplierService creates a new SupplierService
func NewSupplierService(supplierRepo partner.SupplierRepository) *SupplierService {
	return &SupplierService{supplierRepo: supplierRepo}
}

// Create creates a supplier. Phone numbers are unique per store.
func (s *SupplierService) Create(ctx context.Context, storeID uuid.UUID, req CreateSupplierRequest) (*SupplierResponse, error) {
	exists, err := s.supplierRepo.ExistsByPhone(ctx, storeID, req.Phone, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS",
			fmt.Sprintf("A supplier with phone %s already exists in this store", req.Phone))
	}

	supplier, err := partner.NewSupplier(storeID, req.Name, req.Phone)
	if err != nil {
		return nil, err
	}
	if err := supplier.Update(req.Name, req.CompanyName, req.Phone, req.Email, req.Address, req.Notes); err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Update replaces a supplier's editable fields
func (s *SupplierService) Update(ctx context.Context, storeID, supplierID uuid.UUID, req UpdateSupplierRequest) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByIDForStore(ctx, storeID, supplierID)
	if err != nil {
		return nil, err
	}

	if supplier.Phone != req.Phone {
		exists, err := s.supplierRepo.ExistsByPhone(ctx, storeID, req.Phone, &supplierID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS",
				fmt.Sprintf("A supplier with phone %s already exists in this store", req.Phone))
		}
	}

	if err := supplier.Update(req.Name, req.CompanyName, req.Phone, req.Email, req.Address, req.Notes); err != nil {
		return nil, err
	}
	if err := s.supplierRepo.Save(ctx, supplier); err != nil {
		return nil, err
	}

	response := ToSupplierResponse(supplier)
	return &response, nil
}

// Delete soft-deletes a supplier. Purchases keep the name snapshot.
func (s *SupplierService) Delete(ctx context.Context, storeID, supplierID uuid.UUID) error {
	if _, err := s.supplierRepo.FindByIDForStore(ctx, storeID, supplierID); err != nil {
		return err
	}
	return s.supplierRepo.SoftDeleteForStore(ctx, storeID, supplierID)
}

// GetByID retrieves a supplier by ID
func (s *SupplierService) GetByID(ctx context.Context, storeID, supplierID uuid.UUID) (*SupplierResponse, error) {
	supplier, err := s.supplierRepo.FindByIDForStore(ctx, storeID, supplierID)
	if err != nil {
		return nil, err
	}
	response := ToSupplierResponse(supplier)
	return &response, nil
}

// List retrieves suppliers with filtering and pagination
func (s *SupplierService) List(ctx context.Context, storeID uuid.UUID, filter SupplierListFilter) ([]SupplierResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search

	suppliers, err := s.supplierRepo.FindAllForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.supplierRepo.CountForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]SupplierResponse, len(suppliers))
	for i := range suppliers {
		responses[i] = ToSupplierResponse(&suppliers[i])
	}
	return responses, total, nil
}
