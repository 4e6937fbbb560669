package partner

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/storebooks/backend/internal/domain/partner"
	"github.com/storebooks/backend/internal/domain/shared"
)

// CustomerService handles customer registry operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// Create creates a customer. Phone numbers are unique per store.
func (s *CustomerService) Create(ctx context.Context, storeID uuid.UUID, req CreateCustomerRequest) (*CustomerResponse, error) {
	exists, err := s.customerRepo.ExistsByPhone(ctx, storeID, req.Phone, nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS",
			fmt.Sprintf("A customer with phone %s already exists in this store", req.Phone))
	}

	customer, err := partner.NewCustomer(storeID, req.Name, req.Phone)
	if err != nil {
		return nil, err
	}
	if err := customer.Update(req.Name, req.CompanyName, req.Phone, req.Email, req.Address, req.Notes); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Update replaces a customer's editable fields
func (s *CustomerService) Update(ctx context.Context, storeID, customerID uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForStore(ctx, storeID, customerID)
	if err != nil {
		return nil, err
	}

	if customer.Phone != req.Phone {
		exists, err := s.customerRepo.ExistsByPhone(ctx, storeID, req.Phone, &customerID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS",
				fmt.Sprintf("A customer with phone %s already exists in this store", req.Phone))
		}
	}

	if err := customer.Update(req.Name, req.CompanyName, req.Phone, req.Email, req.Address, req.Notes); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}

	response := ToCustomerResponse(customer)
	return &response, nil
}

// Delete soft-deletes a customer. Invoices keep the name snapshot.
func (s *CustomerService) Delete(ctx context.Context, storeID, customerID uuid.UUID) error {
	if _, err := s.customerRepo.FindByIDForStore(ctx, storeID, customerID); err != nil {
		return err
	}
	return s.customerRepo.SoftDeleteForStore(ctx, storeID, customerID)
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, storeID, customerID uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByIDForStore(ctx, storeID, customerID)
	if err != nil {
		return nil, err
	}
	response := ToCustomerResponse(customer)
	return &response, nil
}

// List retrieves customers with filtering and pagination. Search tokens match
// the name, company name or phone.
func (s *CustomerService) List(ctx context.Context, storeID uuid.UUID, filter CustomerListFilter) ([]CustomerResponse, int64, error) {
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

	customers, err := s.customerRepo.FindAllForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.customerRepo.CountForStore(ctx, storeID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CustomerResponse, len(customers))
	for i := range customers {
		responses[i] = ToCustomerResponse(&customers[i])
	}
	return responses, total, nil
}
