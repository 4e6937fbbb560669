package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/storebooks/backend/internal/domain/partner"
	"github.com/storebooks/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCustomerRepository is a mock implementation of partner.CustomerRepository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByIDForStore(ctx context.Context, storeID, id uuid.UUID) (*partner.Customer, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAllForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) ([]partner.Customer, error) {
	args := m.Called(ctx, storeID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Customer), args.Error(1)
}

func (m *MockCustomerRepository) CountForStore(ctx context.Context, storeID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, storeID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCustomerRepository) ExistsByPhone(ctx context.Context, storeID uuid.UUID, phone string, excludeID *uuid.UUID) (bool, error) {
	args := m.Called(ctx, storeID, phone, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) SoftDeleteForStore(ctx context.Context, storeID, id uuid.UUID) error {
	args := m.Called(ctx, storeID, id)
	return args.Error(0)
}

func TestCustomerServiceCreate(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()

	t.Run("creates customer", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		svc := NewCustomerService(repo)

		repo.On("ExistsByPhone", ctx, storeID, "9876543210", (*uuid.UUID)(nil)).Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

		resp, err := svc.Create(ctx, storeID, CreateCustomerRequest{
			Name:  "Ravi Kumar",
			Phone: "9876543210",
			Email: "ravi@example.com",
		})

		require.NoError(t, err)
		assert.Equal(t, "Ravi Kumar", resp.Name)
		assert.Equal(t, storeID, resp.StoreID)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate phone is rejected", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		svc := NewCustomerService(repo)

		repo.On("ExistsByPhone", ctx, storeID, "9876543210", (*uuid.UUID)(nil)).Return(true, nil)

		_, err := svc.Create(ctx, storeID, CreateCustomerRequest{
			Name:  "Ravi Kumar",
			Phone: "9876543210",
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCustomerServiceUpdate(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()

	t.Run("changing phone re-checks uniqueness", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		svc := NewCustomerService(repo)

		customer, err := partner.NewCustomer(storeID, "Ravi Kumar", "9876543210")
		require.NoError(t, err)

		repo.On("FindByIDForStore", ctx, storeID, customer.ID).Return(customer, nil)
		repo.On("ExistsByPhone", ctx, storeID, "9876543299", &customer.ID).Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

		resp, err := svc.Update(ctx, storeID, customer.ID, UpdateCustomerRequest{
			Name:  "Ravi Kumar",
			Phone: "9876543299",
		})

		require.NoError(t, err)
		assert.Equal(t, "9876543299", resp.Phone)
		repo.AssertExpectations(t)
	})

	t.Run("keeping the phone skips the uniqueness check", func(t *testing.T) {
		repo := new(MockCustomerRepository)
		svc := NewCustomerService(repo)

		customer, err := partner.NewCustomer(storeID, "Ravi Kumar", "9876543210")
		require.NoError(t, err)

		repo.On("FindByIDForStore", ctx, storeID, customer.ID).Return(customer, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*partner.Customer")).Return(nil)

		_, err = svc.Update(ctx, storeID, customer.ID, UpdateCustomerRequest{
			Name:  "Ravi K",
			Phone: "9876543210",
		})

		require.NoError(t, err)
		repo.AssertNotCalled(t, "ExistsByPhone", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCustomerServiceDelete(t *testing.T) {
	ctx := context.Background()
	storeID := uuid.New()

	repo := new(MockCustomerRepository)
	svc := NewCustomerService(repo)

	customer, err := partner.NewCustomer(storeID, "Ravi Kumar", "9876543210")
	require.NoError(t, err)

	repo.On("FindByIDForStore", ctx, storeID, customer.ID).Return(customer, nil)
	repo.On("SoftDeleteForStore", ctx, storeID, customer.ID).Return(nil)

	require.NoError(t, svc.Delete(ctx, storeID, customer.ID))
	repo.AssertExpectations(t)
}
