package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/storebooks/backend/internal/domain/shared"
	"github.com/storebooks/backend/internal/domain/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockStoreRepository is a mock implementation of store.Repository
type MockStoreRepository struct {
	mock.Mock
}

func (m *MockStoreRepository) FindByID(ctx context.Context, id uuid.UUID) (*store.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreRepository) FindByCode(ctx context.Context, code string) (*store.Store, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreRepository) FindActive(ctx context.Context, id uuid.UUID) (*store.Store, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Store), args.Error(1)
}

func (m *MockStoreRepository) FindAll(ctx context.Context, filter shared.Filter) ([]store.Store, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.Store), args.Error(1)
}

func (m *MockStoreRepository) Save(ctx context.Context, s *store.Store) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockStoreRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockStoreRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func TestServiceResolveScope(t *testing.T) {
	ctx := context.Background()

	t.Run("empty identifier", func(t *testing.T) {
		svc := NewService(new(MockStoreRepository))

		_, err := svc.ResolveScope(ctx, "  ")

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "MISSING_STORE_SCOPE", domainErr.Code)
	})

	t.Run("resolves by UUID", func(t *testing.T) {
		repo := new(MockStoreRepository)
		svc := NewService(repo)

		st, err := store.NewStore("MAIN", "Main Branch")
		require.NoError(t, err)
		repo.On("FindActive", ctx, st.ID).Return(st, nil)

		id, err := svc.ResolveScope(ctx, st.ID.String())
		require.NoError(t, err)
		assert.Equal(t, st.ID, id)
	})

	t.Run("unknown UUID", func(t *testing.T) {
		repo := new(MockStoreRepository)
		svc := NewService(repo)

		unknown := uuid.New()
		repo.On("FindActive", ctx, unknown).Return(nil, shared.ErrNotFound)

		_, err := svc.ResolveScope(ctx, unknown.String())

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STORE_SCOPE", domainErr.Code)
	})

	t.Run("resolves by code, case-insensitively", func(t *testing.T) {
		repo := new(MockStoreRepository)
		svc := NewService(repo)

		st, err := store.NewStore("MAIN", "Main Branch")
		require.NoError(t, err)
		repo.On("FindByCode", ctx, "MAIN").Return(st, nil)

		id, err := svc.ResolveScope(ctx, "main")
		require.NoError(t, err)
		assert.Equal(t, st.ID, id)
	})

	t.Run("storage failure is not a bad scope", func(t *testing.T) {
		repo := new(MockStoreRepository)
		svc := NewService(repo)

		id := uuid.New()
		repo.On("FindActive", ctx, id).Return(nil, errors.New("connection refused"))
		repo.On("FindByCode", ctx, "MAIN").Return(nil, errors.New("connection refused"))

		_, err := svc.ResolveScope(ctx, id.String())
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "STORAGE_UNAVAILABLE", domainErr.Code)

		_, err = svc.ResolveScope(ctx, "main")
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "STORAGE_UNAVAILABLE", domainErr.Code)
	})

	t.Run("inactive store does not resolve", func(t *testing.T) {
		repo := new(MockStoreRepository)
		svc := NewService(repo)

		st, err := store.NewStore("OLD", "Closed Branch")
		require.NoError(t, err)
		st.Deactivate()
		repo.On("FindByCode", ctx, "OLD").Return(st, nil)

		_, err = svc.ResolveScope(ctx, "OLD")

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STORE_SCOPE", domainErr.Code)
	})
}

func TestServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates store", func(t *testing.T) {
		repo := new(MockStoreRepository)
		svc := NewService(repo)

		repo.On("ExistsByCode", ctx, "MAIN").Return(false, nil)
		repo.On("Save", ctx, mock.AnythingOfType("*store.Store")).Return(nil)

		resp, err := svc.Create(ctx, CreateStoreRequest{Code: "main", Name: "Main Branch"})
		require.NoError(t, err)
		assert.Equal(t, "MAIN", resp.Code)
		assert.True(t, resp.IsActive)
	})

	t.Run("duplicate code is rejected", func(t *testing.T) {
		repo := new(MockStoreRepository)
		svc := NewService(repo)

		repo.On("ExistsByCode", ctx, "MAIN").Return(true, nil)

		_, err := svc.Create(ctx, CreateStoreRequest{Code: "MAIN", Name: "Main Branch"})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})
}
