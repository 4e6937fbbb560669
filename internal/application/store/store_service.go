package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/storebooks/backend/internal/domain/shared"
	"github.com/storebooks/backend/internal/domain/store"
)

// Service handles store registry operations and store scope resolution
type Service struct {
	storeRepo store.Repository
}

// NewService creates a new store Service
func NewService(storeRepo store.Repository) *Service {
	return &Service{storeRepo: storeRepo}
}

// ResolveScope turns a raw store identifier into the ID of an active store.
// The identifier may be the store's UUID or its code. Every scoped request
// passes through here before any data is touched.
func (s *Service) ResolveScope(ctx context.Context, identifier string) (uuid.UUID, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return uuid.Nil, shared.ErrMissingStoreScope
	}

	if id, err := uuid.Parse(identifier); err == nil {
		st, err := s.storeRepo.FindActive(ctx, id)
		if err != nil {
			return uuid.Nil, scopeResolutionError(err)
		}
		return st.ID, nil
	}

	st, err := s.storeRepo.FindByCode(ctx, strings.ToUpper(identifier))
	if err != nil {
		return uuid.Nil, scopeResolutionError(err)
	}
	if !st.IsActive {
		return uuid.Nil, shared.ErrInvalidStoreScope
	}
	return st.ID, nil
}

// scopeResolutionError maps repository errors for scope lookups. An unknown
// store is the caller's problem; anything else is an infrastructure failure
// and must not masquerade as a bad request.
func scopeResolutionError(err error) error {
	if errors.Is(err, shared.ErrNotFound) {
		return shared.ErrInvalidStoreScope
	}
	return shared.ErrStorageUnavailable
}

// Create registers a new store
func (s *Service) Create(ctx context.Context, req CreateStoreRequest) (*StoreResponse, error) {
	newStore, err := store.NewStore(req.Code, req.Name)
	if err != nil {
		return nil, err
	}

	exists, err := s.storeRepo.ExistsByCode(ctx, newStore.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS",
			fmt.Sprintf("A store with code %s already exists", newStore.Code))
	}

	if err := s.storeRepo.Save(ctx, newStore); err != nil {
		return nil, err
	}
	response := ToStoreResponse(newStore)
	return &response, nil
}

// Update renames a store
func (s *Service) Update(ctx context.Context, storeID uuid.UUID, req UpdateStoreRequest) (*StoreResponse, error) {
	st, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if err := st.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.storeRepo.Save(ctx, st); err != nil {
		return nil, err
	}
	response := ToStoreResponse(st)
	return &response, nil
}

// Deactivate retires a store. Its data stays put but the scope no longer
// resolves.
func (s *Service) Deactivate(ctx context.Context, storeID uuid.UUID) error {
	st, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		return err
	}
	st.Deactivate()
	return s.storeRepo.Save(ctx, st)
}

// Activate re-enables a retired store
func (s *Service) Activate(ctx context.Context, storeID uuid.UUID) error {
	st, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		return err
	}
	st.Activate()
	return s.storeRepo.Save(ctx, st)
}

// GetByID retrieves a store by ID
func (s *Service) GetByID(ctx context.Context, storeID uuid.UUID) (*StoreResponse, error) {
	st, err := s.storeRepo.FindByID(ctx, storeID)
	if err != nil {
		return nil, err
	}
	response := ToStoreResponse(st)
	return &response, nil
}

// List retrieves stores with filtering and pagination
func (s *Service) List(ctx context.Context, filter StoreListFilter) ([]StoreResponse, int64, error) {
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

	stores, err := s.storeRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.storeRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]StoreResponse, len(stores))
	for i := range stores {
		responses[i] = ToStoreResponse(&stores[i])
	}
	return responses, total, nil
}
