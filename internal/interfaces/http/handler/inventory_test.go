package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	inventoryapp "github.com/storebooks/backend/internal/application/inventory"
	"github.com/storebooks/backend/internal/domain/inventory"
	"github.com/storebooks/backend/internal/domain/shared"
	"github.com/storebooks/backend/internal/interfaces/http/dto"
	"github.com/storebooks/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeItemRepository is a map-backed in-memory item repository
type fakeItemRepository struct {
	items map[uuid.UUID]*inventory.Item
}

func newFakeItemRepository() *fakeItemRepository {
	return &fakeItemRepository{items: make(map[uuid.UUID]*inventory.Item)}
}

func (m *fakeItemRepository) FindByIDForStore(_ context.Context, storeID, id uuid.UUID) (*inventory.Item, error) {
	if item, ok := m.items[id]; ok && item.StoreID == storeID && item.IsActive {
		copied := *item
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (m *fakeItemRepository) FindByIDsForStore(_ context.Context, storeID uuid.UUID, ids []uuid.UUID) ([]inventory.Item, error) {
	result := make([]inventory.Item, 0, len(ids))
	for _, id := range ids {
		if item, ok := m.items[id]; ok && item.StoreID == storeID && item.IsActive {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (m *fakeItemRepository) FindAllForStore(_ context.Context, storeID uuid.UUID, _ shared.Filter) ([]inventory.Item, error) {
	var result []inventory.Item
	for _, item := range m.items {
		if item.StoreID == storeID && item.IsActive {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (m *fakeItemRepository) CountForStore(_ context.Context, storeID uuid.UUID, _ shared.Filter) (int64, error) {
	var count int64
	for _, item := range m.items {
		if item.StoreID == storeID && item.IsActive {
			count++
		}
	}
	return count, nil
}

func (m *fakeItemRepository) ExistsByName(_ context.Context, storeID uuid.UUID, name string) (bool, error) {
	for _, item := range m.items {
		if item.StoreID == storeID && item.IsActive && strings.EqualFold(item.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (m *fakeItemRepository) Save(_ context.Context, item *inventory.Item) error {
	copied := *item
	m.items[item.ID] = &copied
	return nil
}

func (m *fakeItemRepository) SaveWithLock(_ context.Context, item *inventory.Item) error {
	stored, ok := m.items[item.ID]
	if !ok || stored.Version != item.Version-1 {
		return shared.ErrConcurrencyConflict
	}
	quantity := stored.Quantity
	copied := *item
	copied.Quantity = quantity
	m.items[item.ID] = &copied
	return nil
}

func (m *fakeItemRepository) SoftDeleteForStore(_ context.Context, storeID, id uuid.UUID) error {
	if item, ok := m.items[id]; ok && item.StoreID == storeID && item.IsActive {
		item.IsActive = false
		return nil
	}
	return shared.ErrNotFound
}

func (m *fakeItemRepository) AdjustQuantity(_ context.Context, storeID, itemID uuid.UUID, delta decimal.Decimal) error {
	if item, ok := m.items[itemID]; ok && item.StoreID == storeID && item.IsActive {
		item.Quantity = item.Quantity.Add(delta)
		return nil
	}
	return shared.ErrNotFound
}

func (m *fakeItemRepository) BulkAdjustQuantities(ctx context.Context, storeID uuid.UUID, adjustments []inventory.Adjustment) error {
	for _, adjustment := range adjustments {
		if err := m.AdjustQuantity(ctx, storeID, adjustment.ItemID, adjustment.Delta); err != nil {
			return err
		}
	}
	return nil
}

// fakeScope injects a fixed store ID, standing in for the scope middleware
func fakeScope(storeID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.StoreIDKey, storeID)
		c.Next()
	}
}

func setupInventoryRouter(t *testing.T, storeID uuid.UUID, repo *fakeItemRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	group := engine.Group("/api/v1")
	group.Use(fakeScope(storeID))

	handler := NewInventoryHandler(inventoryapp.NewItemService(repo))
	handler.RegisterRoutes(group)
	return engine
}

func seedItem(t *testing.T, repo *fakeItemRepository, storeID uuid.UUID, name string, quantity int64) *inventory.Item {
	t.Helper()
	item, err := inventory.NewInventoryItem(storeID, name, inventory.UnitPiece,
		decimal.NewFromInt(50), decimal.NewFromInt(80), decimal.NewFromInt(quantity))
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), item))
	return item
}

func TestInventoryHandlerCreate(t *testing.T) {
	storeID := uuid.New()
	repo := newFakeItemRepository()
	engine := setupInventoryRouter(t, storeID, repo)

	body, _ := json.Marshal(map[string]interface{}{
		"name":           "Engine Oil",
		"unit":           "Piece",
		"purchase_price": "50",
		"selling_price":  "80",
		"quantity":       "10",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/items", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	count, err := repo.CountForStore(context.Background(), storeID, shared.DefaultFilter())
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestInventoryHandlerCreateDuplicateName(t *testing.T) {
	storeID := uuid.New()
	repo := newFakeItemRepository()
	seedItem(t, repo, storeID, "Engine Oil", 10)
	engine := setupInventoryRouter(t, storeID, repo)

	body, _ := json.Marshal(map[string]interface{}{
		"name":           "engine oil",
		"unit":           "Piece",
		"purchase_price": "50",
		"selling_price":  "80",
		"quantity":       "5",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/items", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeAlreadyExists, resp.Error.Code)
}

func TestInventoryHandlerGetByID(t *testing.T) {
	storeID := uuid.New()
	repo := newFakeItemRepository()
	item := seedItem(t, repo, storeID, "Brake Pads", 4)
	engine := setupInventoryRouter(t, storeID, repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory/items/"+item.ID.String(), nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/v1/inventory/items/"+uuid.NewString(), nil)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInventoryHandlerAdjustQuantity(t *testing.T) {
	storeID := uuid.New()
	repo := newFakeItemRepository()
	item := seedItem(t, repo, storeID, "Chain Lube", 10)
	engine := setupInventoryRouter(t, storeID, repo)

	body, _ := json.Marshal(map[string]interface{}{"delta": "-3"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/items/"+item.ID.String()+"/adjust", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	stored, err := repo.FindByIDForStore(context.Background(), storeID, item.ID)
	require.NoError(t, err)
	assert.True(t, stored.Quantity.Equal(decimal.NewFromInt(7)))
}

func TestInventoryHandlerDelete(t *testing.T) {
	storeID := uuid.New()
	repo := newFakeItemRepository()
	item := seedItem(t, repo, storeID, "Mud Flap", 2)
	engine := setupInventoryRouter(t, storeID, repo)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/inventory/items/"+item.ID.String(), nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)

	_, err := repo.FindByIDForStore(context.Background(), storeID, item.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestInventoryHandlerMissingScope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	group := engine.Group("/api/v1")

	handler := NewInventoryHandler(inventoryapp.NewItemService(newFakeItemRepository()))
	handler.RegisterRoutes(group)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/inventory/items", nil)
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeMissingStoreScope, resp.Error.Code)
}
