package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/storebooks/backend/internal/domain/shared"
	"github.com/storebooks/backend/internal/domain/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupStoreTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&store.Store{}))
	return db
}

func newStoredStore(t *testing.T, repo *GormStoreRepository, name, code string) *store.Store {
	t.Helper()

	s, err := store.NewStore(code, name)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), s))
	return s
}

func TestGormStoreRepository_FindByCode(t *testing.T) {
	db := setupStoreTestDB(t)
	repo := NewGormStoreRepository(db)
	ctx := context.Background()

	s := newStoredStore(t, repo, "Main Branch", "MAIN")

	retrieved, err := repo.FindByCode(ctx, "main")
	require.NoError(t, err)
	assert.Equal(t, s.ID, retrieved.ID, "code lookup should be case-insensitive")

	_, err = repo.FindByCode(ctx, "WAREHOUSE")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormStoreRepository_FindActive(t *testing.T) {
	db := setupStoreTestDB(t)
	repo := NewGormStoreRepository(db)
	ctx := context.Background()

	s := newStoredStore(t, repo, "Main Branch", "MAIN")

	retrieved, err := repo.FindActive(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, retrieved.ID)

	s.Deactivate()
	require.NoError(t, repo.Save(ctx, s))

	_, err = repo.FindActive(ctx, s.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound, "inactive stores must not resolve as scope")

	// FindByID still resolves for administration
	retrieved, err = repo.FindByID(ctx, s.ID)
	require.NoError(t, err)
	assert.False(t, retrieved.IsActive)
}

func TestGormStoreRepository_ExistsByCode(t *testing.T) {
	db := setupStoreTestDB(t)
	repo := NewGormStoreRepository(db)
	ctx := context.Background()

	newStoredStore(t, repo, "Main Branch", "MAIN")

	exists, err := repo.ExistsByCode(ctx, " main ")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByCode(ctx, "WH1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGormStoreRepository_FindAll(t *testing.T) {
	db := setupStoreTestDB(t)
	repo := NewGormStoreRepository(db)
	ctx := context.Background()

	newStoredStore(t, repo, "Main Branch", "MAIN")
	newStoredStore(t, repo, "Warehouse", "WH1")
	newStoredStore(t, repo, "City Outlet", "CITY")

	filter := shared.DefaultFilter()
	filter.OrderBy = "name"
	filter.OrderDir = "asc"
	stores, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, stores, 3)
	assert.Equal(t, "City Outlet", stores[0].Name)

	filter.Search = "ware"
	stores, err = repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, stores, 1)
	assert.Equal(t, "WH1", stores[0].Code)

	count, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestGormStoreRepository_FindByIDMissing(t *testing.T) {
	db := setupStoreTestDB(t)
	repo := NewGormStoreRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
