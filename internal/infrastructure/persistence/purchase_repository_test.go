package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storebooks/backend/internal/domain/shared"
	"github.com/storebooks/backend/internal/domain/trade"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPurchaseTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&trade.Purchase{}, &trade.PurchaseLine{}))
	return db
}

func newStoredPurchase(t *testing.T, repo *GormPurchaseRepository, storeID, supplierID uuid.UUID, number string, quantity, price int64) *trade.Purchase {
	t.Helper()

	purchase, err := trade.NewPurchase(storeID, number, supplierID, "Sharma Traders", time.Now())
	require.NoError(t, err)

	itemID := uuid.New()
	line, err := trade.NewPurchaseLine(purchase.ID, &itemID, "Engine Oil", "Piece",
		decimal.NewFromInt(quantity), decimal.NewFromInt(price))
	require.NoError(t, err)
	require.NoError(t, purchase.ReplaceLines([]trade.PurchaseLine{*line}))

	require.NoError(t, repo.Save(context.Background(), purchase))
	return purchase
}

// TestGormPurchaseRepository_SaveWithLockRecordsPayment verifies that an
// ordinary load-mutate-save cycle passes the version check and settles the
// purchase when the full amount is paid.
func TestGormPurchaseRepository_SaveWithLockRecordsPayment(t *testing.T) {
	db := setupPurchaseTestDB(t)
	repo := NewGormPurchaseRepository(db)
	ctx := context.Background()
	storeID := uuid.New()

	purchase := newStoredPurchase(t, repo, storeID, uuid.New(), "PUR-001", 5, 10)

	loaded, err := repo.FindByIDForStore(ctx, storeID, purchase.ID)
	require.NoError(t, err)
	require.NoError(t, loaded.RecordPayment(decimal.NewFromInt(50), trade.PaymentMethodBankTransfer))
	require.NoError(t, repo.SaveWithLock(ctx, loaded))

	final, err := repo.FindByIDForStore(ctx, storeID, purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.PaymentStatusPaid, final.Status)
	assert.True(t, final.DueAmount.IsZero())
	assert.Equal(t, purchase.Version+1, final.Version)
}

func TestGormPurchaseRepository_SaveWithLockConflict(t *testing.T) {
	db := setupPurchaseTestDB(t)
	repo := NewGormPurchaseRepository(db)
	ctx := context.Background()
	storeID := uuid.New()

	purchase := newStoredPurchase(t, repo, storeID, uuid.New(), "PUR-001", 5, 10)

	stale := *purchase
	require.NoError(t, purchase.RecordPayment(decimal.NewFromInt(20), trade.PaymentMethodCash))
	require.NoError(t, repo.SaveWithLock(ctx, purchase))

	require.NoError(t, stale.RecordPayment(decimal.NewFromInt(30), trade.PaymentMethodCash))
	err := repo.SaveWithLock(ctx, &stale)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
}
