package partner

import (
	"testing"

	"github.com/google/uuid"
	"github.com/storebooks/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	storeID := uuid.New()

	t.Run("valid customer", func(t *testing.T) {
		c, err := NewCustomer(storeID, "  Ravi Kumar ", "+91 98765 43210")
		require.NoError(t, err)
		assert.Equal(t, "Ravi Kumar", c.Name)
		assert.Equal(t, "+91 98765 43210", c.Phone)
		assert.Equal(t, storeID, c.StoreID)
		assert.True(t, c.IsActive)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := NewCustomer(storeID, "  ", "9876543210")
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CUSTOMER_NAME", domainErr.Code)
	})

	t.Run("empty phone", func(t *testing.T) {
		_, err := NewCustomer(storeID, "Ravi", "")
		assert.Error(t, err)
	})

	t.Run("phone with letters", func(t *testing.T) {
		_, err := NewCustomer(storeID, "Ravi", "call-me-maybe")
		assert.Error(t, err)
	})

	t.Run("phone too short", func(t *testing.T) {
		_, err := NewCustomer(storeID, "Ravi", "123")
		assert.Error(t, err)
	})
}

func TestCustomerUpdate(t *testing.T) {
	c, err := NewCustomer(uuid.New(), "Ravi", "9876543210")
	require.NoError(t, err)
	initialVersion := c.Version

	err = c.Update("Ravi Kumar", "Kumar Traders", "9876543211", "ravi@example.com", "12 Market Rd", "prefers UPI")
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", c.Name)
	assert.Equal(t, "Kumar Traders", c.CompanyName)
	assert.Equal(t, "9876543211", c.Phone)
	assert.Equal(t, "ravi@example.com", c.Email)
	assert.Equal(t, initialVersion+1, c.Version)

	err = c.Update("", "", "9876543211", "", "", "")
	assert.Error(t, err)
}

func TestNewSupplier(t *testing.T) {
	storeID := uuid.New()

	s, err := NewSupplier(storeID, "Mehta Wholesale", "022-2345678")
	require.NoError(t, err)
	assert.Equal(t, "Mehta Wholesale", s.Name)
	assert.Equal(t, storeID, s.StoreID)

	_, err = NewSupplier(storeID, "", "022-2345678")
	assert.Error(t, err)
}

func TestSupplierUpdate(t *testing.T) {
	s, err := NewSupplier(uuid.New(), "Mehta Wholesale", "022-2345678")
	require.NoError(t, err)

	err = s.Update("Mehta & Sons", "Mehta Wholesale Pvt Ltd", "022-2345679", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "Mehta & Sons", s.Name)

	err = s.Update("Mehta & Sons", "", "abc", "", "", "")
	assert.Error(t, err)
}
