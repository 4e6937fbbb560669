package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	t.Run("creates store with normalized code", func(t *testing.T) {
		s, err := NewStore(" main-01 ", " Main Branch ")

		require.NoError(t, err)
		assert.Equal(t, "MAIN-01", s.Code)
		assert.Equal(t, "Main Branch", s.Name)
		assert.True(t, s.IsActive)
		assert.Equal(t, 1, s.Version)
	})

	t.Run("rejects empty code", func(t *testing.T) {
		_, err := NewStore("", "Main")
		assert.Error(t, err)
	})

	t.Run("rejects code with invalid characters", func(t *testing.T) {
		_, err := NewStore("main 01", "Main")
		assert.Error(t, err)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewStore("MAIN", "   ")
		assert.Error(t, err)
	})
}

func TestStore_Lifecycle(t *testing.T) {
	s, err := NewStore("MAIN", "Main Branch")
	require.NoError(t, err)

	s.Deactivate()
	assert.False(t, s.IsActive)
	assert.Equal(t, 2, s.Version)

	s.Activate()
	assert.True(t, s.IsActive)

	require.NoError(t, s.Rename("Main Branch North"))
	assert.Equal(t, "Main Branch North", s.Name)
	assert.Error(t, s.Rename(" "))
}
