package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeSearch(t *testing.T) {
	t.Run("empty string yields no tokens", func(t *testing.T) {
		assert.Nil(t, TokenizeSearch(""))
		assert.Nil(t, TokenizeSearch("   "))
	})

	t.Run("splits on whitespace", func(t *testing.T) {
		assert.Equal(t, []string{"steel", "bolt"}, TokenizeSearch("steel bolt"))
		assert.Equal(t, []string{"a", "b", "c"}, TokenizeSearch("  a\tb  c "))
	})

	t.Run("preserves quoted substrings", func(t *testing.T) {
		assert.Equal(t, []string{"steel bolt", "m8"}, TokenizeSearch(`"steel bolt" m8`))
	})

	t.Run("unterminated quote keeps remainder as one token", func(t *testing.T) {
		assert.Equal(t, []string{"steel bolt"}, TokenizeSearch(`"steel bolt`))
	})

	t.Run("adjacent quotes are dropped", func(t *testing.T) {
		assert.Equal(t, []string{"bolt"}, TokenizeSearch(`"" bolt`))
	})
}
