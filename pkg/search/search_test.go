package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexAndSearch(t *testing.T) {
	engine, err := Open("")
	require.NoError(t, err)
	defer engine.Close()

	require.NoError(t, engine.Index(1, "Fire near the market", "Electrical short circuit"))
	require.NoError(t, engine.Index(2, "Street flooding", "Heavy rain"))
	require.NoError(t, engine.Index(3, "Small fire in parking lot", "Cigarette"))

	t.Run("matches description", func(t *testing.T) {
		ids, err := engine.Search("fire", 10)
		require.NoError(t, err)
		assert.ElementsMatch(t, []uint{1, 3}, ids)
	})

	t.Run("matches cause", func(t *testing.T) {
		ids, err := engine.Search("rain", 10)
		require.NoError(t, err)
		assert.Equal(t, []uint{2}, ids)
	})

	t.Run("no match", func(t *testing.T) {
		ids, err := engine.Search("earthquake", 10)
		require.NoError(t, err)
		assert.Empty(t, ids)
	})

	t.Run("limit", func(t *testing.T) {
		ids, err := engine.Search("fire", 1)
		require.NoError(t, err)
		assert.Len(t, ids, 1)
	})
}
