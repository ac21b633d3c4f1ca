// internal/basket/item_test.go
package basket

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("rejects blank product ids", func(t *testing.T) {
		for _, productID := range []string{"", " ", "\t\n"} {
			_, err := NewItem(NewItemID(), productID, 1)

			require.ErrorIs(t, err, ErrInvalidProduct)
			assert.Equal(t, "Product identifier is required.", err.Error())
		}
	})

	t.Run("rejects non-positive quantities", func(t *testing.T) {
		for _, quantity := range []int{0, -1, math.MinInt} {
			_, err := NewItem(NewItemID(), "P-001", quantity)

			require.ErrorIs(t, err, ErrInvalidQuantity)
			assert.Equal(t, "Quantity must be > 0.", err.Error())
		}
	})

	t.Run("rejects a zero id", func(t *testing.T) {
		_, err := NewItem(ItemID{}, "P-001", 1)

		assert.ErrorIs(t, err, ErrInvalidIdentifier)
	})

	t.Run("trims the product id", func(t *testing.T) {
		item, err := NewItem(NewItemID(), "  P-001  ", 3)

		require.NoError(t, err)
		assert.Equal(t, "P-001", item.ProductID())
		assert.Equal(t, 3, item.Quantity())
	})
}

func TestItem_Increment(t *testing.T) {
	t.Run("adds to the quantity", func(t *testing.T) {
		item, err := NewItem(NewItemID(), "P-001", 2)
		require.NoError(t, err)

		require.NoError(t, item.Increment(3))
		assert.Equal(t, 5, item.Quantity())
	})

	t.Run("rejects non-positive increments", func(t *testing.T) {
		item, err := NewItem(NewItemID(), "P-001", 2)
		require.NoError(t, err)

		for _, by := range []int{0, -5} {
			err := item.Increment(by)
			require.ErrorIs(t, err, ErrInvalidQuantity)
			assert.Equal(t, "Increment must be > 0.", err.Error())
		}
		assert.Equal(t, 2, item.Quantity())
	})

	t.Run("fails on overflow without mutating", func(t *testing.T) {
		item, err := NewItem(NewItemID(), "P-001", math.MaxInt-1)
		require.NoError(t, err)

		err = item.Increment(2)

		require.ErrorIs(t, err, ErrQuantityOverflow)
		assert.Equal(t, math.MaxInt-1, item.Quantity())

		require.NoError(t, item.Increment(1))
		assert.Equal(t, math.MaxInt, item.Quantity())
	})
}

func TestItem_SetQuantity(t *testing.T) {
	item, err := NewItem(NewItemID(), "P-001", 2)
	require.NoError(t, err)

	require.NoError(t, item.SetQuantity(7))
	assert.Equal(t, 7, item.Quantity())

	err = item.SetQuantity(0)
	require.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, "Quantity must be > 0.", err.Error())
	assert.Equal(t, 7, item.Quantity())
}
