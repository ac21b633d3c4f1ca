// internal/basket/ids_test.go
package basket

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasketIDFrom(t *testing.T) {
	t.Run("wraps a valid uuid", func(t *testing.T) {
		raw := uuid.New()

		id, err := BasketIDFrom(raw)

		require.NoError(t, err)
		assert.Equal(t, raw, id.UUID())
		assert.Equal(t, raw.String(), id.String())
	})

	t.Run("rejects the nil uuid", func(t *testing.T) {
		_, err := BasketIDFrom(uuid.Nil)

		require.ErrorIs(t, err, ErrInvalidIdentifier)
		assert.Equal(t, "BasketId cannot be empty.", err.Error())
	})
}

func TestItemIDFrom(t *testing.T) {
	t.Run("wraps a valid uuid", func(t *testing.T) {
		raw := uuid.New()

		id, err := ItemIDFrom(raw)

		require.NoError(t, err)
		assert.Equal(t, raw, id.UUID())
	})

	t.Run("rejects the nil uuid", func(t *testing.T) {
		_, err := ItemIDFrom(uuid.Nil)

		require.ErrorIs(t, err, ErrInvalidIdentifier)
		assert.Equal(t, "ItemId cannot be empty.", err.Error())
	})
}

func TestNewIDsAreUniqueAndNonZero(t *testing.T) {
	seen := make(map[ItemID]struct{})
	for i := 0; i < 100; i++ {
		id := NewItemID()
		assert.False(t, id.IsZero())
		_, dup := seen[id]
		assert.False(t, dup)
		seen[id] = struct{}{}
	}
	assert.False(t, NewBasketID().IsZero())
}

func TestParseBasketID(t *testing.T) {
	raw := uuid.New()

	id, err := ParseBasketID(raw.String())
	require.NoError(t, err)
	assert.Equal(t, raw, id.UUID())

	_, err = ParseBasketID("not-a-uuid")
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	_, err = ParseBasketID(uuid.Nil.String())
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
	assert.Equal(t, "BasketId cannot be empty.", Message(err))
}

func TestParseItemID(t *testing.T) {
	_, err := ParseItemID("")
	assert.ErrorIs(t, err, ErrInvalidIdentifier)

	raw := uuid.New()
	id, err := ParseItemID(raw.String())
	require.NoError(t, err)
	assert.Equal(t, raw, id.UUID())
}
