// internal/basket/ids.go
package basket

import (
	"log/slog"

	"github.com/google/uuid"
)

// BasketID identifies a basket. The zero value is never handed out.
type BasketID struct {
	value uuid.UUID
}

// NewBasketID generates a random basket identifier.
func NewBasketID() BasketID {
	return BasketID{value: uuid.New()}
}

// BasketIDFrom wraps an existing uuid, rejecting the nil uuid.
func BasketIDFrom(value uuid.UUID) (BasketID, error) {
	if value == uuid.Nil {
		return BasketID{}, newRuleError(ErrInvalidIdentifier, msgBasketIDEmpty)
	}
	return BasketID{value: value}, nil
}

// ParseBasketID parses the textual form of a basket identifier.
func ParseBasketID(s string) (BasketID, error) {
	value, err := uuid.Parse(s)
	if err != nil {
		return BasketID{}, newRuleError(ErrInvalidIdentifier, "BasketId is not a valid identifier.")
	}
	return BasketIDFrom(value)
}

func (id BasketID) UUID() uuid.UUID { return id.value }
func (id BasketID) String() string  { return id.value.String() }
func (id BasketID) IsZero() bool    { return id.value == uuid.Nil }

func (id BasketID) LogValue() slog.Value { return slog.StringValue(id.String()) }

// ItemID identifies a line item inside a basket.
type ItemID struct {
	value uuid.UUID
}

// NewItemID generates a random item identifier.
func NewItemID() ItemID {
	return ItemID{value: uuid.New()}
}

// ItemIDFrom wraps an existing uuid, rejecting the nil uuid.
func ItemIDFrom(value uuid.UUID) (ItemID, error) {
	if value == uuid.Nil {
		return ItemID{}, newRuleError(ErrInvalidIdentifier, msgItemIDEmpty)
	}
	return ItemID{value: value}, nil
}

// ParseItemID parses the textual form of an item identifier.
func ParseItemID(s string) (ItemID, error) {
	value, err := uuid.Parse(s)
	if err != nil {
		return ItemID{}, newRuleError(ErrInvalidIdentifier, "ItemId is not a valid identifier.")
	}
	return ItemIDFrom(value)
}

func (id ItemID) UUID() uuid.UUID { return id.value }
func (id ItemID) String() string  { return id.value.String() }
func (id ItemID) IsZero() bool    { return id.value == uuid.Nil }

func (id ItemID) LogValue() slog.Value { return slog.StringValue(id.String()) }
