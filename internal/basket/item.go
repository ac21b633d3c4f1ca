// internal/basket/item.go
package basket

import (
	"math"
	"strings"
)

// Item is one line of a basket: a product and how many of it.
type Item struct {
	id        ItemID
	productID string
	quantity  int
}

// NewItem validates and builds an item. The product identifier is stored trimmed.
func NewItem(id ItemID, productID string, quantity int) (*Item, error) {
	if id.IsZero() {
		return nil, newRuleError(ErrInvalidIdentifier, msgItemIDEmpty)
	}
	trimmed := strings.TrimSpace(productID)
	if trimmed == "" {
		return nil, newRuleError(ErrInvalidProduct, msgProductRequired)
	}
	if quantity <= 0 {
		return nil, newRuleError(ErrInvalidQuantity, msgQuantityPositive)
	}

	return &Item{
		id:        id,
		productID: trimmed,
		quantity:  quantity,
	}, nil
}

func (i *Item) ID() ItemID        { return i.id }
func (i *Item) ProductID() string { return i.productID }
func (i *Item) Quantity() int     { return i.quantity }

// Increment adds by to the quantity. The item is left untouched on failure.
func (i *Item) Increment(by int) error {
	if by <= 0 {
		return newRuleError(ErrInvalidQuantity, msgIncrementPositive)
	}
	if i.quantity > math.MaxInt-by {
		return newRuleError(ErrQuantityOverflow, msgQuantityOverflow)
	}
	i.quantity += by
	return nil
}

// SetQuantity overwrites the quantity.
func (i *Item) SetQuantity(quantity int) error {
	if quantity <= 0 {
		return newRuleError(ErrInvalidQuantity, msgQuantityPositive)
	}
	i.quantity = quantity
	return nil
}

func (i *Item) matches(productID string) bool {
	return strings.EqualFold(i.productID, strings.TrimSpace(productID))
}
