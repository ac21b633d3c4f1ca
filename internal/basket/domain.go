// internal/basket/domain.go
package basket

import (
	"fmt"
	"strings"
)

// Basket is the cart aggregate. Items are only changed through AddItem and RemoveItem.
type Basket struct {
	id    BasketID
	items []*Item
}

// New creates an empty basket with a fresh identifier.
func New() *Basket {
	return &Basket{
		id:    NewBasketID(),
		items: make([]*Item, 0),
	}
}

// Rehydrate rebuilds a basket from stored state. It rejects state that breaks
// the aggregate invariants, such as two lines for the same product.
func Rehydrate(id BasketID, items []Item) (*Basket, error) {
	if id.IsZero() {
		return nil, newRuleError(ErrInvalidIdentifier, msgBasketIDEmpty)
	}

	b := &Basket{id: id, items: make([]*Item, 0, len(items))}
	for _, stored := range items {
		item, err := NewItem(stored.id, stored.productID, stored.quantity)
		if err != nil {
			return nil, fmt.Errorf("rehydrate basket %s: %w", id, err)
		}
		if existing := b.findProduct(item.productID); existing != nil {
			return nil, fmt.Errorf("rehydrate basket %s: duplicate product %q", id, item.productID)
		}
		b.items = append(b.items, item)
	}
	return b, nil
}

func (b *Basket) ID() BasketID { return b.id }
func (b *Basket) Len() int     { return len(b.items) }

// Items returns a copy of the lines in insertion order.
func (b *Basket) Items() []Item {
	out := make([]Item, len(b.items))
	for i, item := range b.items {
		out[i] = *item
	}
	return out
}

// Item looks up a line by identifier.
func (b *Basket) Item(id ItemID) (Item, bool) {
	if idx := b.indexOf(id); idx >= 0 {
		return *b.items[idx], true
	}
	return Item{}, false
}

// AddItem adds quantity of productID. A line for the same product (compared
// case-insensitively after trimming) is incremented instead of duplicated.
func (b *Basket) AddItem(productID string, quantity int) (Item, error) {
	if strings.TrimSpace(productID) == "" {
		return Item{}, newRuleError(ErrInvalidProduct, msgProductRequired)
	}
	if quantity <= 0 {
		return Item{}, newRuleError(ErrInvalidQuantity, msgQuantityPositive)
	}

	if existing := b.findProduct(productID); existing != nil {
		if err := existing.Increment(quantity); err != nil {
			return Item{}, err
		}
		return *existing, nil
	}

	item, err := NewItem(NewItemID(), productID, quantity)
	if err != nil {
		return Item{}, err
	}
	b.items = append(b.items, item)
	return *item, nil
}

// RemoveItem deletes the line with the given identifier, keeping the order of the rest.
func (b *Basket) RemoveItem(id ItemID) error {
	idx := b.indexOf(id)
	if idx < 0 {
		return newRuleError(ErrItemNotFound, msgItemNotFound)
	}
	b.items = append(b.items[:idx], b.items[idx+1:]...)
	return nil
}

// Clone returns a deep copy that shares no items with b.
func (b *Basket) Clone() *Basket {
	items := make([]*Item, len(b.items))
	for i, item := range b.items {
		c := *item
		items[i] = &c
	}
	return &Basket{id: b.id, items: items}
}

func (b *Basket) findProduct(productID string) *Item {
	for _, item := range b.items {
		if item.matches(productID) {
			return item
		}
	}
	return nil
}

func (b *Basket) indexOf(id ItemID) int {
	for i, item := range b.items {
		if item.id == id {
			return i
		}
	}
	return -1
}
