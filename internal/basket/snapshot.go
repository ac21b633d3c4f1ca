// internal/basket/snapshot.go
package basket

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// snapshot is the serialized state of a basket used by the external stores.
type snapshot struct {
	BasketID uuid.UUID      `json:"basketId"`
	Items    []itemSnapshot `json:"items"`
}

type itemSnapshot struct {
	ItemID    uuid.UUID `json:"itemId"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
}

func marshalSnapshot(b *Basket) ([]byte, error) {
	snap := snapshot{
		BasketID: b.ID().UUID(),
		Items:    make([]itemSnapshot, 0, b.Len()),
	}
	for _, item := range b.items {
		snap.Items = append(snap.Items, itemSnapshot{
			ItemID:    item.id.UUID(),
			ProductID: item.productID,
			Quantity:  item.quantity,
		})
	}
	return json.Marshal(snap)
}

func unmarshalSnapshot(data []byte) (*Basket, error) {
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode basket snapshot: %w", err)
	}

	id, err := BasketIDFrom(snap.BasketID)
	if err != nil {
		return nil, fmt.Errorf("decode basket snapshot: %w", err)
	}

	items := make([]Item, 0, len(snap.Items))
	for _, s := range snap.Items {
		itemID, err := ItemIDFrom(s.ItemID)
		if err != nil {
			return nil, fmt.Errorf("decode basket snapshot: %w", err)
		}
		items = append(items, Item{id: itemID, productID: s.ProductID, quantity: s.Quantity})
	}
	return Rehydrate(id, items)
}
