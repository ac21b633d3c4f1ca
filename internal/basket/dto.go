// internal/basket/dto.go
package basket

import "github.com/google/uuid"

// BasketDTO is the wire representation of a basket.
type BasketDTO struct {
	BasketID uuid.UUID `json:"basketId"`
	Items    []ItemDTO `json:"items"`
}

// ItemDTO is the wire representation of a basket line.
type ItemDTO struct {
	ItemID    uuid.UUID `json:"itemId"`
	ProductID string    `json:"productId"`
	Quantity  int       `json:"quantity"`
}

// BasketResponse wraps a basket in the envelope every endpoint returns.
type BasketResponse struct {
	Basket BasketDTO `json:"basket"`
}

// ErrorResponse is the body of 4xx and 5xx answers.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ValidationProblem lists field-level validation failures.
type ValidationProblem struct {
	Title  string              `json:"title"`
	Status int                 `json:"status"`
	Errors map[string][]string `json:"errors"`
}

// ToDTO maps a basket onto its wire representation.
func ToDTO(b *Basket) BasketDTO {
	dto := BasketDTO{
		BasketID: b.ID().UUID(),
		Items:    make([]ItemDTO, 0, b.Len()),
	}
	for _, item := range b.items {
		dto.Items = append(dto.Items, ItemDTO{
			ItemID:    item.id.UUID(),
			ProductID: item.productID,
			Quantity:  item.quantity,
		})
	}
	return dto
}

// AddItemRequest is the body of POST /baskets/{basketId}/item. Quantity defaults to 1.
type AddItemRequest struct {
	ProductID *string `json:"productId" validate:"required,notblank"`
	Quantity  *int    `json:"quantity" validate:"omitempty,gt=0"`
}

// BatchAddItemRequest is the body of POST /baskets/{basketId}/items.
type BatchAddItemRequest struct {
	Items []AddItemRequest `json:"items" validate:"required,min=1,dive"`
}
