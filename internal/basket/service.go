// internal/basket/service.go
package basket

import "context"

// Outcome classifies the result of a basket operation.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeNotFound
	OutcomeViolation
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeViolation:
		return "violation"
	default:
		return "unknown"
	}
}

// Result is what every service operation returns. Basket is set only for
// OutcomeOK; Message is set for the other outcomes.
type Result struct {
	Outcome Outcome
	Basket  *Basket
	Message string
}

func okResult(b *Basket) Result            { return Result{Outcome: OutcomeOK, Basket: b} }
func notFoundResult(message string) Result { return Result{Outcome: OutcomeNotFound, Message: message} }
func violationResult(message string) Result {
	return Result{Outcome: OutcomeViolation, Message: message}
}

// CreateBasketCommand requests a new empty basket.
type CreateBasketCommand struct{}

// AddItemCommand adds quantity units of a product.
type AddItemCommand struct {
	ProductID string
	Quantity  int
}

// AddItemsCommand adds several lines in order, all or nothing.
type AddItemsCommand struct {
	Items []AddItemCommand
}

// Service defines the basket operations. Domain failures come back in the
// Result; the error return is reserved for infrastructure failures and misuse.
type Service interface {
	CreateBasket(ctx context.Context, cmd CreateBasketCommand) (Result, error)
	GetBasket(ctx context.Context, id BasketID) (Result, error)
	AddItem(ctx context.Context, id BasketID, cmd AddItemCommand) (Result, error)
	AddItems(ctx context.Context, id BasketID, cmd AddItemsCommand) (Result, error)
	RemoveItem(ctx context.Context, id BasketID, itemID ItemID) (Result, error)
}
