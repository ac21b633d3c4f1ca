// internal/basket/errors.go
package basket

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrInvalidProduct    = errors.New("invalid product")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrQuantityOverflow  = errors.New("quantity overflow")
	ErrItemNotFound      = errors.New("item not found")
	ErrAlreadyExists     = errors.New("basket already exists")
	ErrInvalidCommand    = errors.New("invalid command")
)

// Messages returned to API callers. Clients match on them, keep them stable.
const (
	msgBasketIDEmpty     = "BasketId cannot be empty."
	msgItemIDEmpty       = "ItemId cannot be empty."
	msgProductRequired   = "Product identifier is required."
	msgQuantityPositive  = "Quantity must be > 0."
	msgIncrementPositive = "Increment must be > 0."
	msgQuantityOverflow  = "Quantity exceeds the maximum allowed value."
	msgItemNotFound      = "Item not found."
	msgBasketNotFound    = "Basket not found."
)

// RuleError is a domain rule failure. Error returns the user-facing message,
// errors.Is matches the sentinel it was built from.
type RuleError struct {
	kind    error
	message string
}

func newRuleError(kind error, message string) *RuleError {
	return &RuleError{kind: kind, message: message}
}

func (e *RuleError) Error() string { return e.message }
func (e *RuleError) Unwrap() error { return e.kind }

// Message returns the user-facing message of a domain or store failure.
func Message(err error) string {
	var rule *RuleError
	if errors.As(err, &rule) {
		return rule.message
	}
	return err.Error()
}

func alreadyExists(id BasketID) error {
	return newRuleError(ErrAlreadyExists, fmt.Sprintf("Basket '%s' already exists.", id))
}
