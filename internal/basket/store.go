// internal/basket/store.go
package basket

import "context"

// Store persists baskets by identifier.
//
// Create must be atomic per key: of several concurrent creates for the same
// identifier exactly one succeeds and the rest fail with ErrAlreadyExists.
// Get reports absence with ok == false rather than an error. Save is an
// unconditional upsert and the last write wins.
//
// Implementations store and return copies, so a basket being mutated by one
// caller is never observed by another before it is saved.
type Store interface {
	Create(ctx context.Context, b *Basket) (*Basket, error)
	Get(ctx context.Context, id BasketID) (b *Basket, ok bool, err error)
	Save(ctx context.Context, b *Basket) error
}
