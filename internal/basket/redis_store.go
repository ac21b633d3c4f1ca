// internal/basket/redis_store.go
package basket

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps basket snapshots under basket:{id} keys.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a store on the given client. A ttl of 0 keeps keys forever;
// otherwise every write refreshes the expiry.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (s *RedisStore) key(id BasketID) string {
	return fmt.Sprintf("basket:%s", id)
}

// Create relies on SETNX for the atomic check-and-insert.
func (s *RedisStore) Create(ctx context.Context, b *Basket) (*Basket, error) {
	state, err := marshalSnapshot(b)
	if err != nil {
		return nil, err
	}

	created, err := s.client.SetNX(ctx, s.key(b.ID()), state, s.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("create basket: %w", err)
	}
	if !created {
		return nil, alreadyExists(b.ID())
	}
	return b, nil
}

func (s *RedisStore) Get(ctx context.Context, id BasketID) (*Basket, bool, error) {
	state, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load basket: %w", err)
	}

	b, err := unmarshalSnapshot(state)
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *RedisStore) Save(ctx context.Context, b *Basket) error {
	state, err := marshalSnapshot(b)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.key(b.ID()), state, s.ttl).Err(); err != nil {
		return fmt.Errorf("save basket: %w", err)
	}
	return nil
}
