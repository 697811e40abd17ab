package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dannysckt/storefront-backend/pkg/redis"
)

type cartKV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(userID string) string
}

// Store keeps one serialized cart per authenticated user in Redis. The TTL is
// refreshed on every save, so an idle cart eventually expires.
type Store struct {
	kv  cartKV
	ttl time.Duration
}

// NewStore wires the session cart store.
func NewStore(kv cartKV, ttl time.Duration) (*Store, error) {
	if kv == nil {
		return nil, errors.New("redis client is required")
	}
	if ttl <= 0 {
		return nil, errors.New("session ttl must be positive")
	}
	return &Store{kv: kv, ttl: ttl}, nil
}

// Load returns the user's cart, or an empty cart when none is stored.
func (s *Store) Load(ctx context.Context, userID string) (*Cart, error) {
	payload, err := s.kv.Get(ctx, s.kv.CartKey(userID))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &Cart{}, nil
		}
		return nil, fmt.Errorf("loading cart: %w", err)
	}

	var cart Cart
	if err := json.Unmarshal([]byte(payload), &cart); err != nil {
		return nil, fmt.Errorf("decoding cart: %w", err)
	}
	return &cart, nil
}

// Save serializes the cart and refreshes the session TTL.
func (s *Store) Save(ctx context.Context, userID string, cart *Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}
	if err := s.kv.Set(ctx, s.kv.CartKey(userID), string(payload), s.ttl); err != nil {
		return fmt.Errorf("saving cart: %w", err)
	}
	return nil
}

// Delete drops the user's cart entirely.
func (s *Store) Delete(ctx context.Context, userID string) error {
	if err := s.kv.Del(ctx, s.kv.CartKey(userID)); err != nil {
		return fmt.Errorf("deleting cart: %w", err)
	}
	return nil
}
