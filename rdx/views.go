package rdx

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// View keys name the cached read models a mutation has to invalidate.
func CabinView(cabinID string) string         { return "view:cabin:" + cabinID }
func ReservationsView(guestID string) string  { return "view:reservations:" + guestID }
func ReservationView(bookingID string) string { return "view:reservation:" + bookingID }
func ProfileView(guestID string) string       { return "view:profile:" + guestID }

// Cache is what handlers need from a view cache.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Revalidate(ctx context.Context, keys ...string) error
}

var _ Cache = (*ViewCache)(nil)

// ViewCache stores rendered read models as JSON.
type ViewCache struct {
	client *redis.Client
}

func NewViewCache(client *redis.Client) *ViewCache {
	return &ViewCache{client: client}
}

// Get decodes the cached view into dst. A miss is (false, nil).
func (c *ViewCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		// A value we cannot read is as good as absent.
		c.client.Del(ctx, key)
		return false, nil
	}
	return true, nil
}

func (c *ViewCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

// Revalidate drops the given views so the next read goes to the store.
func (c *ViewCache) Revalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Printf("[rdx] revalidate %v failed: %v", keys, err)
		return err
	}
	return nil
}
