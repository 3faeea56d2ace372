package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/repair-tracker/internal/domain"
)

const trackCachePrefix = "ticket:tracking:"

// TicketCache caches ticket snapshots for the public tracking lookup. A nil
// client disables caching; every method degrades to a miss or a no-op.
type TicketCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewTicketCache builds the cache.
func NewTicketCache(client *redis.Client, ttl time.Duration) *TicketCache {
	return &TicketCache{client: client, ttl: ttl}
}

// Get returns the cached ticket or (nil, nil) on a miss.
func (c *TicketCache) Get(ctx context.Context, trackingID string) (*domain.Ticket, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	raw, err := c.client.Get(ctx, trackCachePrefix+trackingID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var ticket domain.Ticket
	if err := json.Unmarshal(raw, &ticket); err != nil {
		return nil, nil
	}
	return &ticket, nil
}

// Set stores a snapshot with the configured TTL.
func (c *TicketCache) Set(ctx context.Context, ticket *domain.Ticket) error {
	if c == nil || c.client == nil || ticket == nil {
		return nil
	}
	raw, err := json.Marshal(ticket)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, trackCachePrefix+ticket.TrackingID, raw, c.ttl).Err()
}

// Invalidate drops the snapshot after any mutation.
func (c *TicketCache) Invalidate(ctx context.Context, trackingID string) error {
	if c == nil || c.client == nil || trackingID == "" {
		return nil
	}
	return c.client.Del(ctx, trackCachePrefix+trackingID).Err()
}
