// Package cache holds the cached ticket list view. Mutations invalidate a
// user's cached pages; reads fall back to the database on any cache error.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-board/internal/events"
	"github.com/spec-kit/ticket-board/internal/persistence"
)

// TicketListCache stores serialized ticket list pages per owner.
type TicketListCache interface {
	Get(ctx context.Context, ownerID, key string) ([]byte, bool)
	Set(ctx context.Context, ownerID, key string, payload []byte)
	Invalidate(ctx context.Context, ownerID string)
}

type redisTicketListCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewTicketListCache builds a Redis-backed cache. All operations are best
// effort; a missing or unreachable Redis degrades to cache misses.
func NewTicketListCache(store *persistence.Redis, ttl time.Duration, logger *zap.Logger) TicketListCache {
	var client *redis.Client
	if store != nil {
		client = store.Client
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &redisTicketListCache{client: client, ttl: ttl, logger: logger}
}

func cacheKey(ownerID, key string) string {
	return fmt.Sprintf("tickets:%s:%s", ownerID, key)
}

func (c *redisTicketListCache) Get(ctx context.Context, ownerID, key string) ([]byte, bool) {
	if c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, cacheKey(ownerID, key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("ticket cache get failed", zap.Error(err))
		}
		return nil, false
	}
	return payload, true
}

func (c *redisTicketListCache) Set(ctx context.Context, ownerID, key string, payload []byte) {
	if c.client == nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(ownerID, key), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("ticket cache set failed", zap.Error(err))
	}
}

func (c *redisTicketListCache) Invalidate(ctx context.Context, ownerID string) {
	if c.client == nil {
		return
	}
	pattern := cacheKey(ownerID, "*")
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warn("ticket cache delete failed", zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("ticket cache scan failed", zap.Error(err))
	}
}

// RegisterInvalidation subscribes cache invalidation to every ticket and
// comment mutation event, keyed by the acting user. Ticket mutations are
// owner-only; comment events clear the commenter's view, and the list
// payload carries no comment data.
func RegisterInvalidation(dispatcher events.Dispatcher, cache TicketListCache) {
	handler := func(ctx context.Context, event events.Event) error {
		cache.Invalidate(ctx, event.ActorID)
		return nil
	}
	for _, eventType := range []events.EventType{
		events.EventTicketCreated,
		events.EventTicketUpdated,
		events.EventTicketStatusChanged,
		events.EventTicketDeleted,
		events.EventCommentAdded,
		events.EventCommentDeleted,
	} {
		dispatcher.Subscribe(eventType, handler)
	}
}
