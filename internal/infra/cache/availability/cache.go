// Package availability caches materialized day slot records in Redis.
// The cache is a read-through accelerator for the booking view: misses and
// Redis failures both fall back to recomputing from the database.
package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/craftday/workshop-booking-service/internal/domain"
)

// ErrCacheMiss is returned when no entry exists for the key
var ErrCacheMiss = errors.New("availability.cache: miss")

// Logger is the logging surface the cache needs
type Logger interface {
	Warn(format string, v ...interface{})
}

// Cache stores per-config day slot records with a short TTL
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger Logger
}

// NewCache creates the availability cache
func NewCache(client *redis.Client, ttl time.Duration, logger Logger) *Cache {
	return &Cache{client: client, ttl: ttl, logger: logger}
}

func cacheKey(configID int64, from time.Time) string {
	return fmt.Sprintf("availability:%d:%s", configID, from.UTC().Format(domain.DateFormat))
}

// Get loads the cached day records. ErrCacheMiss means the caller should
// recompute; any Redis failure is logged and reported as a miss.
func (c *Cache) Get(ctx context.Context, configID int64, from time.Time) ([]domain.DaySlotRecord, error) {
	payload, err := c.client.Get(ctx, cacheKey(configID, from)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		c.logger.Warn("availability cache: Get - read failed for config %d: %v", configID, err)
		return nil, ErrCacheMiss
	}

	var days []domain.DaySlotRecord
	if err := json.Unmarshal(payload, &days); err != nil {
		c.logger.Warn("availability cache: Get - corrupt payload for config %d: %v", configID, err)
		return nil, ErrCacheMiss
	}

	return days, nil
}

// Set stores the day records. Failures are logged but never surfaced: the
// cache is best-effort.
func (c *Cache) Set(ctx context.Context, configID int64, from time.Time, days []domain.DaySlotRecord) {
	payload, err := json.Marshal(days)
	if err != nil {
		c.logger.Warn("availability cache: Set - marshal failed for config %d: %v", configID, err)
		return
	}

	if err := c.client.Set(ctx, cacheKey(configID, from), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("availability cache: Set - write failed for config %d: %v", configID, err)
	}
}

// Invalidate drops the cached window for a config. Used after bookings,
// cancellations, blackouts and config updates.
func (c *Cache) Invalidate(ctx context.Context, configID int64) {
	pattern := fmt.Sprintf("availability:%d:*", configID)

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("availability cache: Invalidate - scan failed for config %d: %v", configID, err)
		return
	}

	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("availability cache: Invalidate - delete failed for config %d: %v", configID, err)
	}
}
