package syncer

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Sudheer128/cloud4india-sub003/core/catalog"
)

const redisKeyPrefix = "catalog:snapshot:"

type cacheEntry struct {
	snap     *catalog.Snapshot
	storedAt time.Time
}

// snapshotCache holds one catalog snapshot per rate card. Entries past
// their TTL are kept so a failed refresh can still serve the last good
// snapshot. An optional Redis tier survives process restarts.
type snapshotCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
	rdb     *redis.Client
	logger  *zap.Logger
}

func newSnapshotCache(ttl time.Duration, rdb *redis.Client, logger *zap.Logger) *snapshotCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &snapshotCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
		rdb:     rdb,
		logger:  logger,
	}
}

// lookup returns the cached snapshot for rateCard and whether it is
// still fresh. A stale or missing in-process entry falls through to
// Redis when configured; a stale entry is still returned as last-good.
func (c *snapshotCache) lookup(ctx context.Context, rateCard string) (*catalog.Snapshot, bool) {
	c.mu.RLock()
	entry, ok := c.entries[rateCard]
	c.mu.RUnlock()

	if ok && time.Since(entry.storedAt) < c.ttl {
		return entry.snap, true
	}

	if c.rdb != nil {
		if snap := c.fromRedis(ctx, rateCard); snap != nil {
			c.mu.Lock()
			c.entries[rateCard] = cacheEntry{snap: snap, storedAt: time.Now()}
			c.mu.Unlock()
			return snap, true
		}
	}

	if ok {
		return entry.snap, false
	}
	return nil, false
}

func (c *snapshotCache) put(ctx context.Context, rateCard string, snap *catalog.Snapshot) {
	c.mu.Lock()
	c.entries[rateCard] = cacheEntry{snap: snap, storedAt: time.Now()}
	c.mu.Unlock()

	if c.rdb == nil {
		return
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		c.logger.Warn("failed to marshal snapshot for redis", zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, redisKeyPrefix+rateCard, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to store snapshot in redis",
			zap.String("rate_card", rateCard),
			zap.Error(err))
	}
}

func (c *snapshotCache) clear(ctx context.Context) {
	c.mu.Lock()
	keys := make([]string, 0, len(c.entries))
	for rateCard := range c.entries {
		keys = append(keys, redisKeyPrefix+rateCard)
	}
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()

	if c.rdb != nil && len(keys) > 0 {
		if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
			c.logger.Warn("failed to clear redis snapshot keys", zap.Error(err))
		}
	}
}

func (c *snapshotCache) fromRedis(ctx context.Context, rateCard string) *catalog.Snapshot {
	payload, err := c.rdb.Get(ctx, redisKeyPrefix+rateCard).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("redis snapshot lookup failed",
				zap.String("rate_card", rateCard),
				zap.Error(err))
		}
		return nil
	}
	var snap catalog.Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		c.logger.Warn("corrupt snapshot in redis, ignoring",
			zap.String("rate_card", rateCard),
			zap.Error(err))
		return nil
	}
	return &snap
}
