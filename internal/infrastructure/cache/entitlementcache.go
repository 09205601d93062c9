package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"

	usecases "captr/internal/application/entitlement/usecases"
	"captr/internal/shared/logger"
)

const (
	entitlementKeyPrefix = "entitlement:subscription:"
	baseSnapshotTTL      = 30 * time.Minute
	snapshotTTLJitter    = 10 * time.Minute // TTL range: 30-40 min (anti-stampede)
	absentMarkerTTL      = 2 * time.Minute  // Short TTL for never-subscribed markers (anti-penetration)
)

// RedisEntitlementCache caches subscription snapshots in Redis. Only raw
// stored state is cached; plan expiry is always evaluated at read time, so a
// stale snapshot can never keep a lapsed subscription on a paid tier.
type RedisEntitlementCache struct {
	client *redis.Client
	logger logger.Interface
}

// NewRedisEntitlementCache creates a new Redis-based entitlement cache
func NewRedisEntitlementCache(client *redis.Client, logger logger.Interface) *RedisEntitlementCache {
	return &RedisEntitlementCache{
		client: client,
		logger: logger,
	}
}

func (c *RedisEntitlementCache) key(userID uint) string {
	return fmt.Sprintf("%s%d", entitlementKeyPrefix, userID)
}

// GetSnapshot retrieves a cached snapshot, (nil, nil) on a miss.
func (c *RedisEntitlementCache) GetSnapshot(ctx context.Context, userID uint) (*usecases.SubscriptionSnapshot, error) {
	data, err := c.client.Get(ctx, c.key(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get entitlement snapshot: %w", err)
	}

	var snap usecases.SubscriptionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		// Treat a corrupt entry as a miss and drop it.
		c.logger.Warnw("corrupt entitlement snapshot, evicting", "user_id", userID, "error", err)
		if delErr := c.client.Del(ctx, c.key(userID)).Err(); delErr != nil {
			c.logger.Warnw("failed to evict corrupt snapshot", "user_id", userID, "error", delErr)
		}
		return nil, nil
	}

	return &snap, nil
}

// SetSnapshot stores a snapshot. Never-subscribed markers get a short TTL so
// a fresh subscription shows up quickly even if invalidation is missed.
func (c *RedisEntitlementCache) SetSnapshot(ctx context.Context, userID uint, snap *usecases.SubscriptionSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal entitlement snapshot: %w", err)
	}

	ttl := absentMarkerTTL
	if snap.Exists {
		ttl = baseSnapshotTTL + rand.N(snapshotTTLJitter)
	}

	if err := c.client.Set(ctx, c.key(userID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set entitlement snapshot: %w", err)
	}
	return nil
}

// Invalidate drops the user's cached snapshot.
func (c *RedisEntitlementCache) Invalidate(ctx context.Context, userID uint) error {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate entitlement snapshot: %w", err)
	}
	return nil
}
