package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/learnloop/backend/internal/models"
)

const cacheKeyPrefix = "leaderboard:top:"

// Cache holds recent top-N snapshots in Redis so the ranking query doesn't
// run on every request. A nil *Cache is valid and caches nothing.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client, ttl: ttl}
}

// Get returns the cached entries for a limit, or (nil, nil) on a miss.
func (c *Cache) Get(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	if c == nil {
		return nil, nil
	}

	data, err := c.client.Get(ctx, cacheKey(limit)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leaderboard cache get: %w", err)
	}

	var entries []models.LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("leaderboard cache decode: %w", err)
	}
	return entries, nil
}

func (c *Cache) Set(ctx context.Context, limit int, entries []models.LeaderboardEntry) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("leaderboard cache encode: %w", err)
	}
	if err := c.client.Set(ctx, cacheKey(limit), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("leaderboard cache set: %w", err)
	}
	return nil
}

func cacheKey(limit int) string {
	return fmt.Sprintf("%s%d", cacheKeyPrefix, limit)
}
