package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"itinerary-planner-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

// How long cached venue results stay valid. Venue data drifts slowly;
// a day keeps repeat requests cheap without serving closed venues forever.
const venueCacheTTL = 24 * time.Hour

// RedisVenueCache is a Redis-backed cache for venue search results,
// selected when REDIS_ADDR is configured.
type RedisVenueCache struct {
	client *redis.Client
}

func NewRedisVenueCache(addr string) (*RedisVenueCache, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, errors.New("venue cache: redis addr is empty")
	}
	return &RedisVenueCache{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}, nil
}

func redisKey(key string) string { return "venues:" + key }

// Fetch the cached results for one query key.
func (r *RedisVenueCache) Get(ctx context.Context, key string) (ports.VenueResults, bool, error) {
	if strings.TrimSpace(key) == "" {
		return ports.VenueResults{}, false, errors.New("get venue cache: key must not be empty")
	}

	payload, err := r.client.Get(ctx, redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.VenueResults{}, false, nil
	}
	if err != nil {
		return ports.VenueResults{}, false, fmt.Errorf("get venue cache: redis get: %w", err)
	}

	var out ports.VenueResults
	if err := json.Unmarshal(payload, &out); err != nil {
		return ports.VenueResults{}, false, fmt.Errorf("get venue cache: decode payload: %w", err)
	}
	return out, true, nil
}

// Store results for one query key with a TTL.
func (r *RedisVenueCache) Put(ctx context.Context, key string, results ports.VenueResults) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("insert venue cache: key must not be empty")
	}

	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("insert venue cache: encode payload: %w", err)
	}

	if err := r.client.Set(ctx, redisKey(key), payload, venueCacheTTL).Err(); err != nil {
		return fmt.Errorf("insert venue cache key=%q: %w", key, err)
	}
	return nil
}
