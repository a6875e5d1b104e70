package menu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r RedisCache) Get(ctx context.Context, restaurantID string) (*Menu, error) {
	key := cacheKey(restaurantID)

	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var m Menu
	if err2 := json.Unmarshal(data, &m); err2 != nil {
		return nil, fmt.Errorf("unmarshal menu failed: %w", err2)
	}

	return &m, nil
}

func (r RedisCache) Set(ctx context.Context, restaurantID string, m *Menu) error {
	key := cacheKey(restaurantID)
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshal menu failed: %w", err)
	}

	// Jitter spreads expirations so a popular restaurant's menu doesn't
	// expire for every client at once.
	jitter := time.Duration(rand.Intn(5)) * time.Minute
	ttl := r.baseTTL + jitter
	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r RedisCache) Delete(ctx context.Context, restaurantID string) error {
	if err := r.client.Del(ctx, cacheKey(restaurantID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cacheKey(restaurantID string) string {
	return fmt.Sprintf("menu:%s", restaurantID)
}
