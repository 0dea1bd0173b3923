package cache

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/tu-usuario/retail-ledger/internal/domain/matching"
)

// RedisCatalogCache implementa CatalogCache sobre Redis (payload JSON).
type RedisCatalogCache struct {
	client *redis.Client
}

// NewRedisCatalogCache construye el cliente Redis.
func NewRedisCatalogCache(addr, password string, db int) *RedisCatalogCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisCatalogCache{client: client}
}

func (c *RedisCatalogCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCatalogCache) Close() error {
	return c.client.Close()
}

func (c *RedisCatalogCache) Get(ctx context.Context, key string) ([]matching.Candidate, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var candidates []matching.Candidate
	if err := json.Unmarshal([]byte(val), &candidates); err != nil {
		return nil, false, err
	}
	return candidates, true, nil
}

func (c *RedisCatalogCache) Set(ctx context.Context, key string, candidates []matching.Candidate, ttl time.Duration) error {
	if len(candidates) == 0 {
		return nil
	}
	payload, err := json.Marshal(candidates)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}

func (c *RedisCatalogCache) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}
