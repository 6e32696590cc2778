package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/posterlab/posters-ms-go/internal/port"
	"github.com/posterlab/posters-ms-go/internal/uuid"
)

type Cache struct {
	client *redis.Client
}

// compile-time check: *Cache must satisfy port.Cache
var _ port.Cache = (*Cache)(nil)

func NewCache(addr, password string) *Cache {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	return &Cache{client: rdb}
}

func (c *Cache) GetSignedURL(ctx context.Context, id uuid.UUID) (*port.GetSignedURLOutput, error) {
	log.Printf("getting signed-url cache entry for image #%s...", id)

	val, err := c.client.Get(ctx, getCacheKey(id.String())).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var out port.GetSignedURLOutput
	if err := json.Unmarshal([]byte(val), &out); err != nil {
		return nil, fmt.Errorf("unmarshal failed: %w", err)
	}

	return &out, nil
}

func (c *Cache) SetSignedURL(ctx context.Context, id uuid.UUID, out *port.GetSignedURLOutput) error {
	log.Printf("creating signed-url cache entry for image #%s, valid until %s...", id, out.ValidUntil.Format(time.RFC1123))

	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshal failed: %w", err)
	}

	if err := c.client.Set(ctx, getCacheKey(id.String()), data, time.Until(out.ValidUntil)).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func getCacheKey(id string) string {
	return "signed_url:" + id
}
