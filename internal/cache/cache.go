package cache

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/videotube/videos-ms-go/internal/port"
	"github.com/videotube/videos-ms-go/internal/uuid"
)

// Cache keeps rendered video details in Redis between terminal status
// changes; the reconciler invalidates entries when a job commits.
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

func (c *Cache) GetVideoDetails(ctx context.Context, id uuid.UUID) ([]byte, error) {
	log.Printf("getting entry in cache for video #%s...", id)

	val, err := c.client.Get(ctx, getCacheKey(id.String())).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // cache miss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	return val, nil
}

func (c *Cache) SetVideoDetails(ctx context.Context, id uuid.UUID, data []byte, validUntil time.Time) {
	log.Printf("creating entry in cache for video #%s, valid until %s...", id, validUntil.Format(time.RFC1123))

	if err := c.client.Set(ctx, getCacheKey(id.String()), data, time.Until(validUntil)).Err(); err != nil {
		log.Printf("redis set failed for video #%s: %v", id, err)
	}
}

func (c *Cache) DeleteVideoDetails(ctx context.Context, id uuid.UUID) error {
	log.Printf("deleting entry in cache for video #%s...", id)

	if err := c.client.Del(ctx, getCacheKey(id.String())).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}

func getCacheKey(id string) string {
	return "video:" + id
}
