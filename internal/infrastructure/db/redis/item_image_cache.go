package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const itemImageTTL = 24 * time.Hour

// ItemImageCache stores resolved item image URLs.
// Key format: itemimg:<item_id>
type ItemImageCache struct {
	client *redis.Client
}

func NewItemImageCache(client *redis.Client) *ItemImageCache {
	return &ItemImageCache{client: client}
}

// Get reports found=false on a cache miss.
func (c *ItemImageCache) Get(ctx context.Context, itemID string) (string, bool, error) {
	v, err := c.client.Get(ctx, c.key(itemID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("item image cache: %w", err)
	}
	return v, true, nil
}

// Set records url for itemID (expires after itemImageTTL).
func (c *ItemImageCache) Set(ctx context.Context, itemID, url string) error {
	return c.client.Set(ctx, c.key(itemID), url, itemImageTTL).Err()
}

func (c *ItemImageCache) key(itemID string) string {
	return "itemimg:" + itemID
}
