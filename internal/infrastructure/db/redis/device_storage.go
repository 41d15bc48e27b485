package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const deviceTTL = 30 * 24 * time.Hour

// DeviceStorage is the durable per-device key/value store behind the web
// session. Every write refreshes the TTL.
// Key format: device:<device_id>:<key>
type DeviceStorage struct {
	client   *redis.Client
	deviceID string
}

// NewDeviceStorage scopes storage to one browser device.
func NewDeviceStorage(client *redis.Client, deviceID string) *DeviceStorage {
	return &DeviceStorage{client: client, deviceID: deviceID}
}

func (s *DeviceStorage) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("device storage get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *DeviceStorage) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, deviceTTL).Err(); err != nil {
		return fmt.Errorf("device storage set %s: %w", key, err)
	}
	return nil
}

func (s *DeviceStorage) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.key(k)
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("device storage delete: %w", err)
	}
	return nil
}

func (s *DeviceStorage) key(k string) string {
	return fmt.Sprintf("device:%s:%s", s.deviceID, k)
}
