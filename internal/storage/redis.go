package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps short-lived operational state: politeness marks for
// recently fetched URLs and de-duplication keys for delivered alerts.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr string) *RedisStore {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	return &RedisStore{client: rdb}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

// MarkFetched records that a URL was just fetched, for the politeness TTL.
func (s *RedisStore) MarkFetched(ctx context.Context, url string, ttl time.Duration) error {
	return s.client.Set(ctx, "fetched:"+url, "1", ttl).Err()
}

// RecentlyFetched reports whether a URL was fetched within the TTL.
func (s *RedisStore) RecentlyFetched(ctx context.Context, url string) (bool, error) {
	n, err := s.client.Exists(ctx, "fetched:"+url).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// MarkAlerted claims an alert key. It returns true for the first caller and
// false once the key exists, so a drop is announced at most once per TTL.
func (s *RedisStore) MarkAlerted(ctx context.Context, productID int64, observedAt time.Time, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("alerted:%d:%d", productID, observedAt.Unix())
	return s.client.SetNX(ctx, key, "1", ttl).Result()
}
