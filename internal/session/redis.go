package session

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "jobmap:page:"

// RedisStore keeps session pages in Redis so several dashboard processes can share them
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an existing client
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

// NewRedisClient connects to redisURL and verifies the connection
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := ParseRedisURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// ParseRedisURL converts redis:// and rediss:// URLs into client options.
// Query options such as dial_timeout are passed through to go-redis.
func ParseRedisURL(redisURL string) (*redis.Options, error) {
	u, err := url.Parse(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if u.Scheme != "redis" && u.Scheme != "rediss" {
		return nil, fmt.Errorf("unsupported redis url scheme %q", u.Scheme)
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return opts, nil
}

func redisKey(sessionID string) string {
	return redisKeyPrefix + sessionID
}

func (s *RedisStore) Page(ctx context.Context, sessionID string) (int, error) {
	if err := checkID(sessionID); err != nil {
		return 1, err
	}

	page, err := s.client.Get(ctx, redisKey(sessionID)).Int()
	if errors.Is(err, redis.Nil) {
		return 1, nil
	}
	if err != nil {
		return 1, fmt.Errorf("get session page: %w", err)
	}
	if page < 1 {
		return 1, nil
	}
	return page, nil
}

func (s *RedisStore) SetPage(ctx context.Context, sessionID string, page int) error {
	if err := checkID(sessionID); err != nil {
		return err
	}
	if page < 1 {
		page = 1
	}

	if err := s.client.Set(ctx, redisKey(sessionID), page, s.ttl).Err(); err != nil {
		return fmt.Errorf("set session page: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, redisKey(sessionID)).Err()
}
