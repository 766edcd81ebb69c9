package currency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/VeraSamohina/skypro-course-work-OOP/utils"
)

// rateTTL bounds how long a quote survives across runs. The feed is daily,
// so a day is enough.
const rateTTL = 24 * time.Hour

// RedisStore shares resolved rates across runs (and across the watch
// scheduler's cycles) through Redis.
type RedisStore struct {
	client *redis.Client
	logger *utils.Logger
}

// NewRedisStore parses redisURL, verifies connectivity and returns a store.
func NewRedisStore(ctx context.Context, redisURL string, logger *utils.Logger) (*RedisStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisStore{client: client, logger: logger}, nil
}

func (s *RedisStore) Get(ctx context.Context, code string, asOf time.Time) (float64, bool) {
	rate, err := s.client.Get(ctx, "rate:"+cacheKey(code, asOf)).Float64()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("[currency] Redis read failed: %v", err)
		}
		return 0, false
	}
	return rate, true
}

func (s *RedisStore) Set(ctx context.Context, code string, asOf time.Time, rate float64) {
	if err := s.client.Set(ctx, "rate:"+cacheKey(code, asOf), rate, rateTTL).Err(); err != nil {
		s.logger.Warn("[currency] Redis write failed: %v", err)
	}
}

// Close releases the underlying connection pool.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
