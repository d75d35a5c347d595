// README: Redis-backed classification cache keyed by the normalised utterance digest.
package intent

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "flightdesk:intent:"

type Cache interface {
	Get(ctx context.Context, utterance string) (Intent, bool, error)
	Put(ctx context.Context, utterance string, in Intent) error
}

type RedisCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisCache(redis *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{redis: redis, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, utterance string) (Intent, bool, error) {
	val, err := c.redis.Get(ctx, cacheKey(utterance)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	in, ok := Parse(val)
	return in, ok, nil
}

func (c *RedisCache) Put(ctx context.Context, utterance string, in Intent) error {
	return c.redis.Set(ctx, cacheKey(utterance), string(in), c.ttl).Err()
}

func cacheKey(utterance string) string {
	sum := sha256.Sum256([]byte(normalize(utterance)))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}

func normalize(utterance string) string {
	return strings.ToLower(strings.Join(strings.Fields(utterance), " "))
}
