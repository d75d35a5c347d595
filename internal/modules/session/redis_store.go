// README: Session store backed by one Redis hash per session with WATCH-based version checks.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"flightdesk/internal/types"
)

const sessionKeyPrefix = "flightdesk:session:%s"

type RedisStore struct {
	redis *redis.Client
	ttl   time.Duration
	now   func() time.Time
}

func NewRedisStore(redis *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{redis: redis, ttl: ttl, now: time.Now}
}

func (s *RedisStore) Get(ctx context.Context, id types.SessionID) (*Session, error) {
	fields, err := s.redis.HGetAll(ctx, sessionKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}
	return decodeDocuments(id, fields)
}

// Save writes all surfaces in one MULTI so a reader never sees a half-applied turn.
func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	key := sessionKey(sess.ID)

	next := *sess
	next.Version = sess.Version + 1
	next.UpdatedAt = s.now().UTC()
	if next.CreatedAt.IsZero() {
		next.CreatedAt = next.UpdatedAt
	}
	fields, err := encodeDocuments(&next)
	if err != nil {
		return err
	}
	values := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		values = append(values, k, v)
	}

	err = s.redis.Watch(ctx, func(tx *redis.Tx) error {
		stored, err := tx.HGet(ctx, key, fieldVersion).Result()
		switch {
		case errors.Is(err, redis.Nil):
			if sess.Version != 0 {
				return ErrConflict
			}
		case err != nil:
			return err
		default:
			if sess.Version == 0 || stored != formatVersion(sess.Version) {
				return ErrConflict
			}
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key, values...)
			if s.ttl > 0 {
				pipe.Expire(ctx, key, s.ttl)
			}
			return nil
		})
		return err
	}, key)
	if errors.Is(err, redis.TxFailedErr) {
		return ErrConflict
	}
	if err != nil {
		return err
	}
	sess.Version, sess.CreatedAt, sess.UpdatedAt = next.Version, next.CreatedAt, next.UpdatedAt
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, id types.SessionID) error {
	return s.redis.Del(ctx, sessionKey(id)).Err()
}

func sessionKey(id types.SessionID) string {
	return fmt.Sprintf(sessionKeyPrefix, id.String())
}
