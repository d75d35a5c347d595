// README: Per-session turn lock so two turns for one session never interleave.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"flightdesk/internal/types"
)

var ErrLockTimeout = errors.New("session busy")

const (
	lockKeyPrefix = "flightdesk:lock:%s"
	lockPoll      = 50 * time.Millisecond
)

// Locker serializes turns per session. Lock blocks until the lock is held or ctx ends.
type Locker interface {
	Lock(ctx context.Context, id types.SessionID) (unlock func(), err error)
}

// releaseScript deletes the key only when the caller still owns it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisLocker(redis *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{redis: redis, ttl: ttl}
}

func (l *RedisLocker) Lock(ctx context.Context, id types.SessionID) (func(), error) {
	key := fmt.Sprintf(lockKeyPrefix, id.String())
	token := uuid.NewString()
	ticker := time.NewTicker(lockPoll)
	defer ticker.Stop()
	for {
		ok, err := l.redis.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				// Release with a fresh context: the turn context may already be done.
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = releaseScript.Run(ctx, l.redis, []string{key}, token).Err()
			}, nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", ErrLockTimeout, ctx.Err())
		case <-ticker.C:
		}
	}
}

// MemoryLocker is the single-process equivalent; each session gets a 1-slot
// channel that is dropped once nobody holds or waits for it.
type MemoryLocker struct {
	mu    sync.Mutex
	slots map[types.SessionID]*memorySlot
}

type memorySlot struct {
	ch   chan struct{}
	refs int
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{slots: make(map[types.SessionID]*memorySlot)}
}

func (l *MemoryLocker) Lock(ctx context.Context, id types.SessionID) (func(), error) {
	l.mu.Lock()
	slot, ok := l.slots[id]
	if !ok {
		slot = &memorySlot{ch: make(chan struct{}, 1)}
		l.slots[id] = slot
	}
	slot.refs++
	l.mu.Unlock()

	select {
	case slot.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-slot.ch
				l.release(id, slot)
			})
		}, nil
	case <-ctx.Done():
		l.release(id, slot)
		return nil, fmt.Errorf("%w: %v", ErrLockTimeout, ctx.Err())
	}
}

func (l *MemoryLocker) release(id types.SessionID, slot *memorySlot) {
	l.mu.Lock()
	slot.refs--
	if slot.refs == 0 && l.slots[id] == slot {
		delete(l.slots, id)
	}
	l.mu.Unlock()
}
