// README: Token-bucket rate limiting keyed by session id, or client IP when there is none.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	limiterIdle  = 10 * time.Minute
	sweepAtCount = 1024
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type limiterStore struct {
	mu       sync.Mutex
	perMin   int
	limiters map[string]*limiterEntry
	now      func() time.Time
}

func newLimiterStore(perMin int) *limiterStore {
	return &limiterStore{perMin: perMin, limiters: make(map[string]*limiterEntry), now: time.Now}
}

func (s *limiterStore) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if len(s.limiters) >= sweepAtCount {
		for k, e := range s.limiters {
			if now.Sub(e.lastSeen) > limiterIdle {
				delete(s.limiters, k)
			}
		}
	}
	e, ok := s.limiters[key]
	if !ok {
		burst := max(s.perMin/4, 1)
		e = &limiterEntry{limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(s.perMin)), burst)}
		s.limiters[key] = e
	}
	e.lastSeen = now
	return e.limiter
}

// RateLimit allows perMin requests per minute per key. perMin <= 0 disables it.
func RateLimit(perMin int, logger *zap.Logger) gin.HandlerFunc {
	if perMin <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	store := newLimiterStore(perMin)
	return func(c *gin.Context) {
		key := c.Param("id")
		if key == "" {
			key = "ip:" + c.ClientIP()
		}
		if !store.get(key).Allow() {
			logger.Warn("rate limit exceeded", zap.String("key", key))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded, try again later"})
			return
		}
		c.Next()
	}
}
