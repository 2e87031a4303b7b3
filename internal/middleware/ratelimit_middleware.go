package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/gtd_report/internal/utils"
)

// WindowCounter increments a counter that expires after ttl.
// *cache.RedisClient implements it.
type WindowCounter interface {
	IncrWindow(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RateLimiter is a fixed-window per-IP limiter backed by a shared counter,
// so every API instance sees the same counts.
type RateLimiter struct {
	counter WindowCounter
	limit   int
	window  time.Duration
	now     func() time.Time
}

// NewRateLimiter allows limit requests per client IP per window.
func NewRateLimiter(counter WindowCounter, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		counter: counter,
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Handle returns the gin middleware. Counter failures let the request through.
func (r *RateLimiter) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		now := r.now()
		windowStart := now.Truncate(r.window)
		key := fmt.Sprintf("ratelimit:%s:%d", c.ClientIP(), windowStart.Unix())

		count, err := r.counter.IncrWindow(c.Request.Context(), key, r.window)
		if err != nil {
			log.Warn().
				Err(err).
				Str("request_id", utils.RequestID(c)).
				Msg("rate limit counter unavailable, allowing request")
			c.Next()
			return
		}

		if count > int64(r.limit) {
			retryAfter := int(windowStart.Add(r.window).Sub(now).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			utils.AbortWithError(c, http.StatusTooManyRequests, utils.MsgTooManyRequests)
			return
		}

		c.Next()
	}
}
