package middleware

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/AbrarBb/findie/internal/dto"
	"github.com/AbrarBb/findie/internal/metrics"
)

// Limiter decides whether a request identified by key may proceed. retryAfter is only
// meaningful when allowed is false.
type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
	Name() string
}

// LocalLimiter is a single process-wide token bucket.
type LocalLimiter struct {
	limiter *rate.Limiter
}

func NewLocalLimiter(rps float64, burst int) *LocalLimiter {
	return &LocalLimiter{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (l *LocalLimiter) Allow(_ context.Context, _ string) (bool, time.Duration, error) {
	if l.limiter.Allow() {
		return true, 0, nil
	}
	retryAfter := time.Second
	if rps := float64(l.limiter.Limit()); rps > 0 {
		retryAfter = time.Duration(float64(time.Second) / rps)
	}
	return false, retryAfter, nil
}

func (l *LocalLimiter) Name() string { return "local" }

// RedisLimiter is a fixed-window counter per key shared by every instance that points at
// the same redis.
type RedisLimiter struct {
	client *redis.Client
	limit  int64
	window time.Duration
	prefix string
	now    func() time.Time
}

func NewRedisLimiter(client *redis.Client, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		limit:  int64(limit),
		window: window,
		prefix: "ratelimit:",
		now:    time.Now,
	}
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	windowStart := l.now().Truncate(l.window).Unix()
	redisKey := fmt.Sprintf("%s%s:%d", l.prefix, key, windowStart)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, err
	}

	if incr.Val() > l.limit {
		ttl, err := l.client.PTTL(ctx, redisKey).Result()
		if err != nil || ttl <= 0 {
			ttl = l.window
		}
		return false, ttl, nil
	}
	return true, 0, nil
}

func (l *RedisLimiter) Name() string { return "redis" }

// RateLimit rejects requests over the limiter's budget with 429. Limiter failures let the
// request through.
func RateLimit(limiter Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAfter, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			GetLogger(c).Warn("rate_limiter_unavailable",
				zap.String("limiter", limiter.Name()),
				zap.Error(err),
			)
			c.Next()
			return
		}

		if !allowed {
			metrics.RateLimitedTotal.WithLabelValues(limiter.Name()).Inc()
			seconds := int(math.Ceil(retryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.NewErrorResponse("Rate limit exceeded"))
			return
		}

		c.Next()
	}
}
