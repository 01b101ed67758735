package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimiter throttles requests with a fixed redis window per key.
type RateLimiter struct {
	rdb    *redis.Client
	prefix string
	limit  int
	window time.Duration
	log    *zap.SugaredLogger
}

func NewRateLimiter(rdb *redis.Client, prefix string, limit int, window time.Duration, log *zap.SugaredLogger) *RateLimiter {
	return &RateLimiter{rdb: rdb, prefix: prefix, limit: limit, window: window, log: log}
}

// ByUser keys the window on the authenticated user, falling back to the
// client IP before authentication. When redis is unreachable the request
// passes; throttling is protection, not a dependency.
func (r *RateLimiter) ByUser() fiber.Handler {
	return r.byKey(func(c *fiber.Ctx) string {
		if id := UserID(c); id != "" {
			return id
		}
		return c.IP()
	})
}

func (r *RateLimiter) byKey(keyFunc func(c *fiber.Ctx) string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("%s:%s", r.prefix, keyFunc(c))
		count, err := r.rdb.Incr(c.Context(), key).Result()
		if err != nil {
			r.log.Warnw("rate limiter unavailable", "error", err)
			return c.Next()
		}
		if count == 1 {
			r.rdb.Expire(c.Context(), key, r.window)
		}
		if count > int64(r.limit) {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded"})
		}
		return c.Next()
	}
}
