package http

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/attendance-service/internal/api/dto"
)

// LoginRateLimit returns a fixed-window per-IP limiter backed by Redis so
// the bound holds across instances. Redis being unreachable fails open:
// locking everyone out of login is worse than briefly losing the limit.
func LoginRateLimit(client *redis.Client, perMinute int, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if client == nil || perMinute <= 0 {
			return c.Next()
		}

		key := "ratelimit:login:" + c.IP()
		count, err := client.Incr(c.Context(), key).Result()
		if err != nil {
			logger.Warn("rate limit check failed", zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			client.Expire(c.Context(), key, time.Minute)
		}
		if count > int64(perMinute) {
			return c.Status(http.StatusTooManyRequests).JSON(dto.Envelope{
				Success: false,
				Message: "too many login attempts, try again later",
			})
		}
		return c.Next()
	}
}
