package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"propel_backend/internal/logger"
	"propel_backend/internal/metrics"
)

// LoginRateLimiter - фиксированное окно на IP поверх redis:
// INCR + EXPIRE на первом обращении. Защищает /authenticate от
// перебора паролей. nil-клиент выключает лимитер.
func LoginRateLimiter(client *redis.Client, maxAttempts int, window time.Duration) gin.HandlerFunc {
	if client == nil {
		return nil
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		key := fmt.Sprintf("ratelimit:login:%s", c.ClientIP())

		count, err := client.Incr(ctx, key).Result()
		if err != nil {
			// Недоступный redis не должен ронять логин
			logger.Warn("rate limiter unavailable, allowing request", "error", err)
			c.Next()
			return
		}

		if count == 1 {
			client.Expire(ctx, key, window)
		}

		if count > int64(maxAttempts) {
			metrics.LoginAttempts.WithLabelValues("rate_limited").Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many login attempts, please try again later",
			})
			return
		}

		c.Next()
	}
}
