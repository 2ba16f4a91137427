package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/qbankhq/qbank-backend/internal/config"
	"github.com/qbankhq/qbank-backend/internal/response"
)

// RateLimiter implements a fixed-window rate limiter backed by Redis, so the
// limit holds across replicas. Counters are keyed by the authenticated
// identity when available, otherwise by client IP.
type RateLimiter struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
	log    zerolog.Logger
}

// NewRateLimiter creates a RateLimiter (e.g., 60 requests per minute).
func NewRateLimiter(rdb *redis.Client, limit int, window time.Duration, log zerolog.Logger) *RateLimiter {
	return &RateLimiter{
		rdb:    rdb,
		limit:  limit,
		window: window,
		log:    log.With().Str("component", "rate_limiter").Logger(),
	}
}

// Middleware returns a Gin middleware that enforces the limit. When Redis is
// unreachable the limiter fails open.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := config.RateKey.IPWriteKey(c.ClientIP())
		if identity := GetIdentity(c); identity != nil {
			key = config.RateKey.IdentityWriteKey(identity.ID)
		}

		ctx := c.Request.Context()
		count, err := rl.rdb.Incr(ctx, key).Result()
		if err != nil {
			rl.log.Warn().Err(err).Msg("rate limit counter unavailable")
			c.Next()
			return
		}
		if count == 1 {
			if err := rl.rdb.Expire(ctx, key, rl.window).Err(); err != nil {
				rl.log.Warn().Err(err).Msg("rate limit expiry failed")
			}
		}

		if count > int64(rl.limit) {
			response.AbortFail(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded)
			return
		}
		c.Next()
	}
}
