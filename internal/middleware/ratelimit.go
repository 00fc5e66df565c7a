package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/hospital-api/internal/handler"
)

type RateLimiterConfig struct {
	Rate  rate.Limit
	Burst int
	// TTL controls how long an idle client keeps its limiter.
	TTL time.Duration
}

// RateLimiter keeps one token bucket per client IP. Idle limiters are
// evicted by the cache so the map does not grow with every client ever
// seen.
type RateLimiter struct {
	config   RateLimiterConfig
	limiters *gocache.Cache
}

func NewRateLimiter(config RateLimiterConfig) *RateLimiter {
	if config.TTL <= 0 {
		config.TTL = 10 * time.Minute
	}
	return &RateLimiter{
		config:   config,
		limiters: gocache.New(config.TTL, 2*config.TTL),
	}
}

func (rl *RateLimiter) limiterFor(ip string) *rate.Limiter {
	if cached, ok := rl.limiters.Get(ip); ok {
		return cached.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(rl.config.Rate, rl.config.Burst)
	rl.limiters.SetDefault(ip, limiter)
	return limiter
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.limiterFor(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				handler.NewErrorResponse("rate_limited", "", "rate limit exceeded"))
			return
		}
		c.Next()
	}
}
