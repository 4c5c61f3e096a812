package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/yeisme/keepsake/pkg/configs"
)

const (
	limiterIdleTTL      = 10 * time.Minute
	limiterSweepEvery   = 1024
	rateLimitedResponse = "too many requests, please try again later"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimitMiddleware 返回基于配置的限流中间件. 闲置超过 10 分钟的键在后续请求中被回收.
func RateLimitMiddleware(cfg configs.RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.RPS <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	keyMode := strings.ToLower(strings.TrimSpace(cfg.Key))

	if keyMode == "global" || keyMode == "" {
		limiter := rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)

		return func(c *gin.Context) {
			if !limiter.Allow() {
				c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": rateLimitedResponse})
				return
			}

			c.Next()
		}
	}

	var (
		mu       sync.Mutex
		visitors = map[string]*visitor{}
		calls    int
	)

	allow := func(key string) bool {
		now := time.Now()

		mu.Lock()
		defer mu.Unlock()

		calls++
		if calls%limiterSweepEvery == 0 {
			for k, v := range visitors {
				if now.Sub(v.lastSeen) > limiterIdleTTL {
					delete(visitors, k)
				}
			}
		}

		v, ok := visitors[key]
		if !ok {
			v = &visitor{limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst)}
			visitors[key] = v
		}

		v.lastSeen = now

		return v.limiter.AllowN(now, 1)
	}

	return func(c *gin.Context) {
		key := clientIP(c)

		if h, ok := strings.CutPrefix(keyMode, "header:"); ok {
			if hv := c.GetHeader(h); hv != "" {
				key = hv
			}
		}

		if key == "" {
			key = "unknown"
		}

		if !allow(key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": rateLimitedResponse})
			return
		}

		c.Next()
	}
}

func clientIP(c *gin.Context) string {
	if ip := c.ClientIP(); ip != "" {
		return ip
	}

	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}

	return host
}
