package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	appcache "github.com/yeisme/keepsake/pkg/cache"
	"github.com/yeisme/keepsake/pkg/configs"
	"github.com/yeisme/keepsake/pkg/internal/storage/kv"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func get(r *gin.Engine, path string, header ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	return serve(r, req)
}

func cachedEngine(c *appcache.Cache, maxBody int, hits *atomic.Int32, body func() string) *gin.Engine {
	cfg := configs.CacheConfig{Enabled: true, TTL: time.Minute, MaxBodyBytes: maxBody}

	r := gin.New()
	r.GET("/wishes", ResponseCache(NewCacheOptions(c, cfg, appcache.TagWishes)), func(ctx *gin.Context) {
		hits.Add(1)
		ctx.String(http.StatusOK, body())
	})
	r.GET("/broken", ResponseCache(NewCacheOptions(c, cfg, appcache.TagWishes)), func(ctx *gin.Context) {
		hits.Add(1)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
	})

	return r
}

func TestResponseCacheHitAndInvalidate(t *testing.T) {
	c := appcache.New(kv.NewMemoryClient())

	var hits atomic.Int32

	current := "v1"
	r := cachedEngine(c, 0, &hits, func() string { return current })

	first := get(r, "/wishes")
	if first.Header().Get("X-Cache") != "MISS" || first.Header().Get("ETag") == "" || first.Body.String() != "v1" {
		t.Fatalf("first response: %v %q", first.Header(), first.Body)
	}

	second := get(r, "/wishes")
	if second.Header().Get("X-Cache") != "HIT" || second.Body.String() != "v1" || hits.Load() != 1 {
		t.Fatalf("second response: %v %q hits=%d", second.Header(), second.Body, hits.Load())
	}

	if w := get(r, "/wishes", "If-None-Match", first.Header().Get("ETag")); w.Code != http.StatusNotModified {
		t.Fatalf("conditional request: %d", w.Code)
	}

	current = "v2"
	c.Invalidate(context.Background(), appcache.TagWishes)

	third := get(r, "/wishes")
	if third.Header().Get("X-Cache") != "MISS" || third.Body.String() != "v2" || hits.Load() != 2 {
		t.Fatalf("after invalidate: %v %q hits=%d", third.Header(), third.Body, hits.Load())
	}
}

func TestResponseCacheSkips(t *testing.T) {
	c := appcache.New(kv.NewMemoryClient())

	var hits atomic.Int32

	r := cachedEngine(c, 4, &hits, func() string { return "longer than four" })

	for range 2 {
		w := get(r, "/wishes")
		if w.Body.String() != "longer than four" {
			t.Fatalf("passthrough body = %q", w.Body)
		}
	}

	if hits.Load() != 2 {
		t.Fatalf("oversized responses must not be cached, hits=%d", hits.Load())
	}

	hits.Store(0)

	for range 2 {
		if w := get(r, "/broken"); w.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d", w.Code)
		}
	}

	if hits.Load() != 2 {
		t.Fatalf("error responses must not be cached, hits=%d", hits.Load())
	}
}

func TestResponseCacheBypassAndDisabled(t *testing.T) {
	c := appcache.New(kv.NewMemoryClient())

	var hits atomic.Int32

	r := cachedEngine(c, 0, &hits, func() string { return "ok" })

	get(r, "/wishes")
	get(r, "/wishes", "X-Cache-Bypass", "1")

	if hits.Load() != 2 {
		t.Fatalf("bypass header ignored, hits=%d", hits.Load())
	}

	hits.Store(0)

	nocache := cachedEngine(nil, 0, &hits, func() string { return "ok" })
	get(nocache, "/wishes")
	get(nocache, "/wishes")

	if hits.Load() != 2 {
		t.Fatalf("nil cache must pass through, hits=%d", hits.Load())
	}
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(8))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	if w := serve(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small"))); w.Code != http.StatusNoContent {
		t.Fatalf("small body: %d", w.Code)
	}

	if w := serve(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("far too large"))); w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("large body: %d", w.Code)
	}
}

func TestRequestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(RequestTimeout(time.Second))
	r.GET("/", func(c *gin.Context) {
		if _, ok := c.Request.Context().Deadline(); !ok {
			c.Status(http.StatusInternalServerError)
			return
		}

		c.Status(http.StatusOK)
	})

	if w := get(r, "/"); w.Code != http.StatusOK {
		t.Fatalf("deadline missing: %d", w.Code)
	}
}

func TestRateLimitByHeader(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(configs.RateLimitConfig{Enabled: true, RPS: 0.001, Burst: 1, Key: "header:X-Guest"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	if w := get(r, "/", "X-Guest", "a"); w.Code != http.StatusOK {
		t.Fatalf("first a: %d", w.Code)
	}

	if w := get(r, "/", "X-Guest", "a"); w.Code != http.StatusTooManyRequests {
		t.Fatalf("second a: %d", w.Code)
	}

	if w := get(r, "/", "X-Guest", "b"); w.Code != http.StatusOK {
		t.Fatalf("first b: %d", w.Code)
	}
}

func TestCircuitBreakerOpens(t *testing.T) {
	cfg := configs.CircuitBreakerConfig{
		Enabled:           true,
		FailureRate:       0.5,
		MinRequests:       2,
		IntervalSeconds:   60,
		TimeoutSeconds:    60,
		MaxRequestsInHalf: 1,
	}

	var calls atomic.Int32

	r := gin.New()
	r.POST("/", CircuitBreakerMiddleware("test", cfg), func(c *gin.Context) {
		calls.Add(1)
		c.Status(http.StatusBadGateway)
	})

	for range 2 {
		if w := serve(r, httptest.NewRequest(http.MethodPost, "/", nil)); w.Code != http.StatusBadGateway {
			t.Fatalf("status = %d", w.Code)
		}
	}

	if w := serve(r, httptest.NewRequest(http.MethodPost, "/", nil)); w.Code != http.StatusServiceUnavailable {
		t.Fatalf("open breaker: %d", w.Code)
	}

	if calls.Load() != 2 {
		t.Fatalf("handler called while open: %d", calls.Load())
	}
}
