package middleware

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"

	appcache "github.com/yeisme/keepsake/pkg/cache"
	"github.com/yeisme/keepsake/pkg/configs"
	nlog "github.com/yeisme/keepsake/pkg/log"
	"github.com/yeisme/keepsake/pkg/metrics"
)

const defaultKeyBuilderGrow = 64

// CacheOptions 响应缓存中间件配置.
type CacheOptions struct {
	Cache        *appcache.Cache
	Tag          string        // 条目所属标签，写操作按标签失效
	TTL          time.Duration // <=0 时不缓存
	MaxBodyBytes int           // 超过则直接透传，0 表示不限制
	// Skipper 返回 true 跳过缓存
	Skipper func(*gin.Context) bool
	// BypassHeader 请求携带该头时跳过缓存
	BypassHeader string
}

// NewCacheOptions 按全局缓存配置构造某个标签的中间件配置.
func NewCacheOptions(c *appcache.Cache, cfg configs.CacheConfig, tag string) CacheOptions {
	return CacheOptions{
		Cache:        c,
		Tag:          tag,
		TTL:          cfg.TTL,
		MaxBodyBytes: cfg.MaxBodyBytes,
		BypassHeader: "X-Cache-Bypass",
	}
}

// responseCacheEntry 序列化存储结构.
type responseCacheEntry struct {
	Status      int    `json:"s"`
	ContentType string `json:"c,omitempty"`
	Body        []byte `json:"b,omitempty"`
	ETag        string `json:"e,omitempty"`
	StoredAt    int64  `json:"t"`
}

// ResponseCache 缓存 GET/HEAD 的 200 响应，命中时返回 X-Cache: HIT 并支持 If-None-Match.
//
// 响应在处理器执行期间被完整缓冲，结束后补充 ETag 与 X-Cache 头再一次性写出，
// 因此未命中时客户端同样能拿到 ETag. 超过 MaxBodyBytes 的响应回退为直接透传且不缓存.
//
//	r.GET("/wishes", middleware.ResponseCache(middleware.NewCacheOptions(c, cfg.Cache, cache.TagWishes)), h.ListWishes)
func ResponseCache(opts CacheOptions) gin.HandlerFunc {
	if opts.Cache == nil || opts.TTL <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		if skipCache(c, opts) {
			c.Next()
			return
		}

		key := appcache.TagKey(opts.Tag, requestKey(c))
		if serveFromCache(c, opts, key) {
			metrics.CacheResults.WithLabelValues("hit").Inc()
			return
		}

		metrics.CacheResults.WithLabelValues("miss").Inc()

		bw := &bufferedWriter{ResponseWriter: c.Writer, max: opts.MaxBodyBytes}
		c.Writer = bw
		c.Next()
		c.Writer = bw.ResponseWriter

		if bw.passthrough {
			return
		}

		flushAndStore(c, opts, key, bw)
	}
}

func skipCache(c *gin.Context, opts CacheOptions) bool {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		return true
	}

	if opts.Skipper != nil && opts.Skipper(c) {
		return true
	}

	return opts.BypassHeader != "" && c.GetHeader(opts.BypassHeader) != ""
}

// requestKey 方法 + 路由 + 排序后的 query.
func requestKey(c *gin.Context) string {
	var b strings.Builder
	b.Grow(defaultKeyBuilderGrow)

	// HEAD 与 GET 共用条目
	b.WriteString(http.MethodGet)
	b.WriteByte(' ')

	full := c.FullPath()
	if full == "" {
		full = c.Request.URL.Path
	}

	b.WriteString(full)

	if q := c.Request.URL.Query(); len(q) > 0 {
		keys := make([]string, 0, len(q))
		for k := range q {
			keys = append(keys, k)
		}

		sort.Strings(keys)
		b.WriteByte('?')

		for i, k := range keys {
			if i > 0 {
				b.WriteByte('&')
			}

			b.WriteString(k)
			b.WriteByte('=')
			b.WriteString(strings.Join(q[k], ","))
		}
	}

	return b.String()
}

// bufferedWriter 缓冲响应体，超过上限后切换为透传.
type bufferedWriter struct {
	gin.ResponseWriter

	buf         bytes.Buffer
	max         int
	passthrough bool
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	if w.passthrough {
		return w.ResponseWriter.Write(b)
	}

	if w.max > 0 && w.buf.Len()+len(b) > w.max {
		w.passthrough = true

		if w.buf.Len() > 0 {
			if _, err := w.ResponseWriter.Write(w.buf.Bytes()); err != nil {
				return 0, err
			}

			w.buf.Reset()
		}

		return w.ResponseWriter.Write(b)
	}

	return w.buf.Write(b)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// Written 缓冲期间视为尚未写出，保证 gin 仍可设置状态码.
func (w *bufferedWriter) Written() bool {
	return w.passthrough && w.ResponseWriter.Written()
}

func serveFromCache(c *gin.Context, opts CacheOptions, key string) bool {
	entry, err := appcache.Get[responseCacheEntry](c.Request.Context(), opts.Cache, key)
	if err != nil {
		return false
	}

	h := c.Writer.Header()
	if entry.ContentType != "" {
		h.Set("Content-Type", entry.ContentType)
	}

	h.Set("ETag", entry.ETag)
	h.Set("Age", fmt.Sprintf("%.0f", time.Since(time.Unix(0, entry.StoredAt)).Seconds()))
	h.Set("X-Cache", "HIT")

	if entry.ETag != "" && c.GetHeader("If-None-Match") == entry.ETag {
		c.AbortWithStatus(http.StatusNotModified)
		return true
	}

	c.Status(entry.Status)

	if c.Request.Method != http.MethodHead {
		_, _ = c.Writer.Write(entry.Body)
	}

	c.Abort()

	return true
}

// flushAndStore 写出缓冲的响应，状态码为 200 时存入缓存.
func flushAndStore(c *gin.Context, opts CacheOptions, key string, bw *bufferedWriter) {
	status := bw.Status()
	body := bw.buf.Bytes()
	h := bw.Header()

	cacheable := status == http.StatusOK && !strings.Contains(strings.ToLower(h.Get("Cache-Control")), "no-store")

	if cacheable {
		etag := fmt.Sprintf("\"%016x\"", xxhash.Sum64(body))
		h.Set("ETag", etag)
		h.Set("X-Cache", "MISS")

		entry := responseCacheEntry{
			Status:      status,
			ContentType: h.Get("Content-Type"),
			Body:        append([]byte(nil), body...),
			ETag:        etag,
			StoredAt:    time.Now().UnixNano(),
		}

		if err := appcache.Set(c.Request.Context(), opts.Cache, key, entry, opts.TTL); err != nil {
			nlog.Ctx(c.Request.Context()).Debug().Err(err).Str("tag", opts.Tag).Msg("response cache store failed")
		}
	}

	if len(body) == 0 {
		bw.ResponseWriter.WriteHeaderNow()
		return
	}

	_, _ = bw.ResponseWriter.Write(body)
}
