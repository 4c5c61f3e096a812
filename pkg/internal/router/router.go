// Package router 把 handle 包中的处理器绑定到 gin 路由组.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/keepsake/pkg/cache"
	"github.com/yeisme/keepsake/pkg/configs"
	"github.com/yeisme/keepsake/pkg/internal/handle"
	"github.com/yeisme/keepsake/pkg/middleware"
)

// Options 路由依赖. Cache 为 nil 时公开读接口不做响应缓存.
type Options struct {
	Cache  *cache.Cache
	Config *configs.AppConfig
}

func (o Options) cached(tag string) gin.HandlerFunc {
	return middleware.ResponseCache(middleware.NewCacheOptions(o.Cache, o.Config.Cache, tag))
}

// guard 投稿类写接口的保护链：熔断在前，限流在后.
func (o Options) guard(name string) []gin.HandlerFunc {
	var chain []gin.HandlerFunc

	if o.Config.CircuitBreaker.Enabled {
		chain = append(chain, middleware.CircuitBreakerMiddleware(name, o.Config.CircuitBreaker))
	}

	if o.Config.RateLimit.Enabled {
		chain = append(chain, middleware.RateLimitMiddleware(o.Config.RateLimit))
	}

	return chain
}

// RegisterPublicRoutes 注册访客可用的接口.
//
//	GET  /gallery         已审核投稿
//	POST /uploads         投稿
//	GET  /wishes          祝福墙      POST /wishes
//	GET  /voice-notes     语音留言    POST /voice-notes
//	GET  /letters/count   信件数量    POST /letters
//	GET  /milestones      成长时间线
//	GET  /firsts          "第一次"看板
func RegisterPublicRoutes(g *gin.RouterGroup, opts Options) {
	g.GET("/gallery", handle.Gallery)
	g.POST("/uploads", append(opts.guard("uploads"), handle.SubmitUploads)...)

	g.GET("/wishes", opts.cached(cache.TagWishes), handle.ListWishes)
	g.POST("/wishes", append(opts.guard("wishes"), handle.CreateWish)...)

	g.GET("/voice-notes", opts.cached(cache.TagVoice), handle.ListVoiceNotes)
	g.POST("/voice-notes", append(opts.guard("voice-notes"), handle.CreateVoiceNote)...)

	letters := g.Group("/letters")
	{
		letters.GET("/count", opts.cached(cache.TagLetters), handle.LetterCount)
		letters.POST("", append(opts.guard("letters"), handle.SealLetter)...)
	}

	g.GET("/milestones", opts.cached(cache.TagMilestones), handle.Milestones)
	g.GET("/firsts", opts.cached(cache.TagFirsts), handle.Firsts)
}

// RegisterAdminRoutes 注册管理接口. 口令校验在服务层逐请求进行，不经过限流.
func RegisterAdminRoutes(g *gin.RouterGroup) {
	admin := g.Group("/admin")
	{
		admin.POST("", handle.Admin)
		admin.POST("/media", handle.AdminMedia)
	}
}
