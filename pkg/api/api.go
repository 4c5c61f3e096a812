// Package api 定义对外 HTTP 接口的版本分组.
package api

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/keepsake/pkg/internal/router"
)

// Version 当前接口版本前缀.
const Version = "/api/v1"

// RegisterGroup 在 e 上注册 /api/v1 下的全部路由以及文档路由.
func RegisterGroup(e *gin.Engine, opts router.Options) *gin.Engine {
	v1 := e.Group(Version)

	router.RegisterPublicRoutes(v1, opts)
	router.RegisterAdminRoutes(v1)
	router.RegisterHealthCheckRoute(v1)
	router.RegisterSchedulerRoutes(v1)
	router.RegisterSwaggerRoute(e, opts.Config.Server)

	return e
}
