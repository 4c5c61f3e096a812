package router

import (
	"github.com/gin-gonic/gin"

	"github.com/yeisme/keepsake/pkg/internal/handle"
)

// RegisterSchedulerRoutes 注册定时任务查询路由，只读.
func RegisterSchedulerRoutes(g *gin.RouterGroup) {
	g.GET("/scheduler/jobs", handle.SchedulerJobs)
}
