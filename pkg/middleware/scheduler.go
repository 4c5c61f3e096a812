package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/keepsake/pkg/scheduler"
)

type schedulerKey struct{}

// SchedulerMiddleware 将调度器注入请求 context，供任务查询接口使用.
func SchedulerMiddleware(sched *scheduler.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(WithScheduler(c.Request.Context(), sched))
		c.Next()
	}
}

// WithScheduler 在 ctx 中附加调度器.
func WithScheduler(ctx context.Context, sched *scheduler.Scheduler) context.Context {
	return context.WithValue(ctx, schedulerKey{}, sched)
}

// GetScheduler 从请求中取出调度器，未注入时返回 nil.
func GetScheduler(c *gin.Context) *scheduler.Scheduler {
	sched, _ := c.Request.Context().Value(schedulerKey{}).(*scheduler.Scheduler)
	return sched
}
