package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/keepsake/pkg/middleware"
	"github.com/yeisme/keepsake/pkg/scheduler"
)

// SchedulerJobs 返回定时任务状态. 未启用任务时返回空列表.
//
//	@Summary	定时任务状态
//	@Tags		运维
//	@Produce	json
//	@Success	200	{object}	map[string][]scheduler.JobInfo
//	@Router		/api/v1/scheduler/jobs [get]
func SchedulerJobs(c *gin.Context) {
	jobs := []scheduler.JobInfo{}

	if sched := middleware.GetScheduler(c); sched != nil {
		jobs = sched.GetJobInfos()
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}
