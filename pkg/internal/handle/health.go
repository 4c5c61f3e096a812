package handle

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	ctxPkg "github.com/yeisme/keepsake/pkg/context"
)

const healthTimeout = 2 * time.Second

var errNotInitialized = errors.New("client not initialized")

// probe 在超时内执行一次探测并写出结果.
func probe(c *gin.Context, component string, check func(ctx context.Context) error) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	if err := check(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"component": component, "status": "unhealthy", "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"component": component, "status": "ok"})
}

// HealthDB 数据库健康检查.
//
//	@Summary	数据库健康检查
//	@Tags		运维
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Failure	503	{object}	map[string]string
//	@Router		/api/v1/health/db [get]
func HealthDB(c *gin.Context) {
	probe(c, "db", func(ctx context.Context) error {
		dbc := ctxPkg.GetDBClient(ctx)
		if dbc == nil || dbc.DB == nil {
			return errNotInitialized
		}

		return dbc.Ping(ctx)
	})
}

// HealthS3 对象存储健康检查.
//
//	@Summary	对象存储健康检查
//	@Tags		运维
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Failure	503	{object}	map[string]string
//	@Router		/api/v1/health/s3 [get]
func HealthS3(c *gin.Context) {
	probe(c, "s3", func(ctx context.Context) error {
		s3c := ctxPkg.GetS3Client(ctx)
		if s3c == nil || s3c.Client == nil {
			return errNotInitialized
		}

		return s3c.HealthCheck(ctx)
	})
}

// HealthMQ 消息队列健康检查.
//
//	@Summary	消息队列健康检查
//	@Tags		运维
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Failure	503	{object}	map[string]string
//	@Router		/api/v1/health/mq [get]
func HealthMQ(c *gin.Context) {
	probe(c, "mq", func(ctx context.Context) error {
		mqc := ctxPkg.GetMQClient(ctx)
		if mqc == nil {
			return errNotInitialized
		}

		return mqc.Ping(ctx)
	})
}

// HealthKV 缓存健康检查.
//
//	@Summary	缓存健康检查
//	@Tags		运维
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Failure	503	{object}	map[string]string
//	@Router		/api/v1/health/kv [get]
func HealthKV(c *gin.Context) {
	probe(c, "kv", func(ctx context.Context) error {
		kvc := ctxPkg.GetKVClient(ctx)
		if kvc == nil || kvc.KVStore == nil {
			return errNotInitialized
		}

		return kvc.Ping(ctx)
	})
}
