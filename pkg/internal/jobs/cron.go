// Package jobs 注册并实现业务定时任务（基于 scheduler）.
package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/yeisme/keepsake/pkg/configs"
	ctxPkg "github.com/yeisme/keepsake/pkg/context"
	"github.com/yeisme/keepsake/pkg/internal/service"
	"github.com/yeisme/keepsake/pkg/internal/storage"
	"github.com/yeisme/keepsake/pkg/log"
	"github.com/yeisme/keepsake/pkg/metrics"
	"github.com/yeisme/keepsake/pkg/scheduler"
)

// DepsFunc 每次运行时解析服务依赖.
type DepsFunc func(ctx context.Context) service.Deps

// ManagerDeps 从存储管理器解析依赖.
func ManagerDeps(mgr *storage.Manager) DepsFunc {
	return func(ctx context.Context) service.Deps {
		return service.DepsFromContext(ctxPkg.WithStorageManager(ctx, mgr))
	}
}

// RegisterCronJobs 按配置注册定时任务：
//   - blob.orphan_sweep 清理没有记录引用的对象
//   - moderation.pending_digest 刷新待审核数量
func RegisterCronJobs(sched *scheduler.Scheduler, cfg configs.JobsConfig, deps DepsFunc) error {
	if sched == nil {
		return errors.New("scheduler is nil")
	}

	if deps == nil {
		return errors.New("deps resolver is nil")
	}

	if !cfg.Enabled {
		return nil
	}

	grace := time.Duration(cfg.OrphanGraceHours) * time.Hour

	if err := sched.AddCron(JobOrphanSweep, cfg.OrphanSweepCron, OrphanSweep(deps, grace)); err != nil {
		return err
	}

	return sched.AddCron(JobPendingDigest, cfg.PendingDigestCron, PendingDigest(deps))
}

// OrphanSweep 删除超过宽限期且未被引用的对象.
func OrphanSweep(deps DepsFunc, grace time.Duration) scheduler.JobFunc {
	return func(ctx context.Context) error {
		l := log.Ctx(ctx).With().Str("job", JobOrphanSweep).Logger()

		res, err := service.NewMaintenanceService(deps(ctx)).SweepOrphans(ctx, SweepPrefixes, grace)
		if err != nil {
			l.Error().Err(err).Msg("orphan sweep failed")
			return err
		}

		ev := l.Info()
		if res.Failed > 0 {
			ev = l.Warn()
		}

		ev.Int("scanned", res.Scanned).
			Int("removed", res.Removed).
			Int("failed", res.Failed).
			Dur("grace", grace).
			Msg("orphan sweep done")

		return nil
	}
}

// PendingDigest 统计待审核投稿并更新 pending_uploads 指标.
func PendingDigest(deps DepsFunc) scheduler.JobFunc {
	return func(ctx context.Context) error {
		l := log.Ctx(ctx).With().Str("job", JobPendingDigest).Logger()

		n, err := service.NewMaintenanceService(deps(ctx)).PendingCount(ctx)
		if err != nil {
			l.Error().Err(err).Msg("count pending uploads failed")
			return err
		}

		metrics.PendingUploads.Set(float64(n))

		if n > 0 {
			l.Info().Int64("pending", n).Msg("uploads waiting for moderation")
		}

		return nil
	}
}
