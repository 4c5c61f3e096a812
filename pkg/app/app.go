// Package app 组装 HTTP 引擎、存储资源、事件消费者与定时任务，并负责优雅退出.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/yeisme/keepsake/pkg/api"
	"github.com/yeisme/keepsake/pkg/cache"
	"github.com/yeisme/keepsake/pkg/configs"
	"github.com/yeisme/keepsake/pkg/internal/jobs"
	"github.com/yeisme/keepsake/pkg/internal/router"
	"github.com/yeisme/keepsake/pkg/internal/storage"
	"github.com/yeisme/keepsake/pkg/log"
	"github.com/yeisme/keepsake/pkg/metrics"
	"github.com/yeisme/keepsake/pkg/middleware"
	"github.com/yeisme/keepsake/pkg/queue"
	"github.com/yeisme/keepsake/pkg/rule"
	"github.com/yeisme/keepsake/pkg/scheduler"
	"github.com/yeisme/keepsake/pkg/tracing"
)

const shutdownTimeout = 10 * time.Second

// App 一个完整的服务进程.
type App struct {
	Engine    *gin.Engine
	config    *configs.AppConfig
	manager   *storage.Manager
	scheduler *scheduler.Scheduler
	logger    *zerolog.Logger
	consumers bool // 是否注册了 MQ 消费者
}

// NewApp 加载配置并初始化全部组件. 任一步骤失败时释放已建立的资源.
func NewApp(ctx context.Context, configPath string) (*App, error) {
	if err := configs.InitConfig(configPath); err != nil {
		return nil, fmt.Errorf("init config: %w", err)
	}

	log.Init()

	cfg := configs.GetConfig()
	l := log.Logger()

	if !cfg.Admin.Configured() {
		l.Warn().Msg("admin.password is empty, every admin request will be rejected")
	}

	gin.DefaultWriter = log.NewGinWriter(l, zerolog.InfoLevel)
	gin.DefaultErrorWriter = log.NewGinWriter(l, zerolog.ErrorLevel)

	// 绑定校验使用 rule 标签
	rule.Engine()

	if err := tracing.InitTracer(cfg.Tracing); err != nil {
		return nil, fmt.Errorf("init tracing: %w", err)
	}

	if err := metrics.InitMetrics(cfg.Metrics); err != nil {
		return nil, fmt.Errorf("init metrics: %w", err)
	}

	manager, err := storage.Init(ctx)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	sched, err := scheduler.NewScheduler()
	if err != nil {
		_ = manager.Close()
		return nil, fmt.Errorf("init scheduler: %w", err)
	}

	if err := jobs.RegisterCronJobs(sched, cfg.Jobs, jobs.ManagerDeps(manager)); err != nil {
		_ = sched.Stop()
		_ = manager.Close()

		return nil, fmt.Errorf("register jobs: %w", err)
	}

	a := &App{
		config:    cfg,
		manager:   manager,
		scheduler: sched,
		logger:    l,
	}

	if cfg.Events.Enabled && cfg.Events.Audit {
		queue.RegisterAuditLog(manager.MQ, l)
		a.consumers = true
	}
	a.Engine = a.buildEngine()

	return a, nil
}

// buildEngine 按固定顺序挂载中间件并注册路由.
func (a *App) buildEngine() *gin.Engine {
	cfg := a.config
	engine := gin.New()

	chain := []gin.HandlerFunc{
		gin.Recovery(),
		middleware.GinLoggerMiddleware(),
		middleware.CORSMiddleware(cfg.Server),
	}

	if cfg.Server.Gzip {
		chain = append(chain, gzip.Gzip(gzip.DefaultCompression))
	}

	chain = append(chain,
		middleware.TracingMiddleware(),
		middleware.PrometheusMiddleware(),
		middleware.StorageMiddleware(a.manager),
		middleware.SchedulerMiddleware(a.scheduler),
		middleware.RequestTimeout(cfg.Server.GetTimeoutDuration()),
		middleware.BodyLimit(cfg.Server.MaxBodyMB<<20),
	)

	engine.Use(chain...)

	var respCache *cache.Cache
	if cfg.Cache.Enabled && a.manager.KV != nil {
		respCache = cache.New(a.manager.KV)
	}

	api.RegisterGroup(engine, router.Options{Cache: respCache, Config: cfg})

	_ = metrics.StartMetricsServer(cfg.Metrics, engine)

	return engine
}

// Run 启动事件消费者、定时任务与 HTTP 服务，ctx 结束后依次优雅关闭.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.config.Server.Addr(),
		Handler:           a.Engine,
		ReadHeaderTimeout: a.config.Server.GetTimeoutDuration(),
		ReadTimeout:       a.config.Server.GetTimeoutDuration(),
		WriteTimeout:      a.config.Server.GetTimeoutDuration(),
	}

	g, gctx := errgroup.WithContext(ctx)

	if a.consumers {
		g.Go(func() error {
			if err := a.manager.MQ.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("mq router: %w", err)
			}

			return nil
		})
	}

	a.scheduler.Start()

	g.Go(func() error {
		a.logger.Info().Str("addr", srv.Addr).Msg("http server listening")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		return a.shutdown(srv)
	})

	return g.Wait()
}

func (a *App) shutdown(srv *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.logger.Info().Msg("shutting down")

	errs := []error{srv.Shutdown(ctx)}

	if err := a.scheduler.Stop(); err != nil {
		errs = append(errs, fmt.Errorf("stop scheduler: %w", err))
	}

	if err := tracing.ShutdownTracer(ctx); err != nil {
		errs = append(errs, fmt.Errorf("shutdown tracer: %w", err))
	}

	if err := a.manager.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close storage: %w", err))
	}

	return errors.Join(errs...)
}
