// Package metrics 提供 Prometheus 指标：HTTP 请求、投稿与审核计数、待审核数量.
//
// Example:
//
//	if err := metrics.InitMetrics(cfg.Metrics); err != nil {
//		return err
//	}
//
//	metrics.ModerationActions.WithLabelValues("approve").Inc()
package metrics

import (
	"net/http"
	_ "net/http/pprof" // 注册 pprof 端点
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yeisme/keepsake/pkg/configs"
)

const namespace = configs.AppName

// 全局指标变量.
var (
	// RequestCounter HTTP 请求计数.
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration HTTP 请求耗时.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// ActiveConnections 正在处理的请求数.
	ActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_connections",
			Help:      "Number of in-flight requests",
		},
	)

	// Submissions 访客投稿文件数，按结果区分.
	Submissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "submissions_total",
			Help:      "Family upload files processed by intake",
		},
		[]string{"result"},
	)

	// ModerationActions 管理动作计数.
	ModerationActions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moderation_actions_total",
			Help:      "Admin actions executed, by action name",
		},
		[]string{"action"},
	)

	// PendingUploads 待审核投稿数，由定时任务刷新.
	PendingUploads = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pending_uploads",
			Help:      "Family uploads waiting for moderation",
		},
	)

	// CacheResults 响应缓存命中情况.
	CacheResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "response_cache_total",
			Help:      "Response cache lookups by result",
		},
		[]string{"result"},
	)

	registry     = prometheus.NewRegistry()
	registerOnce sync.Once
)

// InitMetrics 注册全部指标. 未启用时不做任何事，指标对象仍可安全调用.
func InitMetrics(config configs.MetricsConfig) error {
	if !config.Enabled {
		return nil
	}

	var err error

	registerOnce.Do(func() {
		if config.RuntimeMetrics {
			registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)
		}

		for _, c := range []prometheus.Collector{
			RequestCounter, RequestDuration, ActiveConnections,
			Submissions, ModerationActions, PendingUploads, CacheResults,
		} {
			if e := registry.Register(c); e != nil {
				err = e
				return
			}
		}
	})

	return err
}

// StartMetricsServer 在 engine 上挂载 /metrics 与可选的 pprof 端点.
// 同时暴露默认注册表（gorm 插件写入其中）.
func StartMetricsServer(config configs.MetricsConfig, engine *gin.Engine) error {
	if !config.Enabled {
		return nil
	}

	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = "/metrics"
	}

	gatherers := prometheus.Gatherers{registry, prometheus.DefaultGatherer}
	engine.GET(endpoint, gin.WrapH(promhttp.HandlerFor(gatherers, promhttp.HandlerOpts{})))

	if config.Pprof {
		engine.GET("/debug/pprof/*any", gin.WrapH(http.DefaultServeMux))
	}

	return nil
}

// GetRegistry 获取 Prometheus 注册表.
func GetRegistry() *prometheus.Registry {
	return registry
}
