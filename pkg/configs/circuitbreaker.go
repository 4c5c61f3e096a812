package configs

import "github.com/spf13/viper"

const (
	DefaultCBEnabled           = true
	DefaultCBFailureRate       = 0.6
	DefaultCBMinRequests       = 10
	DefaultCBIntervalSeconds   = 60
	DefaultCBTimeoutSeconds    = 30
	DefaultCBMaxRequestsInHalf = 3
)

// CircuitBreakerConfig 熔断器配置，保护依赖对象存储的上传接口.
type CircuitBreakerConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	FailureRate       float64 `mapstructure:"failure_rate"         rule:"min=0,max=1"`
	MinRequests       uint32  `mapstructure:"min_requests"`
	IntervalSeconds   int     `mapstructure:"interval_seconds"     rule:"min=0"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds"      rule:"min=0"`
	MaxRequestsInHalf uint32  `mapstructure:"max_requests_in_half"`
}

func (c *CircuitBreakerConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("circuit_breaker.enabled", DefaultCBEnabled)
	v.SetDefault("circuit_breaker.failure_rate", DefaultCBFailureRate)
	v.SetDefault("circuit_breaker.min_requests", DefaultCBMinRequests)
	v.SetDefault("circuit_breaker.interval_seconds", DefaultCBIntervalSeconds)
	v.SetDefault("circuit_breaker.timeout_seconds", DefaultCBTimeoutSeconds)
	v.SetDefault("circuit_breaker.max_requests_in_half", DefaultCBMaxRequestsInHalf)
}
