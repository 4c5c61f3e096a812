package configs

import (
	"time"

	"github.com/spf13/viper"
)

// CacheConfig 公共只读接口的响应缓存配置.
// 投稿画廊不参与缓存，审核结果即时生效.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
	// MaxBodyBytes 单个缓存响应体上限
	MaxBodyBytes int `mapstructure:"max_body_bytes" rule:"min=0"`
}

func (c *CacheConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "30s")
	v.SetDefault("cache.max_body_bytes", 1<<20)
}
