package configs

import "github.com/spf13/viper"

// EventsConfig 控制事件发布的开关（全局与分领域）。
type EventsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`  // 总开关
	Producer  string `mapstructure:"producer"` // 写入事件头的生产者标识
	Upload    bool   `mapstructure:"upload"`   // 投稿与审核事件
	Milestone bool   `mapstructure:"milestone"`
	Guest     bool   `mapstructure:"guest"` // 祝福、语音、未来信件
	// Audit 为 true 时启动订阅者，把审核事件写入日志作为审计记录
	Audit bool `mapstructure:"audit"`
}

func (c *EventsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("events.enabled", true)
	v.SetDefault("events.producer", AppName)
	v.SetDefault("events.upload", true)
	v.SetDefault("events.milestone", true)
	v.SetDefault("events.guest", true)
	v.SetDefault("events.audit", true)
}
