package configs

import "github.com/spf13/viper"

// JobsConfig 定时任务配置.
type JobsConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	OrphanSweepCron   string `mapstructure:"orphan_sweep_cron"`
	OrphanGraceHours  int    `mapstructure:"orphan_grace_hours"  rule:"min=1"`
	PendingDigestCron string `mapstructure:"pending_digest_cron"`
}

func (c *JobsConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("jobs.enabled", true)
	v.SetDefault("jobs.orphan_sweep_cron", "15 3 * * *")
	v.SetDefault("jobs.orphan_grace_hours", 24)
	v.SetDefault("jobs.pending_digest_cron", "0 * * * *")
}
