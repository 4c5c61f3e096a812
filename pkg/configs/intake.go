package configs

import "github.com/spf13/viper"

const (
	DefaultIntakeMaxFiles      = 10
	DefaultIntakeMaxFileSizeMB = 100
	DefaultIntakeAutoApprove   = false
	DefaultIntakePrefix        = "family"
)

// IntakeConfig 访客照片/视频投稿策略.
type IntakeConfig struct {
	// AutoApprove 投稿创建时 approved 的取值；false 表示需管理员审核后才公开
	AutoApprove   bool   `mapstructure:"auto_approve"`
	MaxFiles      int    `mapstructure:"max_files"        rule:"min=1,max=50"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb" rule:"min=1"`
	Prefix        string `mapstructure:"prefix"           rule:"required"`
}

// MaxFileSize 返回单文件字节上限.
func (c *IntakeConfig) MaxFileSize() int64 {
	return c.MaxFileSizeMB << 20
}

func (c *IntakeConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("intake.auto_approve", DefaultIntakeAutoApprove)
	v.SetDefault("intake.max_files", DefaultIntakeMaxFiles)
	v.SetDefault("intake.max_file_size_mb", DefaultIntakeMaxFileSizeMB)
	v.SetDefault("intake.prefix", DefaultIntakePrefix)
}
