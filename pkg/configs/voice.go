package configs

import "github.com/spf13/viper"

// VoiceConfig 语音留言配置.
type VoiceConfig struct {
	MaxDurationSeconds int    `mapstructure:"max_duration_seconds" rule:"min=1"`
	MaxFileSizeMB      int64  `mapstructure:"max_file_size_mb"     rule:"min=1"`
	Prefix             string `mapstructure:"prefix"               rule:"required"`
}

// MaxFileSize 返回单文件字节上限.
func (c *VoiceConfig) MaxFileSize() int64 {
	return c.MaxFileSizeMB << 20
}

func (c *VoiceConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("voice.max_duration_seconds", 30)
	v.SetDefault("voice.max_file_size_mb", 10)
	v.SetDefault("voice.prefix", "voice")
}
