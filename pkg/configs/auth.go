package configs

import "github.com/spf13/viper"

// AdminConfig 管理口令配置. 口令只保存在服务端，从不下发给客户端.
// 为空时所有管理请求均被拒绝.
type AdminConfig struct {
	Password string `mapstructure:"password" json:"-"`
}

// Configured 是否设置了管理口令.
func (c *AdminConfig) Configured() bool {
	return c.Password != ""
}

func (c *AdminConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("admin.password", "")
}
