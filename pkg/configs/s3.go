package configs

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// S3Config MinIO/S3 对象存储配置.
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"          rule:"required"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	UseSSL          bool   `mapstructure:"use_ssl"`
	BucketName      string `mapstructure:"bucket_name"       rule:"required"`
	Region          string `mapstructure:"region"`
	// PublicBaseURL 对外访问前缀（CDN 或反向代理），为空时使用 Endpoint
	PublicBaseURL string `mapstructure:"public_base_url"`
	// PublicRead 启动时为 bucket 设置匿名只读策略
	PublicRead bool `mapstructure:"public_read"`
}

const (
	DefaultS3Endpoint        = "localhost:9000"   // 默认S3端点
	DefaultS3AccessKeyID     = "minioadmin"       // 默认访问密钥ID
	DefaultS3SecretAccessKey = "minioadmin"       // 默认秘密访问密钥
	DefaultS3UseSSL          = false              // 默认是否使用SSL
	DefaultS3BucketName      = "birthday-uploads" // 默认存储桶名称
	DefaultS3Region          = "us-east-1"        // 默认区域
)

// GetEndpointURL 获取完整的端点URL.
func (c *S3Config) GetEndpointURL() string {
	if strings.HasPrefix(c.Endpoint, "http://") || strings.HasPrefix(c.Endpoint, "https://") {
		return strings.TrimRight(c.Endpoint, "/")
	}

	scheme := "http"
	if c.UseSSL {
		scheme = "https"
	}

	return fmt.Sprintf("%s://%s", scheme, c.Endpoint)
}

// ObjectURL 返回对象的公开访问地址.
func (c *S3Config) ObjectURL(key string) string {
	base := strings.TrimRight(c.PublicBaseURL, "/")
	if base == "" {
		base = c.GetEndpointURL()
	}

	return fmt.Sprintf("%s/%s/%s", base, c.BucketName, strings.TrimLeft(key, "/"))
}

// setDefaults 设置 S3 配置的默认值.
func (c *S3Config) setDefaults(v *viper.Viper) {
	v.SetDefault("s3.endpoint", DefaultS3Endpoint)
	v.SetDefault("s3.access_key_id", DefaultS3AccessKeyID)
	v.SetDefault("s3.secret_access_key", DefaultS3SecretAccessKey)
	v.SetDefault("s3.use_ssl", DefaultS3UseSSL)
	v.SetDefault("s3.bucket_name", DefaultS3BucketName)
	v.SetDefault("s3.region", DefaultS3Region)
	v.SetDefault("s3.public_base_url", "")
	v.SetDefault("s3.public_read", true)
}
