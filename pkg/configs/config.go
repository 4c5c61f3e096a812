// Package configs 管理 keepsake 的全部配置：数据库、对象存储、KV、消息队列、管理口令、投稿策略等.
// 支持多种配置格式（YAML、JSON、TOML、dotenv），环境变量覆盖（前缀 KEEPSAKE_）并启用热重载.
//
// Example:
//
//	if err := configs.InitConfig("./"); err != nil {
//		log.Fatal(err)
//	}
//
//	cfg := configs.GetConfig()
//	fmt.Println(cfg.Server.Port, cfg.Intake.AutoApprove)
package configs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/yeisme/keepsake/pkg/rule"
)

// AppName 应用名称，用于日志、metrics、tracing 等.
const AppName = "keepsake"

// AppVersion 当前版本.
const AppVersion = "1.0.0"

// EnvPrefix 环境变量前缀.
const EnvPrefix = "KEEPSAKE"

type (
	// AppConfig 全局应用程序配置.
	AppConfig struct {
		Server         ServerConfig         `mapstructure:"server"`
		DB             DBConfig             `mapstructure:"db"`
		S3             S3Config             `mapstructure:"s3"`
		KV             KVConfig             `mapstructure:"kv"`
		MQ             MQConfig             `mapstructure:"mq"`
		Log            LogConfig            `mapstructure:"log"`
		Metrics        MetricsConfig        `mapstructure:"metrics"`
		Tracing        TracingConfig        `mapstructure:"tracing"`
		RateLimit      RateLimitConfig      `mapstructure:"rate_limit"`
		CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
		Events         EventsConfig         `mapstructure:"events"`
		Cache          CacheConfig          `mapstructure:"cache"`
		Admin          AdminConfig          `mapstructure:"admin"`
		Intake         IntakeConfig         `mapstructure:"intake"`
		Voice          VoiceConfig          `mapstructure:"voice"`
		Jobs           JobsConfig           `mapstructure:"jobs"`
	}
)

// defaulter 每个配置段实现 setDefaults.
type defaulter interface {
	setDefaults(v *viper.Viper)
}

var (
	// globalConfig 全局配置实例.
	globalConfig AppConfig
	// appViper 全局 Viper 实例.
	appViper *viper.Viper
	cfgMu    sync.RWMutex
)

// InitConfig 加载应用程序配置. path 可以是配置文件，也可以是包含 config.* 的目录.
// 找不到配置文件时仅使用默认值与环境变量.
func InitConfig(path string) error {
	v := viper.New()
	setAllDefaults(v)

	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(path)
		v.AddConfigPath(filepath.Join(path, "configs"))

		for _, ext := range []string{"yaml", "yml", "json", "toml", "env", "dotenv"} {
			cfg := filepath.Join(path, "config."+ext)
			if _, err := os.Stat(cfg); err == nil {
				v.SetConfigFile(cfg)

				break
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	fileUsed := true

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fileUsed = false
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := rule.ValidateStruct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	cfgMu.Lock()
	globalConfig = cfg
	appViper = v
	cfgMu.Unlock()

	if fileUsed {
		reloadConfigs(v, cfg.Server.ReloadConfig)
	}

	return nil
}

// setAllDefaults 设置所有配置段的默认值.
func setAllDefaults(v *viper.Viper) {
	sections := []defaulter{
		&ServerConfig{}, &DBConfig{}, &S3Config{}, &KVConfig{}, &MQConfig{},
		&LogConfig{}, &MetricsConfig{}, &TracingConfig{}, &RateLimitConfig{},
		&CircuitBreakerConfig{}, &EventsConfig{}, &CacheConfig{}, &AdminConfig{},
		&IntakeConfig{}, &VoiceConfig{}, &JobsConfig{},
	}
	for _, s := range sections {
		s.setDefaults(v)
	}
}

func reloadConfigs(v *viper.Viper, isHotReload bool) {
	if !isHotReload {
		return
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		fmt.Fprintln(os.Stderr, "config file changed:", e.Name)

		var cfg AppConfig
		if err := v.Unmarshal(&cfg); err != nil {
			fmt.Fprintf(os.Stderr, "error reloading config: %v\n", err)
			return
		}

		if err := rule.ValidateStruct(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "reloaded config rejected: %v\n", err)
			return
		}

		cfgMu.Lock()
		globalConfig = cfg
		cfgMu.Unlock()
	})
	v.WatchConfig()
}

// GetConfig 返回全局配置实例的快照.
func GetConfig() *AppConfig {
	cfgMu.RLock()
	defer cfgMu.RUnlock()

	c := globalConfig

	return &c
}

// Defaults 返回仅包含默认值的配置.
func Defaults() AppConfig {
	v := viper.New()
	setAllDefaults(v)

	var cfg AppConfig
	_ = v.Unmarshal(&cfg)

	return cfg
}

// GetViper 返回全局 Viper 实例.
func GetViper() *viper.Viper {
	cfgMu.RLock()
	defer cfgMu.RUnlock()

	return appViper
}
