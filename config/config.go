package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config 全局配置（环境变量优先，可选 config.yaml）
type Config struct {
	AppEnv   string `mapstructure:"app_env"`
	HTTPAddr string `mapstructure:"http_addr"`

	DBDriver string `mapstructure:"db_driver"` // postgres | sqlite
	DBDSN    string `mapstructure:"db_dsn"`

	RedisAddr string `mapstructure:"redis_addr"`

	JWTSecret string `mapstructure:"jwt_secret"`

	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`

	SentryDSN    string `mapstructure:"sentry_dsn"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	LogLevel string `mapstructure:"log_level"`
}

// Load 读取配置；找不到配置文件时仅使用环境变量与默认值
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("app_env", "dev")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("db_dsn", "file:socialcore.db?cache=shared")
	v.SetDefault("redis_addr", "")
	v.SetDefault("jwt_secret", "dev-secret")
	v.SetDefault("rate_limit_rps", 50.0)
	v.SetDefault("rate_limit_burst", 100)
	v.SetDefault("sentry_dsn", "")
	v.SetDefault("otlp_endpoint", "")
	v.SetDefault("log_level", "info")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// 配置文件可选
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
