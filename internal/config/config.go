package config

import (
	"fmt"
	"strings"

	"github.com/kalakriti-next/internal/logger"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Database   DatabaseConfig   `mapstructure:"database"`
	StateStore StateStoreConfig `mapstructure:"state_store"`
	UserJWT    JWTConfig        `mapstructure:"user_jwt"`
	Checkout   CheckoutConfig   `mapstructure:"checkout"`
	Payment    PaymentConfig    `mapstructure:"payment"`
	CORS       CORSConfig       `mapstructure:"cors"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug / release
}

// LogConfig 日志配置
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为 logger 配置
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// DatabasePoolConfig 数据库连接池配置
type DatabasePoolConfig struct {
	MaxOpenConns           int `mapstructure:"max_open_conns"`
	MaxIdleConns           int `mapstructure:"max_idle_conns"`
	ConnMaxLifetimeSeconds int `mapstructure:"conn_max_lifetime_seconds"`
	ConnMaxIdleTimeSeconds int `mapstructure:"conn_max_idle_time_seconds"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver string             `mapstructure:"driver"` // 数据库驱动（sqlite/postgres）
	DSN    string             `mapstructure:"dsn"`    // 数据库连接串
	Pool   DatabasePoolConfig `mapstructure:"pool"`
}

// StateStoreConfig 状态镜像存储配置
type StateStoreConfig struct {
	Driver string           `mapstructure:"driver"` // 镜像后端（db/redis）
	Redis  StateRedisConfig `mapstructure:"redis"`
}

// StateRedisConfig Redis 镜像后端配置
type StateRedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

// JWTConfig JWT 配置
type JWTConfig struct {
	SecretKey   string `mapstructure:"secret"`
	ExpireHours int    `mapstructure:"expire_hours"`
}

// CheckoutConfig 结算费用配置
type CheckoutConfig struct {
	FreeShippingThreshold float64 `mapstructure:"free_shipping_threshold"` // 免运费门槛
	ShippingFee           float64 `mapstructure:"shipping_fee"`            // 运费
	TaxRate               float64 `mapstructure:"tax_rate"`                // 税率
	DeliveryDays          int     `mapstructure:"delivery_days"`           // 预计送达天数
}

// PaymentConfig 支付网关配置
type PaymentConfig struct {
	Razorpay RazorpayConfig `mapstructure:"razorpay"`
	COD      CODConfig      `mapstructure:"cod"`
}

// RazorpayConfig Razorpay 渠道配置
type RazorpayConfig struct {
	KeyID      string `mapstructure:"key_id"`
	KeySecret  string `mapstructure:"key_secret"`
	APIBaseURL string `mapstructure:"api_base_url"`
	TimeoutMS  int    `mapstructure:"timeout_ms"`
}

// CODConfig 货到付款（模拟）配置
type CODConfig struct {
	DelayMS int `mapstructure:"delay_ms"` // 模拟确认延迟
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

// Load 从 config.yml 加载配置
func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")   // 如果从 cmd/server 运行
	viper.AddConfigPath("./etc") // etc 文件夹

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("log.dir", "")
	viper.SetDefault("log.filename", "kalakriti.log")
	viper.SetDefault("log.max_size_mb", 100)
	viper.SetDefault("log.max_backups", 7)
	viper.SetDefault("log.max_age_days", 30)
	viper.SetDefault("log.compress", true)
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "./db/kalakriti.db")
	viper.SetDefault("database.pool.max_open_conns", 1)
	viper.SetDefault("database.pool.max_idle_conns", 1)
	viper.SetDefault("database.pool.conn_max_lifetime_seconds", 0)
	viper.SetDefault("database.pool.conn_max_idle_time_seconds", 0)
	viper.SetDefault("state_store.driver", "db")
	viper.SetDefault("state_store.redis.host", "127.0.0.1")
	viper.SetDefault("state_store.redis.port", 6379)
	viper.SetDefault("state_store.redis.password", "")
	viper.SetDefault("state_store.redis.db", 0)
	viper.SetDefault("state_store.redis.prefix", "kk")
	viper.SetDefault("user_jwt.secret", "user-change-me-in-production")
	viper.SetDefault("user_jwt.expire_hours", 24)
	viper.SetDefault("checkout.free_shipping_threshold", 5000)
	viper.SetDefault("checkout.shipping_fee", 500)
	viper.SetDefault("checkout.tax_rate", 0.18)
	viper.SetDefault("checkout.delivery_days", 7)
	viper.SetDefault("payment.razorpay.key_id", "")
	viper.SetDefault("payment.razorpay.key_secret", "")
	viper.SetDefault("payment.razorpay.api_base_url", "")
	viper.SetDefault("payment.razorpay.timeout_ms", 12000)
	viper.SetDefault("payment.cod.delay_ms", 1500)
	viper.SetDefault("cors.allowed_origins", []string{"*"})
	viper.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	viper.SetDefault("cors.allowed_headers", []string{
		"Content-Type",
		"Content-Length",
		"Accept-Encoding",
		"Authorization",
		"Cache-Control",
		"X-Requested-With",
	})
	viper.SetDefault("cors.allow_credentials", true)
	viper.SetDefault("cors.max_age", 600)

	// 环境变量支持（server.port -> SERVER_PORT）
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		logger.Warnw("config_file_read_failed",
			"error", err,
			"fallback", "env_or_defaults",
		)
	} else {
		logger.Infow("config_file_loaded", "file", viper.ConfigFileUsed())
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		logger.Errorw("config_unmarshal_failed", "error", err)
		panic(fmt.Errorf("配置解析失败: %w", err))
	}

	return &cfg
}
