package config

import (
	"strings"

	"github.com/blues/rfs/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Platform PlatformConfig `mapstructure:"platform"`
	Task     TaskConfig     `mapstructure:"task"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// PlatformConfig 平台引导配置，仅在平台尚未初始化时使用
type PlatformConfig struct {
	Authority        string `mapstructure:"authority"`          // 平台管理员地址
	FeeRate          uint16 `mapstructure:"fee_rate"`           // 手续费率（基点）
	MinFundingAmount uint64 `mapstructure:"min_funding_amount"` // 最低筹款目标
}

type TaskConfig struct {
	Interval       int `mapstructure:"interval"`         // 项目到期检查间隔（秒）
	EventInterval  int `mapstructure:"event_interval"`   // 事件分发间隔（秒）
	EventBatchSize int `mapstructure:"event_batch_size"` // 每次分发的事件数量
}

// RedisConfig 事件发布配置
type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // 日志级别: debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // 输出目标: stdout, stderr, file
	File   string `mapstructure:"file"`   // 日志文件路径（当output为file时使用）
}

// GetLevel 实现 logger.LogConfig 接口
func (l LogConfig) GetLevel() string {
	return l.Level
}

// GetOutput 实现 logger.LogConfig 接口
func (l LogConfig) GetOutput() string {
	return l.Output
}

// GetFile 实现 logger.LogConfig 接口
func (l LogConfig) GetFile() string {
	return l.File
}

func Load() *Config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/rfs")

	if err := v.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	cfg, err := load(v)
	if err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}
	return cfg
}

// load 设置默认值并解析配置
func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "research_funding")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("platform.authority", "")
	v.SetDefault("platform.fee_rate", 250)
	v.SetDefault("platform.min_funding_amount", 100)
	v.SetDefault("task.interval", 60)
	v.SetDefault("task.event_interval", 10)
	v.SetDefault("task.event_batch_size", 200)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.channel", "rfs:events")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.file", "logs/app.log")

	// 环境变量覆盖，例如 RFS_DATABASE_HOST
	v.SetEnvPrefix("rfs")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
