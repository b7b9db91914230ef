package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"ev-chart-station/pkg/idgen"
	"ev-chart-station/pkg/station"
)

// EnvPrefix 环境变量前缀，如 EVCHART_DATABASE_DSN
const EnvPrefix = "EVCHART"

// 支持的数据库驱动
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

var (
	ErrUnsupportedDriver = errors.New("config: unsupported database driver")
	ErrMissingDSN        = errors.New("config: database dsn is required")
	ErrMissingJWTSecret  = errors.New("config: auth.jwt_secret is required")
)

// Config 服务配置
type Config struct {
	Server   ServerConfig     `mapstructure:"server"`
	Log      LogConfig        `mapstructure:"log"`
	Features station.Features `mapstructure:"features"`
	Database DatabaseConfig   `mapstructure:"database"`
	Redis    RedisConfig      `mapstructure:"redis"`
	Auth     AuthConfig       `mapstructure:"auth"`
	IDGen    IDGenConfig      `mapstructure:"idgen"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	// Mode gin 运行模式：debug / release / test
	Mode            string        `mapstructure:"mode"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	// Format json 或 console
	Format string `mapstructure:"format"`
	// File 为空时只输出到标准输出
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	// AutoMigrate 启动时自动建表
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	// Addr 为空时冲突记录保存在进程内存中
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	// ConflictTTL 重复站点冲突的保留时间
	ConflictTTL time.Duration `mapstructure:"conflict_ttl"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

type IDGenConfig struct {
	DatacenterID int64 `mapstructure:"datacenter_id"`
	WorkerID     int64 `mapstructure:"worker_id"`
}

// setDefaults 默认值，无配置文件也可以启动
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.compress", true)

	v.SetDefault("features.register_non_fed_funded_station", true)
	v.SetDefault("features.sr_adds_station", false)

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.dsn", "file:evchart.db?_foreign_keys=on")
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.conflict_ttl", 30*time.Minute)

	// 未设置默认值的键无法从环境变量读取
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "ev-chart")

	v.SetDefault("idgen.datacenter_id", 0)
	v.SetDefault("idgen.worker_id", 0)
}

// Load 读取配置：默认值 < 配置文件 < 环境变量
// path 为空时只使用默认值和环境变量
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 检查配置的一致性
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverSQLite, DriverMySQL, DriverPostgres:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return ErrMissingDSN
	}
	if c.Auth.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	if c.IDGen.DatacenterID < 0 || c.IDGen.DatacenterID > idgen.MaxDatacenterID {
		return idgen.ErrInvalidDatacenterID
	}
	if c.IDGen.WorkerID < 0 || c.IDGen.WorkerID > idgen.MaxWorkerID {
		return idgen.ErrInvalidWorkerID
	}
	return nil
}
