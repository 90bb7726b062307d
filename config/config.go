package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"` // "mysql" or "sqlite"
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	DatabaseName string `mapstructure:"database_name"`
	Path         string `mapstructure:"path"` // sqlite file, ":memory:" allowed
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"` // empty disables the catalog cache
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTLSecs  int    `mapstructure:"ttl_secs"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"` // empty disables order events
	Topic   string   `mapstructure:"topic"`
}

type Config struct {
	ListenAddr string         `mapstructure:"listen_addr"`
	JWTSecret  string         `mapstructure:"jwt_secret"`
	LogLevel   string         `mapstructure:"log_level"`
	Database   DatabaseConfig `mapstructure:"database"`
	Redis      RedisConfig    `mapstructure:"redis"`
	Kafka      KafkaConfig    `mapstructure:"kafka"`
}

// DSN builds the gorm connection string for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.Driver == "sqlite" {
		if d.Path == "" {
			return "kindle.db"
		}
		return d.Path
	}
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.Username,
		d.Password,
		d.Host,
		d.Port,
		d.DatabaseName,
	)
}

// Load reads config.yaml from the working directory (if present) with
// KINDLE_-prefixed environment variables taking precedence.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("jwt_secret", "dev-secret-change-me")
	v.SetDefault("log_level", "info")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "kindle.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("redis.ttl_secs", 60)
	v.SetDefault("kafka.topic", "kindle.orders.created")

	v.SetEnvPrefix("KINDLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}
