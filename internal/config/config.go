package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/jwalitptl/hospital-api/internal/repository/postgres"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Worker    WorkerConfig    `mapstructure:"worker"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Port           int `mapstructure:"port" envconfig:"SERVER_PORT"`
	TimeoutSeconds int `mapstructure:"timeout_seconds" envconfig:"SERVER_TIMEOUT_SECONDS"`
}

// StoreConfig selects the record store backend: "memory" (default) or
// "postgres".
type StoreConfig struct {
	Backend  string         `mapstructure:"backend" envconfig:"STORE_BACKEND"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host" envconfig:"DB_HOST"`
	Port     int    `mapstructure:"port" envconfig:"DB_PORT"`
	User     string `mapstructure:"user" envconfig:"DB_USER"`
	Password string `mapstructure:"password" envconfig:"DB_PASSWORD"`
	Name     string `mapstructure:"name" envconfig:"DB_NAME"`
	SSLMode  string `mapstructure:"sslmode" envconfig:"DB_SSLMODE"`
}

type RedisConfig struct {
	Enabled bool   `mapstructure:"enabled" envconfig:"REDIS_ENABLED"`
	URL     string `mapstructure:"url" envconfig:"REDIS_URL"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled" envconfig:"RATE_LIMIT_ENABLED"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" envconfig:"RATE_LIMIT_RPS"`
	Burst             int     `mapstructure:"burst" envconfig:"RATE_LIMIT_BURST"`
}

type WorkerConfig struct {
	SweepInterval time.Duration `mapstructure:"sweep_interval" envconfig:"WORKER_SWEEP_INTERVAL"`
}

type LoggingConfig struct {
	Level   string `mapstructure:"level" envconfig:"LOG_LEVEL"`
	Console bool   `mapstructure:"console" envconfig:"LOG_CONSOLE"`
}

// LoadConfig reads config.yaml if present, then applies HOSPITAL_*
// environment overrides. A missing config file is fine; the defaults
// run a self-contained in-memory server.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	config := defaultConfig()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		if err := viper.Unmarshal(config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if err := envconfig.Process("hospital", config); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	return config, nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			TimeoutSeconds: 30,
		},
		Store: StoreConfig{
			Backend: "memory",
			Postgres: PostgresConfig{
				Host:    "localhost",
				Port:    5432,
				Name:    "hospital",
				SSLMode: "disable",
			},
		},
		Redis: RedisConfig{
			URL: "redis://localhost:6379",
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 100,
			Burst:             200,
		},
		Worker: WorkerConfig{
			SweepInterval: time.Minute,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func (c PostgresConfig) ToPostgresConfig() postgres.Config {
	return postgres.Config{
		Host:     c.Host,
		Port:     c.Port,
		User:     c.User,
		Password: c.Password,
		Name:     c.Name,
		SSLMode:  c.SSLMode,
	}
}
