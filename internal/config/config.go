package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Logging       LoggingConfig       `yaml:"logging"`
	Seed          SeedConfig          `yaml:"seed"`
	Subscriptions SubscriptionsConfig `yaml:"subscriptions"`
	RateLimit     RateLimitConfig     `yaml:"rate_limit"`
	Environment   string              `yaml:"environment"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type SeedConfig struct {
	// Path to the seed document (YAML or JSON). Empty starts the store empty.
	Path string `yaml:"path"`
}

type SubscriptionsConfig struct {
	// Family selects the live-channel family: "changes" or "counter".
	// The two are mutually exclusive per deployment.
	Family string `yaml:"family"`
	// CounterInterval is the counter channel's emission period.
	CounterInterval time.Duration `yaml:"counter_interval"`
}

type RateLimitConfig struct {
	// PublicPerMinute caps requests per client per minute; 0 disables.
	PublicPerMinute int `yaml:"public_per_minute"`
}

// Load reads configuration from environment variables with defaults.
func Load() (Config, error) {
	return LoadWithFile("")
}

// LoadWithFile starts from defaults, overlays an optional YAML config file,
// then overlays environment variables, so env always wins.
func LoadWithFile(path string) (Config, error) {
	cfg := Config{
		Server:  ServerConfig{Host: "0.0.0.0", Port: 8080},
		Logging: LoggingConfig{Level: "info", Format: "json"},
		Subscriptions: SubscriptionsConfig{
			Family:          "changes",
			CounterInterval: time.Second,
		},
		RateLimit:   RateLimitConfig{PublicPerMinute: 0},
		Environment: "development",
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.Server.Host = getEnv("SERVER_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnvInt("SERVER_PORT", cfg.Server.Port)
	cfg.Logging.Level = getEnv("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnv("LOG_FORMAT", cfg.Logging.Format)
	cfg.Seed.Path = getEnv("SEED_PATH", cfg.Seed.Path)
	cfg.Subscriptions.Family = getEnv("SUBSCRIPTIONS_FAMILY", cfg.Subscriptions.Family)
	cfg.Subscriptions.CounterInterval = time.Duration(getEnvInt("COUNTER_INTERVAL", int(cfg.Subscriptions.CounterInterval/time.Second))) * time.Second
	cfg.RateLimit.PublicPerMinute = getEnvInt("RATE_LIMIT_PUBLIC", cfg.RateLimit.PublicPerMinute)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)

	if cfg.Subscriptions.Family != "changes" && cfg.Subscriptions.Family != "counter" {
		return Config{}, fmt.Errorf("SUBSCRIPTIONS_FAMILY must be \"changes\" or \"counter\", got %q", cfg.Subscriptions.Family)
	}
	if cfg.Subscriptions.CounterInterval <= 0 {
		return Config{}, fmt.Errorf("COUNTER_INTERVAL must be positive")
	}
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return Config{}, fmt.Errorf("SERVER_PORT out of range: %d", cfg.Server.Port)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
