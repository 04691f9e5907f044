package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the complete application configuration
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Logging LoggingConfig `mapstructure:"logging"`
	Stats   StatsConfig   `mapstructure:"stats"`
}

// StorageConfig selects the durable slot backend
type StorageConfig struct {
	Type string `mapstructure:"type"` // "sqlite" or "redis"
	Path string `mapstructure:"path"` // sqlite file, empty means ~/.studylog/studylog.db
	Key  string `mapstructure:"key"`  // slot key holding the collection
}

// RedisConfig defines the redis slot connection
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Timeout  string `mapstructure:"timeout"`
}

// LoggingConfig defines logging behavior
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// StatsConfig defines presentation defaults for statistics
type StatsConfig struct {
	Days int `mapstructure:"days"`
}

// Load loads configuration from file and environment variables.
// A missing config file is not an error.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("STUDYLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else if dir, err := DefaultDir(); err == nil {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, use defaults and environment variables
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// DefaultDir returns ~/.studylog
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".studylog"), nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.type", "sqlite")
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.key", "studyLogs")

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.timeout", "3s")

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "text")

	v.SetDefault("stats.days", 7)
}

// validate checks the configuration for errors
func validate(cfg *Config) error {
	switch cfg.Storage.Type {
	case "sqlite", "redis":
	default:
		return fmt.Errorf("storage.type must be 'sqlite' or 'redis', got %q", cfg.Storage.Type)
	}

	if strings.TrimSpace(cfg.Storage.Key) == "" {
		return fmt.Errorf("storage.key is required")
	}

	if cfg.Storage.Type == "redis" {
		if cfg.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required when storage.type is redis")
		}
		if _, err := time.ParseDuration(cfg.Redis.Timeout); err != nil {
			return fmt.Errorf("invalid redis.timeout: %w", err)
		}
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}

	switch cfg.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("logging.format must be 'json' or 'text'")
	}

	if cfg.Stats.Days < 1 || cfg.Stats.Days > 366 {
		return fmt.Errorf("stats.days must be between 1 and 366")
	}

	return nil
}
