// Package config provides configuration loading and logger setup.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Store   StoreConfig   `mapstructure:"store"`
	Gemini  GeminiConfig  `mapstructure:"gemini"`
	Export  ExportConfig  `mapstructure:"export"`
	Enhance EnhanceConfig `mapstructure:"enhance"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port        int    `mapstructure:"port" validate:"min=1,max=65535"`
	TemplateDir string `mapstructure:"template_dir" validate:"required"`
}

// StoreConfig selects the session store backend.
type StoreConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=memory redis"`
}

// GeminiConfig holds the text generation provider settings. An empty key
// disables AI enhancement; generation falls back to synthesized prose.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// ExportConfig configures document rendering.
type ExportConfig struct {
	ChromeTimeoutSecs int    `mapstructure:"chrome_timeout_secs" validate:"min=1"`
	DefaultLogoPath   string `mapstructure:"default_logo_path"`
}

// EnhanceConfig configures enhancement calls.
type EnhanceConfig struct {
	TimeoutSecs int `mapstructure:"timeout_secs" validate:"min=1"`
}

// RedisConfig configures the Redis session store.
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTLHours int    `mapstructure:"ttl_hours" validate:"min=1"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ChromeTimeout returns the browser print timeout as a duration.
func (c ExportConfig) ChromeTimeout() time.Duration {
	return time.Duration(c.ChromeTimeoutSecs) * time.Second
}

// Timeout returns the enhancement timeout as a duration.
func (c EnhanceConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

// TTL returns the session TTL as a duration.
func (c RedisConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// Load reads configuration from .env, config file, and environment.
// Environment variables use the DOCWRITER_ prefix with underscores, e.g.
// DOCWRITER_SERVER_PORT.
func Load() (*Config, error) {
	// best effort; a missing .env is fine
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("DOCWRITER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.template_dir", "data/templates")
	v.SetDefault("store.backend", "memory")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("export.chrome_timeout_secs", 45)
	v.SetDefault("export.default_logo_path", "")
	v.SetDefault("enhance.timeout_secs", 10)
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl_hours", 24)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return fmt.Errorf("config: parse log level: %w", err)
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return fmt.Errorf("config: build logger: %w", err)
	}
	zap.ReplaceGlobals(logger)

	return nil
}
