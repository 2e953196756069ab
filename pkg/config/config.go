// Package config loads textsvg settings and render presets.
//
// # Settings
//
// [Load] reads application settings with viper. Values come from, in
// increasing priority: built-in defaults, an optional textsvg.toml (in
// $XDG_CONFIG_HOME/textsvg, ~/.config/textsvg, or the working directory),
// and TEXTSVG_* environment variables (TEXTSVG_SERVER_ADDR,
// TEXTSVG_CACHE_BACKEND, TEXTSVG_REDIS_ADDR, ...).
//
// # Presets
//
// Presets are named [svgtext.Options] stored in a TOML document:
//
//	[presets.banner]
//	width = 600
//	height = 120
//	font_size = 72
//	fill = "#ffffff"
//
// See [LoadPresets].
//
// [svgtext.Options]: github.com/matzehuels/textsvg/pkg/svgtext.Options
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/matzehuels/textsvg/pkg/cache"
)

const appName = "textsvg"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config holds all application settings.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Presets PresetsConfig `mapstructure:"presets"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxTextLength   int           `mapstructure:"max_text_length"`
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend string        `mapstructure:"backend"`
	Dir     string        `mapstructure:"dir"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// RedisConfig configures the Redis cache backend.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
	Retries  int    `mapstructure:"max_retries"`
}

// PresetsConfig points at an optional user preset file.
type PresetsConfig struct {
	File string `mapstructure:"file"`
}

// CacheOptions converts the Redis settings for the cache package.
func (r RedisConfig) CacheOptions() cache.RedisConfig {
	return cache.RedisConfig{
		Addr:       r.Addr,
		Password:   r.Password,
		DB:         r.DB,
		Prefix:     r.Prefix,
		MaxRetries: r.Retries,
	}
}

// Load reads settings. An explicit path must exist; without one the
// standard locations are searched and a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(appName)
		v.SetConfigType("toml")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks settings that would otherwise fail late.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return fmt.Errorf("invalid cache.backend: %q (must be file, redis, or none)", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheRedis && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required when cache.backend is redis")
	}
	if c.Server.MaxTextLength < 0 {
		return fmt.Errorf("server.max_text_length must not be negative")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)
	v.SetDefault("server.max_text_length", 256)
	v.SetDefault("cache.backend", CacheFile)
	v.SetDefault("cache.dir", "")
	v.SetDefault("cache.ttl", cache.TTLArtifact)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", appName+":")
	v.SetDefault("redis.max_retries", 3)
	v.SetDefault("presets.file", "")
}

// configDir returns the configuration directory using XDG standard (~/.config/textsvg/).
func configDir() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// CacheDir returns the cache directory using XDG standard (~/.cache/textsvg/).
// A configured cache.dir takes precedence.
func (c *Config) CacheDir() (string, error) {
	if c != nil && c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
