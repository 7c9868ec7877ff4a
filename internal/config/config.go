/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds settings shared by the pairings service and CLI. Values come
// from an optional YAML file and are then overridden by environment
// variables.
type Config struct {
	ListenAddr   string   `yaml:"listen"`
	LogLevel     string   `yaml:"log_level"`
	LogFormat    string   `yaml:"log_format"`
	CORSOrigins  []string `yaml:"cors_origins"`
	MaxBodyBytes int64    `yaml:"max_body_bytes"`

	RedisURL       string        `yaml:"redis_url"`
	ResultCacheTTL time.Duration `yaml:"result_cache_ttl"`

	HttpCacheBucket string        `yaml:"http_cache_bucket"`
	HttpCacheMaxAge time.Duration `yaml:"http_cache_max_age"`
}

func Default() *Config {
	return &Config{
		ListenAddr:      ":8000",
		LogLevel:        "info",
		LogFormat:       "text",
		CORSOrigins:     []string{"*"},
		MaxBodyBytes:    1 << 20,
		ResultCacheTTL:  time.Hour,
		HttpCacheMaxAge: 10 * time.Minute,
	}
}

// Load reads path (if non-empty) and then applies BBP_* environment
// variables. A .env file in the working directory is loaded first when
// present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read config %v: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("unable to parse config %v: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *Config) applyEnv(getenv func(string) string) error {
	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration) error {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %v: %w", key, err)
		}
		*dst = d
		return nil
	}

	str("BBP_LISTEN", &cfg.ListenAddr)
	str("BBP_LOG_LEVEL", &cfg.LogLevel)
	str("BBP_LOG_FORMAT", &cfg.LogFormat)
	str("BBP_REDIS_URL", &cfg.RedisURL)
	str("BBP_HTTP_CACHE_BUCKET", &cfg.HttpCacheBucket)

	if v := strings.TrimSpace(getenv("BBP_CORS_ORIGINS")); v != "" {
		cfg.CORSOrigins = nil
		for _, part := range strings.Split(v, ",") {
			if s := strings.TrimSpace(part); s != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, s)
			}
		}
	}
	if v := strings.TrimSpace(getenv("BBP_MAX_BODY_BYTES")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid BBP_MAX_BODY_BYTES: %w", err)
		}
		cfg.MaxBodyBytes = n
	}
	if err := dur("BBP_RESULT_CACHE_TTL", &cfg.ResultCacheTTL); err != nil {
		return err
	}

	return dur("BBP_HTTP_CACHE_MAX_AGE", &cfg.HttpCacheMaxAge)
}

func (cfg *Config) validate() error {
	if cfg.ListenAddr == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	if cfg.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive, got %d",
			cfg.MaxBodyBytes)
	}
	if cfg.ResultCacheTTL < 0 || cfg.HttpCacheMaxAge < 0 {
		return fmt.Errorf("cache durations must not be negative")
	}

	return nil
}
