package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Sources SourcesConfig
	Store   StoreConfig
	Redis   RedisConfig
	Refresh RefreshConfig
	Logging LoggingConfig
}

type ServerConfig struct {
	Port int
}

type SourcesConfig struct {
	BannerWikiURL  string
	VersionWikiURL string
	UserAgent      string
	Timeout        time.Duration
}

type StoreConfig struct {
	CacheFile string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

type RefreshConfig struct {
	// Spec is a cron expression; empty disables the in-process scheduler.
	Spec string
}

type LoggingConfig struct {
	Level string
	File  string
}

const (
	defaultBannerWikiURL  = "https://wiki.biligame.com/sr/%E8%B7%83%E8%BF%81"
	defaultVersionWikiURL = "https://honkai-star-rail.fandom.com/zh/wiki/%E7%89%88%E6%9C%AC"
	defaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnvInt("PORT", 5000),
		},
		Sources: SourcesConfig{
			BannerWikiURL:  getEnv("BANNER_WIKI_URL", defaultBannerWikiURL),
			VersionWikiURL: getEnv("VERSION_WIKI_URL", defaultVersionWikiURL),
			UserAgent:      getEnv("USER_AGENT", defaultUserAgent),
			Timeout:        time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Store: StoreConfig{
			CacheFile: getEnv("CACHE_FILE", "data.json"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      time.Duration(getEnvInt("CACHE_TTL_MINUTES", 30)) * time.Minute,
		},
		Refresh: RefreshConfig{
			Spec: getEnv("REFRESH_SPEC", ""),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Sources.BannerWikiURL == "" {
		return fmt.Errorf("BANNER_WIKI_URL is required")
	}
	if c.Sources.VersionWikiURL == "" {
		return fmt.Errorf("VERSION_WIKI_URL is required")
	}
	if c.Sources.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT_SECONDS must be positive")
	}
	if c.Store.CacheFile == "" {
		return fmt.Errorf("CACHE_FILE is required")
	}
	return nil
}

// RedisEnabled reports whether the optional Redis payload cache is configured.
func (c *Config) RedisEnabled() bool {
	return c.Redis.Host != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
