package config

import (
	"time"

	"multibagger-scanner/pkg/config"
)

// Finnhub holds the configuration for the Finnhub quote and fundamentals API.
type Finnhub struct {
	BaseURL             string        `mapstructure:"base_url"`
	APIKey              string        `mapstructure:"api_key"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	Window              time.Duration `mapstructure:"window"`
	Timeout             time.Duration `mapstructure:"timeout"`
	MaxRetries          int           `mapstructure:"max_retries"` // total attempts per request, first call included
	InitialBackoff      time.Duration `mapstructure:"initial_backoff"`
	QuoteTTL            time.Duration `mapstructure:"quote_ttl"`
	FundamentalsTTL     time.Duration `mapstructure:"fundamentals_ttl"`
	ProfileTTL          time.Duration `mapstructure:"profile_ttl"`
	CachePrefix         string        `mapstructure:"cache_prefix"`

	BreakerConsecutiveFailures uint32        `mapstructure:"breaker_consecutive_failures"`
	BreakerTimeout             time.Duration `mapstructure:"breaker_timeout"`
}

// YahooFinance holds the configuration for the Yahoo Finance chart API.
type YahooFinance struct {
	BaseURL             string        `mapstructure:"base_url"`
	MaxRequestPerMinute int           `mapstructure:"max_request_per_minute"`
	Timeout             time.Duration `mapstructure:"timeout"`
	Range               string        `mapstructure:"range"`
	Interval            string        `mapstructure:"interval"`
}

// Scanner holds scan pipeline settings.
type Scanner struct {
	MaxConcurrentSymbols int           `mapstructure:"max_concurrent_symbols"`
	PersistTimeout       time.Duration `mapstructure:"persist_timeout"`
	AsyncPersist         bool          `mapstructure:"async_persist"`
}

// Cache selects the key-value cache backend: redis, memory or none.
type Cache struct {
	Driver          string        `mapstructure:"driver"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// Telegram configures match alerts. Alerts are off when BotToken is empty.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the scanner service.
type Config struct {
	App          config.App      `mapstructure:"app"`
	Logger       config.Logger   `mapstructure:"logger"`
	Database     config.Database `mapstructure:"database"`
	Redis        config.Redis    `mapstructure:"redis"`
	API          config.API      `mapstructure:"api"`
	Cache        Cache           `mapstructure:"cache"`
	Finnhub      Finnhub         `mapstructure:"finnhub"`
	YahooFinance YahooFinance    `mapstructure:"yahoo_finance"`
	Scanner      Scanner         `mapstructure:"scanner"`
	Telegram     Telegram        `mapstructure:"telegram"`
}

var defaults = map[string]interface{}{
	"app.name":                             "multibagger-scanner",
	"app.env":                              "development",
	"app.version":                          "1.0.0",
	"logger.level":                         "info",
	"logger.encoding":                      "json",
	"database.host":                        "localhost",
	"database.port":                        5432,
	"database.user":                        "postgres",
	"database.password":                    "",
	"database.name":                        "multibagger",
	"database.ssl_mode":                     "disable",
	"redis.host":                           "localhost",
	"redis.port":                           6379,
	"redis.password":                       "",
	"redis.db":                             0,
	"redis.dial_timeout":                   "2s",
	"api.host":                             "0.0.0.0",
	"api.port":                             8000,
	"cache.driver":                         "redis",
	"cache.cleanup_interval":               "5m",
	"finnhub.base_url":                     "https://finnhub.io/api/v1",
	"finnhub.max_request_per_minute":       60,
	"finnhub.window":                       "60s",
	"finnhub.timeout":                      "5s",
	"finnhub.max_retries":                  3,
	"finnhub.initial_backoff":              "1s",
	"finnhub.quote_ttl":                    "900s",
	"finnhub.fundamentals_ttl":             "900s",
	"finnhub.profile_ttl":                  "3600s",
	"finnhub.cache_prefix":                 "finnhub",
	"finnhub.breaker_consecutive_failures": 5,
	"finnhub.breaker_timeout":              "30s",
	"yahoo_finance.base_url":               "https://query1.finance.yahoo.com",
	"yahoo_finance.max_request_per_minute": 120,
	"yahoo_finance.timeout":                "5s",
	"yahoo_finance.range":                  "3mo",
	"yahoo_finance.interval":               "1d",
	"scanner.max_concurrent_symbols":       4,
	"scanner.persist_timeout":              "10s",
	"scanner.async_persist":                false,
	"telegram.bot_token":                   "",
	"telegram.chat_id":                     0,
}

// Load loads the scanner configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, defaults, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
