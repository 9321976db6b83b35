package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// App holds application configuration.
type App struct {
	Name    string `mapstructure:"name"`
	Env     string `mapstructure:"env"`
	Version string `mapstructure:"version"`
}

// Logger holds logger configuration.
type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

// Database holds database configuration.
type Database struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	DBName          string `mapstructure:"name"`
	SSLMode         string `mapstructure:"ssl_mode"`
	TimeZone        string `mapstructure:"time_zone"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	ConnMaxLifetime string `mapstructure:"conn_max_lifetime"`
	LogLevel        string `mapstructure:"log_level"`
}

// Redis holds Redis configuration.
type Redis struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	Password    string `mapstructure:"password"`
	DB          int    `mapstructure:"db"`
	PoolSize    int    `mapstructure:"pool_size"`
	DialTimeout string `mapstructure:"dial_timeout"`
}

// DialTimeoutDuration parses DialTimeout. Empty or malformed values give zero, which the client
// replaces with its own default.
func (r Redis) DialTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(r.DialTimeout)
	if err != nil {
		return 0
	}
	return d
}

// API holds API server configuration.
type API struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Address is the listen address for the HTTP server.
func (a API) Address() string {
	return fmt.Sprintf("%s:%d", a.Host, a.Port)
}

// Load reads the YAML file at path into out. Keys may be overridden from the environment with
// dots replaced by underscores (finnhub.api_key -> FINNHUB_API_KEY). Only keys present in the file
// or in defaults are looked up in the environment.
//
// A missing file falls back to defaults and the environment; a file that exists but cannot be
// parsed is an error.
func Load(path string, defaults map[string]interface{}, out interface{}) error {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config %s: %w", path, err)
		}
		log.Printf("Config file %s not found, using defaults and environment variables", path)
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}
