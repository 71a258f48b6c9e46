package config

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"

	SessionBackendRedis    = "redis"
	SessionBackendDatabase = "database"
)

// Config holds application configuration from environment and an optional .env file.
type Config struct {
	HTTPPort       string
	DatabaseDriver string
	DatabaseURL    string
	DBPoolSize     int
	SessionBackend string
	RedisURL       string
	RedisPoolSize  int
	SessionSecret  string
	SessionTTL     int // seconds
	CookieSecure   bool
	BcryptCost     int
	LogLevel       string
}

var (
	cfg     *Config
	cfgOnce sync.Once
)

// Get returns the application config (loads once from .env and the environment).
// It exits the process when the configuration is invalid.
func Get() *Config {
	cfgOnce.Do(func() {
		c, err := Load(".env")
		if err != nil {
			fmt.Fprintln(os.Stderr, "config:", err)
			os.Exit(1)
		}
		cfg = c
	})
	return cfg
}

// Load reads configuration from the given env file (ignored when missing)
// with environment variables taking precedence.
func Load(envFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
			return nil, fmt.Errorf("read %s: %w", envFile, err)
		}
	}
	v.AutomaticEnv()

	c := &Config{
		HTTPPort:       v.GetString("HTTP_PORT"),
		DatabaseDriver: v.GetString("DATABASE_DRIVER"),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		DBPoolSize:     v.GetInt("DB_POOL_SIZE"),
		SessionBackend: v.GetString("SESSION_BACKEND"),
		RedisURL:       v.GetString("REDIS_URL"),
		RedisPoolSize:  v.GetInt("REDIS_POOL_SIZE"),
		SessionSecret:  v.GetString("SESSION_SECRET"),
		SessionTTL:     v.GetInt("SESSION_TTL_SEC"),
		CookieSecure:   v.GetBool("COOKIE_SECURE"),
		BcryptCost:     v.GetInt("BCRYPT_COST"),
		LogLevel:       v.GetString("LOG_LEVEL"),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DATABASE_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_POOL_SIZE", 10)
	v.SetDefault("SESSION_BACKEND", SessionBackendRedis)
	v.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	v.SetDefault("REDIS_POOL_SIZE", 20)
	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("SESSION_TTL_SEC", 86400)
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("LOG_LEVEL", "info")
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	switch c.DatabaseDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DATABASE_DRIVER %q", c.DatabaseDriver)
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL must be set")
	}
	switch c.SessionBackend {
	case SessionBackendRedis, SessionBackendDatabase:
	default:
		return fmt.Errorf("unsupported SESSION_BACKEND %q", c.SessionBackend)
	}
	if c.SessionSecret == "" {
		return errors.New("SESSION_SECRET must be set")
	}
	if c.SessionTTL <= 0 {
		return errors.New("SESSION_TTL_SEC must be positive")
	}
	if c.DBPoolSize <= 0 {
		return errors.New("DB_POOL_SIZE must be positive")
	}
	return nil
}

// SessionMaxAge returns the session lifetime as a duration.
func (c *Config) SessionMaxAge() time.Duration {
	return time.Duration(c.SessionTTL) * time.Second
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}
