package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

const (
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

type Config struct {
	Server    ServerConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Store     StoreConfig
	Logging   LoggingConfig
}

type ServerConfig struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
}

type CORSConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	AllowCredentials bool
}

type RateLimitConfig struct {
	RPS int // 0 disables the limiter
}

type StoreConfig struct {
	Driver         string
	URI            string
	User           string
	Password       string
	Host           string
	Database       string
	ConnectTimeout time.Duration
	SQLitePath     string
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvInt("PORT", 5000),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		CORS: CORSConfig{
			AllowOrigins:     getEnvList("CORS_ALLOW_ORIGINS", []string{"*"}),
			AllowMethods:     getEnvList("CORS_ALLOW_METHODS", []string{"GET", "POST", "DELETE", "OPTIONS"}),
			AllowHeaders:     getEnvList("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type"}),
			AllowCredentials: getEnvBool("CORS_ALLOW_CREDENTIALS", false),
		},
		RateLimit: RateLimitConfig{
			RPS: getEnvInt("RATE_LIMIT_RPS", 0),
		},
		Store: StoreConfig{
			Driver:         getEnv("STORE_DRIVER", DriverMongo),
			URI:            getEnv("MONGO_URI", ""),
			User:           getEnv("DB_USER", ""),
			Password:       getEnv("DB_PASS", ""),
			Host:           getEnv("MONGO_HOST", "cluster0.wfbcpzp.mongodb.net"),
			Database:       getEnv("DB_NAME", "CIT"),
			ConnectTimeout: getEnvDuration("STORE_CONNECT_TIMEOUT", 10*time.Second),
			SQLitePath:     getEnv("SQLITE_PATH", "./data/cm-academy.db"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	if c.CORS.AllowCredentials && slices.Contains(c.CORS.AllowOrigins, "*") {
		return fmt.Errorf("CORS credentials cannot be allowed with a wildcard origin")
	}
	if c.RateLimit.RPS < 0 {
		return fmt.Errorf("invalid rate limit: %d", c.RateLimit.RPS)
	}

	switch c.Store.Driver {
	case DriverMongo:
		if c.Store.Database == "" {
			return fmt.Errorf("DB_NAME must not be empty")
		}
		if _, err := c.Store.MongoURI(); err != nil {
			return err
		}
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH must not be empty")
		}
	default:
		return fmt.Errorf("invalid store driver: %s", c.Store.Driver)
	}
	if c.Store.ConnectTimeout <= 0 {
		return fmt.Errorf("store connect timeout must be positive")
	}

	return nil
}

// MongoURI returns MONGO_URI when set, otherwise an SRV connection string
// assembled from the credentials and host.
func (s StoreConfig) MongoURI() (string, error) {
	if s.URI != "" {
		return s.URI, nil
	}
	if s.User == "" || s.Password == "" {
		return "", fmt.Errorf("DB_USER and DB_PASS are required when MONGO_URI is not set")
	}

	u := url.URL{
		Scheme:   "mongodb+srv",
		User:     url.UserPassword(s.User, s.Password),
		Host:     s.Host,
		Path:     "/",
		RawQuery: "retryWrites=true&w=majority",
	}
	return u.String(), nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}

	var out []string
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
