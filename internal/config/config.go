package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const devJWTSecret = "dev_secret_change_me"

// Application settings, read from the environment.
type Config struct {
	Port string // listen port (8080)

	DatabaseURL string // postgres:// URL, built from POSTGRES_* when DATABASE_URL is unset

	JWTSecret  string
	SessionTTL time.Duration // lifetime of the session JWT

	GoEnv        string // development / production
	LogLevel     logrus.Level
	CookieSecure bool
	SeedEnabled  bool // POST /api/seed

	AMQPURL      string // empty disables event publishing
	AMQPExchange string

	ShutdownTimeout time.Duration
}

func (c Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// Addr is the listen address for echo.
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// Load reads the environment. Call godotenv.Load first when a .env file is wanted.
func Load() (Config, error) {
	cfg := Config{
		Port:         getenv("PORT", "8080"),
		GoEnv:        getenv("GO_ENV", "development"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		AMQPURL:      os.Getenv("AMQP_URL"),
		AMQPExchange: getenv("AMQP_EXCHANGE", "restaurant.orders"),
	}

	if _, err := strconv.Atoi(strings.TrimPrefix(cfg.Port, ":")); err != nil {
		return Config{}, fmt.Errorf("PORT must be number: %w", err)
	}

	switch cfg.GoEnv {
	case "development", "production", "test":
	default:
		return Config{}, fmt.Errorf("GO_ENV must be development, production or test: %q", cfg.GoEnv)
	}

	//JWT secret is mandatory outside development
	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return Config{}, fmt.Errorf("JWT_SECRET is required")
		}
		cfg.JWTSecret = devJWTSecret
	}

	dbURL, err := databaseURL()
	if err != nil {
		return Config{}, err
	}
	cfg.DatabaseURL = dbURL

	if cfg.SessionTTL, err = durationEnv("SESSION_TTL", 12*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownTimeout, err = durationEnv("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.CookieSecure, err = boolEnv("COOKIE_SECURE", cfg.IsProduction()); err != nil {
		return Config{}, err
	}
	if cfg.SeedEnabled, err = boolEnv("SEED_ENABLED", !cfg.IsProduction()); err != nil {
		return Config{}, err
	}

	cfg.LogLevel, err = logrus.ParseLevel(getenv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

// DATABASE_URL wins, otherwise POSTGRES_* with local defaults
func databaseURL() (string, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		u, err := url.Parse(dsn)
		if err != nil || (u.Scheme != "postgres" && u.Scheme != "postgresql") {
			return "", fmt.Errorf("DATABASE_URL must be a postgres:// URL")
		}
		return dsn, nil
	}

	port := getenv("POSTGRES_PORT", "5432")
	if _, err := strconv.Atoi(port); err != nil {
		return "", fmt.Errorf("POSTGRES_PORT must be number: %w", err)
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(getenv("POSTGRES_USER", "postgres"), getenv("POSTGRES_PASSWORD", "postgres")),
		Host:     getenv("POSTGRES_HOST", "localhost") + ":" + port,
		Path:     "/" + getenv("POSTGRES_DB", "restaurant"),
		RawQuery: url.Values{"sslmode": []string{getenv("POSTGRES_SSLMODE", "disable")}}.Encode(),
	}
	return u.String(), nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", key)
	}
	return d, nil
}

func boolEnv(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be bool: %w", key, err)
	}
	return b, nil
}
