// internal/config/config.go
//
// Runtime configuration for the REddle server and terminal client.
// Values come from the environment (optionally seeded by a .env file).
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every tunable of the server and the CLI.
type Config struct {
	Port       string `envconfig:"PORT" default:"5175"`
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	ConsoleLog bool   `envconfig:"CONSOLE_LOG" default:"false"`
	Env        string `envconfig:"APP_ENV" default:"development"`

	ClientOrigin   string        `envconfig:"CLIENT_ORIGIN" default:"http://localhost:5173"`
	HandlerTimeout time.Duration `envconfig:"HANDLER_TIMEOUT" default:"10s"`

	// Session tokens
	JWTSecret   string        `envconfig:"JWT_SECRET" default:"dev_secret_change_me"`
	SessionDays int           `envconfig:"SESSION_DAYS" default:"14"`
	SessionTTL  time.Duration `envconfig:"SESSION_TTL" default:"336h"`

	// Session store: memory | sqlite | redis
	StoreDriver   string `envconfig:"STORE_DRIVER" default:"memory"`
	StoreSize     int    `envconfig:"STORE_SIZE" default:"10000"`
	StoreDSN      string `envconfig:"STORE_DSN" default:"./data/reddle.db"`
	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Word source
	WordsFile        string `envconfig:"WORDS_FILE"`
	DailySalt        string `envconfig:"DAILY_SALT" default:"local_dev_salt"`
	AllowFixedAnswer bool   `envconfig:"ALLOW_FIXED_ANSWER" default:"false"`
}

// Load reads .env (if present) and processes the environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Production reports whether cookies should be Secure/SameSite=None.
func (c Config) Production() bool { return c.Env == "production" }

func (c Config) validate() error {
	switch c.StoreDriver {
	case "memory", "sqlite", "redis":
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.StoreDriver == "redis" && c.RedisAddr == "" {
		return fmt.Errorf("STORE_DRIVER=redis requires REDIS_ADDR")
	}
	if c.StoreSize <= 0 {
		return fmt.Errorf("STORE_SIZE must be positive, got %d", c.StoreSize)
	}
	if c.SessionDays <= 0 {
		return fmt.Errorf("SESSION_DAYS must be positive, got %d", c.SessionDays)
	}
	if c.Production() && c.JWTSecret == "dev_secret_change_me" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	return nil
}
