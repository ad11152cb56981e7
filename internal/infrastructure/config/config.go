package config

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all process-wide settings, loaded once at startup.
type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig

	// AlertWorkers is the number of fan-out workers; <= 0 uses the default.
	AlertWorkers int `env:"ALERT_WORKERS, default=8"`
}

// AuthConfig carries the token signing material and the role policy. The
// secret is read once here and passed explicitly into the token service;
// nothing else in the process touches it, and it is never logged.
type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	// Roles is the valid role set, ordered most to least privileged. The
	// default matches the four-role revision of the system.
	Roles string `env:"ROLES, default=ADMIN,AGENT,EXPERT,USER"`
	// RequireActive gates login on is_active. Off by default to preserve the
	// historical behaviour where deactivated accounts could still sign in.
	RequireActive bool `env:"AUTH_REQUIRE_ACTIVE, default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=heatwave_alerts"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// ErrMissingSecret is returned when JWT_SECRET is unset or blank. Callers
// must treat it as fatal: the service cannot authenticate anyone without it.
var ErrMissingSecret = errors.New("config: JWT_SECRET must be set and non-empty")

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, ErrMissingSecret
	}
	return &cfg, nil
}
