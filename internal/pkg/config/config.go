package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET, required"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Neople NeopleConfig
	Web    WebConfig
	Enrich EnrichConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=dnf_character_lookup"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type NeopleConfig struct {
	APIKey       string  `env:"NEOPLE_API_KEY"`
	BaseURL      string  `env:"NEOPLE_BASE_URL,       default=https://api.neople.co.kr/df"`
	ImageBaseURL string  `env:"NEOPLE_IMAGE_BASE_URL, default=https://img-api.neople.co.kr/df"`
	RatePerSec   float64 `env:"NEOPLE_RATE_PER_SEC,   default=10"`
}

// WebConfig drives the session-bound /web surface, which calls back into the
// backend API over HTTP.
type WebConfig struct {
	BackendBaseURL       string        `env:"BACKEND_BASE_URL,       default=http://localhost:8080"`
	RosterFetchTimeout   time.Duration `env:"ROSTER_FETCH_TIMEOUT,   default=5s"`
	RosterMaxConcurrency int           `env:"ROSTER_MAX_CONCURRENCY, default=8"`
	CookieSecure         bool          `env:"COOKIE_SECURE,          default=false"`
}

type EnrichConfig struct {
	Workers int `env:"ENRICH_WORKERS, default=4"`
}

// IsDevelopment reports whether the service runs with developer defaults
// (pretty console logs).
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration through the given lookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, err
	}
	if cfg.Web.RosterMaxConcurrency < 1 {
		return nil, fmt.Errorf("ROSTER_MAX_CONCURRENCY must be positive, got %d", cfg.Web.RosterMaxConcurrency)
	}
	return &cfg, nil
}
