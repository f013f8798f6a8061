// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverREST     = "rest"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	AuthRemote = "remote"
	AuthJWT    = "jwt"
)

type Config struct {
	Port        string   `env:"PORT" envDefault:"8000"`
	Environment string   `env:"ENVIRONMENT" envDefault:"development"`
	Version     string   `env:"APP_VERSION" envDefault:"1.0.0"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string   `env:"LOG_FORMAT" envDefault:"text"`
	CORSOrigins []string `env:"BACKEND_CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"rest"`
	DatabaseURL string `env:"DATABASE_URL"`
	AutoMigrate bool   `env:"AUTO_MIGRATE" envDefault:"false"`

	SupabaseURL     string `env:"SUPABASE_URL"`
	SupabaseKey     string `env:"SUPABASE_KEY"`
	SupabaseAnonKey string `env:"SUPABASE_ANON_KEY"`

	AuthMode    string `env:"AUTH_MODE" envDefault:"remote"`
	JWTSecret   string `env:"SUPABASE_JWT_SECRET"`
	JWTAudience string `env:"JWT_AUDIENCE" envDefault:"authenticated"`

	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
}

// Load reads a .env file when one is present and decodes the environment.
// A missing .env file is not an error; the process environment alone is used.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.CORSOrigins = normalizeOrigins(cfg.CORSOrigins)
	return cfg, cfg.Validate()
}

// Validate checks that the settings needed by the selected store driver and
// auth mode are present.
func (c Config) Validate() error {
	var errs []error
	switch c.StoreDriver {
	case DriverREST:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			errs = append(errs, errors.New("SUPABASE_URL and SUPABASE_KEY are required for the rest store"))
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres store"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}

	switch c.AuthMode {
	case AuthRemote:
		if c.SupabaseURL == "" {
			errs = append(errs, errors.New("SUPABASE_URL is required for remote auth"))
		}
	case AuthJWT:
		if c.JWTSecret == "" {
			errs = append(errs, errors.New("SUPABASE_JWT_SECRET is required for jwt auth"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown AUTH_MODE %q", c.AuthMode))
	}
	return errors.Join(errs...)
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// normalizeOrigins accepts both "a,b" and the JSON-ish `["a","b"]` form used by
// older deployments.
func normalizeOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, o := range in {
		o = strings.Trim(strings.TrimSpace(o), `[]"' `)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}
