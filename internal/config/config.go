// Package config manages environment variables.
//
// It reads variables from the `.env` file and the process environment,
// loads them into structured Go types, and validates that required
// values are present so the rest of the service can trust them.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Map env vars into a structured Go config (structs).
//   - Validate required values so the app fails fast on bad/missing config.
//   - Resolve derived values once (database log level, observability defaults).
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: if a `.env` file exists it is loaded into the
	// process env before anything below reads it.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog"
)

/*
	Env vars are read using the POSTRPC_ prefix. The prefix is stripped,
	the rest is lowercased, and "." is the nesting delimiter:

		POSTRPC_PRIMARY.ENV            -> primary.env
		POSTRPC_DATABASE.URL           -> database.url
		POSTRPC_DATABASE.MAX_OPEN_CONNS -> database.max_open_conns

	Underscores are part of key names, they never introduce nesting.
*/

// EnvPrefix is the prefix every configuration variable must carry.
const EnvPrefix = "POSTRPC_"

// ServiceName tags logs, traces and New Relic data for this service.
const ServiceName = "postrpc"

// Environment labels accepted in primary.env.
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Config is the root configuration object for the application.
//
// Observability is a pointer because it is optional. If not provided,
// defaults are injected by Load.
type Config struct {
	Primary       Primary              `koanf:"primary" validate:"required"`
	Server        ServerConfig         `koanf:"server" validate:"required"`
	Database      DatabaseConfig       `koanf:"database" validate:"required"`
	Auth          AuthConfig           `koanf:"auth" validate:"required"`
	Observability *ObservabilityConfig `koanf:"observability"`
}

// Primary holds top-level information about the runtime environment.
type Primary struct {
	Env string `koanf:"env" validate:"required,oneof=development test production"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are whole seconds.
type ServerConfig struct {
	Port               string   `koanf:"port" validate:"required"`
	ReadTimeout        int      `koanf:"read_timeout" validate:"required"`
	WriteTimeout       int      `koanf:"write_timeout" validate:"required"`
	IdleTimeout        int      `koanf:"idle_timeout" validate:"required"`
	CORSAllowedOrigins []string `koanf:"cors_allowed_origins" validate:"required"`

	// RateLimit is the allowed requests per second per client IP.
	// Zero means DefaultRateLimit.
	RateLimit float64 `koanf:"rate_limit" validate:"gte=0"`
}

// DefaultRateLimit is used when server.rate_limit is not set.
const DefaultRateLimit = 20

// DatabaseConfig contains the PostgreSQL connection string and pool tuning.
//
// URL is a full postgres:// connection string. When it points at PgBouncer
// (or any transaction-mode pooler) PgBouncer must be true so pgx stops
// relying on server-side prepared statements.
type DatabaseConfig struct {
	URL       string `koanf:"url" validate:"required"`
	PgBouncer bool   `koanf:"pgbouncer"`

	// LogLevel is the pgx tracelog threshold. Empty means "derive from
	// primary.env" and is resolved in Load; after Load it is never empty.
	LogLevel string `koanf:"log_level" validate:"omitempty,oneof=trace debug info warn error none"`

	MaxOpenConns    int32 `koanf:"max_open_conns" validate:"gte=0"`
	MinOpenConns    int32 `koanf:"min_open_conns" validate:"gte=0"`
	ConnMaxLifetime int   `koanf:"conn_max_lifetime" validate:"gte=0"`
	ConnMaxIdleTime int   `koanf:"conn_max_idle_time" validate:"gte=0"`

	// AutoMigrate applies the embedded migrations at startup.
	AutoMigrate bool `koanf:"auto_migrate"`
}

// AuthConfig stores the Clerk secret key used to verify session tokens.
type AuthConfig struct {
	SecretKey string `koanf:"secret_key" validate:"required"`
}

// Load reads configuration from the environment, validates it, and fills in
// derived values.
//
// Behavior summary:
//   - Loads env vars with prefix POSTRPC_
//   - Unmarshals into Config
//   - Validates struct tags
//   - Resolves database.log_level from primary.env when unset
//   - Injects default observability config and validates it
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("could not load env variables: %w", err)
	}

	mainConfig := &Config{}
	if err := k.Unmarshal("", mainConfig); err != nil {
		return nil, fmt.Errorf("could not unmarshal main config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(mainConfig); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// The query log level is decided here, once, so the database layer
	// never has to look at the environment label itself.
	if mainConfig.Database.LogLevel == "" {
		mainConfig.Database.LogLevel = DefaultDatabaseLogLevel(mainConfig.Primary.Env)
	}

	if mainConfig.Server.RateLimit == 0 {
		mainConfig.Server.RateLimit = DefaultRateLimit
	}

	if mainConfig.Observability == nil {
		mainConfig.Observability = DefaultObservabilityConfig()
	}

	// Service name and environment always follow the primary config.
	mainConfig.Observability.ServiceName = ServiceName
	mainConfig.Observability.Environment = mainConfig.Primary.Env

	if err := mainConfig.Observability.Validate(); err != nil {
		return nil, fmt.Errorf("invalid observability config: %w", err)
	}

	return mainConfig, nil
}

// LoadConfig is Load for process startup: any error is logged and the
// process exits.
func LoadConfig() *Config {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	return cfg
}

// DefaultDatabaseLogLevel maps an environment label to a pgx tracelog level.
//
// Development logs every query together with warnings and errors
// (tracelog emits queries at info). Everything else only logs errors.
func DefaultDatabaseLogLevel(environment string) string {
	if environment == EnvDevelopment {
		return "info"
	}
	return "error"
}

// IsProduction reports whether primary.env is production.
func (c *Config) IsProduction() bool {
	return c.Primary.Env == EnvProduction
}
