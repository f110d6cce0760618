package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

const (
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"

	minSecretLength = 32
)

type Config struct {
	Port        string `env:"PORT,default=8080"`
	Environment string `env:"APP_ENV,default=development"`
	Version     string `env:"APP_VERSION,default=dev"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`

	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH"`

	JWTSecret       string        `env:"JWT_SECRET"`
	CookieSecret    string        `env:"COOKIE_SECRET"`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL,default=15m"`
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL,default=168h"`
	CookieSecure    bool          `env:"COOKIE_SECURE,default=true"`
	CookieDomain    string        `env:"COOKIE_DOMAIN"`

	CORSOrigin string `env:"CORS_ORIGIN,default=http://localhost:5173"`

	AuthBypass            bool   `env:"AUTH_BYPASS,default=false"`
	DevUserEmail          string `env:"DEV_USER_EMAIL,default=dev@localhost"`
	PerformanceMonitoring bool   `env:"PERFORMANCE_MONITORING,default=false"`
	LoginRatePerMinute    int    `env:"LOGIN_RATE_PER_MINUTE,default=20"`
	// TrustProxy takes the client address from X-Real-IP/X-Forwarded-For.
	// Enable only behind a proxy that overwrites those headers.
	TrustProxy bool `env:"TRUST_PROXY,default=false"`
}

// Load reads an optional .env file and decodes the environment into a
// validated Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("failed to decode environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" && c.SQLitePath == "" {
		errs = append(errs, errors.New("one of DATABASE_URL or SQLITE_PATH is required"))
	}
	if len(c.JWTSecret) < minSecretLength {
		errs = append(errs, fmt.Errorf("JWT_SECRET must be at least %d characters", minSecretLength))
	}
	if len(c.CookieSecret) < minSecretLength {
		errs = append(errs, fmt.Errorf("COOKIE_SECRET must be at least %d characters", minSecretLength))
	}
	if c.AccessTokenTTL <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_TTL must be positive"))
	}
	if c.RefreshTokenTTL <= c.AccessTokenTTL {
		errs = append(errs, errors.New("REFRESH_TOKEN_TTL must be longer than ACCESS_TOKEN_TTL"))
	}
	if c.AuthBypass && c.IsProduction() {
		errs = append(errs, errors.New("AUTH_BYPASS cannot be enabled in production"))
	}
	if c.LoginRatePerMinute <= 0 {
		errs = append(errs, errors.New("LOGIN_RATE_PER_MINUTE must be positive"))
	}
	return errors.Join(errs...)
}

// DatabaseKind picks the backing store. A connection URL wins over a file
// path.
func (c *Config) DatabaseKind() string {
	if c.DatabaseURL != "" {
		return DatabasePostgres
	}
	return DatabaseSQLite
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) Addr() string {
	return "0.0.0.0:" + c.Port
}
