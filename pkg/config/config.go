package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "vendorhub"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	Idempotency  IdempotencyConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"VENDORHUB_APP_ENV" required:"true"`
	Port         string `envconfig:"VENDORHUB_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"VENDORHUB_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VENDORHUB_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"VENDORHUB_DB_DSN"`
	Driver string `envconfig:"VENDORHUB_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"VENDORHUB_DB_HOST"`
	LegacyPort     int    `envconfig:"VENDORHUB_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"VENDORHUB_DB_USER"`
	LegacyPassword string `envconfig:"VENDORHUB_DB_PASSWORD"`
	LegacyName     string `envconfig:"VENDORHUB_DB_NAME"`
	LegacySSLMode  string `envconfig:"VENDORHUB_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VENDORHUB_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VENDORHUB_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VENDORHUB_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VENDORHUB_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN builds the postgres DSN from the legacy discrete fields when a
// full DSN was not provided.
func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.LegacyHost == "" || d.LegacyUser == "" || d.LegacyName == "" {
		return fmt.Errorf("database config incomplete: set VENDORHUB_DB_DSN or host/user/name")
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.LegacyUser, d.LegacyPassword),
		Host:   fmt.Sprintf("%s:%d", d.LegacyHost, d.LegacyPort),
		Path:   d.LegacyName,
	}
	q := u.Query()
	q.Set("sslmode", d.LegacySSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"VENDORHUB_REDIS_URL"`
	Address      string        `envconfig:"VENDORHUB_REDIS_ADDR"`
	Password     string        `envconfig:"VENDORHUB_REDIS_PASSWORD"`
	DB           int           `envconfig:"VENDORHUB_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VENDORHUB_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VENDORHUB_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VENDORHUB_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VENDORHUB_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VENDORHUB_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"VENDORHUB_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"VENDORHUB_JWT_ISSUER" default:"vendorhub"`
	ExpirationMinutes int    `envconfig:"VENDORHUB_JWT_EXPIRATION_MINUTES" default:"60"`
}

// Expiration returns the access token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"VENDORHUB_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"VENDORHUB_AUTO_MIGRATE" default:"false"`
}

type IdempotencyConfig struct {
	TTL         time.Duration `envconfig:"VENDORHUB_IDEMPOTENCY_TTL" default:"24h"`
	CriticalTTL time.Duration `envconfig:"VENDORHUB_IDEMPOTENCY_CRITICAL_TTL" default:"168h"`
}
