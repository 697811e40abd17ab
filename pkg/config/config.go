package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Stripe       StripeConfig
	Cart         CartConfig
	Checkout     CheckoutConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"DCKT_APP_ENV" required:"true"`
	Port         string `envconfig:"DCKT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"DCKT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DCKT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"DCKT_DB_DSN"`
	Driver string `envconfig:"DCKT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"DCKT_DB_HOST"`
	LegacyPort     int    `envconfig:"DCKT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"DCKT_DB_USER"`
	LegacyPassword string `envconfig:"DCKT_DB_PASSWORD"`
	LegacyName     string `envconfig:"DCKT_DB_NAME"`
	LegacySSLMode  string `envconfig:"DCKT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DCKT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DCKT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DCKT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DCKT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"DCKT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"DCKT_REDIS_ADDR"`
	Password     string        `envconfig:"DCKT_REDIS_PASSWORD"`
	DB           int           `envconfig:"DCKT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DCKT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DCKT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DCKT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DCKT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DCKT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"DCKT_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"DCKT_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"DCKT_JWT_EXPIRATION_MINUTES" required:"true"`
}

type StripeConfig struct {
	APIKey string `envconfig:"DCKT_STRIPE_API_KEY"`
	Env    string `envconfig:"DCKT_STRIPE_ENV" default:"test"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type CartConfig struct {
	SessionTTL time.Duration `envconfig:"DCKT_CART_SESSION_TTL" default:"72h"`
}

type CheckoutConfig struct {
	Currency        string        `envconfig:"DCKT_CHECKOUT_CURRENCY" default:"myr"`
	SubmitGuardTTL  time.Duration `envconfig:"DCKT_CHECKOUT_SUBMIT_GUARD_TTL" default:"2m"`
	RateLimitWindow time.Duration `envconfig:"DCKT_CHECKOUT_RATE_LIMIT_WINDOW" default:"1m"`
	RateLimitMax    int64         `envconfig:"DCKT_CHECKOUT_RATE_LIMIT_MAX" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"DCKT_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
