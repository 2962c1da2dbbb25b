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
	OpenAI       OpenAIConfig
	Publisher    PublisherConfig
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
	Env          string `envconfig:"VESTIPLAN_APP_ENV" required:"true"`
	Port         string `envconfig:"VESTIPLAN_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"VESTIPLAN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VESTIPLAN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"VESTIPLAN_DB_DSN"`
	Driver string `envconfig:"VESTIPLAN_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"VESTIPLAN_DB_HOST"`
	LegacyPort     int    `envconfig:"VESTIPLAN_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"VESTIPLAN_DB_USER"`
	LegacyPassword string `envconfig:"VESTIPLAN_DB_PASSWORD"`
	LegacyName     string `envconfig:"VESTIPLAN_DB_NAME"`
	LegacySSLMode  string `envconfig:"VESTIPLAN_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"VESTIPLAN_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VESTIPLAN_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VESTIPLAN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VESTIPLAN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"VESTIPLAN_REDIS_URL" required:"true"`
	Address      string        `envconfig:"VESTIPLAN_REDIS_ADDR"`
	Password     string        `envconfig:"VESTIPLAN_REDIS_PASSWORD"`
	DB           int           `envconfig:"VESTIPLAN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VESTIPLAN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VESTIPLAN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VESTIPLAN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VESTIPLAN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VESTIPLAN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig configures verification of tokens minted by the identity
// provider. This service never issues tokens itself.
type JWTConfig struct {
	Secret            string `envconfig:"VESTIPLAN_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"VESTIPLAN_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"VESTIPLAN_JWT_EXPIRATION_MINUTES" default:"60"`
}

type OpenAIConfig struct {
	APIKey    string `envconfig:"VESTIPLAN_OPENAI_API_KEY"`
	Model     string `envconfig:"VESTIPLAN_OPENAI_MODEL" default:"gpt-4o"`
	MaxTokens int    `envconfig:"VESTIPLAN_OPENAI_MAX_TOKENS" default:"1500"`

	// Per-user cap on vision analysis calls. Zero disables the limiter.
	RateLimitPerHour int `envconfig:"VESTIPLAN_OPENAI_RATE_LIMIT_PER_HOUR" default:"30"`
}

// PublisherConfig selects the marketplace publisher implementation.
// Only the noop publisher ships today; the knob exists so a real
// integration can be selected without code changes.
type PublisherConfig struct {
	Driver string `envconfig:"VESTIPLAN_PUBLISHER_DRIVER" default:"noop"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"VESTIPLAN_AUTO_MIGRATE" default:"false"`
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
