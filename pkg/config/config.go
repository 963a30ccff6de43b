package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every FoodSave environment variable.
	EnvPrefix = "FOODSAVE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "FOODSAVE_DB_DSN"
	EnvDBHost = "FOODSAVE_DB_HOST"
	EnvDBUser = "FOODSAVE_DB_USER"
	EnvDBName = "FOODSAVE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Cron         CronConfig
	Map          MapConfig
	Recommend    RecommendConfig
	Orders       OrdersConfig
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
	Env          string `envconfig:"FOODSAVE_APP_ENV" required:"true"`
	Port         string `envconfig:"FOODSAVE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FOODSAVE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FOODSAVE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FOODSAVE_DB_DSN"`
	Driver string `envconfig:"FOODSAVE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FOODSAVE_DB_HOST"`
	LegacyPort     int    `envconfig:"FOODSAVE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FOODSAVE_DB_USER"`
	LegacyPassword string `envconfig:"FOODSAVE_DB_PASSWORD"`
	LegacyName     string `envconfig:"FOODSAVE_DB_NAME"`
	LegacySSLMode  string `envconfig:"FOODSAVE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FOODSAVE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FOODSAVE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FOODSAVE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FOODSAVE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FOODSAVE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FOODSAVE_REDIS_ADDR"`
	Password     string        `envconfig:"FOODSAVE_REDIS_PASSWORD"`
	DB           int           `envconfig:"FOODSAVE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FOODSAVE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FOODSAVE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FOODSAVE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FOODSAVE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FOODSAVE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CronConfig struct {
	Interval    time.Duration `envconfig:"FOODSAVE_CRON_INTERVAL" default:"1h"`
	LockTTL     time.Duration `envconfig:"FOODSAVE_CRON_LOCK_TTL" default:"50m"`
	MetricsPort string        `envconfig:"FOODSAVE_CRON_METRICS_PORT" default:"9091"`
}

type MapConfig struct {
	MaxResults int `envconfig:"FOODSAVE_MAP_MAX_RESULTS" default:"20"`
}

type RecommendConfig struct {
	MaxCount int `envconfig:"FOODSAVE_RECOMMEND_MAX_COUNT" default:"12"`
}

type OrdersConfig struct {
	DeliveryFee string `envconfig:"FOODSAVE_ORDERS_DELIVERY_FEE" default:"5.00"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FOODSAVE_AUTO_MIGRATE" default:"false"`
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
