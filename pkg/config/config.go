package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	EnvPrefix = "RUCHULU"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Cart         CartConfig
	Delivery     DeliveryConfig
	Geocode      GeocodeConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if strings.TrimSpace(cfg.DB.DSN) == "" {
		return nil, fmt.Errorf("RUCHULU_DB_DSN is required")
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"RUCHULU_APP_ENV" required:"true"`
	Port         string `envconfig:"RUCHULU_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"RUCHULU_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RUCHULU_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"RUCHULU_DB_DSN"`

	MaxOpenConns    int           `envconfig:"RUCHULU_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"RUCHULU_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"RUCHULU_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RUCHULU_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"RUCHULU_REDIS_URL"`
	Address      string        `envconfig:"RUCHULU_REDIS_ADDR"`
	Password     string        `envconfig:"RUCHULU_REDIS_PASSWORD"`
	DB           int           `envconfig:"RUCHULU_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RUCHULU_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RUCHULU_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RUCHULU_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RUCHULU_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RUCHULU_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"RUCHULU_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"RUCHULU_JWT_ISSUER" default:"ruchulu"`
	ExpirationMinutes int    `envconfig:"RUCHULU_JWT_EXPIRATION_MINUTES" default:"1440"`
}

// CartConfig controls the session cart snapshot store.
type CartConfig struct {
	TTL time.Duration `envconfig:"RUCHULU_CART_TTL" default:"168h"`
}

// DeliveryConfig carries the pricing knobs that are not admin-editable per city.
type DeliveryConfig struct {
	// DefaultCharge applies when the selected city has no configured row.
	DefaultCharge decimal.Decimal `envconfig:"RUCHULU_DELIVERY_DEFAULT_CHARGE" default:"99"`
	// EnabledStates is the list of states checkout currently serves.
	EnabledStates []string `envconfig:"RUCHULU_DELIVERY_ENABLED_STATES" default:"Andhra Pradesh,Telangana"`

	// Depot coordinates and per-km rate drive provisional custom-city quotes.
	DepotLat            float64         `envconfig:"RUCHULU_DELIVERY_DEPOT_LAT" default:"16.3067"`
	DepotLng            float64         `envconfig:"RUCHULU_DELIVERY_DEPOT_LNG" default:"80.4365"`
	CustomCityBase      decimal.Decimal `envconfig:"RUCHULU_DELIVERY_CUSTOM_CITY_BASE" default:"49"`
	CustomCityPerKmRate decimal.Decimal `envconfig:"RUCHULU_DELIVERY_CUSTOM_CITY_PER_KM" default:"2"`
}

type GeocodeConfig struct {
	BaseURL   string        `envconfig:"RUCHULU_GEOCODE_BASE_URL" default:"https://nominatim.openstreetmap.org"`
	UserAgent string        `envconfig:"RUCHULU_GEOCODE_USER_AGENT" default:"ruchulu-storefront/1.0"`
	Timeout   time.Duration `envconfig:"RUCHULU_GEOCODE_TIMEOUT" default:"10s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"RUCHULU_AUTO_MIGRATE" default:"false"`
}
