package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Redis   RedisConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Cookie  CookieConfig
	Cart    CartConfig
	Gateway GatewayConfig
	Tax     TaxConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Tokyo"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

// Tokens are issued elsewhere; this service only verifies them.
type JWTConfig struct {
	Secret string `envconfig:"JWT_SECRET" required:"true"`
}

type CookieConfig struct {
	Domain   string        `envconfig:"COOKIE_DOMAIN" default:""`
	Secure   bool          `envconfig:"COOKIE_SECURE" default:"true"`
	SameSite string        `envconfig:"COOKIE_SAMESITE" default:"Lax"`
	MaxAge   time.Duration `envconfig:"COOKIE_MAX_AGE" default:"72h"`
}

type CartConfig struct {
	TTL       time.Duration `envconfig:"CART_TTL" default:"72h"`
	TTLJitter time.Duration `envconfig:"CART_TTL_JITTER" default:"5m"`
	LockTTL   time.Duration `envconfig:"CART_CHECKOUT_LOCK_TTL" default:"60s"`
}

type GatewayConfig struct {
	LoginID        string        `envconfig:"GATEWAY_LOGIN_ID" default:""`
	TransactionKey string        `envconfig:"GATEWAY_TRANSACTION_KEY" default:""`
	Test           bool          `envconfig:"GATEWAY_TEST" default:"true"`
	Timeout        time.Duration `envconfig:"GATEWAY_TIMEOUT" default:"30s"`
	CIMRetries     int           `envconfig:"GATEWAY_CIM_RETRIES" default:"3"`
	SaveProfiles   bool          `envconfig:"GATEWAY_SAVE_PROFILES" default:"false"`
	// Overrides for sandboxes and tests; empty means the vendor endpoints.
	AIMURL string `envconfig:"GATEWAY_AIM_URL" default:""`
	CIMURL string `envconfig:"GATEWAY_CIM_URL" default:""`
}

// Rates are "STATE:rate" pairs, e.g. "CA:0.09,NY:0.08875".
type TaxConfig struct {
	Rates map[string]string `envconfig:"TAX_RATES" default:""`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

// RateFor returns the configured rate for a state code, or zero.
func (c TaxConfig) RateFor(state string) (decimal.Decimal, error) {
	raw, ok := c.Rates[strings.ToUpper(strings.TrimSpace(state))]
	if !ok || raw == "" {
		return decimal.Zero, nil
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid tax rate for %s: %w", state, err)
	}
	return rate, nil
}

func (c GatewayConfig) Validate() error {
	if c.Test {
		return nil
	}
	if c.LoginID == "" || c.TransactionKey == "" {
		return fmt.Errorf("GATEWAY_LOGIN_ID and GATEWAY_TRANSACTION_KEY are required in live mode")
	}
	return nil
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Gateway.Validate(); err != nil {
		return Config{}, err
	}
	// envconfig keeps map keys verbatim
	rates := make(map[string]string, len(cfg.Tax.Rates))
	for k, v := range cfg.Tax.Rates {
		rates[strings.ToUpper(strings.TrimSpace(k))] = strings.TrimSpace(v)
	}
	cfg.Tax.Rates = rates
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Tokyo",
			MaxConns: 5,
		},
		Redis: RedisConfig{
			Addr: "localhost:16379",
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tokyo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		JWT: JWTConfig{
			Secret: "test-secret",
		},
		Cookie: CookieConfig{
			SameSite: "Lax",
			MaxAge:   time.Hour,
		},
		Cart: CartConfig{
			TTL:     time.Hour,
			LockTTL: 10 * time.Second,
		},
		Gateway: GatewayConfig{
			LoginID:        "test-login",
			TransactionKey: "test-key",
			Test:           true,
			Timeout:        2 * time.Second,
			CIMRetries:     3,
		},
		Tax: TaxConfig{
			Rates: map[string]string{"CA": "0.09"},
		},
	}
}
