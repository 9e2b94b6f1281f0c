package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: values that differ between environments (port, DB, tokens)
// - default: values common across all environments (timeouts, formats)
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	Auth    AuthConfig
	Shopify ShopifyConfig
	Scan    ScanConfig
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
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length,Content-Disposition"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

// AuthConfig drives the dashboard token exchange: callers present the static
// API key once and work with short-lived JWTs afterwards.
type AuthConfig struct {
	APIKey      string        `envconfig:"AUTH_API_KEY" required:"true"`
	JWTSecret   string        `envconfig:"AUTH_JWT_SECRET" required:"true"`
	JWTDuration time.Duration `envconfig:"AUTH_JWT_DURATION" default:"24h"`
}

type ShopifyConfig struct {
	AdminToken    string        `envconfig:"SHOPIFY_ADMIN_TOKEN" required:"true"`
	WebhookSecret string        `envconfig:"SHOPIFY_WEBHOOK_SECRET" required:"true"`
	APIVersion    string        `envconfig:"SHOPIFY_API_VERSION" default:"2024-10"`
	Timeout       time.Duration `envconfig:"SHOPIFY_TIMEOUT" default:"15s"`
}

type ScanConfig struct {
	// Public base URL embedded in the link/QR code handed to warehouse staff.
	BaseURL string `envconfig:"SCAN_BASE_URL" default:"http://localhost:8080"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Log: LogConfig{
			Level:      "error",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		Auth: AuthConfig{
			APIKey:      "test-api-key",
			JWTSecret:   "test-secret",
			JWTDuration: time.Hour,
		},
		Shopify: ShopifyConfig{
			AdminToken:    "test-admin-token",
			WebhookSecret: "test-webhook-secret",
			APIVersion:    "2024-10",
			Timeout:       5 * time.Second,
		},
		Scan: ScanConfig{
			BaseURL: "http://localhost:8889",
		},
	}
}
