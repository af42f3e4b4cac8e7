package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"hermes/pkg/errors"
)

type Config struct {
	App           AppConfig
	Binance       BinanceConfig
	Stream        StreamConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"bitcoin-market-data"`
	Version  string `envconfig:"APP_VERSION" default:"1.0.0"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// BinanceConfig configures the REST fetcher. UserAgent is the fixed
// identifying header sent with every upstream request.
type BinanceConfig struct {
	BaseURL     string        `envconfig:"BINANCE_BASE_URL" default:"https://api.binance.com/api/v3"`
	UserAgent   string        `envconfig:"BINANCE_USER_AGENT" default:"bitcoin-market-data-server/1.0"`
	HTTPTimeout time.Duration `envconfig:"BINANCE_HTTP_TIMEOUT" default:"10s"`
}

// StreamConfig configures the real-time trade collector. MaxWindow caps the
// collection window regardless of what the caller requests.
type StreamConfig struct {
	FeedURL          string        `envconfig:"BINANCE_WS_URL" default:"wss://stream.binance.com:9443/ws"`
	DefaultWindow    time.Duration `envconfig:"STREAM_DEFAULT_WINDOW" default:"5s"`
	MaxWindow        time.Duration `envconfig:"STREAM_MAX_WINDOW" default:"30s"`
	HandshakeTimeout time.Duration `envconfig:"STREAM_HANDSHAKE_TIMEOUT" default:"10s"`
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"false"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// Load reads configuration from environment variables
// It first tries to load .env file (useful for local development)
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	return &cfg, nil
}
