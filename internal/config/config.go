package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is prepended to every environment variable, e.g. TICKER_POLL_SECS.
const Prefix = "TICKER"

type Config struct {
	BaseURL  string `envconfig:"BASE_URL" default:"https://data-api.coindesk.com"`
	Endpoint string `envconfig:"ENDPOINT" default:"/index/cc/v1/latest/tick"`

	Mode       string   `envconfig:"MODE" default:"multi"`
	Currency   string   `envconfig:"CURRENCY"`
	Currencies []string `envconfig:"CURRENCIES"`

	PollSecs           int  `envconfig:"POLL_SECS" default:"5"`
	RequestTimeoutSecs int  `envconfig:"REQUEST_TIMEOUT_SECS" default:"30"`
	Colorize           bool `envconfig:"COLORIZE" default:"true"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	RedisURL     string `envconfig:"REDIS_URL"`
	QuoteTTLSecs int    `envconfig:"QUOTE_TTL_SECS" default:"90"`

	TracingEnabled bool   `envconfig:"TRACING_ENABLED" default:"false"`
	OTelEndpoint   string `envconfig:"OTEL_ENDPOINT" default:"localhost:4317"`
}

// Load reads configuration from TICKER_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	c.Currency = strings.TrimSpace(c.Currency)
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")

	currencies := c.Currencies[:0]
	for _, cur := range c.Currencies {
		if cur = strings.TrimSpace(cur); cur != "" {
			currencies = append(currencies, cur)
		}
	}
	c.Currencies = currencies
}

// Validate checks value ranges. Mode and currency names are checked by the
// application when it resolves them.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base url is required")
	}
	if c.PollSecs < 1 {
		return fmt.Errorf("poll_secs must be at least 1")
	}
	if c.RequestTimeoutSecs < 0 {
		return fmt.Errorf("request_timeout_secs must not be negative")
	}
	if c.QuoteTTLSecs < 1 {
		return fmt.Errorf("quote_ttl_secs must be at least 1")
	}
	return nil
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollSecs) * time.Second
}

// RequestTimeout is zero when requests should never time out.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSecs) * time.Second
}

func (c *Config) QuoteTTL() time.Duration {
	return time.Duration(c.QuoteTTLSecs) * time.Second
}
