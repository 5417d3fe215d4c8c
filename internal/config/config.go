package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/DEATHAIsol/instantfi/pkg/integrations/cmcquotes"
	"github.com/DEATHAIsol/instantfi/pkg/types/market"
	"github.com/DEATHAIsol/instantfi/pkg/types/scheduler"
	"github.com/DEATHAIsol/instantfi/pkg/utils"

	"github.com/pkg/errors"
)

var ErrInvalidConfig = errors.New("invalid config")

const (
	DefaultPort            = "8080"
	DefaultStreamBuffer    = 4
	DefaultBaseURL         = cmcquotes.DefaultBaseURL
	DefaultProviderTimeout = cmcquotes.DefaultTimeout
)

type Server struct {
	Port string
	// StreamBuffer is the per-subscriber queue of the markets stream.
	StreamBuffer int
}

type Provider struct {
	// APIKey may be empty; refreshes then report an unconfigured provider.
	APIKey         string
	BaseURL        string
	Currency       string
	RequestTimeout time.Duration
}

type Refresh struct {
	Interval time.Duration
}

type Config struct {
	Server   Server
	Provider Provider
	Refresh  Refresh
	LogLevel slog.Level
}

func Default() Config {
	return Config{
		Server: Server{Port: DefaultPort, StreamBuffer: DefaultStreamBuffer},
		Provider: Provider{
			BaseURL:        DefaultBaseURL,
			Currency:       market.CurrencyUSD,
			RequestTimeout: DefaultProviderTimeout,
		},
		Refresh:  Refresh{Interval: scheduler.IntervalMinute},
		LogLevel: slog.LevelInfo,
	}
}

// Load builds the config from the environment on top of Default.
func Load() (Config, error) {
	cfg := Default()

	cfg.Server.Port = utils.GetEnv("APP_PORT", cfg.Server.Port)
	cfg.Server.StreamBuffer = utils.GetEnvInt("STREAM_BUFFER", cfg.Server.StreamBuffer)
	cfg.Provider.APIKey = strings.TrimSpace(utils.GetEnv("COINMARKETCAP_API_KEY", ""))
	cfg.Provider.BaseURL = strings.TrimRight(utils.GetEnv("COINMARKETCAP_BASE_URL", cfg.Provider.BaseURL), "/")
	cfg.Provider.Currency = strings.ToUpper(utils.GetEnv("QUOTE_CURRENCY", cfg.Provider.Currency))
	cfg.Provider.RequestTimeout = utils.GetEnvDuration("PROVIDER_TIMEOUT", cfg.Provider.RequestTimeout)
	cfg.Refresh.Interval = utils.GetEnvDuration("REFRESH_INTERVAL", cfg.Refresh.Interval)
	cfg.LogLevel = ParseLevel(utils.GetEnv("LOG_LEVEL", "info"))

	return cfg, cfg.IsValid()
}

func (c Config) IsValid() error {
	switch {
	case c.Server.Port == "":
		return errors.Wrap(ErrInvalidConfig, "port cannot be empty")
	case c.Server.StreamBuffer < 1:
		return errors.Wrap(ErrInvalidConfig, "stream buffer must be positive")
	case c.Provider.BaseURL == "":
		return errors.Wrap(ErrInvalidConfig, "provider base url cannot be empty")
	case c.Provider.Currency == "":
		return errors.Wrap(ErrInvalidConfig, "quote currency cannot be empty")
	case c.Refresh.Interval <= 0:
		return errors.Wrap(ErrInvalidConfig, "refresh interval must be positive")
	case c.Provider.RequestTimeout <= 0:
		return errors.Wrap(ErrInvalidConfig, "provider timeout must be positive")
	case c.Provider.RequestTimeout >= c.Refresh.Interval:
		return errors.Wrapf(ErrInvalidConfig, "provider timeout %s must be shorter than refresh interval %s",
			c.Provider.RequestTimeout, c.Refresh.Interval)
	default:
		return nil
	}
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
