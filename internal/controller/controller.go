package controller

import (
	"log/slog"

	"github.com/DEATHAIsol/instantfi/internal/service"
	"github.com/DEATHAIsol/instantfi/pkg/types/market"
)

// MarketData is the read and trigger surface of the refresh service.
type MarketData interface {
	Snapshot() *service.Snapshot
	Refresh() market.RefreshOutcome
	Currency() string
}

// AssetLookup resolves user-facing symbols to catalog entries.
type AssetLookup interface {
	Lookup(symbol string) (market.AssetDescriptor, bool)
}

type Controller struct {
	logger     *slog.Logger
	marketData MarketData
	assets     AssetLookup
	fetcher    market.QuoteFetcher
	currency   string
}

type Option func(*Controller)

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = l
	}
}

func WithMarketData(md MarketData) Option {
	return func(c *Controller) {
		c.marketData = md
	}
}

func WithAssetLookup(l AssetLookup) Option {
	return func(c *Controller) {
		c.assets = l
	}
}

// WithQuoteFetcher sets the fetcher used by the refresh proxy.
func WithQuoteFetcher(f market.QuoteFetcher) Option {
	return func(c *Controller) {
		c.fetcher = f
	}
}

func WithCurrency(currency string) Option {
	return func(c *Controller) {
		c.currency = currency
	}
}

func (c *Controller) IsValid() error {
	switch {
	case c.logger == nil:
		return ErrNilLogger
	case c.marketData == nil:
		return ErrNilMarketData
	case c.assets == nil:
		return ErrNilAssetLookup
	case c.fetcher == nil:
		return ErrNilFetcher
	default:
		return nil
	}
}

func New(opts ...Option) (*Controller, error) {
	c := &Controller{}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.IsValid(); err != nil {
		return nil, err
	}
	if c.currency == "" {
		c.currency = c.marketData.Currency()
	}
	return c, nil
}
