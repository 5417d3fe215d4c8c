package handler

import (
	"log/slog"

	"github.com/DEATHAIsol/instantfi/internal/controller"
	"github.com/DEATHAIsol/instantfi/pkg/types/market"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

var (
	ErrNilEngine      = errors.New("engine is required")
	ErrNilMarketData  = errors.New("market data service is required")
	ErrNilAssetLookup = errors.New("asset lookup is required")
	ErrNilFetcher     = errors.New("quote fetcher is required")
	ErrNilLogger      = errors.New("logger is required")
)

type Handler struct {
	engine     *gin.Engine
	logger     *slog.Logger
	marketData controller.MarketData
	assets     controller.AssetLookup
	fetcher    market.QuoteFetcher
	hub        *controller.Hub
}

func (h *Handler) IsValid() error {
	switch {
	case h.engine == nil:
		return ErrNilEngine
	case h.logger == nil:
		return ErrNilLogger
	case h.marketData == nil:
		return ErrNilMarketData
	case h.assets == nil:
		return ErrNilAssetLookup
	case h.fetcher == nil:
		return ErrNilFetcher
	default:
		return nil
	}
}

type Option func(*Handler)

func WithEngine(engine *gin.Engine) Option {
	return func(h *Handler) {
		h.engine = engine
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(h *Handler) {
		h.logger = l
	}
}

func WithMarketData(md controller.MarketData) Option {
	return func(h *Handler) {
		h.marketData = md
	}
}

func WithAssetLookup(l controller.AssetLookup) Option {
	return func(h *Handler) {
		h.assets = l
	}
}

func WithQuoteFetcher(f market.QuoteFetcher) Option {
	return func(h *Handler) {
		h.fetcher = f
	}
}

// WithHub enables the markets stream.
func WithHub(hub *controller.Hub) Option {
	return func(h *Handler) {
		h.hub = hub
	}
}

func New(opts ...Option) (*Handler, error) {
	h := &Handler{}
	for _, opt := range opts {
		opt(h)
	}
	if err := h.IsValid(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *Handler) Setup() error {
	ctrl, err := controller.New(
		controller.WithLogger(h.logger),
		controller.WithMarketData(h.marketData),
		controller.WithAssetLookup(h.assets),
		controller.WithQuoteFetcher(h.fetcher),
	)
	if err != nil {
		return err
	}

	h.engine.GET("/health", ctrl.Health)
	h.engine.POST("/refresh", ctrl.RefreshQuotes)

	api := h.engine.Group("/api")
	api.POST("/crypto/prices", ctrl.RefreshQuotes)

	markets := api.Group("/markets")
	markets.GET("", ctrl.ListMarkets)
	if h.hub != nil {
		markets.GET("/stream", ctrl.SSEMarkets(h.hub))
	}
	markets.POST("/sync", ctrl.SyncMarkets)
	markets.GET("/:symbol", ctrl.GetMarket)

	return nil
}
