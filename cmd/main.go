package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/DEATHAIsol/instantfi/docs"
	"github.com/DEATHAIsol/instantfi/internal/config"
	"github.com/DEATHAIsol/instantfi/internal/controller"
	"github.com/DEATHAIsol/instantfi/internal/handler"
	"github.com/DEATHAIsol/instantfi/internal/registry"
	"github.com/DEATHAIsol/instantfi/internal/service"
	"github.com/DEATHAIsol/instantfi/pkg/integrations/cmcquotes"
	"github.com/DEATHAIsol/instantfi/pkg/integrations/wmPubsub"
	"github.com/DEATHAIsol/instantfi/pkg/utils"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title InstantFi API
// @version 1.0
// @description Market data for tracked Solana tokens

// @host localhost:8080
// @BasePath /

func main() {
	utils.LoadEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quotes := cmcquotes.NewClient(
		cfg.Provider.APIKey,
		cmcquotes.WithBaseURL(cfg.Provider.BaseURL),
		cmcquotes.WithCurrency(cfg.Provider.Currency),
		cmcquotes.WithTimeout(cfg.Provider.RequestTimeout),
	)
	if !quotes.Configured() {
		logger.Warn("COINMARKETCAP_API_KEY is not set, market data will stay empty")
	}

	hub := controller.NewHub(cfg.Server.StreamBuffer)
	marketsCh := make(chan []byte, 10)
	marketsPubSub := wmPubsub.New(
		wmPubsub.WithChannel(marketsCh),
		wmPubsub.WithContext(ctx),
		wmPubsub.WithTopic("markets"),
		wmPubsub.WithLogger(logger),
		wmPubsub.WithNonBlocking(),
		wmPubsub.WithHandler(hub.Broadcast),
	)
	if err := marketsPubSub.Subscribe(); err != nil {
		log.Fatal("Failed to start markets subscriber:", err)
	}

	assets := registry.Default()

	marketDataSvc, err := service.NewMarketDataService(
		service.WithMarketDataContext(ctx),
		service.WithMarketDataLogger(logger),
		service.WithMarketDataRegistry(assets),
		service.WithMarketDataFetcher(quotes),
		service.WithMarketDataPublisher(marketsPubSub),
		service.WithMarketDataCurrency(cfg.Provider.Currency),
		service.WithMarketDataInterval(cfg.Refresh.Interval),
	)
	if err != nil {
		log.Fatal("Failed to create market data service:", err)
	}

	if err := marketDataSvc.Start(); err != nil {
		log.Fatal("Failed to start market data service:", err)
	}

	if cfg.LogLevel > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	h, err := handler.New(
		handler.WithEngine(r),
		handler.WithLogger(logger),
		handler.WithMarketData(marketDataSvc),
		handler.WithAssetLookup(assets),
		handler.WithQuoteFetcher(quotes),
		handler.WithHub(hub),
	)
	if err != nil {
		log.Fatal("Failed to create handler:", err)
	}
	if err := h.Setup(); err != nil {
		log.Fatal("Failed to setup routes:", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		// Open streams end when ctx is cancelled.
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		logger.Info("shutting down...")
		marketDataSvc.Stop()
		cancel()

		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	logger.Info("starting InstantFi",
		"port", cfg.Server.Port,
		"assets", assets.Len(),
		"interval", cfg.Refresh.Interval,
		"currency", cfg.Provider.Currency,
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Failed to start server:", err)
	}
}
