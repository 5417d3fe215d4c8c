package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/DEATHAIsol/instantfi/pkg/integrations/cmcquotes"
	tickerScheduler "github.com/DEATHAIsol/instantfi/pkg/integrations/scheduler"
	"github.com/DEATHAIsol/instantfi/pkg/types/market"
	"github.com/DEATHAIsol/instantfi/pkg/types/pubsub"
	"github.com/DEATHAIsol/instantfi/pkg/types/scheduler"

	"github.com/pkg/errors"
	"golang.org/x/sync/semaphore"
)

var (
	ErrInvalidMarketDataConfig = errors.New("invalid market data service config")
	ErrRefreshInFlight         = errors.New("refresh already in flight")
	ErrServiceStopped          = errors.New("market data service stopped")
)

type AssetRegistry interface {
	List() []market.AssetDescriptor
	ProviderIDs() []string
	Index(localID string) int
}

// MarketDataService keeps the asset collection current. At most one refresh
// cycle runs at a time; readers always see a fully committed Snapshot.
type MarketDataService struct {
	ctx       context.Context
	cancel    context.CancelFunc
	logger    *slog.Logger
	registry  AssetRegistry
	fetcher   market.QuoteFetcher
	publisher pubsub.Publisher
	currency  string
	interval  time.Duration
	scheduler scheduler.Scheduler
	now       func() time.Time

	inflight *semaphore.Weighted
	snapshot atomic.Pointer[Snapshot]
	// latched holds a failure that retrying cannot fix.
	latched atomic.Pointer[market.Error]

	mu      sync.Mutex
	stopped bool
}

type MarketDataOption func(*MarketDataService)

func WithMarketDataContext(ctx context.Context) MarketDataOption {
	return func(s *MarketDataService) {
		s.ctx = ctx
	}
}

func WithMarketDataLogger(l *slog.Logger) MarketDataOption {
	return func(s *MarketDataService) {
		s.logger = l
	}
}

func WithMarketDataRegistry(r AssetRegistry) MarketDataOption {
	return func(s *MarketDataService) {
		s.registry = r
	}
}

func WithMarketDataFetcher(f market.QuoteFetcher) MarketDataOption {
	return func(s *MarketDataService) {
		s.fetcher = f
	}
}

func WithMarketDataPublisher(p pubsub.Publisher) MarketDataOption {
	return func(s *MarketDataService) {
		s.publisher = p
	}
}

func WithMarketDataCurrency(c string) MarketDataOption {
	return func(s *MarketDataService) {
		s.currency = c
	}
}

func WithMarketDataInterval(d time.Duration) MarketDataOption {
	return func(s *MarketDataService) {
		s.interval = d
	}
}

func withClock(now func() time.Time) MarketDataOption {
	return func(s *MarketDataService) {
		s.now = now
	}
}

func (s *MarketDataService) IsValid() error {
	switch {
	case s.ctx == nil:
		return errors.Wrap(ErrInvalidMarketDataConfig, "ctx cannot be nil")
	case s.logger == nil:
		return errors.Wrap(ErrInvalidMarketDataConfig, "logger cannot be nil")
	case s.registry == nil:
		return errors.Wrap(ErrInvalidMarketDataConfig, "registry cannot be nil")
	case s.fetcher == nil:
		return errors.Wrap(ErrInvalidMarketDataConfig, "fetcher cannot be nil")
	case s.publisher == nil:
		return errors.Wrap(ErrInvalidMarketDataConfig, "publisher cannot be nil")
	case s.currency == "":
		return errors.Wrap(ErrInvalidMarketDataConfig, "currency cannot be empty")
	case s.interval <= 0:
		return errors.Wrap(ErrInvalidMarketDataConfig, "interval must be positive")
	default:
		return nil
	}
}

func NewMarketDataService(opts ...MarketDataOption) (*MarketDataService, error) {
	s := &MarketDataService{
		currency: market.CurrencyUSD,
		interval: scheduler.IntervalMinute,
		now:      time.Now,
		inflight: semaphore.NewWeighted(1),
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.IsValid(); err != nil {
		return nil, err
	}

	s.ctx, s.cancel = context.WithCancel(s.ctx)

	assets := initialAssets(s.registry.List())
	sortByMarketCap(assets, s.registry.Index)
	s.snapshot.Store(&Snapshot{
		Assets:    assets,
		State:     StateIdle,
		UpdatedAt: s.now(),
	})

	sched, err := tickerScheduler.New(
		tickerScheduler.WithContext(s.ctx),
		tickerScheduler.WithLogger(s.logger),
		tickerScheduler.WithInterval(s.interval),
		tickerScheduler.WithImmediate(),
		tickerScheduler.WithHandler(s.tick),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create scheduler")
	}
	s.scheduler = sched

	return s, nil
}

// Start runs the first refresh in the background and schedules the rest one
// interval after the end of each cycle.
func (s *MarketDataService) Start() error {
	return s.scheduler.Start()
}

// Stop cancels the schedule. A fetch still in flight may finish, but its
// result is never committed.
func (s *MarketDataService) Stop() {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	s.cancel()
	s.scheduler.Stop()
}

func (s *MarketDataService) Snapshot() *Snapshot {
	return s.snapshot.Load()
}

func (s *MarketDataService) Currency() string {
	return s.currency
}

func (s *MarketDataService) tick() error {
	out := s.cycle()
	if wasSkipped(out) {
		return nil
	}
	return out.Err
}

// Refresh runs one cycle outside the schedule and restarts the interval. It
// returns ErrRefreshInFlight without fetching when another cycle has not
// finished yet.
func (s *MarketDataService) Refresh() market.RefreshOutcome {
	out := s.cycle()
	if !wasSkipped(out) {
		s.scheduler.Reset()
	}
	return out
}

func wasSkipped(out market.RefreshOutcome) bool {
	return errors.Is(out.Err, ErrRefreshInFlight) || errors.Is(out.Err, ErrServiceStopped)
}

func (s *MarketDataService) cycle() market.RefreshOutcome {
	if s.ctx.Err() != nil {
		return s.skipped(ErrServiceStopped)
	}

	if !s.inflight.TryAcquire(1) {
		s.logger.Debug("refresh skipped", "reason", "cycle in flight")
		return s.skipped(ErrRefreshInFlight)
	}
	defer s.inflight.Release(1)

	return s.refresh()
}

func (s *MarketDataService) skipped(err error) market.RefreshOutcome {
	return market.RefreshOutcome{
		Assets:    s.Snapshot().Assets,
		Err:       err,
		Completed: s.now(),
	}
}

func (s *MarketDataService) refresh() market.RefreshOutcome {
	prev := s.Snapshot()

	ids := s.registry.ProviderIDs()
	if len(ids) == 0 {
		s.logger.Warn("no provider identifiers in registry, nothing to refresh")
		return market.RefreshOutcome{Assets: prev.Assets, Completed: s.now()}
	}

	if latched := s.latched.Load(); latched != nil {
		return s.fail(prev, latched)
	}

	// The fetch outlives Stop so a late response can be dropped explicitly.
	raw, err := s.fetcher.FetchQuotes(context.WithoutCancel(s.ctx), ids)
	if s.ctx.Err() != nil {
		s.logger.Debug("discarding refresh result", "reason", "service stopped")
		return s.skipped(ErrServiceStopped)
	}
	if err != nil {
		if kind := market.KindOf(err); !kind.Retryable() {
			s.latch(kind, err)
		}
		return s.fail(prev, err)
	}

	quotes, dropped := cmcquotes.NormalizeReport(raw, s.currency)
	if len(dropped) > 0 {
		s.logger.Debug("dropped quote entries", "kind", market.KindEntryInvalid, "ids", dropped)
	}

	assets := mergeQuotes(prev.Assets, quotes, cmcquotes.ExtractMetadata(raw))
	sortByMarketCap(assets, s.registry.Index)

	now := s.now()
	next := &Snapshot{
		Assets:        assets,
		State:         StateLive,
		UpdatedAt:     now,
		LastSuccessAt: now,
	}
	if !s.commit(next) {
		return s.skipped(ErrServiceStopped)
	}

	s.logger.Info("refreshed market data", "quoted", len(quotes), "requested", len(ids))
	return market.RefreshOutcome{Assets: assets, Completed: now}
}

// latch stops later cycles from calling the provider until restart.
func (s *MarketDataService) latch(kind market.ErrorKind, err error) {
	var me *market.Error
	if !errors.As(err, &me) {
		me = market.NewError(kind, err)
	}
	s.latched.Store(me)
	s.logger.Warn("refresh disabled until restart", "kind", kind, "error", err)
}

// fail keeps the previous collection as is and marks the snapshot degraded.
func (s *MarketDataService) fail(prev *Snapshot, err error) market.RefreshOutcome {
	kind := market.KindOf(err)
	now := s.now()
	next := &Snapshot{
		Assets:        prev.Assets,
		State:         StateDegraded,
		ErrorKind:     kind,
		LastError:     err.Error(),
		UpdatedAt:     now,
		LastSuccessAt: prev.LastSuccessAt,
	}
	if !s.commit(next) {
		return s.skipped(ErrServiceStopped)
	}

	return market.RefreshOutcome{
		Assets:    prev.Assets,
		Kind:      kind,
		Err:       errors.Wrap(err, "refresh failed"),
		Completed: now,
	}
}

func (s *MarketDataService) commit(next *Snapshot) bool {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return false
	}
	s.snapshot.Store(next)
	s.mu.Unlock()

	s.publish(next)
	return true
}

func (s *MarketDataService) publish(snap *Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		s.logger.Error("failed to marshal snapshot", "error", err)
		return
	}

	if err := s.publisher.Publish(data); err != nil {
		s.logger.Warn("failed to publish snapshot", "error", err)
		return
	}

	s.logger.Debug("published snapshot", "state", snap.State, "assets", len(snap.Assets))
}
