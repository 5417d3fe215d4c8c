package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrInvalidSchedulerConfig = errors.New("invalid scheduler config")
	ErrAlreadyStarted         = errors.New("scheduler already started")
)

// Scheduler runs handler repeatedly, waiting interval between the end of one
// run and the start of the next. Runs never overlap.
type Scheduler struct {
	interval time.Duration
	ctx      context.Context
	logger   *slog.Logger
	handler  func() error
	// immediate runs handler once on Start before the first interval.
	immediate bool
	reset     chan struct{}

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

type Option func(*Scheduler)

func WithInterval(d time.Duration) Option {
	return func(s *Scheduler) {
		s.interval = d
	}
}

func WithContext(ctx context.Context) Option {
	return func(s *Scheduler) {
		s.ctx = ctx
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = l
	}
}

// WithImmediate runs the handler as soon as the loop starts. The first
// interval is counted from the end of that run.
func WithImmediate() Option {
	return func(s *Scheduler) {
		s.immediate = true
	}
}

func WithHandler(h func() error) Option {
	return func(s *Scheduler) {
		s.handler = h
	}
}

func (s *Scheduler) IsValid() error {
	switch {
	case s.ctx == nil:
		return errors.Wrap(ErrInvalidSchedulerConfig, "ctx cannot be nil")
	case s.logger == nil:
		return errors.Wrap(ErrInvalidSchedulerConfig, "logger cannot be nil")
	case s.interval <= 0:
		return errors.Wrap(ErrInvalidSchedulerConfig, "interval must be positive")
	case s.handler == nil:
		return errors.Wrap(ErrInvalidSchedulerConfig, "handler cannot be nil")
	default:
		return nil
	}
}

func New(opts ...Option) (*Scheduler, error) {
	s := &Scheduler{reset: make(chan struct{}, 1)}

	for _, opt := range opts {
		opt(s)
	}

	return s, s.IsValid()
}

func (s *Scheduler) Start() error {
	if err := s.IsValid(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.done != nil {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	ctx, cancel := context.WithCancel(s.ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	go func() {
		defer close(done)

		if s.immediate {
			s.run()
			if ctx.Err() != nil {
				return
			}
		}

		timer := time.NewTimer(s.interval)
		defer timer.Stop()

		for {
			select {
			case <-timer.C:
				s.run()
				if ctx.Err() != nil {
					return
				}
				timer.Reset(s.interval)
			case <-s.reset:
				timer.Reset(s.interval)
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

func (s *Scheduler) run() {
	if err := s.handler(); err != nil {
		s.logger.Error("scheduler handler error", "interval", s.interval, "error", err)
	}
}

// Reset restarts the wait so the next run starts a full interval from now.
// Call it after running the handler's work outside the loop.
func (s *Scheduler) Reset() {
	select {
	case s.reset <- struct{}{}:
	default:
	}
}

// Stop cancels the pending timer. A handler that is already running is not
// interrupted.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
	}
}

// Done is closed once the run loop has exited. It is nil before Start.
func (s *Scheduler) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}
