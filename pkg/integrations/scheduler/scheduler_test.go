package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestScheduler_Start(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	s, err := New(
		WithContext(ctx),
		WithLogger(discardLogger),
		WithInterval(50*time.Millisecond),
		WithHandler(func() error { return nil }),
	)
	assert.NoError(t, err)

	err = s.Start()
	assert.NoError(t, err)

	err = s.Start()
	assert.ErrorIs(t, err, ErrAlreadyStarted)
}

func TestScheduler_TicksMultipleTimes(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	var count atomic.Int32
	s, err := New(
		WithContext(ctx),
		WithLogger(discardLogger),
		WithInterval(10*time.Millisecond),
		WithHandler(func() error {
			count.Add(1)
			return nil
		}),
	)
	assert.NoError(t, err)

	err = s.Start()
	assert.NoError(t, err)

	assert.Eventually(t, func() bool { return count.Load() >= 3 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_RunsNeverOverlap(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	var running, maxRunning, runs atomic.Int32
	s, err := New(
		WithContext(ctx),
		WithLogger(discardLogger),
		WithInterval(time.Millisecond),
		WithHandler(func() error {
			n := running.Add(1)
			if n > maxRunning.Load() {
				maxRunning.Store(n)
			}
			time.Sleep(15 * time.Millisecond)
			running.Add(-1)
			runs.Add(1)
			return nil
		}),
	)
	require.NoError(t, err)
	require.NoError(t, s.Start())

	assert.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(1), maxRunning.Load())
}

func TestScheduler_ImmediateWaitsFullIntervalAfterFirstRun(t *testing.T) {
	const interval = 100 * time.Millisecond

	var mu sync.Mutex
	var starts, ends []time.Time
	s, err := New(
		WithContext(t.Context()),
		WithLogger(discardLogger),
		WithInterval(interval),
		WithImmediate(),
		WithHandler(func() error {
			mu.Lock()
			starts = append(starts, time.Now())
			mu.Unlock()
			time.Sleep(60 * time.Millisecond)
			mu.Lock()
			ends = append(ends, time.Now())
			mu.Unlock()
			return nil
		}),
	)
	require.NoError(t, err)
	begin := time.Now()
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(starts) >= 2
	}, 2*time.Second, 5*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Less(t, starts[0].Sub(begin), interval, "first run should not wait for the interval")
	assert.GreaterOrEqual(t, starts[1].Sub(ends[0]), interval)
}

func TestScheduler_ResetPostponesNextRun(t *testing.T) {
	const interval = 150 * time.Millisecond

	var runs atomic.Int32
	s, err := New(
		WithContext(t.Context()),
		WithLogger(discardLogger),
		WithInterval(interval),
		WithHandler(func() error {
			runs.Add(1)
			return nil
		}),
	)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	defer s.Stop()

	time.Sleep(100 * time.Millisecond)
	s.Reset()

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, runs.Load(), "reset should restart the interval")

	assert.Eventually(t, func() bool { return runs.Load() == 1 }, time.Second, 5*time.Millisecond)
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())

	var count atomic.Int32
	s, err := New(
		WithContext(ctx),
		WithLogger(discardLogger),
		WithInterval(10*time.Millisecond),
		WithHandler(func() error {
			count.Add(1)
			return nil
		}),
	)
	assert.NoError(t, err)

	err = s.Start()
	assert.NoError(t, err)

	time.Sleep(25 * time.Millisecond)
	cancel()

	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("run loop did not exit after cancel")
	}
	countAtCancel := count.Load()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, countAtCancel, count.Load(), "should not tick after cancel")
}

func TestScheduler_Stop(t *testing.T) {
	var count atomic.Int32
	s, err := New(
		WithContext(t.Context()),
		WithLogger(discardLogger),
		WithInterval(10*time.Millisecond),
		WithHandler(func() error {
			count.Add(1)
			return nil
		}),
	)
	require.NoError(t, err)
	assert.Nil(t, s.Done())

	s.Stop()
	require.NoError(t, s.Start())
	s.Stop()

	select {
	case <-s.Done():
	case <-time.After(time.Second):
		t.Fatal("run loop did not exit after Stop")
	}
	stoppedAt := count.Load()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stoppedAt, count.Load())
}

func TestScheduler_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{"no context", []Option{WithLogger(discardLogger), WithInterval(time.Second), WithHandler(func() error { return nil })}},
		{"no interval", []Option{WithLogger(discardLogger), WithContext(context.Background()), WithHandler(func() error { return nil })}},
		{"no handler", []Option{WithLogger(discardLogger), WithContext(context.Background()), WithInterval(time.Second)}},
		{"no logger", []Option{WithContext(context.Background()), WithInterval(time.Second), WithHandler(func() error { return nil })}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts...)
			assert.ErrorIs(t, err, ErrInvalidSchedulerConfig)
		})
	}
}
