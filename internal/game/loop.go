package game

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultTimestep is the loop's fixed simulation step.
const DefaultTimestep = 40 * time.Millisecond

// Ticker is advanced by the loop once per step.
type Ticker interface {
	Tick(dt time.Duration)
}

// TickerFunc adapts a function to Ticker.
type TickerFunc func(dt time.Duration)

func (f TickerFunc) Tick(dt time.Duration) { f(dt) }

// Loop drives registered tickers at a fixed timestep. Tickers run in
// registration order on the loop goroutine, and every step passes the same
// dt regardless of wall-clock jitter.
type Loop struct {
	step time.Duration

	mu      sync.Mutex
	tickers []Ticker

	ticks atomic.Uint64
}

// NewLoop creates a loop. A non-positive step uses DefaultTimestep.
func NewLoop(step time.Duration) *Loop {
	if step <= 0 {
		step = DefaultTimestep
	}
	return &Loop{step: step}
}

// Add registers t.
func (l *Loop) Add(t Ticker) {
	l.mu.Lock()
	l.tickers = append(l.tickers, t)
	l.mu.Unlock()
}

// Step returns the fixed timestep.
func (l *Loop) Step() time.Duration { return l.step }

// Ticks returns the number of steps run so far.
func (l *Loop) Ticks() uint64 { return l.ticks.Load() }

// Elapsed returns simulated time.
func (l *Loop) Elapsed() time.Duration {
	return time.Duration(l.ticks.Load()) * l.step
}

// Run steps the loop in real time until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	t := time.NewTicker(l.step)
	defer t.Stop()

	slog.Info("game loop started", "step", l.step)

	for {
		select {
		case <-ctx.Done():
			slog.Info("game loop stopping", "ticks", l.Ticks(), "elapsed", l.Elapsed())
			return ctx.Err()
		case <-t.C:
			l.tick()
		}
	}
}

// Advance runs n steps immediately, without waiting for wall-clock time.
func (l *Loop) Advance(n int) {
	for range n {
		l.tick()
	}
}

func (l *Loop) tick() {
	l.mu.Lock()
	tickers := l.tickers
	l.mu.Unlock()

	for _, t := range tickers {
		t.Tick(l.step)
	}
	l.ticks.Add(1)
}
