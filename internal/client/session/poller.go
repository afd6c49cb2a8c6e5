package session

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/planningpoker/internal/logging"
	"github.com/jonboulle/clockwork"
)

// Poller calls fn every interval until stopped. A failing tick is logged
// and the next tick runs as scheduled.
type Poller struct {
	name     string
	clock    clockwork.Clock
	interval time.Duration
	fn       func(ctx context.Context) error
	logger   logging.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPoller(name string, clock clockwork.Clock, interval time.Duration, logger logging.Logger, fn func(ctx context.Context) error) *Poller {
	return &Poller{name: name, clock: clock, interval: interval, fn: fn, logger: logger}
}

// Start launches the loop unless it is already running.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	p.cancel = cancel
	p.done = done

	ticker := p.clock.NewTicker(p.interval)
	go p.loop(ctx, ticker, done)
}

func (p *Poller) loop(ctx context.Context, ticker clockwork.Ticker, done chan struct{}) {
	defer close(done)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if ctx.Err() != nil {
				return
			}
			if err := p.fn(ctx); err != nil && ctx.Err() == nil {
				p.logger.Warn(ctx, "poll tick failed", "poller", p.name, "error", err)
			}
		}
	}
}

// Stop cancels the loop and returns without waiting; a tick in flight sees
// a cancelled context. No tick starts after Stop returns.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel == nil {
		return
	}
	p.cancel()
	p.cancel = nil
}

// Running reports whether the loop is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

// Wait blocks until the most recently started loop has exited.
func (p *Poller) Wait() {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done != nil {
		<-done
	}
}
