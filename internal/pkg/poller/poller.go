package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Poller runs a single refresh function on a fixed interval until stopped.
// A failed run is logged and retried on the next tick; the function is
// expected to leave its caller's last-known state untouched on failure.
type Poller struct {
	name     string
	interval time.Duration
	fn       func(ctx context.Context) error

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

// New creates a poller for the named refresh function.
func New(name string, interval time.Duration, fn func(ctx context.Context) error) *Poller {
	return &Poller{
		name:     name,
		interval: interval,
		fn:       fn,
	}
}

// Start begins the poll loop. The function runs once immediately, then on
// every tick. Calling Start on a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return
	}
	p.started = true

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go p.run(runCtx)

	slog.Info("Poller started", "name", p.name, "interval", p.interval)
}

// Stop cancels the poll loop and waits for the in-progress run, if any,
// to return. No ticks fire after Stop returns.
func (p *Poller) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.started = false
	cancel := p.cancel
	p.mu.Unlock()

	cancel()
	p.wg.Wait()
	slog.Info("Poller stopped", "name", p.name)
}

func (p *Poller) run(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Run immediately on start
	p.execute(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.execute(ctx)
		}
	}
}

func (p *Poller) execute(ctx context.Context) {
	start := time.Now()

	if err := p.fn(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Error("Poll tick failed", "name", p.name, "error", err, "duration", time.Since(start))
	} else {
		slog.Debug("Poll tick completed", "name", p.name, "duration", time.Since(start))
	}
}
