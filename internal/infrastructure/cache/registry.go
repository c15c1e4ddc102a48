package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"tigawane/internal/bootstrap/logging"
)

// Registry owns every cache namespace and runs the shared sweep loop.
// Construction does not start anything: the owner calls Start once and Stop
// on shutdown, so no timer outlives the process lifecycle that created it.
type Registry struct {
	interval time.Duration
	caches   []*Memory

	mu      sync.Mutex
	stop    chan struct{}
	done    chan struct{}
	started bool
}

func NewRegistry(sweepInterval time.Duration, caches ...*Memory) *Registry {
	if sweepInterval <= 0 {
		sweepInterval = 5 * time.Minute
	}
	return &Registry{
		interval: sweepInterval,
		caches:   caches,
	}
}

// Start launches the periodic sweeper. Calling Start twice is a no-op.
func (r *Registry) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return
	}
	r.started = true
	r.stop = make(chan struct{})
	r.done = make(chan struct{})

	logCtx := logging.WithAttrs(ctx, slog.String("component", "cache.registry"))
	logging.Info(logCtx, "cache sweeper started",
		slog.Duration("interval", r.interval),
		slog.Int("namespaces", len(r.caches)))

	go r.loop(logCtx, r.stop, r.done)
}

// Stop cancels the sweep timer and waits for the loop to exit.
func (r *Registry) Stop() {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return
	}
	r.started = false
	stop, done := r.stop, r.done
	r.mu.Unlock()

	close(stop)
	<-done
}

// Sweep removes expired entries across all namespaces.
func (r *Registry) Sweep() {
	for _, c := range r.caches {
		c.Sweep()
	}
}

// FlushAll empties every namespace.
func (r *Registry) FlushAll() {
	for _, c := range r.caches {
		c.Flush()
	}
}

func (r *Registry) loop(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			logging.Info(ctx, "cache sweeper stopped")
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}
