package session

import (
	"context"
	"sync"
	"time"

	"github.com/sessionmesh/sessionmesh/logging"
)

// Cleaner is the slice of core.Store the reaper needs.
type Cleaner interface {
	CleanupInactiveSessions(timeout time.Duration) int
}

// ReaperOptions configures a Reaper.
type ReaperOptions struct {
	// Interval between sweeps. Defaults to 5 minutes.
	Interval time.Duration
	// Timeout is the inactivity threshold for eviction. Defaults to 1 hour.
	Timeout time.Duration
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// Reaper runs a fixed-interval sweep evicting empty, stale sessions from a
// store. Its only side effect is wholesale deletion of eligible session
// entries; there is no partial reaping.
type Reaper struct {
	cleaner  Cleaner
	interval time.Duration
	timeout  time.Duration
	logger   logging.Logger

	mu      sync.Mutex
	stop    chan struct{}
	done    chan struct{}
	running bool
}

// NewReaper constructs a stopped reaper around the given store.
func NewReaper(cleaner Cleaner, optFns ...func(o *ReaperOptions)) *Reaper {
	opts := ReaperOptions{
		Interval: 5 * time.Minute,
		Timeout:  time.Hour,
		Logger:   logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Reaper{
		cleaner:  cleaner,
		interval: opts.Interval,
		timeout:  opts.Timeout,
		logger:   opts.Logger,
	}
}

// Start launches the sweep loop. It returns immediately; the loop runs until
// Stop is called or ctx is cancelled. Starting a running reaper is a no-op.
func (r *Reaper) Start(ctx context.Context) {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	stop, done := r.stop, r.done
	r.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case <-ticker.C:
				if n := r.cleaner.CleanupInactiveSessions(r.timeout); n > 0 {
					r.logger.Info("reaper sweep", "evicted", n)
				}
			}
		}
	}()
}

// Stop halts the sweep loop and waits for it to exit. Stopping a stopped
// reaper is a no-op.
func (r *Reaper) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	close(r.stop)
	done := r.done
	r.mu.Unlock()
	<-done
}
