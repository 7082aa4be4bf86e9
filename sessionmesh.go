// Package sessionmesh provides a high-level façade over the session store,
// event bus and reaper, enabling rapid embedding of the multi-user session,
// group-membership and context-fusion engine inside a larger service. Most
// applications interact with this package by:
//  1. Creating a SessionMesh via New() (optionally overriding the store,
//     logger or timing knobs)
//  2. Subscribing collaborators to lifecycle events
//  3. Driving join/leave/group/context operations from their chat adapters
//  4. Feeding RelationshipContext bundles to their inference engine
//
// All defaults are safe for local development and testing; production
// deployments typically supply a structured logger and tune the reaper via
// config.FromEnv().
package sessionmesh

import (
	"context"
	"time"

	"github.com/sessionmesh/sessionmesh/bus"
	"github.com/sessionmesh/sessionmesh/config"
	"github.com/sessionmesh/sessionmesh/core"
	"github.com/sessionmesh/sessionmesh/logging"
	"github.com/sessionmesh/sessionmesh/session"
)

// Options configures the SessionMesh instance.
type Options struct {
	// SessionTimeout is the inactivity threshold for session eviction.
	SessionTimeout time.Duration

	// ReapInterval is the period between reaper sweeps.
	ReapInterval time.Duration

	// Logger (defaults to NoOp logger if nil).
	Logger logging.Logger
}

// WithConfig applies an environment-derived configuration.
func WithConfig(cfg config.Config) func(o *Options) {
	return func(o *Options) {
		o.SessionTimeout = cfg.SessionTimeout
		o.ReapInterval = cfg.ReapInterval
		o.Logger = logging.NewSlogLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat, nil)
	}
}

// SessionMesh is the high-level façade aggregating the store, event bus and
// reaper.
type SessionMesh struct {
	core.Store

	bus    *bus.Bus
	reaper *session.Reaper
}

// New creates a new SessionMesh instance with optional overrides.
func New(optFns ...func(o *Options)) *SessionMesh {
	opts := Options{
		SessionTimeout: time.Hour,
		ReapInterval:   5 * time.Minute,
		Logger:         logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	b := bus.New(func(o *bus.Options) { o.Logger = opts.Logger })
	store := session.NewInMemoryStore(
		session.WithPublisher(b),
		session.WithLogger(opts.Logger),
	)
	reaper := session.NewReaper(store, func(o *session.ReaperOptions) {
		o.Interval = opts.ReapInterval
		o.Timeout = opts.SessionTimeout
		o.Logger = opts.Logger
	})

	return &SessionMesh{Store: store, bus: b, reaper: reaper}
}

// Subscribe registers a handler for one lifecycle event type.
func (m *SessionMesh) Subscribe(t core.EventType, h bus.Handler) { m.bus.Subscribe(t, h) }

// SubscribeAll registers a handler receiving every lifecycle event.
func (m *SessionMesh) SubscribeAll(h bus.Handler) { m.bus.SubscribeAll(h) }

// Start launches the session reaper. It returns immediately.
func (m *SessionMesh) Start(ctx context.Context) { m.reaper.Start(ctx) }

// Stop halts the session reaper and waits for it to exit.
func (m *SessionMesh) Stop() { m.reaper.Stop() }
