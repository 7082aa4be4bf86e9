// Package bus implements the typed publish/subscribe channel carrying
// sessionmesh lifecycle events to external collaborators (loggers,
// notification bridges). The core makes no assumption about who listens:
// dispatch is fire-and-forget and a subscriber panic never reaches the
// publisher.
package bus

import (
	"sync"

	"github.com/sessionmesh/sessionmesh/core"
	"github.com/sessionmesh/sessionmesh/logging"
)

// Handler consumes one event. Handlers run on dispatch goroutines and must
// not assume any ordering across publishes.
type Handler func(core.Event)

// Options configures a Bus.
type Options struct {
	// Logger receives subscriber panic reports. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Bus routes events to handlers registered per event type or for all types.
// It is safe for concurrent use. The zero value is not usable; call New.
type Bus struct {
	mu       sync.RWMutex
	handlers map[core.EventType][]Handler
	all      []Handler
	logger   logging.Logger
}

var _ core.Publisher = (*Bus)(nil)

// New constructs an empty Bus.
func New(optFns ...func(o *Options)) *Bus {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Bus{
		handlers: make(map[core.EventType][]Handler),
		logger:   opts.Logger,
	}
}

// Subscribe registers a handler for one event type.
func (b *Bus) Subscribe(t core.EventType, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[t] = append(b.handlers[t], h)
}

// SubscribeAll registers a handler receiving every event.
func (b *Bus) SubscribeAll(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = append(b.all, h)
}

// Publish dispatches the event to all matching handlers without blocking the
// caller. Handlers for one publish run sequentially in registration order on
// a single goroutine; panics are recovered and logged.
func (b *Bus) Publish(ev core.Event) {
	b.mu.RLock()
	matched := make([]Handler, 0, len(b.handlers[ev.Type])+len(b.all))
	matched = append(matched, b.handlers[ev.Type]...)
	matched = append(matched, b.all...)
	b.mu.RUnlock()

	if len(matched) == 0 {
		return
	}
	go func() {
		for _, h := range matched {
			b.dispatch(h, ev)
		}
	}()
}

// dispatch runs one handler, isolating panics.
func (b *Bus) dispatch(h Handler, ev core.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event subscriber panicked", "event_type", ev.Type, "panic", r)
		}
	}()
	h(ev)
}
