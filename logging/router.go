package logging

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
)

// Sink consumes events routed to it. Write is called from the router's
// single dispatch goroutine, so implementations only need to be safe
// against their own Close.
type Sink interface {
	Write(Event) error
	Close(context.Context) error
}

// Counters are the router's drop/error tallies, readable while it runs.
type Counters struct {
	published  atomic.Uint64
	dropped    atomic.Uint64
	sinkErrors atomic.Uint64
}

// Snapshot returns a copy of the current tallies.
func (c *Counters) Snapshot() (published, dropped, sinkErrors uint64) {
	return c.published.Load(), c.dropped.Load(), c.sinkErrors.Load()
}

type namedSink struct {
	name string
	sink Sink
}

// Router fans engine events out to the configured sinks through one
// buffered queue and a single dispatch goroutine. Publish never blocks the
// tick loop: when the queue is full the event is dropped and counted.
type Router struct {
	cfg      Config
	clock    Clock
	fallback *log.Logger
	queue    chan Event
	sinks    []namedSink
	done     chan struct{}
	counters Counters
	onceStop sync.Once
}

// NewRouter constructs a Router over the named sinks from available. A
// configured sink with no matching entry is logged and skipped; the match
// still runs, it just loses that output.
func NewRouter(cfg Config, clock Clock, fallback *log.Logger, available map[string]Sink) (*Router, error) {
	if cfg.BufferSize <= 0 {
		return nil, errors.New("logging: buffer size must be positive")
	}
	if fallback == nil {
		fallback = log.Default()
	}
	if clock == nil {
		clock = SystemClock{}
	}

	r := &Router{
		cfg:      cfg,
		clock:    clock,
		fallback: fallback,
		queue:    make(chan Event, cfg.BufferSize),
		done:     make(chan struct{}),
	}

	seen := make(map[string]struct{}, len(cfg.EnabledSinks))
	for _, name := range cfg.EnabledSinks {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		sink, ok := available[name]
		if !ok {
			fallback.Printf("logging: sink %q unavailable", name)
			continue
		}
		r.sinks = append(r.sinks, namedSink{name: name, sink: sink})
	}

	go r.dispatch()
	return r, nil
}

// dispatch is the single consumer: it forwards each queued event to every
// sink in configuration order and exits once the queue is closed and
// drained.
func (r *Router) dispatch() {
	defer close(r.done)
	for event := range r.queue {
		for _, s := range r.sinks {
			if err := s.sink.Write(event); err != nil {
				r.counters.sinkErrors.Add(1)
				r.fallback.Printf("logging: sink %s write failed: %v", s.name, err)
			}
		}
	}
}

// allows applies the severity and category filters.
func (r *Router) allows(event Event) bool {
	if event.Severity < r.cfg.MinSeverity {
		return false
	}
	if len(r.cfg.Categories) == 0 {
		return true
	}
	for _, cat := range r.cfg.Categories {
		if cat == event.Category {
			return true
		}
	}
	return false
}

// Publish implements Publisher. A cancelled context or a full queue drops
// the event; the simulation never waits on its own telemetry.
func (r *Router) Publish(ctx context.Context, event Event) {
	if ctx != nil && ctx.Err() != nil {
		return
	}
	if !r.allows(event) {
		return
	}
	if event.Time.IsZero() {
		event.Time = r.clock.Now()
	}
	select {
	case r.queue <- event:
		r.counters.published.Add(1)
	default:
		r.counters.dropped.Add(1)
		r.fallback.Printf("logging: dropping event %s (queue full)", event.Type)
	}
}

// Close flushes the queue, stops the dispatch goroutine, and closes every
// sink. ctx bounds how long the flush may take; on expiry the remaining
// queue is abandoned and the sinks are closed anyway.
func (r *Router) Close(ctx context.Context) error {
	var err error
	r.onceStop.Do(func() {
		close(r.queue)
		select {
		case <-r.done:
		case <-ctx.Done():
			err = ctx.Err()
		}
		for _, s := range r.sinks {
			if cerr := s.sink.Close(ctx); cerr != nil {
				r.counters.sinkErrors.Add(1)
				err = errors.Join(err, fmt.Errorf("sink %s: %w", s.name, cerr))
			}
		}
	})
	return err
}

// Counters exposes the router's tallies for diagnostics endpoints.
func (r *Router) Counters() *Counters {
	if r == nil {
		return nil
	}
	return &r.counters
}
