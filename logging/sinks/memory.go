package sinks

import (
	"context"
	"sync"

	"towerdefense/server/logging"
)

// Memory collects routed events for test assertions.
type Memory struct {
	mu     sync.Mutex
	events []logging.Event
}

// NewMemory constructs an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{}
}

// Write satisfies logging.Sink.
func (m *Memory) Write(event logging.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

// Close satisfies logging.Sink.
func (m *Memory) Close(context.Context) error { return nil }

// Events returns a copy of everything collected so far.
func (m *Memory) Events() []logging.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]logging.Event, len(m.events))
	copy(out, m.events)
	return out
}

// OfType filters the collected events down to one EventType.
func (m *Memory) OfType(t logging.EventType) []logging.Event {
	var out []logging.Event
	for _, ev := range m.Events() {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}

// Reset discards everything collected so far.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}
