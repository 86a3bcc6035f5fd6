// Package app is the composition root for the server process: it owns
// the Hub (engine + tick driver + WebSocket fan-out).
package app

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"towerdefense/server/internal/config"
	"towerdefense/server/internal/pathgen"
	"towerdefense/server/internal/sim"
	"towerdefense/server/internal/telemetry"
	simlogging "towerdefense/server/logging"
)

// Hub drives one running match and fans its snapshots out to subscribed
// WebSocket clients.
type Hub struct {
	mu      sync.Mutex
	engine  *sim.Engine
	cfg     config.Config
	logger  telemetry.Logger
	metrics telemetry.Metrics
	pub     simlogging.Publisher

	subMu sync.Mutex
	subs  map[*subscriber]struct{}
}

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub constructs a Hub with a freshly seeded engine.
func NewHub(cfg config.Config, logger telemetry.Logger, metrics telemetry.Metrics, pub simlogging.Publisher) *Hub {
	return &Hub{
		engine: sim.NewGame(cfg.Seed, cfg.PathShape, logger, metrics, pub,
			sim.WithMaxWaves(cfg.MaxWaves), sim.WithStartingLives(cfg.StartingLives)),
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		pub:     pub,
		subs:    make(map[*subscriber]struct{}),
	}
}

// Engine exposes the live engine for command handlers. Callers must use
// WithEngine (or one of the With* helpers) rather than reading this field
// directly so tick execution and command application never interleave.
func (h *Hub) WithEngine(fn func(e *sim.Engine)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn(h.engine)
}

// Reset discards the running match and starts a fresh one from seed/shape.
func (h *Hub) Reset(seed uint64, shape pathgen.Shape, logger telemetry.Logger, metrics telemetry.Metrics, pub simlogging.Publisher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.engine = sim.NewGame(seed, shape, logger, metrics, pub,
		sim.WithMaxWaves(h.cfg.MaxWaves), sim.WithStartingLives(h.cfg.StartingLives))
}

// NewGame is Reset using the Hub's own logger/metrics/publisher, for
// callers (the HTTP command surface's new-game route) that only have a
// seed and shape in hand.
func (h *Hub) NewGame(seed uint64, shape pathgen.Shape) {
	h.Reset(seed, shape, h.logger, h.metrics, h.pub)
}

// Snapshot returns the current GameState under the engine lock.
func (h *Hub) Snapshot() sim.GameState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.engine.Snapshot()
}

// EnqueueCommand stages a client command for the engine's next tick. The
// buffer itself is safe for concurrent producers; the hub lock is held only
// long enough to resolve the current engine, so socket readers never
// contend with a tick in progress.
func (h *Hub) EnqueueCommand(cmd sim.Command) bool {
	h.mu.Lock()
	buf := h.engine.Commands
	h.mu.Unlock()
	return buf.Push(cmd)
}

// RunSimulation drives the fixed-rate tick loop until stop is closed,
// broadcasting a snapshot to subscribers after every tick. A whole-snapshot
// push is enough here; there is no per-player fog of war to diff against.
func (h *Hub) RunSimulation(stop <-chan struct{}) {
	rate := time.Second / time.Duration(h.cfg.TickRateHz)
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	dtMS := 1000.0 / float64(h.cfg.TickRateHz)
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			h.mu.Lock()
			h.engine.Tick(dtMS)
			snap := h.engine.Snapshot()
			h.mu.Unlock()
			h.broadcast(snap)
		}
	}
}

func (h *Hub) broadcast(snap sim.GameState) {
	data, err := json.Marshal(snap)
	if err != nil {
		return
	}
	h.subMu.Lock()
	defer h.subMu.Unlock()
	for sub := range h.subs {
		select {
		case sub.send <- data:
		default:
			// slow consumer: drop the frame rather than block the tick loop.
		}
	}
}

// Subscribe registers conn to receive snapshot broadcasts and starts its
// write pump. The returned function unregisters it.
func (h *Hub) Subscribe(conn *websocket.Conn) func() {
	sub := &subscriber{conn: conn, send: make(chan []byte, 8)}
	h.subMu.Lock()
	h.subs[sub] = struct{}{}
	h.subMu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for data := range sub.send {
			conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}
	}()

	return func() {
		h.subMu.Lock()
		delete(h.subs, sub)
		h.subMu.Unlock()
		close(sub.send)
		<-done
	}
}
