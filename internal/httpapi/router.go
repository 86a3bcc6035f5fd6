// Package httpapi exposes the engine's command/query surface over HTTP:
// a chi router with recoverer, rate-limit, and CORS middleware, and a
// RouterConfig struct for dependency injection.
package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/gorilla/websocket"

	"towerdefense/server/internal/pathgen"
	"towerdefense/server/internal/save"
	"towerdefense/server/internal/sim"
	"towerdefense/server/internal/telemetry"
	"towerdefense/server/internal/world"
)

// Hub is the subset of *app.Hub the router depends on. Declared here
// (rather than importing internal/app) so this package stays free of an
// import cycle and testable against a fake.
type Hub interface {
	WithEngine(func(e *sim.Engine))
	Snapshot() sim.GameState
	Subscribe(conn *websocket.Conn) func()
	EnqueueCommand(cmd sim.Command) bool
	NewGame(seed uint64, shape pathgen.Shape)
}

// RouterConfig bundles everything NewRouter needs.
type RouterConfig struct {
	Hub         Hub
	Metrics     telemetry.Metrics
	RateLimiter *IPRateLimiter
	CORSOrigins []string
	SaveDir     string
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// NewRouter builds the chi.Mux. Constructing it has no side effects
// beyond starting the rate limiter's cleanup goroutine if cfg.RateLimiter
// is nil.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	limiter := cfg.RateLimiter
	if limiter == nil {
		limiter = NewIPRateLimiter(DefaultRateLimitConfig)
	}
	r.Use(limiter.Middleware(cfg.Metrics))

	origins := cfg.CORSOrigins
	if origins == nil {
		origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	h := &handlers{hub: cfg.Hub, saveDir: cfg.SaveDir}

	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/snapshot", h.getSnapshot)
	r.Get("/ws", h.serveWS)

	r.Post("/new-game", h.newGame)

	r.Route("/commands", func(r chi.Router) {
		r.Post("/place-defense", h.placeDefense)
		r.Post("/upgrade-defense", h.upgradeDefense)
		r.Post("/sell-defense", h.sellDefense)
		r.Post("/activate-special", h.activateSpecial)
		r.Post("/start-wave", h.startWave)
		r.Post("/force-next-wave", h.forceNextWave)
	})

	r.Route("/save", func(r chi.Router) {
		r.Post("/", h.saveGame)
		r.Post("/load", h.loadGame)
	})

	return r
}

type handlers struct {
	hub     Hub
	saveDir string
}

func (h *handlers) getSnapshot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.hub.Snapshot())
}

func (h *handlers) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	unsubscribe := h.hub.Subscribe(conn)
	defer unsubscribe()
	defer conn.Close()

	// Inbound messages are staged commands: decoded into the engine's
	// command envelope and pushed onto its buffer for the next tick.
	// Malformed or throttled messages are dropped; the socket itself stays
	// up until the client goes away.
	source := clientAddr(r)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var cmd sim.Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			continue
		}
		cmd.Source = source
		h.hub.EnqueueCommand(cmd)
	}
}

type newGameRequest struct {
	Seed  uint64
	Shape pathgen.Shape
}

// newGame discards the running match and starts a fresh one, wired through to
// the Hub's own engine constructor.
func (h *handlers) newGame(w http.ResponseWriter, r *http.Request) {
	var req newGameRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Shape == "" {
		req.Shape = pathgen.ShapeDefault
	}
	h.hub.NewGame(req.Seed, req.Shape)
	w.WriteHeader(http.StatusNoContent)
}

type placeDefenseRequest struct {
	GX, GY int
	Kind   world.DefenseKind
}

func (h *handlers) placeDefense(w http.ResponseWriter, r *http.Request) {
	var req placeDefenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.runCommand(w, func(e *sim.Engine) error {
		return e.PlaceDefense(req.GX, req.GY, req.Kind)
	})
}

type entityIDRequest struct {
	ID string
}

func (h *handlers) upgradeDefense(w http.ResponseWriter, r *http.Request) {
	var req entityIDRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.runCommand(w, func(e *sim.Engine) error { return e.UpgradeDefense(req.ID) })
}

func (h *handlers) sellDefense(w http.ResponseWriter, r *http.Request) {
	var req entityIDRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.runCommand(w, func(e *sim.Engine) error { return e.SellDefense(req.ID) })
}

func (h *handlers) activateSpecial(w http.ResponseWriter, r *http.Request) {
	var req entityIDRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	h.runCommand(w, func(e *sim.Engine) error { return e.ActivateSpecial(req.ID) })
}

func (h *handlers) startWave(w http.ResponseWriter, r *http.Request) {
	h.runCommand(w, func(e *sim.Engine) error { return e.StartWave() })
}

func (h *handlers) forceNextWave(w http.ResponseWriter, r *http.Request) {
	h.runCommand(w, func(e *sim.Engine) error {
		e.ForceNextWave()
		return nil
	})
}

// runCommand applies fn to the live engine under the hub's lock and
// reports the typed rejection reason (if any) as a 409 rather than a
// generic 4xx.
func (h *handlers) runCommand(w http.ResponseWriter, fn func(e *sim.Engine) error) {
	var cmdErr error
	h.hub.WithEngine(func(e *sim.Engine) { cmdErr = fn(e) })
	if cmdErr != nil {
		if rejected, ok := cmdErr.(*sim.RejectedError); ok {
			writeJSON(w, http.StatusConflict, map[string]string{
				"command": rejected.Command,
				"reason":  string(rejected.Reason),
			})
			return
		}
		http.Error(w, cmdErr.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// saveGame writes the current match to a timestamped file under saveDir
// and also returns the document body, so a
// caller can persist it client-side instead.
func (h *handlers) saveGame(w http.ResponseWriter, r *http.Request) {
	var gs sim.GameState
	h.hub.WithEngine(func(e *sim.Engine) { gs = e.Snapshot() })
	timestamp := uint64(time.Now().UnixMilli())
	doc := save.FromSnapshot(gs, timestamp)
	data, err := save.Marshal(doc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if h.saveDir != "" {
		if err := os.MkdirAll(h.saveDir, 0o755); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		name := fmt.Sprintf("save-%d.json", timestamp)
		if err := os.WriteFile(filepath.Join(h.saveDir, name), data, 0o644); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// loadGame restores a save document either from the request body or, if
// the body is empty, from the file named by the "file" query parameter
// under saveDir.
func (h *handlers) loadGame(w http.ResponseWriter, r *http.Request) {
	body, err := decodeRaw(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if len(body) == 0 {
		name := r.URL.Query().Get("file")
		if name == "" || h.saveDir == "" {
			http.Error(w, "missing save document body or file parameter", http.StatusBadRequest)
			return
		}
		body, err = os.ReadFile(filepath.Join(h.saveDir, filepath.Base(name)))
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
	}
	doc, err := save.Unmarshal(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	gs := save.ToSnapshot(doc)
	h.hub.WithEngine(func(e *sim.Engine) { e.LoadSnapshot(gs) })
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return false
	}
	return true
}

func decodeRaw(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(r.Body)
}
