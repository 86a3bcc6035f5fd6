package httpapi

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig configures the per-remote-address token bucket guarding
// the command surface.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
	CleanupInterval   time.Duration
}

// DefaultRateLimitConfig is a production-safe default: the command
// surface (place/upgrade/sell/special) is low-traffic, so the allowance
// is tight.
var DefaultRateLimitConfig = RateLimitConfig{
	RequestsPerSecond: 5,
	Burst:             10,
	CleanupInterval:   5 * time.Minute,
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter rate-limits requests per remote address using one
// token-bucket limiter per address.
type IPRateLimiter struct {
	limiters sync.Map // map[string]*limiterEntry
	cfg      RateLimitConfig
	stopOnce sync.Once
	stopCh   chan struct{}

	allowed  uint64
	rejected uint64
}

// NewIPRateLimiter constructs a limiter and starts its background cleanup
// loop, which must be stopped with Stop when the server shuts down.
func NewIPRateLimiter(cfg RateLimitConfig) *IPRateLimiter {
	rl := &IPRateLimiter{cfg: cfg, stopCh: make(chan struct{})}
	go rl.cleanupLoop()
	return rl
}

// Stop ends the cleanup loop.
func (rl *IPRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

func (rl *IPRateLimiter) getLimiter(addr string) *rate.Limiter {
	now := time.Now()
	if v, ok := rl.limiters.Load(addr); ok {
		e := v.(*limiterEntry)
		e.lastSeen = now
		return e.limiter
	}
	entry := &limiterEntry{limiter: rate.NewLimiter(rate.Limit(rl.cfg.RequestsPerSecond), rl.cfg.Burst), lastSeen: now}
	actual, _ := rl.limiters.LoadOrStore(addr, entry)
	return actual.(*limiterEntry).limiter
}

func (rl *IPRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cfg.CleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-2 * rl.cfg.CleanupInterval)
			rl.limiters.Range(func(key, value any) bool {
				if value.(*limiterEntry).lastSeen.Before(cutoff) {
					rl.limiters.Delete(key)
				}
				return true
			})
		}
	}
}

// Allow reports whether a request from addr may proceed.
func (rl *IPRateLimiter) Allow(addr string) bool {
	if rl.getLimiter(addr).Allow() {
		atomic.AddUint64(&rl.allowed, 1)
		return true
	}
	atomic.AddUint64(&rl.rejected, 1)
	return false
}

// Middleware rejects requests exceeding the per-address budget with 429
// before they reach the command handlers.
func (rl *IPRateLimiter) Middleware(metrics interface{ IncCommandRejected(string) }) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			addr := clientAddr(r)
			if !rl.Allow(addr) {
				if metrics != nil {
					metrics.IncCommandRejected("RATE_LIMITED")
				}
				w.Header().Set("Retry-After", "1")
				http.Error(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientAddr extracts the remote address, preferring X-Forwarded-For for
// proxied deployments. The header is spoofable when the server is not
// behind a trusted proxy.
func clientAddr(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.IndexByte(xff, ','); idx >= 0 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
