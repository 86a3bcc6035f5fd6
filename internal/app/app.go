package app

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"towerdefense/server/internal/config"
	"towerdefense/server/internal/httpapi"
	"towerdefense/server/internal/telemetry"
	"towerdefense/server/logging"
	loggingSinks "towerdefense/server/logging/sinks"
)

// RunnerConfig wraps the process-level Config with the standard-library
// logger cmd/server constructs.
type RunnerConfig struct {
	Config config.Config
	Logger telemetry.Logger
}

// Run wires the logging router, metrics registry, hub, and HTTP servers
// together and blocks until ctx is cancelled or a server fails. The
// command surface and the debug surface listen on separate servers so
// /metrics and pprof never leave localhost.
func Run(ctx context.Context, rc RunnerConfig) error {
	logger := rc.Logger
	if logger == nil {
		logger = telemetry.NopLogger{}
	}

	logConfig := logging.DefaultConfig()
	sinks := map[string]logging.Sink{
		"console": loggingSinks.NewConsoleSink(os.Stdout, logConfig.Console),
	}
	router, err := logging.NewRouter(logConfig, logging.SystemClock{}, stdlog.Default(), sinks)
	if err != nil {
		return fmt.Errorf("failed to construct logging router: %w", err)
	}
	defer func() {
		if cerr := router.Close(ctx); cerr != nil {
			logger.Printf("failed to close logging router: %v", cerr)
		}
	}()

	registry := prometheus.NewRegistry()
	metrics := telemetry.NewPrometheusMetrics(registry)

	hub := NewHub(rc.Config, logger, metrics, router)
	stop := make(chan struct{})
	go hub.RunSimulation(stop)
	defer close(stop)

	rateLimiter := httpapi.NewIPRateLimiter(httpapi.DefaultRateLimitConfig)
	defer rateLimiter.Stop()

	mux := httpapi.NewRouter(httpapi.RouterConfig{
		Hub:         hub,
		Metrics:     metrics,
		RateLimiter: rateLimiter,
		SaveDir:     rc.Config.SaveDir,
	})

	commandSrv := &http.Server{Addr: rc.Config.Addr, Handler: mux}
	debugSrv := &http.Server{Addr: rc.Config.DebugAddr, Handler: debugMux(registry)}

	errCh := make(chan error, 2)
	go func() {
		logger.Printf("command server listening on %s", commandSrv.Addr)
		if err := commandSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("command server: %w", err)
		}
	}()
	go func() {
		logger.Printf("debug server listening on %s", debugSrv.Addr)
		if err := debugSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("debug server: %w", err)
		}
	}()

	sigCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	select {
	case <-sigCtx.Done():
	case err := <-errCh:
		return err
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	commandSrv.Shutdown(shutdownCtx)
	debugSrv.Shutdown(shutdownCtx)
	return nil
}

// debugMux serves /metrics and pprof, bound to a localhost-only address
// by the caller.
func debugMux(registry *prometheus.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	return mux
}
