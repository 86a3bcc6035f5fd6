// Package config loads the process-level Config consumed by cmd/server:
// a struct constructed with defaults and selectively overridden from the
// environment once at process start.
package config

import (
	"log"
	"os"
	"strconv"

	"towerdefense/server/internal/pathgen"
	"towerdefense/server/internal/world"
)

// Config bundles every value cmd/server needs before it can construct an
// Engine and start serving.
type Config struct {
	// TickRateHz is the number of simulation ticks per wall-clock second
	// the driver loop aims to sustain.
	TickRateHz int

	// MaxWaves overrides world.MaxWaves for this process when positive.
	MaxWaves int

	// StartingLives overrides world.InitialLives for this process when
	// positive.
	StartingLives int

	// SaveDir is the directory save documents are read from and written
	// to by the /save and /load command surface.
	SaveDir string

	// Addr is the HTTP listen address for the command/query/WS surface.
	Addr string

	// DebugAddr is the localhost-only listen address for /metrics and
	// pprof. It must stay bound to localhost.
	DebugAddr string

	// Seed seeds the new game created at process start.
	Seed uint64

	// PathShape selects the path generator shape for the new game.
	PathShape pathgen.Shape
}

// DefaultConfig returns the production-safe defaults.
func DefaultConfig() Config {
	return Config{
		TickRateHz:    20,
		MaxWaves:      world.MaxWaves,
		StartingLives: world.InitialLives,
		SaveDir:       "./saves",
		Addr:          ":8080",
		DebugAddr:     "127.0.0.1:6060",
		Seed:          1,
		PathShape:     pathgen.ShapeDefault,
	}
}

// LoadFromEnv overrides cfg's fields from environment variables, logging
// and ignoring any value that fails to parse.
func LoadFromEnv(cfg Config, logger *log.Logger) Config {
	if raw := os.Getenv("TICK_RATE_HZ"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			cfg.TickRateHz = v
		} else {
			logger.Printf("invalid TICK_RATE_HZ=%q: %v", raw, err)
		}
	}
	if raw := os.Getenv("MAX_WAVES"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			cfg.MaxWaves = v
		} else {
			logger.Printf("invalid MAX_WAVES=%q: %v", raw, err)
		}
	}
	if raw := os.Getenv("STARTING_LIVES"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			cfg.StartingLives = v
		} else {
			logger.Printf("invalid STARTING_LIVES=%q: %v", raw, err)
		}
	}
	if raw := os.Getenv("SAVE_DIR"); raw != "" {
		cfg.SaveDir = raw
	}
	return cfg
}
