// Package waves provides typed logging constructors for wave
// start/complete events.
package waves

import (
	"context"

	"towerdefense/server/logging"
)

const (
	// EventWaveStarted is emitted when a wave begins spawning.
	EventWaveStarted logging.EventType = "waves.wave_started"
	// EventWaveCompleted is emitted when every group in a wave has been
	// exhausted and no enemies remain alive.
	EventWaveCompleted logging.EventType = "waves.wave_completed"
)

// WaveStartedPayload identifies the wave that began.
type WaveStartedPayload struct {
	Wave int `json:"wave"`
}

// WaveCompletedPayload identifies the wave that finished and its bonus.
type WaveCompletedPayload struct {
	Wave      int   `json:"wave"`
	Dharma    int64 `json:"dharma"`
	Bandwidth int64 `json:"bandwidth"`
	Anonymity int64 `json:"anonymity"`
}

// WaveStarted publishes a wave-started event.
func WaveStarted(ctx context.Context, pub logging.Publisher, tick uint64, payload WaveStartedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventWaveStarted,
		Tick:     tick,
		Wave:     payload.Wave,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryWaves,
		Payload:  payload,
		Extra:    extra,
	})
}

// WaveCompleted publishes a wave-completed event.
func WaveCompleted(ctx context.Context, pub logging.Publisher, tick uint64, payload WaveCompletedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventWaveCompleted,
		Tick:     tick,
		Wave:     payload.Wave,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryWaves,
		Payload:  payload,
		Extra:    extra,
	})
}
