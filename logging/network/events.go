// Package network provides typed logging constructors for command-surface
// and match-lifecycle events.
package network

import (
	"context"

	"towerdefense/server/logging"
)

const (
	// EventCommandRejected is emitted when a command fails its preconditions.
	EventCommandRejected logging.EventType = "network.command_rejected"
	// EventGameOver is emitted when lives reach zero.
	EventGameOver logging.EventType = "network.game_over"
	// EventGameCompleted is emitted once the final wave's housekeeping finishes.
	EventGameCompleted logging.EventType = "network.game_completed"
	// EventVictory is emitted when the match's last wave is cleared.
	EventVictory logging.EventType = "network.victory"
)

// CommandRejectedPayload carries the typed rejection reason.
type CommandRejectedPayload struct {
	Command string `json:"command"`
	Reason  string `json:"reason"`
}

// CommandRejected publishes a command-rejected event.
func CommandRejected(ctx context.Context, pub logging.Publisher, tick uint64, payload CommandRejectedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type: EventCommandRejected, Tick: tick,
		Severity: logging.SeverityWarn, Category: logging.CategoryNetwork, Payload: payload, Extra: extra,
	})
}

// GameOver publishes a game-over event.
func GameOver(ctx context.Context, pub logging.Publisher, tick uint64, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type: EventGameOver, Tick: tick,
		Severity: logging.SeverityWarn, Category: logging.CategoryNetwork, Extra: extra,
	})
}

// GameCompleted publishes a game-completed event.
func GameCompleted(ctx context.Context, pub logging.Publisher, tick uint64, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type: EventGameCompleted, Tick: tick,
		Severity: logging.SeverityInfo, Category: logging.CategoryNetwork, Extra: extra,
	})
}

// Victory publishes a victory event.
func Victory(ctx context.Context, pub logging.Publisher, tick uint64, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type: EventVictory, Tick: tick,
		Severity: logging.SeverityInfo, Category: logging.CategoryNetwork, Extra: extra,
	})
}
