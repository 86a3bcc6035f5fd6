// Package bosses provides typed logging constructors for boss phase and
// shield events.
package bosses

import (
	"context"

	"towerdefense/server/logging"
)

const (
	// EventPhaseChange is emitted when a boss transitions to a new phase.
	EventPhaseChange logging.EventType = "bosses.phase_change"
	// EventShieldBroken is emitted when a boss's shield is depleted.
	EventShieldBroken logging.EventType = "bosses.shield_broken"
)

// PhaseChangePayload describes the phase transition.
type PhaseChangePayload struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// PhaseChange publishes a boss-phase-change event.
func PhaseChange(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload PhaseChangePayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type: EventPhaseChange, Tick: tick, Actor: actor,
		Severity: logging.SeverityInfo, Category: logging.CategoryBosses, Payload: payload, Extra: extra,
	})
}

// ShieldBroken publishes a shield-broken event.
func ShieldBroken(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type: EventShieldBroken, Tick: tick, Actor: actor,
		Severity: logging.SeverityInfo, Category: logging.CategoryBosses, Extra: extra,
	})
}
