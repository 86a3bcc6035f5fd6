// Package combat provides typed logging constructors for the engine's
// firing and damage events: one EventType const, one payload struct, and
// one constructor per event rather than a flat category switch.
package combat

import (
	"context"

	"towerdefense/server/logging"
)

const (
	// EventDefenseFired is emitted when a defense launches a projectile.
	EventDefenseFired logging.EventType = "combat.defense_fired"
	// EventProjectileHit is emitted when a projectile lands damage on an enemy.
	EventProjectileHit logging.EventType = "combat.projectile_hit"
)

// DefenseFiredPayload describes the firing defense and its target.
type DefenseFiredPayload struct {
	DefenseKind  string `json:"defenseKind"`
	ProjectileID string `json:"projectileId"`
}

// ProjectileHitPayload describes the damage a projectile dealt on impact.
type ProjectileHitPayload struct {
	ProjectileID string  `json:"projectileId"`
	Damage       float64 `json:"damage"`
}

// DefenseFired publishes a defense-fired event.
func DefenseFired(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload DefenseFiredPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventDefenseFired,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
		Extra:    extra,
	})
}

// ProjectileHit publishes a projectile-hit event for the struck enemy.
func ProjectileHit(ctx context.Context, pub logging.Publisher, tick uint64, actor, target logging.EntityRef, payload ProjectileHitPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventProjectileHit,
		Tick:     tick,
		Actor:    actor,
		Targets:  []logging.EntityRef{target},
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Payload:  payload,
		Extra:    extra,
	})
}
