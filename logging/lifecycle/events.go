// Package lifecycle provides typed logging constructors for entity
// spawn/death/placement events.
package lifecycle

import (
	"context"

	"towerdefense/server/logging"
)

const (
	// EventEnemySpawned is emitted when an enemy enters the field.
	EventEnemySpawned logging.EventType = "lifecycle.enemy_spawned"
	// EventEnemyKilled is emitted when an enemy's health reaches zero.
	EventEnemyKilled logging.EventType = "lifecycle.enemy_killed"
	// EventEnemyReachedEnd is emitted when an enemy reaches the path's end.
	EventEnemyReachedEnd logging.EventType = "lifecycle.enemy_reached_end"
	// EventDefensePlaced is emitted when a defense is placed on the grid.
	EventDefensePlaced logging.EventType = "lifecycle.defense_placed"
	// EventDefenseUpgradedToMax is emitted when a defense reaches its final level.
	EventDefenseUpgradedToMax logging.EventType = "lifecycle.defense_upgraded_to_max"
)

// EnemySpawnedPayload names the kind of enemy that spawned.
type EnemySpawnedPayload struct {
	Kind string `json:"kind"`
}

// EnemyKilledPayload describes the reward credited for the kill.
type EnemyKilledPayload struct {
	Dharma    int64 `json:"dharma"`
	Bandwidth int64 `json:"bandwidth"`
	Anonymity int64 `json:"anonymity"`
}

// EnemyReachedEndPayload describes the lives lost.
type EnemyReachedEndPayload struct {
	LivesLost float64 `json:"livesLost"`
}

// DefensePlacedPayload names the kind of defense placed.
type DefensePlacedPayload struct {
	Kind string `json:"kind"`
}

// EnemySpawned publishes an enemy-spawned event.
func EnemySpawned(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload EnemySpawnedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type: EventEnemySpawned, Tick: tick, Actor: actor,
		Severity: logging.SeverityInfo, Category: logging.CategoryLifecycle, Payload: payload, Extra: extra,
	})
}

// EnemyKilled publishes an enemy-killed event.
func EnemyKilled(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload EnemyKilledPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type: EventEnemyKilled, Tick: tick, Actor: actor,
		Severity: logging.SeverityInfo, Category: logging.CategoryLifecycle, Payload: payload, Extra: extra,
	})
}

// EnemyReachedEnd publishes an enemy-reached-end event.
func EnemyReachedEnd(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload EnemyReachedEndPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type: EventEnemyReachedEnd, Tick: tick, Actor: actor,
		Severity: logging.SeverityWarn, Category: logging.CategoryLifecycle, Payload: payload, Extra: extra,
	})
}

// DefensePlaced publishes a defense-placed event.
func DefensePlaced(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload DefensePlacedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type: EventDefensePlaced, Tick: tick, Actor: actor,
		Severity: logging.SeverityInfo, Category: logging.CategoryLifecycle, Payload: payload, Extra: extra,
	})
}

// DefenseUpgradedToMax publishes a defense-maxed event.
func DefenseUpgradedToMax(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type: EventDefenseUpgradedToMax, Tick: tick, Actor: actor,
		Severity: logging.SeverityInfo, Category: logging.CategoryLifecycle, Extra: extra,
	})
}
