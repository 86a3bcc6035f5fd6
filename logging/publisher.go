package logging

import (
	"context"
	"time"
)

// EventType is a namespaced identifier for one simulation occurrence,
// "<category>.<name>" (e.g. "combat.projectile_hit").
type EventType string

// Severity expresses the importance of a telemetry event.
type Severity int

const (
	// SeverityDebug is verbose information for diagnostics.
	SeverityDebug Severity = iota
	// SeverityInfo is routine match telemetry.
	SeverityInfo
	// SeverityWarn indicates something the operator may care about, like a
	// life loss or a rejected command.
	SeverityWarn
	// SeverityError indicates a failure that likely needs attention.
	SeverityError
)

// Category groups events by the engine subsystem that produced them. The
// router can be configured to pass only a subset.
type Category string

const (
	CategoryCombat       Category = "combat"
	CategoryEconomy      Category = "economy"
	CategoryWaves        Category = "waves"
	CategoryLifecycle    Category = "lifecycle"
	CategoryBosses       Category = "bosses"
	CategoryAchievements Category = "achievements"
	CategoryNetwork      Category = "network"
)

// EntityKind differentiates actors within the simulation (enemy, boss,
// defense, projectile kinds).
type EntityKind string

// EntityRef identifies an actor involved in an event.
type EntityRef struct {
	ID   string
	Kind EntityKind
}

// Event describes one semantic occurrence within the match, stamped with
// the simulation tick it happened on.
type Event struct {
	Type     EventType
	Tick     uint64
	Wave     int
	Time     time.Time
	Actor    EntityRef
	Targets  []EntityRef
	Severity Severity
	Category Category
	Payload  any
	Extra    map[string]any
}

// Publisher emits telemetry events without blocking the tick loop.
type Publisher interface {
	Publish(ctx context.Context, event Event)
}

// NopPublisher is a Publisher that drops all events.
type NopPublisher struct{}

// Publish implements Publisher.
func (NopPublisher) Publish(context.Context, Event) {}
