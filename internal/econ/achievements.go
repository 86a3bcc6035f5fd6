package econ

import (
	"towerdefense/server/internal/events"
	"towerdefense/server/internal/world"
)

// RequirementKind selects how an achievement's progress accumulates.
type RequirementKind string

const (
	RequireCount RequirementKind = "count"
	RequireTotal RequirementKind = "total"
	RequireBool  RequirementKind = "boolean"
)

// Definition is one declarative achievement rule. A definition with a non-empty
// MetaCategory or MetaAll set is a meta-achievement and is never driven by
// On/Requirement/Threshold; it is instead evaluated once per tick by
// ObserveMeta.
type Definition struct {
	ID          string
	Category    string
	On          events.Kind
	Requirement RequirementKind
	Threshold   int64
	Reward      world.Resources

	MetaCategory string
	MetaAll      bool
}

// AchievementMonitor tracks counters driven by the event stream and latches
// unlocks once a definition's threshold is crossed.
type AchievementMonitor struct {
	defs     []Definition
	counters map[string]int64
	unlocked map[string]bool
}

// NewAchievementMonitor constructs a monitor over defs.
func NewAchievementMonitor(defs []Definition) *AchievementMonitor {
	return &AchievementMonitor{
		defs:     defs,
		counters: make(map[string]int64),
		unlocked: make(map[string]bool),
	}
}

// Observe folds one event into every matching definition's counter and
// returns newly unlocked achievement IDs plus their rewards.
func (m *AchievementMonitor) Observe(ledger *Ledger, e events.Event) []Definition {
	var newlyUnlocked []Definition
	for _, def := range m.defs {
		if def.On != e.Kind || m.unlocked[def.ID] {
			continue
		}
		switch def.Requirement {
		case RequireCount:
			m.counters[def.ID]++
		case RequireTotal:
			m.counters[def.ID] += int64(e.Damage)
		case RequireBool:
			m.counters[def.ID] = 1
		}
		if m.counters[def.ID] >= def.Threshold {
			m.unlocked[def.ID] = true
			ledger.Credit(def.Reward)
			newlyUnlocked = append(newlyUnlocked, def)
		}
	}
	return newlyUnlocked
}

// IsUnlocked reports whether id has latched.
func (m *AchievementMonitor) IsUnlocked(id string) bool {
	return m.unlocked[id]
}

// CategoryComplete reports whether every non-meta definition in category has
// unlocked.
func (m *AchievementMonitor) CategoryComplete(category string) bool {
	found := false
	for _, def := range m.defs {
		if def.isMeta() || def.Category != category {
			continue
		}
		found = true
		if !m.unlocked[def.ID] {
			return false
		}
	}
	return found
}

// AllComplete reports whether every non-meta definition has unlocked.
func (m *AchievementMonitor) AllComplete() bool {
	found := false
	for _, def := range m.defs {
		if def.isMeta() {
			continue
		}
		found = true
		if !m.unlocked[def.ID] {
			return false
		}
	}
	return found
}

func (d Definition) isMeta() bool {
	return d.MetaCategory != "" || d.MetaAll
}

// ObserveMeta evaluates every meta-achievement definition once per tick,
// independent of the event stream, latching any whose category-complete or
// all-complete condition now holds.
func (m *AchievementMonitor) ObserveMeta(ledger *Ledger) []Definition {
	var newlyUnlocked []Definition
	for _, def := range m.defs {
		if !def.isMeta() || m.unlocked[def.ID] {
			continue
		}
		ready := false
		if def.MetaCategory != "" && m.CategoryComplete(def.MetaCategory) {
			ready = true
		}
		if def.MetaAll && m.AllComplete() {
			ready = true
		}
		if ready {
			m.unlocked[def.ID] = true
			ledger.Credit(def.Reward)
			newlyUnlocked = append(newlyUnlocked, def)
		}
	}
	return newlyUnlocked
}
