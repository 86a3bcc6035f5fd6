// Package econ implements the economy and lives ledger: the resources
// triple, the lives counter, score, and the achievement monitor.
package econ

import "towerdefense/server/internal/world"

// Ledger tracks resources, lives, and score for one running game.
type Ledger struct {
	Resources world.Resources
	Lives     int
	Score     int64

	// ResourceBoost scales every credit. A distributor's special ability
	// sets it to 2 and deactivation restores it to 1; keeping it a ledger
	// field (not a process global) keeps engines independent.
	ResourceBoost float64

	GameOver bool
	Victory  bool
}

// New constructs a ledger at the game's starting resources and lives.
func New() *Ledger {
	return &Ledger{
		Resources:     world.InitialResources,
		Lives:         world.InitialLives,
		ResourceBoost: 1,
	}
}

// CanAfford reports whether cost can be paid from current resources.
func (l *Ledger) CanAfford(cost world.Resources) bool {
	return l.Resources.GTE(cost)
}

// Debit subtracts cost unconditionally; callers must check CanAfford first.
func (l *Ledger) Debit(cost world.Resources) {
	l.Resources = l.Resources.Sub(cost).ClampNonNegative()
}

// Credit adds reward scaled by ResourceBoost, clamped non-negative.
func (l *Ledger) Credit(reward world.Resources) {
	scaled := reward.Scale(l.ResourceBoost)
	l.Resources = l.Resources.Add(scaled).ClampNonNegative()
}

// SetBoost sets the process-wide resource credit multiplier, satisfying
// combat.ResourceBooster.
func (l *Ledger) SetBoost(factor float64) {
	l.ResourceBoost = factor
}

// DebitFraction subtracts frac of each currency, floored, satisfying
// combat.ResourceDebiter.
func (l *Ledger) DebitFraction(frac float64) {
	l.Resources = l.Resources.Sub(l.Resources.Scale(frac)).ClampNonNegative()
}

// LoseLives debits damage lives, latching GameOver once the counter reaches
// zero.
func (l *Ledger) LoseLives(damage int) {
	if l.GameOver {
		return
	}
	l.Lives -= damage
	if l.Lives < 0 {
		l.Lives = 0
	}
	if l.Lives == 0 {
		l.GameOver = true
	}
}
