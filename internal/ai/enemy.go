// Package ai implements the per-kind passive-behavior dispatch for enemies
// as a flat switch over a tagged EnemyKind rather than an inheritance
// chain.
package ai

import (
	"math"
	"math/rand"

	"towerdefense/server/internal/effects"
	"towerdefense/server/internal/pathgen"
	"towerdefense/server/internal/world"
)

// Advance moves e one tick along path, applying its base movement, status
// modifiers, and per-kind passive. store gives passives access to nearby
// defenses/enemies using start-of-tick positions.
func Advance(e *world.Enemy, path *pathgen.Path, store *world.Store, dtMS float64, rng *rand.Rand) {
	if e.Dead || e.ReachedEnd {
		return
	}

	effSpeed := e.BaseSpeed * e.Status.SpeedMultiplier()
	var offsetX, offsetY float64
	if !e.IsBoss() {
		effSpeed, offsetX, offsetY = applyPassive(e, store, effSpeed, dtMS, rng)
	}

	dtS := dtMS / 1000
	advanceDistance := effSpeed * dtS
	if path.TotalLength() > 0 {
		e.Progress += advanceDistance / path.TotalLength()
	}
	if e.Progress > 1 {
		e.Progress = 1
	}
	x, y, _ := path.PositionAt(e.Progress)
	e.Position = pathgen.Point{X: x + offsetX, Y: y + offsetY}
	e.Trail.Push(e.Position)
	if idx := path.SegmentIndexAt(e.Progress); idx > e.WaypointIndex {
		e.WaypointIndex = idx
	}

	if e.Progress >= 1 {
		e.ReachedEnd = true
	}
}

// applyPassive runs the per-kind behavior table and returns the possibly
// adjusted effective speed plus a positional offset (scriptKiddie jitter,
// aiSurveillance repulsion); the stealth/teleport/aura passives mutate e or
// nearby actors directly and return speed unchanged unless the kind's table
// entry specifically scales it.
func applyPassive(e *world.Enemy, store *world.Store, effSpeed, dtMS float64, rng *rand.Rand) (speed, offsetX, offsetY float64) {
	speed = effSpeed
	switch e.Kind {
	case world.ScriptKiddie:
		jitterScale := 0.3 * effSpeed
		offsetX = (rng.Float64()*2 - 1) * jitterScale * (dtMS / 1000)
		offsetY = (rng.Float64()*2 - 1) * jitterScale * (dtMS / 1000)

	case world.FederalAgent:
		nearDefense := false
		store.Defenses.Each(func(_ world.Handle, d *world.Defense) {
			if nearDefense {
				return
			}
			dx := d.CenterX - e.Position.X
			dy := d.CenterY - e.Position.Y
			if math.Hypot(dx, dy) <= 200 {
				nearDefense = true
			}
		})
		if nearDefense {
			speed *= 1.5
		}

	case world.CorporateSaboteur:
		if rng.Float64() < 0.01 {
			e.Status.Apply(effects.Stealthed, 2000, 1)
		}

	case world.AISurveillance:
		var rx, ry float64
		store.Defenses.Each(func(_ world.Handle, d *world.Defense) {
			dx := e.Position.X - d.CenterX
			dy := e.Position.Y - d.CenterY
			dist := math.Hypot(dx, dy)
			if dist > 0 && dist <= 300 {
				weight := 200 / dist
				rx += dx / dist * weight
				ry += dy / dist * weight
			}
		})
		offsetX = rx * (dtMS / 1000)
		offsetY = ry * (dtMS / 1000)

	case world.QuantumHacker:
		if rng.Float64() < 0.005 {
			e.Progress += 0.1
			if e.Progress > 1 {
				e.Progress = 1
			}
		}

	case world.CorruptedMonk:
		speed *= 0.7
		store.Enemies.Each(func(_ world.Handle, other *world.Enemy) {
			if other.ID == e.ID || other.Kind != world.CorruptedMonk || other.Dead || other.ReachedEnd {
				return
			}
			dx := other.Position.X - e.Position.X
			dy := other.Position.Y - e.Position.Y
			if math.Hypot(dx, dy) <= 100 {
				other.Health += 0.01 * dtMS
				if other.Health > other.MaxHealth {
					other.Health = other.MaxHealth
				}
			}
		})
		store.Defenses.Each(func(_ world.Handle, d *world.Defense) {
			dx := d.CenterX - e.Position.X
			dy := d.CenterY - e.Position.Y
			if math.Hypot(dx, dy) <= 80 {
				// Corruption destroys the defense permanently, unlike emp's
				// temporary suspend-for-the-debuff's-duration. The debuff
				// instance itself still expires after 1000ms for display
				// purposes, but Active latches false and nothing ever
				// flips it back.
				d.Debuffs.Apply(effects.Corrupted, 1000, 1)
				d.Active = false
			}
		})
	}
	return speed, offsetX, offsetY
}
