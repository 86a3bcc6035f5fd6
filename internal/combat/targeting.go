// Package combat implements defense targeting and firing, projectile
// motion and collision, and the boss phase controller.
package combat

import (
	"math"

	"towerdefense/server/internal/effects"
	"towerdefense/server/internal/world"
)

// score ranks a candidate target: progress toward the end weighs most,
// then missing health, speed, dharma reward, and closeness.
func score(e *world.Enemy, distance, effRange float64) float64 {
	healthFrac := 0.0
	if e.MaxHealth > 0 {
		healthFrac = e.Health / e.MaxHealth
	}
	return 100*e.Progress +
		50*(1-healthFrac) +
		0.5*e.BaseSpeed +
		2*float64(e.Reward.Dharma) +
		0.1*(effRange-distance)
}

// AcquireTarget keeps d's bound target while it stays valid and otherwise
// replaces it with the best-scoring candidate in range; a valid target is
// not swapped for a better-scoring one.
func AcquireTarget(d *world.Defense, store *world.Store) {
	if d.Kind == world.Decoy || !d.Active {
		d.Target = world.NoHandle
		return
	}

	effRange := EffectiveRange(d)

	if cur, ok := store.Enemies.Get(d.Target); ok && targetValid(cur, d, effRange) {
		return
	}
	d.Target = world.NoHandle

	var best world.Handle
	bestScore := math.Inf(-1)
	hasBest := false
	store.EnemiesInRange(d.CenterX, d.CenterY, effRange, func(h world.Handle, e *world.Enemy) {
		if e.Status.Has(effects.Stealthed) {
			return
		}
		dx := e.Position.X - d.CenterX
		dy := e.Position.Y - d.CenterY
		distance := math.Hypot(dx, dy)
		s := score(e, distance, effRange)
		if !hasBest || s > bestScore || (s == bestScore && h.Index < best.Index) {
			best = h
			bestScore = s
			hasBest = true
		}
	})
	if hasBest {
		d.Target = best
	}
}

func targetValid(e *world.Enemy, d *world.Defense, effRange float64) bool {
	if e.Dead || e.ReachedEnd || e.Status.Has(effects.Stealthed) {
		return false
	}
	dx := e.Position.X - d.CenterX
	dy := e.Position.Y - d.CenterY
	return math.Hypot(dx, dy) <= effRange
}

// EffectiveRange computes a defense's current range.
func EffectiveRange(d *world.Defense) float64 {
	base := world.DefenseBase[d.Kind]
	r := base.Range * (1 + 0.1*float64(d.Level))
	if d.Buffs.Has(effects.Boosted) {
		r *= 1.2
	}
	if d.Debuffs.Has(effects.Blinded) {
		r *= 0.8
	}
	return r
}

// EffectiveDamage computes a defense's current per-hit damage.
func EffectiveDamage(d *world.Defense) float64 {
	base := world.DefenseBase[d.Kind]
	dmg := base.Damage * (1 + 0.2*float64(d.Level))
	if d.Buffs.Has(effects.Boosted) {
		dmg *= 1.5
	}
	if d.Debuffs.Has(effects.Weakened) {
		dmg *= 0.7
	}
	return math.Floor(dmg)
}

// EffectiveFireRateMS computes a defense's current fire-rate interval,
// floored at 100ms.
func EffectiveFireRateMS(d *world.Defense) float64 {
	base := world.DefenseBase[d.Kind]
	rate := base.FireRateMS * (1 - 0.1*float64(d.Level))
	if d.Buffs.Has(effects.Boosted) {
		rate *= 0.7
	}
	if d.Debuffs.Has(effects.Slowed) {
		rate *= 1.3
	}
	if rate < 100 {
		rate = 100
	}
	return rate
}

// EffectiveProjectileSpeed computes a defense's current projectile speed.
func EffectiveProjectileSpeed(d *world.Defense) float64 {
	base := world.DefenseBase[d.Kind]
	speed := base.ProjectileSpeed
	if d.Buffs.Has(effects.Boosted) {
		speed *= 1.3
	}
	return speed
}

// IsActive reports whether d may target and fire this tick. Corruption is not
// checked as a live debuff here: applying it latches d.Active to false for good
// (see the CorruptedMonk aura in internal/ai), so the defense stays dead even
// after the debuff instance itself expires.
func IsActive(d *world.Defense) bool {
	if d.Kind == world.Decoy {
		return false
	}
	if d.Debuffs.Has(effects.EMP) {
		return false
	}
	return d.Active
}

// UpgradeCost returns the dharma/bandwidth/anonymity cost to upgrade d to
// its next level.
func UpgradeCost(d *world.Defense) world.Resources {
	base := world.DefenseBase[d.Kind].Cost
	factor := math.Pow(1.5, float64(d.Level))
	return world.Resources{
		Dharma:    int64(math.Floor(float64(base.Dharma) * factor)),
		Bandwidth: int64(math.Floor(float64(base.Bandwidth) * factor * 0.5)),
		Anonymity: int64(math.Floor(float64(base.Anonymity) * factor * 0.3)),
	}
}

// CanUpgrade reports whether d has room to level further.
func CanUpgrade(d *world.Defense) bool {
	return d.Level < world.MaxDefenseLevel
}
