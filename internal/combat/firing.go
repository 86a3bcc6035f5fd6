package combat

import (
	"math"

	"github.com/google/uuid"

	"towerdefense/server/internal/effects"
	"towerdefense/server/internal/events"
	"towerdefense/server/internal/world"
)

// Fire evaluates d's cadence and, if ready with a bound target, creates a
// projectile and applies the kind-specific on-fire side effects.
func Fire(d *world.Defense, dh world.Handle, store *world.Store, nowMS float64, buf *events.Buffer) {
	if d.Kind == world.Decoy || !IsActive(d) {
		return
	}
	if !d.Target.Valid() {
		return
	}
	target, ok := store.Enemies.Get(d.Target)
	if !ok {
		d.Target = world.NoHandle
		return
	}
	if nowMS-d.LastFireAtMS < EffectiveFireRateMS(d) {
		return
	}

	d.LastFireAtMS = nowMS

	speed := EffectiveProjectileSpeed(d)
	dx := target.Position.X - d.CenterX
	dy := target.Position.Y - d.CenterY
	dist := math.Hypot(dx, dy)
	vx, vy := speed, 0.0
	if dist > 0 {
		vx, vy = dx/dist*speed, dy/dist*speed
	}

	proj := &world.Projectile{
		ID:         uuid.NewString(),
		Position:   world.Point{X: d.CenterX, Y: d.CenterY},
		Velocity:   world.Point{X: vx, Y: vy},
		Radius:     4,
		Damage:     EffectiveDamage(d),
		Kind:       projectileKindFor(d.Kind),
		Origin:     dh,
		OriginKind: d.Kind,
		Target:     d.Target,
		Hit:        make(map[string]struct{}),
		Active:     true,
	}
	store.AddProjectile(proj)
	buf.Emit(events.Event{Kind: events.DefenseFired, EntityID: d.ID, EntityKind: string(d.Kind), ProjectileID: proj.ID})

	applyOnFireSideEffects(d, store)
}

// projectileKindFor maps a defense to its inherited projectile kind. An
// encryption shot pierces through lined-up enemies with a single
// projectile id; firewall fires the plain baseline shot.
func projectileKindFor(kind world.DefenseKind) world.ProjectileKind {
	switch kind {
	case world.Encryption:
		return world.ProjectilePiercing
	case world.Mirror:
		return world.ProjectileHoming
	case world.Distributor:
		return world.ProjectileSplash
	case world.Anonymity:
		return world.ProjectileCloaking
	default:
		return world.ProjectilePlain
	}
}

// applyOnFireSideEffects applies the per-kind firing side effects at
// projectile creation time.
func applyOnFireSideEffects(d *world.Defense, store *world.Store) {
	effRange := EffectiveRange(d)
	switch d.Kind {
	case world.Encryption:
		store.EnemiesInRange(d.CenterX, d.CenterY, effRange/2, func(_ world.Handle, e *world.Enemy) {
			e.Status.Apply(effects.Scrambled, 2000, 1)
		})
	case world.Mirror:
		// 10% chance of a reflection visual event; no combat effect, so no
		// PRNG draw is wired here since nothing downstream observes it.
	case world.Anonymity:
		forEachOtherDefense(store, d, func(other *world.Defense) {
			if distance(d, other) <= effRange*0.7 {
				other.Buffs.Apply(effects.Cloaked, 3000, 1)
			}
		})
	case world.Distributor:
		forEachOtherDefense(store, d, func(other *world.Defense) {
			if distance(d, other) <= effRange*0.8 {
				other.Buffs.Apply(effects.Boosted, 2000, 1)
			}
		})
	}
}

func forEachOtherDefense(store *world.Store, self *world.Defense, fn func(*world.Defense)) {
	store.Defenses.Each(func(h world.Handle, other *world.Defense) {
		if other.ID == self.ID {
			return
		}
		fn(other)
	})
}

func distance(a, b *world.Defense) float64 {
	dx := a.CenterX - b.CenterX
	dy := a.CenterY - b.CenterY
	return math.Hypot(dx, dy)
}

// ActivateSpecial triggers d's special ability if off cooldown.
func ActivateSpecial(d *world.Defense, store *world.Store, ledger ResourceBooster) bool {
	if d.SpecialCooldownMS > 0 {
		return false
	}
	d.SpecialActiveMS = 5000
	d.SpecialCooldownMS = 30000

	switch d.Kind {
	case world.Mirror:
		d.Buffs.Apply(effects.Reflection, 5000, 1)
	case world.Anonymity:
		effRange := EffectiveRange(d)
		forEachOtherDefense(store, d, func(other *world.Defense) {
			if distance(d, other) <= effRange*1.5 {
				other.Buffs.Apply(effects.Cloaked, 5000, 1)
			}
		})
	case world.Distributor:
		if ledger != nil {
			ledger.SetBoost(2)
		}
	case world.Encryption:
		store.Projectiles.Each(func(_ world.Handle, p *world.Projectile) {
			p.Encrypted = true
			p.EncryptedRemainingMS = 3000
		})
	case world.Firewall:
		// barrier is a visual-only effect; no combat state changes.
	}
	return true
}

// ResourceBooster is the narrow interface combat needs onto the economy
// ledger's process-wide boost field.
type ResourceBooster interface {
	SetBoost(factor float64)
}
