package combat

import (
	"math"

	"towerdefense/server/internal/effects"
	"towerdefense/server/internal/events"
	"towerdefense/server/internal/world"
)

// FieldMargin is how far beyond the field bounds a projectile may travel
// before being pruned.
const FieldMargin = 100

// Hit applies p's damage to target and its on-hit side effects. Splash
// damage, if any, is applied to nearby enemies excluding target.
func Hit(p *world.Projectile, targetHandle world.Handle, target *world.Enemy, store *world.Store, buf *events.Buffer) {
	dmg := p.Damage
	if p.Encrypted {
		dmg *= 1.5
	}
	ApplyDamage(target, dmg, string(p.Kind), buf, targetHandle)
	p.Hit[target.ID] = struct{}{}

	switch p.OriginKind {
	case world.Encryption:
		target.Status.Apply(effects.Scrambled, 1000, 1)
	case world.Anonymity:
		target.Status.Apply(effects.Stealthed, 500, 1)
	case world.Distributor:
		splashRadius := 50.0
		store.EnemiesInRange(target.Position.X, target.Position.Y, splashRadius, func(h world.Handle, e *world.Enemy) {
			if e.ID == target.ID {
				return
			}
			ApplyDamage(e, p.Damage*0.5, string(p.Kind), buf, h)
		})
		store.Defenses.Each(func(_ world.Handle, d *world.Defense) {
			dx := d.CenterX - target.Position.X
			dy := d.CenterY - target.Position.Y
			if math.Hypot(dx, dy) <= 100 {
				d.Buffs.Apply(effects.Boosted, 1000, 1)
			}
		})
	}

	if p.Kind != world.ProjectilePiercing {
		p.Active = false
	}
}

// UpdateProjectile advances one active projectile by dt and resolves
// collision or re-targeting.
func UpdateProjectile(p *world.Projectile, store *world.Store, dtMS float64, fieldW, fieldH float64, buf *events.Buffer) {
	if !p.Active {
		return
	}
	if p.Encrypted {
		p.EncryptedRemainingMS -= dtMS
		if p.EncryptedRemainingMS <= 0 {
			p.Encrypted = false
		}
	}

	target, hasTarget := store.Enemies.Get(p.Target)
	if hasTarget && (target.Dead || target.ReachedEnd) {
		hasTarget = false
		p.Target = world.NoHandle
	}

	if p.Kind == world.ProjectileHoming {
		if hasTarget {
			dx := target.Position.X - p.Position.X
			dy := target.Position.Y - p.Position.Y
			dist := math.Hypot(dx, dy)
			speed := math.Hypot(p.Velocity.X, p.Velocity.Y)
			if dist > 0 {
				p.Velocity = world.Point{X: dx / dist * speed, Y: dy / dist * speed}
			}
		} else {
			retarget(p, store)
		}
	}

	dtS := dtMS / 1000
	p.Position.X += p.Velocity.X * dtS
	p.Position.Y += p.Velocity.Y * dtS

	if p.Kind == world.ProjectilePiercing {
		// A piercing shot keeps flying after a hit, so collision
		// must check every live enemy it passes near, not just the one it
		// was originally aimed at.
		store.Enemies.Each(func(h world.Handle, e *world.Enemy) {
			if !p.Active || e.Dead || e.ReachedEnd {
				return
			}
			if _, alreadyHit := p.Hit[e.ID]; alreadyHit {
				return
			}
			dx := e.Position.X - p.Position.X
			dy := e.Position.Y - p.Position.Y
			if math.Hypot(dx, dy) <= e.Size+p.Radius {
				Hit(p, h, e, store, buf)
				buf.Emit(events.Event{Kind: events.ProjectileHit, ProjectileID: p.ID, EntityID: e.ID, Damage: p.Damage})
			}
		})
	} else if hasTarget {
		if _, alreadyHit := p.Hit[target.ID]; !alreadyHit {
			dx := target.Position.X - p.Position.X
			dy := target.Position.Y - p.Position.Y
			if math.Hypot(dx, dy) <= target.Size+p.Radius {
				Hit(p, p.Target, target, store, buf)
				buf.Emit(events.Event{Kind: events.ProjectileHit, ProjectileID: p.ID, EntityID: target.ID, Damage: p.Damage})
			}
		}
	}

	if p.Position.X < -FieldMargin || p.Position.X > fieldW+FieldMargin ||
		p.Position.Y < -FieldMargin || p.Position.Y > fieldH+FieldMargin {
		p.Active = false
	}
}

func retarget(p *world.Projectile, store *world.Store) {
	var nearest world.Handle
	nearestDist := math.Inf(1)
	found := false
	store.Enemies.Each(func(h world.Handle, e *world.Enemy) {
		if e.Dead || e.ReachedEnd {
			return
		}
		if _, hit := p.Hit[e.ID]; hit {
			return
		}
		dx := e.Position.X - p.Position.X
		dy := e.Position.Y - p.Position.Y
		d := math.Hypot(dx, dy)
		if d < nearestDist {
			nearestDist = d
			nearest = h
			found = true
		}
	})
	if found {
		p.Target = nearest
	}
}

// ApplyDamage resolves incoming damage against e's resistance and boss
// shield, marking it dead and clearing status on zero health.
func ApplyDamage(e *world.Enemy, amount float64, damageKind string, buf *events.Buffer, h world.Handle) {
	if e.Dead {
		return
	}
	if e.Boss != nil && e.Boss.ShieldActive && e.Boss.ShieldHP > 0 {
		if amount <= e.Boss.ShieldHP {
			e.Boss.ShieldHP -= amount
			return
		}
		remaining := amount - e.Boss.ShieldHP
		e.Boss.ShieldHP = 0
		buf.Emit(events.Event{Kind: events.ShieldBroken, EntityID: e.ID})
		amount = remaining
	}

	actual := amount * e.ResistanceFor(damageKind)
	e.Health -= actual
	if e.Boss != nil {
		AdvanceBossPhase(e, buf)
	}
	if e.Health <= 0 {
		e.Health = 0
		e.Dead = true
		e.Status.Clear()
		buf.Emit(events.Event{Kind: events.EnemyKilled, EntityID: e.ID, EntityKind: string(e.Kind),
			Dharma: e.Reward.Dharma, Bandwidth: e.Reward.Bandwidth, Anonymity: e.Reward.Anonymity})
	}
}
