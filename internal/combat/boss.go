package combat

import (
	"math"

	"towerdefense/server/internal/effects"
	"towerdefense/server/internal/events"
	"towerdefense/server/internal/world"
)

// AdvanceBossPhase recomputes e's boss phase from its current health
// fraction and applies the phase-transition effects exactly once per
// threshold crossing.
func AdvanceBossPhase(e *world.Enemy, buf *events.Buffer) {
	b := e.Boss
	if b == nil || e.MaxHealth <= 0 {
		return
	}
	healthFrac := e.Health / e.MaxHealth
	// Phase 1 already covers zero loss, so the phase number is one past the
	// raw ceiling of lossFraction*phases: a raidTeam boss (3 phases, hp 500)
	// reaches phase 2 at 125 damage and phase 3 at 250.
	newPhase := int(math.Ceil((1-healthFrac)*float64(b.Phases))) + 1
	if newPhase < 1 {
		newPhase = 1
	}
	if newPhase > b.Phases {
		newPhase = b.Phases
	}
	if newPhase <= b.CurrentPhase {
		return
	}
	from := b.CurrentPhase
	b.CurrentPhase = newPhase
	e.BaseSpeed *= 1.2
	b.LifeLossDamage = math.Floor(b.LifeLossDamage * 1.3)
	// Cooldowns reset to zero on phase transition; scheduled-ability timers
	// play the role of "special_ability_cooldown" for bosses.
	b.MinionCooldownMS = 0
	b.BlastCooldownMS = 0
	b.RegenCooldownMS = 0
	b.TheftCooldownMS = 0
	buf.Emit(events.Event{Kind: events.BossPhaseChange, EntityID: e.ID, From: from, To: newPhase})
}

// UpdateBossAbilities runs the scheduled per-kind abilities for one boss.
// rng supplies the market-manipulation probability draw; spawnMinion is
// invoked once per minion the raidTeam ability wants created.
func UpdateBossAbilities(
	e *world.Enemy,
	dtMS float64,
	store *world.Store,
	ledger ResourceDebiter,
	rngFloat func() float64,
	spawnMinion func(count int),
	buf *events.Buffer,
) {
	b := e.Boss
	if b == nil {
		return
	}
	switch b.Kind {
	case world.RaidTeam:
		b.MinionCooldownMS -= dtMS
		if b.MinionCooldownMS <= 0 {
			b.MinionCooldownMS = 5000
			spawnMinion(3 + b.CurrentPhase)
		}
		b.BlastCooldownMS -= dtMS
		if b.BlastCooldownMS <= 0 {
			b.BlastCooldownMS = 10000
			blastRadius := 200.0
			store.Defenses.Each(func(_ world.Handle, d *world.Defense) {
				dx := d.CenterX - e.Position.X
				dy := d.CenterY - e.Position.Y
				if math.Hypot(dx, dy) <= blastRadius {
					d.Debuffs.Apply(effects.EMP, 3000, 1)
				}
			})
		}
	case world.MegaCorpTitan:
		b.RegenCooldownMS -= dtMS
		if b.RegenCooldownMS <= 0 {
			b.RegenCooldownMS = 8000
			b.ShieldActive = true
			b.ShieldHP += 50
			if b.ShieldHP > b.ShieldMax {
				b.ShieldHP = b.ShieldMax
			}
		}
		if rngFloat() < 0.01 {
			ledger.DebitFraction(0.1)
		}
	}
}

// ResourceDebiter is the narrow interface the market-manipulation ability
// needs onto the economy ledger.
type ResourceDebiter interface {
	DebitFraction(frac float64)
}
