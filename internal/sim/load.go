package sim

import (
	"math"

	"towerdefense/server/internal/econ"
	"towerdefense/server/internal/effects"
	"towerdefense/server/internal/pathgen"
	"towerdefense/server/internal/world"
)

// LoadSnapshot rebuilds the engine's live state from a previously saved
// GameState, so that a snapshot taken immediately after loading matches the
// one that was saved. The path is rebuilt deterministically from the stored
// seed and shape rather than serialized point-by-point, since
// New(seed, shape, ...) is itself deterministic.
func (e *Engine) LoadSnapshot(gs GameState) {
	shape := pathgen.Shape(gs.PathShape)
	e.Seed = gs.Seed
	e.PathShape = shape
	e.Path = pathgen.New(gs.Seed, shape, e.Width, e.Height)

	e.Store = world.NewStore()
	e.Ledger = econ.New()
	e.Ledger.Resources = gs.Resources
	e.Ledger.Lives = gs.Lives
	e.Ledger.Score = gs.Score
	e.Ledger.GameOver = gs.State == StateGameOver
	e.Ledger.Victory = gs.State == StateVictory

	e.Scheduler.CurrentWave = gs.Level.CurrentWave
	e.Scheduler.InterWaveTimerMS = gs.Level.WaveTimerMS
	e.SelectedDefenseType = gs.SelectedDefenseType

	// CurrentWave only advances when a wave completes, so an in-progress
	// plan always belongs to CurrentWave+1. A mid-wave save carries its
	// group cursors and resumes spawning in place; a save whose document
	// claims an in-progress wave but has no group rows (hand-edited or
	// truncated) degrades to "wave not started" rather than panicking on a
	// nil plan. A save taken between waves resumes its inter-wave countdown
	// instead of stalling until an external start_wave.
	e.Scheduler.WaveInProgress = false
	if gs.Level.WaveInProgress && len(gs.Level.Groups) > 0 {
		e.Scheduler.RestoreGroups(gs.Level.CurrentWave+1, gs.Level.Groups, e.NowMS)
	} else if gs.Level.WaveTimerMS > 0 && !gs.Level.WaveInProgress {
		e.Scheduler.ArmAutoStart()
	}

	for _, ds := range gs.Defenses {
		d := world.NewDefense(ds.Kind, ds.GX, ds.GY, ds.X, ds.Y)
		d.Level = ds.Level
		d.Experience = ds.Experience
		restoreStatus(d.Buffs, ds.Buffs)
		restoreStatus(d.Debuffs, ds.Debuffs)
		e.Store.AddDefense(d)
	}

	for _, es := range gs.Enemies {
		var en *world.Enemy
		if es.IsBoss {
			en = world.NewBoss(es.BossKind, pathgen.Point{X: es.X, Y: es.Y}, 1)
			en.Boss.CurrentPhase = es.Phase
			en.Boss.ShieldHP = es.ShieldHP
			en.Boss.ShieldMax = es.ShieldMax
			en.Boss.ShieldActive = es.ShieldHP > 0
			// Re-apply the per-phase speed and life-loss scaling the boss
			// had already earned before the save.
			for p := 1; p < es.Phase; p++ {
				en.BaseSpeed *= 1.2
				en.Boss.LifeLossDamage = math.Floor(en.Boss.LifeLossDamage * 1.3)
			}
		} else {
			en = world.NewEnemy(es.Kind, pathgen.Point{X: es.X, Y: es.Y}, 1)
		}
		en.Health = es.Health
		en.MaxHealth = es.MaxHealth
		en.Progress = es.Progress
		en.WaypointIndex = es.PathIndex
		restoreStatus(en.Status, es.Status)
		e.Store.AddEnemy(en)
	}
}

func restoreStatus(t *effects.Table, snaps []StatusSnapshot) {
	for _, s := range snaps {
		t.Apply(s.Kind, s.RemainingMS, 1)
	}
}
