package sim

import (
	"towerdefense/server/internal/effects"
	"towerdefense/server/internal/waves"
	"towerdefense/server/internal/world"
)

// State enumerates the engine's top-level lifecycle state.
type State string

const (
	StatePlaying  State = "playing"
	StateGameOver State = "game_over"
	StateVictory  State = "victory"
)

// StatusSnapshot is one serializable status-effect instance.
type StatusSnapshot struct {
	Kind        effects.Kind
	RemainingMS float64
}

// DefenseSnapshot mirrors one Defense for the save/query surface.
type DefenseSnapshot struct {
	ID         string
	X, Y       float64
	GX, GY     int
	Kind       world.DefenseKind
	Level      int
	Experience float64
	ExpToNext  float64
	Buffs      []StatusSnapshot
	Debuffs    []StatusSnapshot
}

// EnemySnapshot mirrors one Enemy (or boss) for the save/query surface.
type EnemySnapshot struct {
	ID         string
	X, Y       float64
	Kind       world.EnemyKind
	Health     float64
	MaxHealth  float64
	PathIndex  int
	Progress   float64
	Status     []StatusSnapshot
	IsBoss     bool
	BossKind   world.BossKind
	Phase      int
	ShieldHP   float64
	ShieldMax  float64
}

// LevelSnapshot mirrors the Wave Scheduler's externally visible state,
// including the in-progress wave's group cursors so a mid-wave save resumes
// spawning instead of rewinding the wave. The json tags match the save
// format's "level" object.
type LevelSnapshot struct {
	CurrentWave    int                   `json:"current_wave"`
	WaveInProgress bool                  `json:"wave_in_progress"`
	WaveTimerMS    float64               `json:"wave_timer_ms"`
	Groups         []waves.GroupSnapshot `json:"groups,omitempty"`
}

// GameState is the full serializable snapshot of one running match.
type GameState struct {
	State     State
	Resources world.Resources
	Lives     int
	Wave      int
	Score     int64

	Seed      uint64
	PathShape string

	Defenses []DefenseSnapshot
	Enemies  []EnemySnapshot
	Level    LevelSnapshot

	SelectedDefenseType world.DefenseKind
}

// Snapshot captures the engine's complete observable state. A tick is never
// mid-flight when this is called.
func (e *Engine) Snapshot() GameState {
	state := StatePlaying
	if e.Ledger.GameOver {
		state = StateGameOver
	} else if e.Ledger.Victory {
		state = StateVictory
	}

	gs := GameState{
		State:               state,
		Resources:           e.Ledger.Resources,
		Lives:               e.Ledger.Lives,
		Wave:                e.Scheduler.CurrentWave,
		Score:               e.Ledger.Score,
		Seed:                e.Seed,
		PathShape:           string(e.PathShape),
		Level: LevelSnapshot{
			CurrentWave:    e.Scheduler.CurrentWave,
			WaveInProgress: e.Scheduler.WaveInProgress,
			WaveTimerMS:    e.Scheduler.InterWaveTimerMS,
			Groups:         e.Scheduler.SnapshotGroups(e.NowMS),
		},
		SelectedDefenseType: e.SelectedDefenseType,
	}

	e.Store.Defenses.Each(func(_ world.Handle, d *world.Defense) {
		gs.Defenses = append(gs.Defenses, DefenseSnapshot{
			ID:         d.ID,
			X:          d.CenterX,
			Y:          d.CenterY,
			GX:         d.GridX,
			GY:         d.GridY,
			Kind:       d.Kind,
			Level:      d.Level,
			Experience: d.Experience,
			Buffs:      statusList(d.Buffs),
			Debuffs:    statusList(d.Debuffs),
		})
	})

	e.Store.Enemies.Each(func(_ world.Handle, en *world.Enemy) {
		snap := EnemySnapshot{
			ID:        en.ID,
			X:         en.Position.X,
			Y:         en.Position.Y,
			Kind:      en.Kind,
			Health:    en.Health,
			MaxHealth: en.MaxHealth,
			PathIndex: en.WaypointIndex,
			Progress:  en.Progress,
			Status:    statusList(en.Status),
		}
		if en.Boss != nil {
			snap.IsBoss = true
			snap.BossKind = en.Boss.Kind
			snap.Phase = en.Boss.CurrentPhase
			snap.ShieldHP = en.Boss.ShieldHP
			snap.ShieldMax = en.Boss.ShieldMax
		}
		gs.Enemies = append(gs.Enemies, snap)
	})

	return gs
}

func statusList(t *effects.Table) []StatusSnapshot {
	all := t.All()
	out := make([]StatusSnapshot, 0, len(all))
	for _, inst := range all {
		out = append(out, StatusSnapshot{Kind: inst.Kind, RemainingMS: inst.RemainingMS})
	}
	return out
}
