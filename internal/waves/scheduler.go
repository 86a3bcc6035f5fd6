// Package waves implements the Wave Scheduler: it owns
// the per-wave enemy manifest, emits spawn requests on a countdown cursor
// per group, and detects wave completion.
package waves

import (
	"math"
	"math/rand"
	"strconv"

	"towerdefense/server/internal/pathgen"
	"towerdefense/server/internal/world"
)

// Group is one homogeneous batch within a wave plan.
type Group struct {
	Kind             world.EnemyKind
	Boss             world.BossKind
	IsBoss           bool
	Count            int
	SpawnDelayMS     float64
	HealthMultiplier float64

	remaining      int
	nextSpawnAtMS  float64
	cursorArmed    bool
}

// SpawnRequest is emitted once per enemy the scheduler releases this tick.
type SpawnRequest struct {
	Kind             world.EnemyKind
	Boss             world.BossKind
	IsBoss           bool
	HealthMultiplier float64
}

// Plan is the ordered group list for one wave.
type Plan struct {
	Wave   int
	Groups []*Group
}

// Scheduler is the Wave Scheduler's mutable state.
type Scheduler struct {
	CurrentWave      int
	WaveInProgress   bool
	InterWaveTimerMS float64
	MaxWave          int
	plan             *Plan
	rng              *rand.Rand

	// autoStart is armed by wave completion: once the inter-wave countdown
	// expires the next wave begins without an external start_wave.
	autoStart bool
}

// MaxWave mirrors world.MaxWaves; it is the default for Scheduler.MaxWave,
// overridable per-process via internal/config's MAX_WAVES setting.
const MaxWave = world.MaxWaves

// New constructs a scheduler seeded independently from the rest of the
// simulation, via the same per-subsystem FNV-1a derivation pathgen uses
// for enemyRNG/bossRNG.
func New(rootSeed uint64) *Scheduler {
	rng := pathgen.NewRNG(strconv.FormatUint(rootSeed, 10), "waves")
	return &Scheduler{rng: rng, MaxWave: MaxWave}
}

// CanStartWave reports whether n may be started now.
func (s *Scheduler) CanStartWave(n int) bool {
	return !s.WaveInProgress && n == s.CurrentWave+1 && n <= s.MaxWave
}

// StartWave loads the plan for n and begins spawning.
func (s *Scheduler) StartWave(n int) {
	if !s.CanStartWave(n) {
		return
	}
	s.plan = GeneratePlan(n, s.rng)
	s.WaveInProgress = true
	s.InterWaveTimerMS = 0
	s.autoStart = false
}

// TickInterWave counts down the delay between waves, auto-starting the next
// wave once the countdown expires. It returns the started wave number, or
// zero. Wave 1 is never auto-started: the countdown only arms on wave
// completion.
func (s *Scheduler) TickInterWave(dtMS float64) int {
	if s.WaveInProgress || !s.autoStart {
		return 0
	}
	s.InterWaveTimerMS -= dtMS
	if s.InterWaveTimerMS > 0 {
		return 0
	}
	s.InterWaveTimerMS = 0
	s.autoStart = false
	n := s.CurrentWave + 1
	if !s.CanStartWave(n) {
		return 0
	}
	s.StartWave(n)
	return n
}

// Victorious reports whether the next wave would exceed MaxWave.
func (s *Scheduler) Victorious() bool {
	return s.CurrentWave >= s.MaxWave && !s.WaveInProgress
}

// Advance runs one tick of spawn-cursor bookkeeping. It returns the spawn
// requests released this tick, and whether the wave completed this tick.
func (s *Scheduler) Advance(nowMS, dtMS float64, liveEnemies int) ([]SpawnRequest, bool) {
	if !s.WaveInProgress {
		return nil, false
	}

	var spawns []SpawnRequest
	exhausted := true
	for _, g := range s.plan.Groups {
		if g.remaining <= 0 {
			continue
		}
		exhausted = false
		if !g.cursorArmed {
			g.nextSpawnAtMS = nowMS
			g.cursorArmed = true
		}
		for g.remaining > 0 && nowMS >= g.nextSpawnAtMS {
			spawns = append(spawns, SpawnRequest{
				Kind:             g.Kind,
				Boss:             g.Boss,
				IsBoss:           g.IsBoss,
				HealthMultiplier: g.HealthMultiplier,
			})
			g.remaining--
			g.nextSpawnAtMS += g.SpawnDelayMS
		}
	}

	if exhausted && liveEnemies == 0 {
		s.WaveInProgress = false
		s.CurrentWave = s.plan.Wave
		s.InterWaveTimerMS = world.InterWaveDelayMS
		s.autoStart = true
		s.plan = nil
		return spawns, true
	}
	return spawns, false
}

// ForceNextWave zeros the inter-wave countdown.
func (s *Scheduler) ForceNextWave() {
	s.InterWaveTimerMS = 0
}

// ArmAutoStart re-arms the auto-start latch, used when restoring a save
// taken during the inter-wave countdown so the countdown resumes instead of
// stalling until an external start_wave.
func (s *Scheduler) ArmAutoStart() {
	if !s.WaveInProgress && s.CurrentWave >= 1 {
		s.autoStart = true
	}
}

// GroupSnapshot is one group's plan row plus its spawn cursor in save form.
// NextSpawnInMS is relative to the snapshot instant, so a restore can
// re-anchor the cursor against whatever clock the restoring engine runs.
type GroupSnapshot struct {
	Kind             world.EnemyKind `json:"kind,omitempty"`
	Boss             world.BossKind  `json:"boss,omitempty"`
	IsBoss           bool            `json:"is_boss,omitempty"`
	Count            int             `json:"count"`
	Remaining        int             `json:"remaining"`
	SpawnDelayMS     float64         `json:"spawn_delay_ms"`
	HealthMultiplier float64         `json:"health_multiplier"`
	NextSpawnInMS    float64         `json:"next_spawn_in_ms"`
	CursorArmed      bool            `json:"cursor_armed"`
}

// SnapshotGroups captures the in-progress plan's rows and cursors, or nil
// between waves. nowMS is the clock the cursors were advanced against.
func (s *Scheduler) SnapshotGroups(nowMS float64) []GroupSnapshot {
	if !s.WaveInProgress || s.plan == nil {
		return nil
	}
	out := make([]GroupSnapshot, 0, len(s.plan.Groups))
	for _, g := range s.plan.Groups {
		gs := GroupSnapshot{
			Kind:             g.Kind,
			Boss:             g.Boss,
			IsBoss:           g.IsBoss,
			Count:            g.Count,
			Remaining:        g.remaining,
			SpawnDelayMS:     g.SpawnDelayMS,
			HealthMultiplier: g.HealthMultiplier,
			CursorArmed:      g.cursorArmed,
		}
		if g.cursorArmed {
			gs.NextSpawnInMS = g.nextSpawnAtMS - nowMS
		}
		out = append(out, gs)
	}
	return out
}

// RestoreGroups rebuilds an in-progress wave from its saved group rows so a
// mid-wave save resumes spawning exactly where it left off. wave is the
// wave number the groups belong to; nowMS is the restoring engine's clock.
func (s *Scheduler) RestoreGroups(wave int, groups []GroupSnapshot, nowMS float64) {
	if len(groups) == 0 {
		return
	}
	plan := &Plan{Wave: wave}
	for _, gs := range groups {
		g := &Group{
			Kind:             gs.Kind,
			Boss:             gs.Boss,
			IsBoss:           gs.IsBoss,
			Count:            gs.Count,
			SpawnDelayMS:     gs.SpawnDelayMS,
			HealthMultiplier: gs.HealthMultiplier,
			remaining:        gs.Remaining,
			cursorArmed:      gs.CursorArmed,
		}
		if gs.CursorArmed {
			g.nextSpawnAtMS = nowMS + gs.NextSpawnInMS
		}
		plan.Groups = append(plan.Groups, g)
	}
	s.plan = plan
	s.WaveInProgress = true
	s.InterWaveTimerMS = 0
	s.autoStart = false
}

// GeneratePlan deterministically builds the manifest for wave i.
func GeneratePlan(i int, rng *rand.Rand) *Plan {
	kinds := world.EnemyKindOrder
	n := int(math.Floor(float64(i) / 10.0 * float64(len(kinds))))
	if n < 1 {
		n = 1
	}
	if n > len(kinds) {
		n = len(kinds)
	}
	healthScale := 1 + 0.05*float64(i)

	plan := &Plan{Wave: i}
	for _, kind := range kinds[:n] {
		spread := int(math.Floor(0.3 * float64(i)))
		extra := 0
		if spread > 0 {
			extra = rng.Intn(spread + 1)
		}
		count := 3 + i/2 + extra
		g := &Group{
			Kind:             kind,
			Count:            count,
			remaining:        count,
			SpawnDelayMS:     world.DefaultSpawnDelayMS,
			HealthMultiplier: healthScale,
		}
		plan.Groups = append(plan.Groups, g)
	}

	if i%5 == 0 {
		bossKind := world.RaidTeam
		if i > 10 {
			bossKind = world.MegaCorpTitan
		}
		plan.Groups = append(plan.Groups, &Group{
			IsBoss:           true,
			Boss:             bossKind,
			Count:            1,
			remaining:        1,
			SpawnDelayMS:     world.DefaultSpawnDelayMS,
			HealthMultiplier: 1,
		})
		swarmCount := 5 + i
		plan.Groups = append(plan.Groups, &Group{
			Kind:             world.ScriptKiddie,
			Count:            swarmCount,
			remaining:        swarmCount,
			SpawnDelayMS:     world.DefaultSpawnDelayMS,
			HealthMultiplier: healthScale,
		})
	}

	return plan
}

// WaveBonus returns the resource credit for completing wave n.
func WaveBonus(n int) world.Resources {
	dharma := int64(50 + 10*n)
	bandwidth := int64(math.Floor(float64(dharma) * 0.5))
	anonymity := int64(math.Floor(float64(dharma) * 0.3))
	return world.Resources{Dharma: dharma, Bandwidth: bandwidth, Anonymity: anonymity}
}
