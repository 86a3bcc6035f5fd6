// Package sim is the composition root: it owns the Clock
// & Tick Driver, wires the Wave Scheduler, Entity Store, combat and
// economy subsystems together in the fixed per-tick order, and exposes the
// engine's command/query/event surface.
package sim

import (
	"math/rand"
	"strconv"
	"time"

	"towerdefense/server/internal/ai"
	"towerdefense/server/internal/combat"
	"towerdefense/server/internal/econ"
	"towerdefense/server/internal/events"
	"towerdefense/server/internal/journal"
	"towerdefense/server/internal/pathgen"
	"towerdefense/server/internal/telemetry"
	"towerdefense/server/internal/waves"
	"towerdefense/server/internal/world"
	"towerdefense/server/logging"
)

// Engine is the single-threaded simulation instance.
type Engine struct {
	Seed      uint64
	PathShape pathgen.Shape
	Path      *pathgen.Path
	Store     *world.Store
	Ledger    *econ.Ledger
	Scheduler *waves.Scheduler
	Monitor   *econ.AchievementMonitor
	Journal   *journal.Journal
	Commands  *CommandBuffer

	Width, Height float64

	NowMS     float64
	TickCount uint64

	SelectedDefenseType world.DefenseKind

	enemyRNG *rand.Rand
	bossRNG  *rand.Rand

	buf *events.Buffer

	Logger    telemetry.Logger
	Metrics   telemetry.Metrics
	Publisher logging.Publisher
}

// GameOption overrides a default set by NewGame, so per-knob overrides
// do not grow NewGame's positional parameter list.
type GameOption func(*Engine)

// WithMaxWaves overrides the match's wave count (config.Config.MaxWaves /
// the MAX_WAVES environment variable).
func WithMaxWaves(n int) GameOption {
	return func(e *Engine) { e.Scheduler.MaxWave = n }
}

// WithStartingLives overrides the starting lives total (config.Config.StartingLives
// / the STARTING_LIVES environment variable).
func WithStartingLives(n int) GameOption {
	return func(e *Engine) { e.Ledger.Lives = n }
}

// NewGame constructs a fresh engine for seed.
// pub may be nil, in which case engine events are not routed to the
// structured logger (used by tests and tools that only care about the raw
// event stream).
func NewGame(seed uint64, shape pathgen.Shape, logger telemetry.Logger, metrics telemetry.Metrics, pub logging.Publisher, opts ...GameOption) *Engine {
	width := float64(world.GridCols * world.GridSize)
	height := float64(world.GridRows * world.GridSize)

	e := &Engine{
		Seed:      seed,
		PathShape: shape,
		Path:      pathgen.New(seed, shape, width, height),
		Store:     world.NewStore(),
		Ledger:    econ.New(),
		Scheduler: waves.New(seed),
		Monitor:   econ.NewAchievementMonitor(DefaultAchievements()),
		Journal:   journal.New(600),
		Width:     width,
		Height:    height,
		enemyRNG:  pathgen.NewRNG(strconv.FormatUint(seed, 10), "enemy-ai"),
		bossRNG:   pathgen.NewRNG(strconv.FormatUint(seed, 10), "boss-ai"),
		buf:       &events.Buffer{},
		Logger:    logger,
		Metrics:   metrics,
		Publisher: pub,
	}
	if e.Logger == nil {
		e.Logger = telemetry.NopLogger{}
	}
	if e.Metrics == nil {
		e.Metrics = telemetry.NopMetrics{}
	}
	if e.Publisher == nil {
		e.Publisher = logging.NopPublisher{}
	}
	e.Commands = NewCommandBuffer(defaultCommandBufferCapacity, defaultCommandsPerSource, e.Metrics)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Tick advances the simulation by dtMS. Events emitted during the tick are
// drained into the journal at the end of the tick, never exposed mid-tick.
func (e *Engine) Tick(dtMS float64) []events.Event {
	if e.Ledger.GameOver || e.Ledger.Victory {
		return nil
	}
	start := time.Now()
	defer func() { e.Metrics.ObserveTickDuration(time.Since(start)) }()

	e.NowMS += dtMS
	e.TickCount++

	// Commands staged by the transport since the previous tick apply
	// before any subsystem runs, so every mutation a client asked for is
	// visible to the whole of this tick's fixed update order.
	for _, cmd := range e.Commands.Drain() {
		e.applyCommand(cmd)
	}

	e.runWaveSpawn(dtMS)
	e.runEnemyUpdate(dtMS)
	e.runDefenseUpdate(dtMS)
	e.runProjectileUpdate(dtMS)
	e.runDamageResolution()
	e.runAchievementMonitor()
	e.prune()

	drained := e.buf.Drain()
	e.Journal.Record(e.TickCount, drained)
	e.Metrics.SetActiveEntities("enemy", e.Store.Enemies.Len())
	e.Metrics.SetActiveEntities("defense", e.Store.Defenses.Len())
	e.Metrics.SetActiveEntities("projectile", e.Store.Projectiles.Len())
	for _, ev := range drained {
		e.Metrics.IncEvent(string(ev.Kind))
		e.publish(ev)
	}
	return drained
}

func (e *Engine) runWaveSpawn(dtMS float64) {
	if n := e.Scheduler.TickInterWave(dtMS); n > 0 {
		e.buf.Emit(events.Event{Kind: events.WaveStarted, Wave: n})
	}
	spawns, completed := e.Scheduler.Advance(e.NowMS, dtMS, e.Store.LiveEnemyCount())
	px, py, _ := e.Path.PositionAt(0)
	start := pathgen.Point{X: px, Y: py}
	for _, s := range spawns {
		if s.IsBoss {
			boss := world.NewBoss(s.Boss, start, s.HealthMultiplier)
			e.Store.AddEnemy(boss)
			e.buf.Emit(events.Event{Kind: events.EnemySpawned, EntityID: boss.ID, EntityKind: string(s.Boss)})
		} else {
			enemy := world.NewEnemy(s.Kind, start, s.HealthMultiplier)
			e.Store.AddEnemy(enemy)
			e.buf.Emit(events.Event{Kind: events.EnemySpawned, EntityID: enemy.ID, EntityKind: string(s.Kind)})
		}
	}
	if completed {
		bonus := waves.WaveBonus(e.Scheduler.CurrentWave)
		e.Ledger.Credit(bonus)
		e.buf.Emit(events.Event{Kind: events.WaveCompleted, Wave: e.Scheduler.CurrentWave,
			Dharma: bonus.Dharma, Bandwidth: bonus.Bandwidth, Anonymity: bonus.Anonymity})
		e.buf.Emit(events.Event{Kind: events.ResourcesUpdated, Reason: "wave_bonus",
			Dharma: bonus.Dharma, Bandwidth: bonus.Bandwidth, Anonymity: bonus.Anonymity})
		if e.Scheduler.Victorious() {
			e.Ledger.Victory = true
			e.buf.Emit(events.Event{Kind: events.Victory})
			e.buf.Emit(events.Event{Kind: events.GameCompleted})
		}
	}
}

func (e *Engine) runEnemyUpdate(dtMS float64) {
	var reachedEnd []*world.Enemy
	var minionSpawns []minionRequest

	e.Store.Enemies.Each(func(h world.Handle, en *world.Enemy) {
		if en.Dead {
			return
		}
		en.Status.Tick(dtMS)
		ai.Advance(en, e.Path, e.Store, dtMS, e.enemyRNG)
		if en.IsBoss() {
			combat.UpdateBossAbilities(en, dtMS, e.Store, e.Ledger, e.bossRNG.Float64, func(count int) {
				minionSpawns = append(minionSpawns, minionRequest{count: count, near: en.Position})
			}, e.buf)
		}
		if en.ReachedEnd {
			reachedEnd = append(reachedEnd, en)
		}
	})

	for _, req := range minionSpawns {
		for i := 0; i < req.count; i++ {
			minion := world.NewEnemy(world.ScriptKiddie, pathgen.Point{X: req.near.X, Y: req.near.Y}, 1)
			minion.Health = 15
			minion.MaxHealth = 15
			minion.BaseSpeed = 60
			e.Store.AddEnemy(minion)
			e.buf.Emit(events.Event{Kind: events.EnemySpawned, EntityID: minion.ID, EntityKind: string(world.ScriptKiddie)})
		}
	}

	wasGameOver := e.Ledger.GameOver
	for _, en := range reachedEnd {
		if en.Dead {
			continue
		}
		damage := 1
		if en.Boss != nil {
			damage = int(en.Boss.LifeLossDamage)
		}
		e.Ledger.LoseLives(damage)
		en.Dead = true
		e.buf.Emit(events.Event{Kind: events.EnemyReachedEnd, EntityID: en.ID, Damage: float64(damage)})
		if e.Ledger.GameOver && !wasGameOver {
			e.buf.Emit(events.Event{Kind: events.GameOver})
			wasGameOver = true
		}
	}
}

type minionRequest struct {
	count int
	near  pathgen.Point
}

func (e *Engine) runDefenseUpdate(dtMS float64) {
	e.Store.Defenses.Each(func(h world.Handle, d *world.Defense) {
		d.Buffs.Tick(dtMS)
		d.Debuffs.Tick(dtMS)
		if d.SpecialCooldownMS > 0 {
			d.SpecialCooldownMS -= dtMS
			if d.SpecialCooldownMS < 0 {
				d.SpecialCooldownMS = 0
			}
		}
		if d.SpecialActiveMS > 0 {
			d.SpecialActiveMS -= dtMS
			if d.SpecialActiveMS <= 0 {
				d.SpecialActiveMS = 0
				if d.Kind == world.Distributor {
					e.Ledger.SetBoost(1)
				}
			}
		}
		if !combat.IsActive(d) {
			return
		}
		combat.AcquireTarget(d, e.Store)
		combat.Fire(d, h, e.Store, e.NowMS, e.buf)
	})
}

func (e *Engine) runProjectileUpdate(dtMS float64) {
	e.Store.Projectiles.Each(func(h world.Handle, p *world.Projectile) {
		combat.UpdateProjectile(p, e.Store, dtMS, e.Width, e.Height, e.buf)
	})
}

// runDamageResolution credits the reward for every enemy killed this tick
// exactly once.
func (e *Engine) runDamageResolution() {
	for _, ev := range e.buf.Peek() {
		if ev.Kind == events.EnemyKilled {
			reward := world.Resources{Dharma: ev.Dharma, Bandwidth: ev.Bandwidth, Anonymity: ev.Anonymity}
			e.Ledger.Credit(reward)
			e.buf.Emit(events.Event{Kind: events.ResourcesUpdated, Reason: "enemy_killed",
				Dharma: reward.Dharma, Bandwidth: reward.Bandwidth, Anonymity: reward.Anonymity})
		}
	}
}

func (e *Engine) runAchievementMonitor() {
	for _, ev := range e.buf.Peek() {
		for _, unlocked := range e.Monitor.Observe(e.Ledger, ev) {
			e.buf.Emit(events.Event{Kind: events.AchievementUnlocked, AchievementID: unlocked.ID})
			e.buf.Emit(events.Event{Kind: events.ResourcesUpdated, Reason: "achievement:" + unlocked.ID,
				Dharma: unlocked.Reward.Dharma, Bandwidth: unlocked.Reward.Bandwidth, Anonymity: unlocked.Reward.Anonymity})
		}
	}
	for _, unlocked := range e.Monitor.ObserveMeta(e.Ledger) {
		e.buf.Emit(events.Event{Kind: events.AchievementUnlocked, AchievementID: unlocked.ID})
		e.buf.Emit(events.Event{Kind: events.ResourcesUpdated, Reason: "achievement:" + unlocked.ID,
			Dharma: unlocked.Reward.Dharma, Bandwidth: unlocked.Reward.Bandwidth, Anonymity: unlocked.Reward.Anonymity})
	}
}

// prune removes dead enemies, reached-end enemies, and inactive projectiles
// from the arenas.
func (e *Engine) prune() {
	var deadHandles []world.Handle
	e.Store.Enemies.Each(func(h world.Handle, en *world.Enemy) {
		if en.Dead || en.ReachedEnd {
			deadHandles = append(deadHandles, h)
		}
	})
	for _, h := range deadHandles {
		e.Store.RemoveEnemy(h)
	}

	var deadProjectiles []world.Handle
	e.Store.Projectiles.Each(func(h world.Handle, p *world.Projectile) {
		if !p.Active {
			deadProjectiles = append(deadProjectiles, h)
		}
	})
	for _, h := range deadProjectiles {
		e.Store.RemoveProjectile(h)
	}
}
