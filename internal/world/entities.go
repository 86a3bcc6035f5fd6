package world

import (
	"github.com/google/uuid"

	"towerdefense/server/internal/effects"
	"towerdefense/server/internal/pathgen"
)

// Point is a 2D world-space coordinate, aliased onto pathgen.Point so
// combat and sim code can construct positions/velocities without importing
// pathgen directly for this one type.
type Point = pathgen.Point

// Trail is a bounded ring buffer of recent positions.
type Trail struct {
	points [10]pathgen.Point
	count  int
	next   int
}

// Push appends a position, evicting the oldest once the ring is full.
func (t *Trail) Push(p pathgen.Point) {
	t.points[t.next] = p
	t.next = (t.next + 1) % len(t.points)
	if t.count < len(t.points) {
		t.count++
	}
}

// Points returns the trail oldest-first.
func (t *Trail) Points() []pathgen.Point {
	out := make([]pathgen.Point, 0, t.count)
	start := (t.next - t.count + len(t.points)) % len(t.points)
	for i := 0; i < t.count; i++ {
		out = append(out, t.points[(start+i)%len(t.points)])
	}
	return out
}

// BossState extends an Enemy with phase/shield/ability-cooldown state,
// kept as an optional field on Enemy rather than a subclass.
type BossState struct {
	Kind             BossKind
	Phases           int
	CurrentPhase     int
	ShieldActive     bool
	ShieldHP         float64
	ShieldMax        float64
	MinionCooldownMS float64
	BlastCooldownMS  float64
	RegenCooldownMS  float64
	TheftCooldownMS  float64

	// LifeLossDamage is the lives debited when this boss reaches the end
	// of the path; it starts at 5 and is scaled 1.3x per phase transition.
	LifeLossDamage float64
}

// Enemy is a waypoint-following attacker, optionally a boss.
type Enemy struct {
	ID            string
	Kind          EnemyKind
	Position      pathgen.Point
	WaypointIndex int
	Progress      float64
	Health        float64
	MaxHealth     float64
	BaseSpeed     float64
	Resistance    map[string]float64
	Reward        Resources
	Status        *effects.Table
	Trail         Trail
	Dead          bool
	ReachedEnd    bool
	Size          float64
	Boss          *BossState

	// Passive-behavior scratch state, namespaced per kind so the
	// dispatcher in internal/ai stays a flat switch, not a class
	// hierarchy.
	StealthCooldownMS float64
}

// IsBoss reports whether e carries boss state.
func (e *Enemy) IsBoss() bool { return e != nil && e.Boss != nil }

// Defense is a grid-anchored tower.
type Defense struct {
	ID                string
	Kind              DefenseKind
	GridX, GridY      int
	CenterX, CenterY  float64
	Level             int
	Experience        float64
	Target            Handle
	FacingAngle       float64
	LastFireAtMS      float64
	Buffs             *effects.Table
	Debuffs           *effects.Table
	SpecialCooldownMS float64
	SpecialActiveMS   float64
	Active            bool
}

// NewDefense constructs a level-1 defense at the given grid cell.
func NewDefense(kind DefenseKind, gx, gy int, centerX, centerY float64) *Defense {
	return &Defense{
		ID:      uuid.NewString(),
		Kind:    kind,
		GridX:   gx,
		GridY:   gy,
		CenterX: centerX,
		CenterY: centerY,
		Level:   1,
		Target:  NoHandle,
		Buffs:   effects.NewTable(),
		Debuffs: effects.NewTable(),
		Active:  true,
	}
}

// ProjectileKind mirrors the firing defense's special category.
type ProjectileKind string

const (
	ProjectilePlain    ProjectileKind = "plain"
	ProjectilePiercing ProjectileKind = "piercing"
	ProjectileHoming   ProjectileKind = "homing"
	ProjectileSplash   ProjectileKind = "splash"
	ProjectileCloaking ProjectileKind = "cloaking"
)

// Projectile is a kinematic actor traveling from a Defense to a target.
type Projectile struct {
	ID         string
	Position   pathgen.Point
	Velocity   pathgen.Point
	Radius     float64
	Damage     float64
	Kind       ProjectileKind
	Origin     Handle
	OriginKind DefenseKind
	Target     Handle
	Hit        map[string]struct{}
	Active     bool
	WanderMS   float64

	Encrypted            bool
	EncryptedRemainingMS float64
}

// NewEnemy constructs an Enemy of kind at the path's start with scaled
// health.
func NewEnemy(kind EnemyKind, start pathgen.Point, healthMultiplier float64) *Enemy {
	base := EnemyBase[kind]
	health := base.Health * healthMultiplier
	return &Enemy{
		ID:         uuid.NewString(),
		Kind:       kind,
		Position:   start,
		Health:     health,
		MaxHealth:  health,
		BaseSpeed:  base.Speed,
		Reward:     base.Reward,
		Status:     effects.NewTable(),
		Size:       base.Size,
		Resistance: make(map[string]float64),
	}
}

// NewBoss constructs a boss Enemy of kind at the path's start with scaled
// health.
func NewBoss(kind BossKind, start pathgen.Point, healthMultiplier float64) *Enemy {
	base := BossBase[kind]
	health := base.Health * healthMultiplier
	e := &Enemy{
		ID:         uuid.NewString(),
		Kind:       EnemyKind(kind),
		Position:   start,
		Health:     health,
		MaxHealth:  health,
		BaseSpeed:  base.Speed,
		Reward:     base.Reward,
		Status:     effects.NewTable(),
		Size:       base.Size,
		Resistance: make(map[string]float64),
		Boss: &BossState{
			Kind:           kind,
			Phases:         base.Phases,
			CurrentPhase:   1,
			LifeLossDamage: 5,
		},
	}
	// Scheduled-ability cooldowns start at their full period, not zero, so a freshly
	// spawned boss waits a full cycle before its first ability fires.
	switch kind {
	case RaidTeam:
		e.Boss.MinionCooldownMS = 5000
		e.Boss.BlastCooldownMS = 10000
	case MegaCorpTitan:
		e.Boss.RegenCooldownMS = 8000
		e.Boss.ShieldActive = true
		e.Boss.ShieldHP = 100
		e.Boss.ShieldMax = 100
	}
	return e
}

// ResistanceFor returns the damage-kind resistance multiplier, defaulting to
// 1.0.
func (e *Enemy) ResistanceFor(damageKind string) float64 {
	if e == nil || e.Resistance == nil {
		return 1.0
	}
	if r, ok := e.Resistance[damageKind]; ok {
		return r
	}
	return 1.0
}
