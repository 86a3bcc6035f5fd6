package world

// EnemyKind enumerates the six waypoint-following attacker kinds.
type EnemyKind string

const (
	ScriptKiddie      EnemyKind = "scriptKiddie"
	FederalAgent      EnemyKind = "federalAgent"
	CorporateSaboteur EnemyKind = "corporateSaboteur"
	AISurveillance    EnemyKind = "aiSurveillance"
	QuantumHacker     EnemyKind = "quantumHacker"
	CorruptedMonk     EnemyKind = "corruptedMonk"
)

// EnemyKindOrder is the canonical ordering used by the wave planner when it
// selects "the first N kinds" for a wave's difficulty ramp.
var EnemyKindOrder = []EnemyKind{
	ScriptKiddie,
	FederalAgent,
	CorporateSaboteur,
	AISurveillance,
	QuantumHacker,
	CorruptedMonk,
}

// BossKind enumerates the two boss archetypes.
type BossKind string

const (
	RaidTeam      BossKind = "raidTeam"
	MegaCorpTitan BossKind = "megaCorpTitan"
)

// DefenseKind enumerates the six stationary tower kinds.
type DefenseKind string

const (
	Firewall    DefenseKind = "firewall"
	Encryption  DefenseKind = "encryption"
	Decoy       DefenseKind = "decoy"
	Mirror      DefenseKind = "mirror"
	Anonymity   DefenseKind = "anonymity"
	Distributor DefenseKind = "distributor"
)

// EnemyBaseStats is one row of the per-kind base-stat table.
type EnemyBaseStats struct {
	Health float64
	Speed  float64
	Reward Resources
	Size   float64
}

// EnemyBase holds the canonical per-kind base stats. Gameplay balance
// depends on these exact values; do not tune them casually.
var EnemyBase = map[EnemyKind]EnemyBaseStats{
	ScriptKiddie:      {Health: 20, Speed: 80, Reward: Resources{5, 2, 1}, Size: 15},
	FederalAgent:      {Health: 40, Speed: 60, Reward: Resources{10, 5, 3}, Size: 18},
	CorporateSaboteur: {Health: 35, Speed: 70, Reward: Resources{15, 8, 5}, Size: 16},
	AISurveillance:    {Health: 60, Speed: 50, Reward: Resources{20, 12, 8}, Size: 20},
	QuantumHacker:     {Health: 80, Speed: 90, Reward: Resources{30, 20, 15}, Size: 22},
	CorruptedMonk:     {Health: 100, Speed: 40, Reward: Resources{50, 30, 25}, Size: 25},
}

// BossBaseStats is the parity-preserving base-stat table for bosses.
type BossBaseStats struct {
	Health float64
	Speed  float64
	Reward Resources
	Size   float64
	Phases int
}

var BossBase = map[BossKind]BossBaseStats{
	RaidTeam:      {Health: 500, Speed: 30, Reward: Resources{100, 60, 40}, Size: 40, Phases: 3},
	MegaCorpTitan: {Health: 800, Speed: 20, Reward: Resources{200, 120, 80}, Size: 50, Phases: 4},
}

// DefenseBaseStats is the parity-preserving base-stat table for defenses.
type DefenseBaseStats struct {
	Cost            Resources
	Damage          float64
	Range           float64
	FireRateMS      float64
	ProjectileSpeed float64
}

var DefenseBase = map[DefenseKind]DefenseBaseStats{
	Firewall:    {Cost: Resources{25, 0, 0}, Damage: 15, Range: 200, FireRateMS: 1000, ProjectileSpeed: 5},
	Encryption:  {Cost: Resources{50, 20, 10}, Damage: 25, Range: 180, FireRateMS: 1500, ProjectileSpeed: 4},
	Decoy:       {Cost: Resources{30, 15, 5}, Damage: 0, Range: 150, FireRateMS: 0, ProjectileSpeed: 0},
	Mirror:      {Cost: Resources{75, 40, 20}, Damage: 40, Range: 250, FireRateMS: 2000, ProjectileSpeed: 8},
	Anonymity:   {Cost: Resources{60, 30, 40}, Damage: 20, Range: 300, FireRateMS: 1200, ProjectileSpeed: 6},
	Distributor: {Cost: Resources{100, 60, 30}, Damage: 30, Range: 350, FireRateMS: 800, ProjectileSpeed: 7},
}

// MaxDefenseLevel is the upgrade ceiling.
const MaxDefenseLevel = 5

// Global tunables.
const (
	InitialLives        = 20
	InterWaveDelayMS    = 5000
	DefaultSpawnDelayMS = 1000
	MaxWaves            = 20
	GridSize            = 40
	CompactGridSize     = 30
	PathHalfWidth       = 20

	// GridCols and GridRows size the playable field in cells; at the
	// default GridSize this yields an 800x600 world.
	GridCols = 20
	GridRows = 15
)

var InitialResources = Resources{Dharma: 100, Bandwidth: 50, Anonymity: 75}
