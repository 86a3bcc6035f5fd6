package combat

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"towerdefense/server/internal/events"
	"towerdefense/server/internal/world"
)

// TestBossPhaseTriggerScenario: a raidTeam boss (phases=3, hp=500) takes
// exactly 125 damage (25% loss) and must emit a single
// BOSS_PHASE_CHANGE{from:1,to:2}; a further 125 damage (250 cumulative, 50%
// loss) must emit exactly one more, to phase 3.
func TestBossPhaseTriggerScenario(t *testing.T) {
	boss := world.NewBoss(world.RaidTeam, world.Point{}, 1)
	require.Equal(t, 500.0, boss.MaxHealth)
	require.Equal(t, 1, boss.Boss.CurrentPhase)

	buf := &events.Buffer{}
	ApplyDamage(boss, 125, "plain", buf, world.Handle{})

	phaseChanges := filterKind(buf.Drain(), events.BossPhaseChange)
	require.Len(t, phaseChanges, 1, "exactly one phase change must fire at 25%% loss")
	assert.Equal(t, 1, phaseChanges[0].From)
	assert.Equal(t, 2, phaseChanges[0].To)
	assert.Equal(t, 2, boss.Boss.CurrentPhase)

	ApplyDamage(boss, 125, "plain", buf, world.Handle{})
	phaseChanges = filterKind(buf.Drain(), events.BossPhaseChange)
	require.Len(t, phaseChanges, 1, "exactly one more phase change must fire at 50%% cumulative loss")
	assert.Equal(t, 2, phaseChanges[0].From)
	assert.Equal(t, 3, phaseChanges[0].To)
	assert.Equal(t, 3, boss.Boss.CurrentPhase)
}

func TestBossPhaseNeverExceedsItsPhaseCount(t *testing.T) {
	boss := world.NewBoss(world.RaidTeam, world.Point{}, 1)
	buf := &events.Buffer{}
	ApplyDamage(boss, boss.MaxHealth, "plain", buf, world.Handle{})
	assert.LessOrEqual(t, boss.Boss.CurrentPhase, boss.Boss.Phases)
	assert.Equal(t, 3, boss.Boss.CurrentPhase)
}

func TestBossPhaseTransitionAppliesSpeedAndLifeLossScaling(t *testing.T) {
	boss := world.NewBoss(world.RaidTeam, world.Point{}, 1)
	baseSpeed := boss.BaseSpeed
	baseLifeLoss := boss.Boss.LifeLossDamage

	buf := &events.Buffer{}
	ApplyDamage(boss, 125, "plain", buf, world.Handle{})

	assert.InDelta(t, baseSpeed*1.2, boss.BaseSpeed, 1e-9)
	assert.InDelta(t, math.Floor(baseLifeLoss*1.3), boss.Boss.LifeLossDamage, 1e-9)
}

// TestShieldAbsorption: a megaCorpTitan at full
// shield (100) takes 120 damage in one hit; the shield drops to 0
// (emitting SHIELD_BROKEN) and the remaining 20 damage lands on health.
func TestShieldAbsorption(t *testing.T) {
	titan := world.NewBoss(world.MegaCorpTitan, world.Point{}, 1)
	require.True(t, titan.Boss.ShieldActive)
	require.Equal(t, 100.0, titan.Boss.ShieldHP)
	startHealth := titan.Health

	buf := &events.Buffer{}
	ApplyDamage(titan, 120, "plain", buf, world.Handle{})

	assert.Equal(t, 0.0, titan.Boss.ShieldHP)
	assert.Equal(t, startHealth-20, titan.Health)

	broken := filterKind(buf.Drain(), events.ShieldBroken)
	assert.Len(t, broken, 1)
}

func filterKind(evs []events.Event, kind events.Kind) []events.Event {
	var out []events.Event
	for _, e := range evs {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}
