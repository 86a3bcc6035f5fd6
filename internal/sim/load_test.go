package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"towerdefense/server/internal/events"
	"towerdefense/server/internal/pathgen"
	"towerdefense/server/internal/world"
)

// TestLoadSnapshotMidWaveResumesSpawning: a save taken while a wave is in
// progress carries the scheduler's per-group cursors, so loading it resumes
// spawning in place instead of rewinding the wave.
func TestLoadSnapshotMidWaveResumesSpawning(t *testing.T) {
	e := NewGame(1, pathgen.ShapeZigzag, nil, nil, nil)
	require.NoError(t, e.StartWave())
	spawned := 0
	for _, ev := range e.Tick(1000) {
		if ev.Kind == events.EnemySpawned {
			spawned++
		}
	}
	require.True(t, e.Scheduler.WaveInProgress)
	require.Greater(t, spawned, 0)

	gs := e.Snapshot()
	require.True(t, gs.Level.WaveInProgress)
	require.NotEmpty(t, gs.Level.Groups)

	var savedRemaining int
	for _, g := range gs.Level.Groups {
		savedRemaining += g.Remaining
	}
	require.Greater(t, savedRemaining, 0, "the save must be taken with spawns still pending")

	reloaded := NewGame(1, pathgen.ShapeZigzag, nil, nil, nil)
	reloaded.LoadSnapshot(gs)

	assert.True(t, reloaded.Scheduler.WaveInProgress, "a mid-wave save must load back into the same in-progress wave")
	assert.Equal(t, gs.Level.CurrentWave, reloaded.Scheduler.CurrentWave)

	resumed := 0
	completed := false
	for i := 0; i < 200 && !completed; i++ {
		for _, ev := range reloaded.Tick(1000) {
			switch ev.Kind {
			case events.EnemySpawned:
				resumed++
			case events.WaveCompleted:
				completed = true
			}
		}
	}
	require.True(t, completed, "the resumed wave must run to completion")
	assert.Equal(t, savedRemaining, resumed,
		"the reloaded wave must release exactly the enemies that were still pending at save time")
}

// TestLoadSnapshotRoundTripsObservableState: loading a snapshot produces an
// engine whose own snapshot matches the one that was saved (entity IDs are
// minted fresh on load and are masked here).
func TestLoadSnapshotRoundTripsObservableState(t *testing.T) {
	e := NewGame(1, pathgen.ShapeZigzag, nil, nil, nil)
	require.NoError(t, e.PlaceDefense(0, 0, world.Firewall))
	require.NoError(t, e.StartWave())
	for i := 0; i < 5; i++ {
		e.Tick(1000)
	}

	gs := e.Snapshot()

	reloaded := NewGame(1, pathgen.ShapeZigzag, nil, nil, nil)
	reloaded.LoadSnapshot(gs)

	assert.Equal(t, stripIDs(gs), stripIDs(reloaded.Snapshot()))
}

// TestLoadSnapshotWithoutGroupRowsDegradesGracefully guards the invalid-save
// path: a document that claims an in-progress wave but carries no group rows
// must load into a restartable idle state, never panic on a nil plan.
func TestLoadSnapshotWithoutGroupRowsDegradesGracefully(t *testing.T) {
	e := NewGame(1, pathgen.ShapeZigzag, nil, nil, nil)
	require.NoError(t, e.StartWave())
	e.Tick(100)

	gs := e.Snapshot()
	gs.Level.Groups = nil

	reloaded := NewGame(1, pathgen.ShapeZigzag, nil, nil, nil)
	reloaded.LoadSnapshot(gs)

	assert.False(t, reloaded.Scheduler.WaveInProgress)
	require.NotPanics(t, func() { reloaded.Tick(100) })
	require.NoError(t, reloaded.StartWave(), "the interrupted wave must be restartable")
}

// TestLoadSnapshotRestoresLedgerAndEntities checks the straightforward
// round-trip fields once a wave has completed cleanly (WaveInProgress
// false), so no cursor restore applies.
func TestLoadSnapshotRestoresLedgerAndEntities(t *testing.T) {
	e := NewGame(1, pathgen.ShapeZigzag, nil, nil, nil)
	require.NoError(t, e.PlaceDefense(0, 0, world.Firewall))

	gs := e.Snapshot()
	require.Len(t, gs.Defenses, 1)
	require.Equal(t, world.Firewall, gs.Defenses[0].Kind)

	reloaded := NewGame(1, pathgen.ShapeZigzag, nil, nil, nil)
	reloaded.LoadSnapshot(gs)

	assert.Equal(t, gs.Resources, reloaded.Ledger.Resources)
	assert.Equal(t, gs.Lives, reloaded.Ledger.Lives)
	require.Equal(t, 1, reloaded.Store.Defenses.Len())

	var restored *world.Defense
	reloaded.Store.Defenses.Each(func(_ world.Handle, d *world.Defense) { restored = d })
	require.NotNil(t, restored)
	assert.Equal(t, world.Firewall, restored.Kind)
	assert.Equal(t, gs.Defenses[0].X, restored.CenterX)
	assert.Equal(t, gs.Defenses[0].Y, restored.CenterY)
}

// TestLoadSnapshotRestoresBossPhaseScaling: a boss saved past its first
// phase transition comes back with the speed and life-loss scaling those
// transitions had already applied.
func TestLoadSnapshotRestoresBossPhaseScaling(t *testing.T) {
	gs := GameState{
		State:     StatePlaying,
		Resources: world.InitialResources,
		Lives:     world.InitialLives,
		PathShape: string(pathgen.ShapeZigzag),
		Seed:      1,
		Enemies: []EnemySnapshot{{
			X: 0, Y: 0, Health: 250, MaxHealth: 500,
			IsBoss: true, BossKind: world.RaidTeam, Phase: 3,
		}},
	}

	e := NewGame(1, pathgen.ShapeZigzag, nil, nil, nil)
	e.LoadSnapshot(gs)

	var boss *world.Enemy
	e.Store.Enemies.Each(func(_ world.Handle, en *world.Enemy) { boss = en })
	require.NotNil(t, boss)
	require.NotNil(t, boss.Boss)

	base := world.BossBase[world.RaidTeam]
	assert.InDelta(t, base.Speed*1.2*1.2, boss.BaseSpeed, 1e-9)
	assert.Equal(t, 3, boss.Boss.CurrentPhase)
	assert.Equal(t, 7.0, boss.Boss.LifeLossDamage, "floor(floor(5*1.3)*1.3) = 7")
}
