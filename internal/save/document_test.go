package save

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"towerdefense/server/internal/effects"
	"towerdefense/server/internal/sim"
	"towerdefense/server/internal/world"
)

func sampleState() sim.GameState {
	return sim.GameState{
		State:     sim.StatePlaying,
		Resources: world.Resources{Dharma: 120, Bandwidth: 40, Anonymity: 10},
		Lives:     17,
		Wave:      3,
		Score:     900,
		Seed:      42,
		PathShape: "zigzag",
		Defenses: []sim.DefenseSnapshot{
			{ID: "d1", X: 60, Y: 300, GX: 1, GY: 7, Kind: world.Firewall, Level: 2, Experience: 5,
				Buffs:   []sim.StatusSnapshot{{Kind: effects.Boosted, RemainingMS: 1500}},
				Debuffs: []sim.StatusSnapshot{{Kind: effects.Slowed, RemainingMS: 250}},
			},
		},
		Enemies: []sim.EnemySnapshot{
			{ID: "e1", X: 10, Y: 20, Kind: world.ScriptKiddie, Health: 30, MaxHealth: 50, PathIndex: 2, Progress: 0.4,
				Status: []sim.StatusSnapshot{{Kind: effects.EMP, RemainingMS: 800}}},
			{ID: "b1", X: 5, Y: 5, Kind: world.ScriptKiddie, Health: 400, MaxHealth: 500, IsBoss: true,
				BossKind: world.RaidTeam, Phase: 2, ShieldHP: 50, ShieldMax: 100},
		},
		Level:               sim.LevelSnapshot{CurrentWave: 2, WaveInProgress: false, WaveTimerMS: 3000},
		SelectedDefenseType: world.Mirror,
	}
}

func TestFromSnapshotToSnapshotRoundTrip(t *testing.T) {
	gs := sampleState()
	doc := FromSnapshot(gs, 12345)
	assert.Equal(t, CurrentVersion, doc.Version)
	assert.Equal(t, uint64(12345), doc.Timestamp)

	back := ToSnapshot(doc)
	assert.Equal(t, gs.State, back.State)
	assert.Equal(t, gs.Resources, back.Resources)
	assert.Equal(t, gs.Lives, back.Lives)
	assert.Equal(t, gs.Seed, back.Seed)
	assert.Equal(t, gs.PathShape, back.PathShape)
	assert.Equal(t, gs.Level, back.Level)
	assert.Equal(t, gs.SelectedDefenseType, back.SelectedDefenseType)

	require.Len(t, back.Defenses, 1)
	assert.Equal(t, gs.Defenses[0].Kind, back.Defenses[0].Kind)
	assert.Equal(t, gs.Defenses[0].Level, back.Defenses[0].Level)
	assert.Equal(t, gs.Defenses[0].Buffs, back.Defenses[0].Buffs)
	assert.Equal(t, gs.Defenses[0].Debuffs, back.Defenses[0].Debuffs)

	require.Len(t, back.Enemies, 2)
	assert.Equal(t, gs.Enemies[0].Status, back.Enemies[0].Status)
	assert.True(t, back.Enemies[1].IsBoss)
	assert.Equal(t, gs.Enemies[1].BossKind, back.Enemies[1].BossKind)
	assert.Equal(t, gs.Enemies[1].ShieldHP, back.Enemies[1].ShieldHP)
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	doc := FromSnapshot(sampleState(), 999)

	data, err := Marshal(doc)
	require.NoError(t, err)

	decoded, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, doc.Version, decoded.Version)
	assert.Equal(t, doc.Timestamp, decoded.Timestamp)
	assert.Equal(t, doc.Game, decoded.Game)
}

// TestMarshalOrdersTopLevelKeysForDeterministicWire checks the orderedmap
// encoding puts "version" before "timestamp" before "game" in the emitted
// JSON, independent of Go's struct-field reflection order.
func TestMarshalOrdersTopLevelKeysForDeterministicWire(t *testing.T) {
	data, err := Marshal(FromSnapshot(sampleState(), 1))
	require.NoError(t, err)

	s := string(data)
	versionIdx := strings.Index(s, `"version"`)
	timestampIdx := strings.Index(s, `"timestamp"`)
	gameIdx := strings.Index(s, `"game"`)
	require.True(t, versionIdx >= 0 && timestampIdx >= 0 && gameIdx >= 0)
	assert.Less(t, versionIdx, timestampIdx)
	assert.Less(t, timestampIdx, gameIdx)
}

func TestUnmarshalRejectsMajorVersionMismatch(t *testing.T) {
	doc := FromSnapshot(sampleState(), 1)
	doc.Version = "2.0"
	data, err := Marshal(doc)
	require.NoError(t, err)

	_, err = Unmarshal(data)
	assert.ErrorIs(t, err, ErrMajorVersionMismatch)
}

func TestUnmarshalAcceptsMinorVersionDrift(t *testing.T) {
	doc := FromSnapshot(sampleState(), 1)
	doc.Version = "1.9"
	data, err := Marshal(doc)
	require.NoError(t, err)

	decoded, err := Unmarshal(data)
	require.NoError(t, err)
	assert.Equal(t, "1.9", decoded.Version)
}
