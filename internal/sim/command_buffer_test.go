package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"towerdefense/server/internal/events"
	"towerdefense/server/internal/pathgen"
	"towerdefense/server/internal/world"
)

func TestCommandBufferDrainsInArrivalOrder(t *testing.T) {
	b := NewCommandBuffer(8, 8, nil)
	require.True(t, b.Push(Command{Type: CommandStartWave, Source: "a"}))
	require.True(t, b.Push(Command{Type: CommandForceNextWave, Source: "b"}))
	require.True(t, b.Push(Command{Type: CommandStartWave, Source: "a"}))
	require.Equal(t, 3, b.Len())

	drained := b.Drain()
	require.Len(t, drained, 3)
	assert.Equal(t, CommandStartWave, drained[0].Type)
	assert.Equal(t, CommandForceNextWave, drained[1].Type)
	assert.Equal(t, CommandStartWave, drained[2].Type)
	assert.Equal(t, 0, b.Len())
	assert.Nil(t, b.Drain(), "a drained buffer has nothing left to hand out")
}

func TestCommandBufferRejectsWhenFull(t *testing.T) {
	b := NewCommandBuffer(2, 8, nil)
	require.True(t, b.Push(Command{Type: CommandStartWave}))
	require.True(t, b.Push(Command{Type: CommandStartWave}))
	assert.False(t, b.Push(Command{Type: CommandStartWave}), "a full ring must refuse further commands")

	b.Drain()
	assert.True(t, b.Push(Command{Type: CommandStartWave}), "draining frees the ring")
}

func TestCommandBufferThrottlesPerSource(t *testing.T) {
	b := NewCommandBuffer(16, 2, nil)
	require.True(t, b.Push(Command{Type: CommandStartWave, Source: "spammer"}))
	require.True(t, b.Push(Command{Type: CommandStartWave, Source: "spammer"}))
	assert.False(t, b.Push(Command{Type: CommandStartWave, Source: "spammer"}),
		"a source at its allowance must be throttled")
	assert.True(t, b.Push(Command{Type: CommandStartWave, Source: "other"}),
		"another source still has room")

	b.Drain()
	assert.True(t, b.Push(Command{Type: CommandStartWave, Source: "spammer"}),
		"the allowance resets on drain")
}

func TestCommandBufferSlotReuseAfterDrain(t *testing.T) {
	b := NewCommandBuffer(2, 4, nil)
	for round := 0; round < 5; round++ {
		require.True(t, b.Push(Command{Type: CommandStartWave}))
		require.True(t, b.Push(Command{Type: CommandForceNextWave}))
		drained := b.Drain()
		require.Len(t, drained, 2)
		assert.Equal(t, CommandStartWave, drained[0].Type)
		assert.Equal(t, CommandForceNextWave, drained[1].Type)
	}
}

// TestStagedCommandsApplyAtTopOfNextTick: a command pushed between ticks is
// applied before the tick's subsystems run, exactly as if the caller had
// invoked the handler directly.
func TestStagedCommandsApplyAtTopOfNextTick(t *testing.T) {
	e := NewGame(42, pathgen.ShapeZigzag, nil, nil, nil)

	require.True(t, e.Commands.Push(Command{
		Type:   CommandPlaceDefense,
		Source: "client-1",
		Place:  &PlaceDefenseCommand{GX: 0, GY: 0, Kind: world.Firewall},
	}))
	require.Equal(t, 0, e.Store.Defenses.Len(), "staged commands must not apply before the tick")

	e.Tick(50)

	assert.Equal(t, 1, e.Store.Defenses.Len())
	assert.Equal(t, world.Resources{Dharma: 75, Bandwidth: 50, Anonymity: 75}, e.Ledger.Resources)
	assert.Equal(t, 0, e.Commands.Len())
}

// TestStagedRejectionEmitsDiagnostic: a staged command that fails its
// preconditions surfaces as a COMMAND_REJECTED event on the tick that
// applied it, since the issuing client has no synchronous return path.
func TestStagedRejectionEmitsDiagnostic(t *testing.T) {
	e := NewGame(42, pathgen.ShapeZigzag, nil, nil, nil)
	require.NoError(t, e.PlaceDefense(0, 0, world.Firewall))

	require.True(t, e.Commands.Push(Command{
		Type:  CommandPlaceDefense,
		Place: &PlaceDefenseCommand{GX: 0, GY: 0, Kind: world.Decoy},
	}))

	var rejected bool
	for _, ev := range e.Tick(50) {
		if ev.Kind == events.CommandRejected {
			rejected = true
		}
	}
	assert.True(t, rejected)
	assert.Equal(t, 1, e.Store.Defenses.Len(), "the occupied cell must stay as it was")
}
