package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"towerdefense/server/internal/pathgen"
	"towerdefense/server/internal/world"
)

// TestMutatingCommandsRejectedAfterGameOver checks that every
// state-mutating command is refused once the match has ended, rather than
// continuing to debit/credit a ledger nobody is playing against anymore.
func TestMutatingCommandsRejectedAfterGameOver(t *testing.T) {
	e := NewGame(1, pathgen.ShapeZigzag, nil, nil, nil)
	e.Ledger.GameOver = true

	assertGameOverRejection := func(t *testing.T, err error) {
		t.Helper()
		require.Error(t, err)
		rejected, ok := err.(*RejectedError)
		require.True(t, ok)
		assert.Equal(t, ReasonGameOver, rejected.Reason)
	}

	assertGameOverRejection(t, e.PlaceDefense(0, 0, world.Firewall))
	assertGameOverRejection(t, e.UpgradeDefense("anything"))
	assertGameOverRejection(t, e.SellDefense("anything"))
	assertGameOverRejection(t, e.ActivateSpecial("anything"))
	assertGameOverRejection(t, e.StartWave())
}

// TestMutatingCommandsRejectedAfterVictory checks the same precondition for
// the other terminal state.
func TestMutatingCommandsRejectedAfterVictory(t *testing.T) {
	e := NewGame(1, pathgen.ShapeZigzag, nil, nil, nil)
	e.Ledger.Victory = true

	err := e.PlaceDefense(0, 0, world.Firewall)
	require.Error(t, err)
	rejected, ok := err.(*RejectedError)
	require.True(t, ok)
	assert.Equal(t, ReasonGameOver, rejected.Reason)
}
