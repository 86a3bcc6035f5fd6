package econ

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"towerdefense/server/internal/world"
)

func TestNewStartsAtInitialResourcesAndLives(t *testing.T) {
	l := New()
	assert.Equal(t, world.InitialResources, l.Resources)
	assert.Equal(t, world.InitialLives, l.Lives)
	assert.Equal(t, 1.0, l.ResourceBoost)
	assert.False(t, l.GameOver)
	assert.False(t, l.Victory)
}

func TestCanAffordAndDebit(t *testing.T) {
	l := New()
	cost := world.Resources{Dharma: 50, Bandwidth: 10, Anonymity: 5}
	require.True(t, l.CanAfford(cost))

	l.Debit(cost)
	assert.Equal(t, world.InitialResources.Sub(cost), l.Resources)

	tooExpensive := world.Resources{Dharma: 1_000_000}
	assert.False(t, l.CanAfford(tooExpensive))
}

func TestDebitClampsNonNegative(t *testing.T) {
	l := New()
	l.Debit(world.Resources{Dharma: 1_000_000, Bandwidth: 1_000_000, Anonymity: 1_000_000})
	assert.Equal(t, world.Resources{}, l.Resources)
}

func TestCreditScalesByResourceBoost(t *testing.T) {
	l := New()
	l.Resources = world.Resources{}
	l.SetBoost(2.0)
	l.Credit(world.Resources{Dharma: 10, Bandwidth: 4, Anonymity: 2})
	assert.Equal(t, world.Resources{Dharma: 20, Bandwidth: 8, Anonymity: 4}, l.Resources)
}

func TestDebitFraction(t *testing.T) {
	l := New()
	l.Resources = world.Resources{Dharma: 100, Bandwidth: 100, Anonymity: 100}
	l.DebitFraction(0.25)
	assert.Equal(t, world.Resources{Dharma: 75, Bandwidth: 75, Anonymity: 75}, l.Resources)
}

func TestLoseLivesLatchesGameOver(t *testing.T) {
	l := New()
	l.Lives = 5

	l.LoseLives(3)
	assert.Equal(t, 2, l.Lives)
	assert.False(t, l.GameOver)

	l.LoseLives(10)
	assert.Equal(t, 0, l.Lives)
	assert.True(t, l.GameOver)
}

func TestLoseLivesIsNoOpAfterGameOver(t *testing.T) {
	l := New()
	l.Lives = 1
	l.LoseLives(1)
	require.True(t, l.GameOver)

	l.Lives = 99 // simulate a stray external mutation
	l.LoseLives(1)
	assert.Equal(t, 99, l.Lives, "LoseLives must short-circuit once GameOver is latched")
}
