package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"towerdefense/server/internal/effects"
	"towerdefense/server/internal/world"
)

func TestIsActiveDecoyNeverFires(t *testing.T) {
	d := world.NewDefense(world.Decoy, 0, 0, 16, 16)
	assert.False(t, IsActive(d))
}

func TestIsActiveEMPSuspendsOnlyForDebuffDuration(t *testing.T) {
	d := world.NewDefense(world.Firewall, 0, 0, 16, 16)
	require.True(t, IsActive(d))

	d.Debuffs.Apply(effects.EMP, 3000, 1)
	assert.False(t, IsActive(d), "emp must suspend firing while the debuff is live")

	d.Debuffs.Tick(3000)
	assert.False(t, d.Debuffs.Has(effects.EMP))
	assert.True(t, IsActive(d), "emp must release the suspension once the debuff expires")
}

func TestCorruptionDestroysPermanentlyEvenAfterDebuffExpires(t *testing.T) {
	d := world.NewDefense(world.Firewall, 0, 0, 16, 16)
	require.True(t, IsActive(d))

	// Mirrors the corruptedMonk aura (internal/ai): applying the debuff
	// also latches Active false, modeling a permanent destroy rather
	// than emp's temporary suspend.
	d.Debuffs.Apply(effects.Corrupted, 1000, 1)
	d.Active = false
	assert.False(t, IsActive(d))

	d.Debuffs.Tick(1000)
	assert.False(t, d.Debuffs.Has(effects.Corrupted), "the debuff instance itself still expires")
	assert.False(t, IsActive(d), "but the defense must stay destroyed once the debuff has worn off")
}

func TestUpgradeCostGrowsByLevel(t *testing.T) {
	d := world.NewDefense(world.Firewall, 0, 0, 0, 0)
	base := world.DefenseBase[world.Firewall].Cost

	cost1 := UpgradeCost(d)
	assert.Equal(t, int64(float64(base.Dharma)*1.5), cost1.Dharma)

	d.Level = 2
	cost2 := UpgradeCost(d)
	assert.Greater(t, cost2.Dharma, cost1.Dharma)
}

func TestCanUpgradeRespectsMaxLevel(t *testing.T) {
	d := world.NewDefense(world.Firewall, 0, 0, 0, 0)
	assert.True(t, CanUpgrade(d))
	d.Level = world.MaxDefenseLevel
	assert.False(t, CanUpgrade(d))
}
