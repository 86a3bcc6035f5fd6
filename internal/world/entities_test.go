package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBossInitializesScheduledAbilityCooldownsToTheirPeriod(t *testing.T) {
	raid := NewBoss(RaidTeam, Point{}, 1)
	assert.Equal(t, 5000.0, raid.Boss.MinionCooldownMS, "a fresh raidTeam boss must wait a full cycle before its first minion spawn")
	assert.Equal(t, 10000.0, raid.Boss.BlastCooldownMS, "a fresh raidTeam boss must wait a full cycle before its first EMP blast")

	titan := NewBoss(MegaCorpTitan, Point{}, 1)
	assert.Equal(t, 8000.0, titan.Boss.RegenCooldownMS, "a fresh megaCorpTitan must wait a full cycle before its first shield regen")
	assert.True(t, titan.Boss.ShieldActive)
	assert.Equal(t, 100.0, titan.Boss.ShieldHP)
}

func TestIsBoss(t *testing.T) {
	enemy := NewEnemy(ScriptKiddie, Point{}, 1)
	assert.False(t, enemy.IsBoss())

	boss := NewBoss(RaidTeam, Point{}, 1)
	assert.True(t, boss.IsBoss())

	var nilEnemy *Enemy
	assert.False(t, nilEnemy.IsBoss())
}
