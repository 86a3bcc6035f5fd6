package sim

import (
	"towerdefense/server/internal/econ"
	"towerdefense/server/internal/events"
	"towerdefense/server/internal/world"
)

// DefaultAchievements is the declarative achievement set observed by the
// achievement monitor.
func DefaultAchievements() []econ.Definition {
	return []econ.Definition{
		{ID: "first_blood", Category: "combat", On: events.EnemyKilled, Requirement: econ.RequireCount, Threshold: 1,
			Reward: world.Resources{Dharma: 10}},
		{ID: "exterminator", Category: "combat", On: events.EnemyKilled, Requirement: econ.RequireCount, Threshold: 100,
			Reward: world.Resources{Dharma: 200, Bandwidth: 100}},
		{ID: "first_wave", Category: "waves", On: events.WaveCompleted, Requirement: econ.RequireCount, Threshold: 1,
			Reward: world.Resources{Bandwidth: 20}},
		{ID: "halfway", Category: "waves", On: events.WaveCompleted, Requirement: econ.RequireCount, Threshold: 10,
			Reward: world.Resources{Dharma: 100, Anonymity: 50}},
		{ID: "architect", Category: "economy", On: events.DefensePlaced, Requirement: econ.RequireCount, Threshold: 10,
			Reward: world.Resources{Anonymity: 50}},
		{ID: "fully_upgraded", Category: "economy", On: events.DefenseUpgradedToMax, Requirement: econ.RequireCount, Threshold: 1,
			Reward: world.Resources{Dharma: 150}},
		{ID: "boss_slayer", Category: "bosses", On: events.BossPhaseChange, Requirement: econ.RequireCount, Threshold: 1,
			Reward: world.Resources{Dharma: 300}},
		{ID: "combat_master", Category: "meta", MetaCategory: "combat",
			Reward: world.Resources{Dharma: 500}},
		{ID: "grand_strategist", Category: "meta", MetaAll: true,
			Reward: world.Resources{Dharma: 1000, Bandwidth: 500, Anonymity: 500}},
	}
}
