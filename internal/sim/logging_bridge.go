package sim

import (
	"context"

	"towerdefense/server/internal/events"
	"towerdefense/server/logging"
	loggingachievements "towerdefense/server/logging/achievements"
	loggingbosses "towerdefense/server/logging/bosses"
	loggingcombat "towerdefense/server/logging/combat"
	loggingeconomy "towerdefense/server/logging/economy"
	logginglifecycle "towerdefense/server/logging/lifecycle"
	loggingnetwork "towerdefense/server/logging/network"
	loggingwaves "towerdefense/server/logging/waves"
)

// publish forwards one engine Event onto the logging router through the
// category's typed constructor rather than a single loosely-typed
// envelope. The engine's subsystems still emit onto the shared
// events.Buffer first, since the journal, achievement monitor, and metrics
// all need the same drained stream; publish is the single point where that
// stream fans out into per-category payload structs.
func (e *Engine) publish(ev events.Event) {
	if e.Publisher == nil {
		return
	}
	ctx := context.Background()
	actor := logging.EntityRef{ID: ev.EntityID, Kind: logging.EntityKind(ev.EntityKind)}

	switch ev.Kind {
	case events.DefenseFired:
		loggingcombat.DefenseFired(ctx, e.Publisher, e.TickCount, actor,
			loggingcombat.DefenseFiredPayload{DefenseKind: ev.EntityKind, ProjectileID: ev.ProjectileID}, nil)
	case events.ProjectileHit:
		loggingcombat.ProjectileHit(ctx, e.Publisher, e.TickCount, actor, actor,
			loggingcombat.ProjectileHitPayload{ProjectileID: ev.ProjectileID, Damage: ev.Damage}, nil)

	case events.ResourcesUpdated:
		loggingeconomy.ResourcesUpdated(ctx, e.Publisher, e.TickCount, actor,
			loggingeconomy.ResourcesUpdatedPayload{Reason: ev.Reason, Dharma: ev.Dharma, Bandwidth: ev.Bandwidth, Anonymity: ev.Anonymity}, nil)

	case events.WaveStarted:
		loggingwaves.WaveStarted(ctx, e.Publisher, e.TickCount, loggingwaves.WaveStartedPayload{Wave: ev.Wave}, nil)
	case events.WaveCompleted:
		loggingwaves.WaveCompleted(ctx, e.Publisher, e.TickCount,
			loggingwaves.WaveCompletedPayload{Wave: ev.Wave, Dharma: ev.Dharma, Bandwidth: ev.Bandwidth, Anonymity: ev.Anonymity}, nil)

	case events.EnemySpawned:
		logginglifecycle.EnemySpawned(ctx, e.Publisher, e.TickCount, actor,
			logginglifecycle.EnemySpawnedPayload{Kind: ev.EntityKind}, nil)
	case events.EnemyKilled:
		logginglifecycle.EnemyKilled(ctx, e.Publisher, e.TickCount, actor,
			logginglifecycle.EnemyKilledPayload{Dharma: ev.Dharma, Bandwidth: ev.Bandwidth, Anonymity: ev.Anonymity}, nil)
	case events.EnemyReachedEnd:
		logginglifecycle.EnemyReachedEnd(ctx, e.Publisher, e.TickCount, actor,
			logginglifecycle.EnemyReachedEndPayload{LivesLost: ev.Damage}, nil)
	case events.DefensePlaced:
		logginglifecycle.DefensePlaced(ctx, e.Publisher, e.TickCount, actor,
			logginglifecycle.DefensePlacedPayload{Kind: ev.EntityKind}, nil)
	case events.DefenseUpgradedToMax:
		logginglifecycle.DefenseUpgradedToMax(ctx, e.Publisher, e.TickCount, actor, nil)

	case events.BossPhaseChange:
		loggingbosses.PhaseChange(ctx, e.Publisher, e.TickCount, actor,
			loggingbosses.PhaseChangePayload{From: ev.From, To: ev.To}, nil)
	case events.ShieldBroken:
		loggingbosses.ShieldBroken(ctx, e.Publisher, e.TickCount, actor, nil)

	case events.AchievementUnlocked:
		loggingachievements.Unlocked(ctx, e.Publisher, e.TickCount,
			loggingachievements.UnlockedPayload{AchievementID: ev.AchievementID}, nil)

	case events.CommandRejected:
		loggingnetwork.CommandRejected(ctx, e.Publisher, e.TickCount,
			loggingnetwork.CommandRejectedPayload{Reason: ev.Reason}, nil)
	case events.GameOver:
		loggingnetwork.GameOver(ctx, e.Publisher, e.TickCount, nil)
	case events.GameCompleted:
		loggingnetwork.GameCompleted(ctx, e.Publisher, e.TickCount, nil)
	case events.Victory:
		loggingnetwork.Victory(ctx, e.Publisher, e.TickCount, nil)
	}
}
