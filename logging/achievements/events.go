// Package achievements provides the typed logging constructor for unlock
// events.
package achievements

import (
	"context"

	"towerdefense/server/logging"
)

// EventUnlocked is emitted when an achievement's requirement is satisfied.
const EventUnlocked logging.EventType = "achievements.unlocked"

// UnlockedPayload identifies the achievement that unlocked.
type UnlockedPayload struct {
	AchievementID string `json:"achievementId"`
}

// Unlocked publishes an achievement-unlocked event.
func Unlocked(ctx context.Context, pub logging.Publisher, tick uint64, payload UnlockedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type: EventUnlocked, Tick: tick,
		Severity: logging.SeverityInfo, Category: logging.CategoryAchievements, Payload: payload, Extra: extra,
	})
}
