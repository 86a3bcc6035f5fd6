// Package economy provides typed logging constructors for resource and
// wave-bonus events.
package economy

import (
	"context"

	"towerdefense/server/logging"
)

// EventResourcesUpdated is emitted whenever dharma/bandwidth/anonymity change.
const EventResourcesUpdated logging.EventType = "economy.resources_updated"

// ResourcesUpdatedPayload describes the resource delta and its source.
type ResourcesUpdatedPayload struct {
	Reason    string `json:"reason"`
	Dharma    int64  `json:"dharma"`
	Bandwidth int64  `json:"bandwidth"`
	Anonymity int64  `json:"anonymity"`
}

// ResourcesUpdated publishes a resources-updated event.
func ResourcesUpdated(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload ResourcesUpdatedPayload, extra map[string]any) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventResourcesUpdated,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: logging.CategoryEconomy,
		Payload:  payload,
		Extra:    extra,
	})
}
