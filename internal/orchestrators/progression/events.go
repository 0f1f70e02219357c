package progression

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"
)

// Event types published on the bus
const (
	EventLevelUpCommitted    = "progression.level_up.committed"
	EventLevel1ChoiceChanged = "progression.level1_choice.changed"
)

// Event context keys
const (
	EventKeySessionID          = "session_id"
	EventKeyFromLevel          = "from_level"
	EventKeyToLevel            = "to_level"
	EventKeyHitPoints          = "hit_points"
	EventKeyASIChoiceType      = "asi_choice_type"
	EventKeyChoiceType         = "choice_type"
	EventKeyPreviousChoiceType = "previous_choice_type"
)

// publish sends event after the change it describes is saved. Subscriber
// failures are logged and never undo the change.
func (o *Orchestrator) publish(ctx context.Context, event events.Event) {
	if err := o.eventBus.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "event handler failed",
			"event_type", event.Type(),
			"error", err)
	}
}

// LogEvents subscribes a structured log line for every progression event.
// It runs after other subscribers and returns the subscription IDs.
func LogEvents(bus *events.Bus) []string {
	ids := make([]string, 0, 2)
	for _, eventType := range []string{EventLevelUpCommitted, EventLevel1ChoiceChanged} {
		ids = append(ids, bus.SubscribeFunc(eventType, 1000, logEvent))
	}
	return ids
}

func logEvent(ctx context.Context, event events.Event) error {
	attrs := []any{"event_type", event.Type()}
	if src := event.Source(); src != nil {
		attrs = append(attrs, "character_id", src.GetID())
	}
	if tgt := event.Target(); tgt != nil {
		attrs = append(attrs, "session_id", tgt.GetID())
	}
	for _, key := range []string{EventKeyFromLevel, EventKeyToLevel, EventKeyHitPoints, EventKeyASIChoiceType, EventKeyChoiceType, EventKeyPreviousChoiceType} {
		if v, ok := event.Context().Get(key); ok {
			attrs = append(attrs, key, v)
		}
	}

	slog.InfoContext(ctx, "progression event", attrs...)
	return nil
}
