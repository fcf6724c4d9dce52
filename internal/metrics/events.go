package metrics

import (
	"context"

	"github.com/averyk/lifequest/internal/event"
	"github.com/averyk/lifequest/internal/logger"
)

// EventMetricsCollector subscribes to progression events and records
// the business metrics derived from them. Counters live here rather
// than in the services so a metric is only recorded for work that was
// actually committed and announced.
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes the collector to every event type it records.
func (e *EventMetricsCollector) Register(bus event.Bus) {
	eventTypes := []event.Type{
		event.ActivityLogged,
		event.CharacterLevelUp,
		event.StatLevelUp,
		event.NodesAllocated,
		event.RespecCompleted,
	}

	for _, eventType := range eventTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent records metrics for a single event. Decode failures are
// logged and swallowed; metrics must never fail the publishing
// operation.
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.ActivityLogged:
		payload, err := event.DecodePayload[event.ActivityLoggedPayloadV1](evt.Payload)
		if err != nil {
			log.Warn(LogMsgEventPayloadDecode, "type", evt.Type, "error", err)
			return nil
		}
		ActivitiesLogged.WithLabelValues(payload.ActivityType).Inc()
		for stat, xp := range payload.XPGranted {
			if xp > 0 {
				XPGranted.WithLabelValues(stat).Add(float64(xp))
			}
		}

	case event.CharacterLevelUp:
		CharacterLevelUps.Inc()

	case event.StatLevelUp:
		payload, err := event.DecodePayload[event.StatLevelUpPayloadV1](evt.Payload)
		if err != nil {
			log.Warn(LogMsgEventPayloadDecode, "type", evt.Type, "error", err)
			return nil
		}
		StatLevelUps.WithLabelValues(payload.StatCode).Inc()

	case event.NodesAllocated:
		payload, err := event.DecodePayload[event.NodesAllocatedPayloadV1](evt.Payload)
		if err != nil {
			log.Warn(LogMsgEventPayloadDecode, "type", evt.Type, "error", err)
			return nil
		}
		NodesAllocated.Add(float64(len(payload.NodeCodes)))

	case event.RespecCompleted:
		RespecsTotal.Inc()
	}

	return nil
}
