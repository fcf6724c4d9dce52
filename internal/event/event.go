package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Progression event types
const (
	CharacterLevelUp Type = "character.level_up"
	StatLevelUp      Type = "stat.level_up"
	ActivityLogged   Type = "activity.logged"
	NodesAllocated   Type = "tree.nodes_allocated"
	RespecCompleted  Type = "tree.respec_completed"
)

// Typed event payloads for type safety

// CharacterLevelUpPayloadV1 is the typed payload for character level-up events
type CharacterLevelUpPayloadV1 struct {
	CharacterID      string `json:"character_id"`
	OldLevel         int    `json:"old_level"`
	NewLevel         int    `json:"new_level"`
	StatPointsEarned int    `json:"stat_points_earned"`
	Timestamp        int64  `json:"timestamp"`
}

// StatLevelUpPayloadV1 is the typed payload for attribute level-up events
type StatLevelUpPayloadV1 struct {
	CharacterID string `json:"character_id"`
	StatCode    string `json:"stat_code"`
	OldLevel    int    `json:"old_level"`
	NewLevel    int    `json:"new_level"`
	Timestamp   int64  `json:"timestamp"`
}

// ActivityLoggedPayloadV1 is the typed payload for activity-logged events
type ActivityLoggedPayloadV1 struct {
	CharacterID  string         `json:"character_id"`
	ActivityType string         `json:"activity_type"`
	XPGranted    map[string]int `json:"xp_granted"`
	Timestamp    int64          `json:"timestamp"`
}

// NodesAllocatedPayloadV1 is the typed payload for tree allocation events
type NodesAllocatedPayloadV1 struct {
	CharacterID string   `json:"character_id"`
	NodeCodes   []string `json:"node_codes"`
	PointsSpent int      `json:"points_spent"`
	Timestamp   int64    `json:"timestamp"`
}

// RespecCompletedPayloadV1 is the typed payload for respec events
type RespecCompletedPayloadV1 struct {
	CharacterID    string `json:"character_id"`
	NodesRemoved   int    `json:"nodes_removed"`
	PointsRefunded int    `json:"points_refunded"`
	Timestamp      int64  `json:"timestamp"`
}

// Type-safe event constructors

// NewCharacterLevelUpEvent creates a new character level-up event
func NewCharacterLevelUpEvent(characterID string, oldLevel, newLevel, statPoints int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CharacterLevelUp,
		Payload: CharacterLevelUpPayloadV1{
			CharacterID:      characterID,
			OldLevel:         oldLevel,
			NewLevel:         newLevel,
			StatPointsEarned: statPoints,
			Timestamp:        time.Now().Unix(),
		},
	}
}

// NewStatLevelUpEvent creates a new attribute level-up event
func NewStatLevelUpEvent(characterID, statCode string, oldLevel, newLevel int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    StatLevelUp,
		Payload: StatLevelUpPayloadV1{
			CharacterID: characterID,
			StatCode:    statCode,
			OldLevel:    oldLevel,
			NewLevel:    newLevel,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewActivityLoggedEvent creates a new activity-logged event
func NewActivityLoggedEvent(characterID, activityType string, xpGranted map[string]int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ActivityLogged,
		Payload: ActivityLoggedPayloadV1{
			CharacterID:  characterID,
			ActivityType: activityType,
			XPGranted:    xpGranted,
			Timestamp:    time.Now().Unix(),
		},
	}
}

// NewNodesAllocatedEvent creates a new tree allocation event
func NewNodesAllocatedEvent(characterID string, nodeCodes []string, pointsSpent int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    NodesAllocated,
		Payload: NodesAllocatedPayloadV1{
			CharacterID: characterID,
			NodeCodes:   nodeCodes,
			PointsSpent: pointsSpent,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewRespecCompletedEvent creates a new respec event
func NewRespecCompletedEvent(characterID string, nodesRemoved, pointsRefunded int) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    RespecCompleted,
		Payload: RespecCompletedPayloadV1{
			CharacterID:    characterID,
			NodesRemoved:   nodesRemoved,
			PointsRefunded: pointsRefunded,
			Timestamp:      time.Now().Unix(),
		},
	}
}

// DecodePayload decodes an event payload into T via type assertion then JSON fallback.
// When events are published via in-process MemoryBus, the payload is already the correct struct.
// When coming from serialized sources, the fallback JSON round-trip handles the conversion.
func DecodePayload[T any](input interface{}) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}
	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers synchronously.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("encountered %d errors while handling event %s: %v", len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
