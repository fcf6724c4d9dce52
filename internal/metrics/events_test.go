package metrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averyk/lifequest/internal/event"
)

// Counters are process-global, so every assertion works on deltas.
func TestEventMetricsCollector(t *testing.T) {
	ctx := context.Background()
	bus := event.NewMemoryBus()
	NewEventMetricsCollector().Register(bus)

	t.Run("activity logged records type and xp", func(t *testing.T) {
		activities := testutil.ToFloat64(ActivitiesLogged.WithLabelValues("gym_session"))
		strXP := testutil.ToFloat64(XPGranted.WithLabelValues("STR"))
		published := testutil.ToFloat64(EventsPublished.WithLabelValues(string(event.ActivityLogged)))

		err := bus.Publish(ctx, event.NewActivityLoggedEvent("char-1", "gym_session", map[string]int{"STR": 75, "STA": 30}))
		require.NoError(t, err)

		assert.Equal(t, activities+1, testutil.ToFloat64(ActivitiesLogged.WithLabelValues("gym_session")))
		assert.Equal(t, strXP+75, testutil.ToFloat64(XPGranted.WithLabelValues("STR")))
		assert.Equal(t, published+1, testutil.ToFloat64(EventsPublished.WithLabelValues(string(event.ActivityLogged))))
	})

	t.Run("level ups counted", func(t *testing.T) {
		charUps := testutil.ToFloat64(CharacterLevelUps)
		strUps := testutil.ToFloat64(StatLevelUps.WithLabelValues("STR"))

		require.NoError(t, bus.Publish(ctx, event.NewCharacterLevelUpEvent("char-1", 4, 5, 2)))
		require.NoError(t, bus.Publish(ctx, event.NewStatLevelUpEvent("char-1", "STR", 11, 12)))

		assert.Equal(t, charUps+1, testutil.ToFloat64(CharacterLevelUps))
		assert.Equal(t, strUps+1, testutil.ToFloat64(StatLevelUps.WithLabelValues("STR")))
	})

	t.Run("allocation counts every node in the batch", func(t *testing.T) {
		allocated := testutil.ToFloat64(NodesAllocated)

		err := bus.Publish(ctx, event.NewNodesAllocatedEvent("char-1", []string{"str_origin", "str_minor"}, 2))
		require.NoError(t, err)

		assert.Equal(t, allocated+2, testutil.ToFloat64(NodesAllocated))
	})

	t.Run("respec counted", func(t *testing.T) {
		respecs := testutil.ToFloat64(RespecsTotal)

		require.NoError(t, bus.Publish(ctx, event.NewRespecCompletedEvent("char-1", 3, 4)))

		assert.Equal(t, respecs+1, testutil.ToFloat64(RespecsTotal))
	})

	t.Run("serialized payload decoded via json fallback", func(t *testing.T) {
		allocated := testutil.ToFloat64(NodesAllocated)

		err := bus.Publish(ctx, event.Event{
			Version: event.EventSchemaVersion,
			Type:    event.NodesAllocated,
			Payload: map[string]interface{}{"character_id": "char-1", "node_codes": []interface{}{"int_origin"}},
		})
		require.NoError(t, err)

		assert.Equal(t, allocated+1, testutil.ToFloat64(NodesAllocated))
	})
}
