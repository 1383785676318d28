package events_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akulaahhhh/Loan-Risk-Evaluator/pkg/events"
)

type scoredEvent struct {
	events.BaseEvent
	Score float64 `json:"score"`
}

func TestNewBaseEvent(t *testing.T) {
	aggregateID := uuid.New()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))

	event := events.NewBaseEvent("risk.assessment.completed", aggregateID, "RiskAssessment", at)

	assert.NotEqual(t, uuid.Nil, event.EventID())
	assert.Equal(t, "risk.assessment.completed", event.EventType())
	assert.Equal(t, aggregateID, event.AggregateID())
	assert.Equal(t, "RiskAssessment", event.AggregateType())
	assert.Equal(t, time.UTC, event.OccurredAt().Location())
	assert.True(t, event.OccurredAt().Equal(at))
}

func TestNewBaseEvent_UniqueIDs(t *testing.T) {
	a := events.NewBaseEvent("x", uuid.New(), "Agg", time.Now())
	b := events.NewBaseEvent("x", uuid.New(), "Agg", time.Now())
	assert.NotEqual(t, a.EventID(), b.EventID())
}

func TestNewEnvelope(t *testing.T) {
	evt := scoredEvent{
		BaseEvent: events.NewBaseEvent("risk.assessment.completed", uuid.New(), "RiskAssessment", time.Now()),
		Score:     42.5,
	}

	env, err := events.NewEnvelope(evt)
	require.NoError(t, err)

	assert.Equal(t, evt.EventID(), env.ID)
	assert.Equal(t, evt.EventType(), env.EventType)
	assert.Equal(t, evt.AggregateID(), env.AggregateID)
	assert.Equal(t, "RiskAssessment", env.AggregateType)
	assert.JSONEq(t, `{"score":42.5}`, string(env.Payload))

	raw, err := json.Marshal(env)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"event_type":"risk.assessment.completed"`)
}

func TestEventCollector(t *testing.T) {
	var c events.EventCollector
	assert.Zero(t, c.Pending())
	assert.Empty(t, c.Peek())

	first := events.NewBaseEvent("a", uuid.New(), "Agg", time.Now())
	second := events.NewBaseEvent("b", uuid.New(), "Agg", time.Now())
	c.Record(first)
	c.Record(second)
	assert.Equal(t, 2, c.Pending())

	got := c.Peek()
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].EventType())

	got[0] = nil
	assert.NotNil(t, c.Peek()[0], "Peek must return a copy")

	drained := c.Drain()
	require.Len(t, drained, 2)
	assert.Equal(t, "b", drained[1].EventType())
	assert.Zero(t, c.Pending())
	assert.Empty(t, c.Drain())
}

func TestEventCollector_RecordMany(t *testing.T) {
	var c events.EventCollector
	id := uuid.New()
	c.Record(
		events.NewBaseEvent("x", id, "Agg", time.Now()),
		events.NewBaseEvent("y", id, "Agg", time.Now()),
	)
	c.Record()

	drained := c.Drain()
	require.Len(t, drained, 2)
	assert.Equal(t, "x", drained[0].EventType())
	assert.Equal(t, "y", drained[1].EventType())
}
