package events

import "slices"

// EventCollector queues the events an aggregate raises until they are
// published. The zero value is ready to use.
type EventCollector struct {
	pending []DomainEvent
}

// Record queues events in the order they were raised.
func (c *EventCollector) Record(evts ...DomainEvent) {
	c.pending = append(c.pending, evts...)
}

// Pending reports how many events are queued.
func (c *EventCollector) Pending() int { return len(c.pending) }

// Peek returns a copy of the queued events.
func (c *EventCollector) Peek() []DomainEvent { return slices.Clone(c.pending) }

// Drain returns the queued events and empties the queue.
func (c *EventCollector) Drain() []DomainEvent {
	out := c.pending
	c.pending = nil
	return out
}
