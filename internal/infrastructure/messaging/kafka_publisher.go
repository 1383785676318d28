package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/akulaahhhh/Loan-Risk-Evaluator/pkg/events"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/pkg/kafka"
)

// MessageProducer is the subset of kafka.Producer the publisher needs.
type MessageProducer interface {
	Publish(ctx context.Context, topic string, messages ...kafka.Message) error
}

// KafkaPublisher implements port.EventPublisher using Kafka. Events are keyed by
// aggregate ID so every event of one assessment lands on the same partition.
type KafkaPublisher struct {
	producer MessageProducer
	topic    string
	logger   *slog.Logger
}

// NewKafkaPublisher creates a new Kafka event publisher.
func NewKafkaPublisher(producer MessageProducer, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish sends domain events to Kafka in a single batch.
func (p *KafkaPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if len(evts) == 0 {
		return nil
	}

	messages := make([]kafka.Message, 0, len(evts))
	for _, evt := range evts {
		msg, err := toMessage(evt)
		if err != nil {
			return err
		}
		messages = append(messages, msg)
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish %d events: %w", len(messages), err)
	}

	for _, evt := range evts {
		p.logger.DebugContext(ctx, "event published",
			slog.String("event_type", evt.EventType()),
			slog.String("event_id", evt.EventID().String()),
			slog.String("topic", p.topic),
		)
	}
	return nil
}

func toMessage(evt events.DomainEvent) (kafka.Message, error) {
	env, err := events.NewEnvelope(evt)
	if err != nil {
		return kafka.Message{}, err
	}
	value, err := json.Marshal(env)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal event %s: %w", evt.EventType(), err)
	}
	return kafka.Message{
		Key:   []byte(evt.AggregateID().String()),
		Value: value,
		Headers: map[string]string{
			"event_type":     evt.EventType(),
			"event_id":       evt.EventID().String(),
			"aggregate_type": evt.AggregateType(),
			"content_type":   "application/json",
		},
	}, nil
}
