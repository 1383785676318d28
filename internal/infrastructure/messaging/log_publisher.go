package messaging

import (
	"context"
	"log/slog"

	"github.com/akulaahhhh/Loan-Risk-Evaluator/pkg/events"
)

// LogPublisher implements port.EventPublisher by logging events. It is used
// when no Kafka brokers are configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a new log-only event publisher.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs each event with its serialized payload.
func (p *LogPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	for _, evt := range evts {
		env, err := events.NewEnvelope(evt)
		if err != nil {
			return err
		}
		p.logger.InfoContext(ctx, "domain event",
			slog.String("event_type", env.EventType),
			slog.String("event_id", env.ID.String()),
			slog.String("aggregate_id", env.AggregateID.String()),
			slog.String("payload", string(env.Payload)),
		)
	}
	return nil
}
