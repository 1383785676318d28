package port

import (
	"context"
	"time"

	"github.com/akulaahhhh/Loan-Risk-Evaluator/pkg/events"
)

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	// Publish sends one or more domain events to the messaging infrastructure.
	Publish(ctx context.Context, events ...events.DomainEvent) error
}

// AssessmentRecorder receives assessment outcomes for monitoring.
type AssessmentRecorder interface {
	RecordAssessment(ctx context.Context, level, decision string, score float64, activeRules int, elapsed time.Duration)
	RecordFailure(ctx context.Context, reason string)
}
