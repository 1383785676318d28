package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/application/dto"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/domain/model"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/domain/port"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/domain/service"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/domain/valueobject"
)

const tracerName = "github.com/akulaahhhh/Loan-Risk-Evaluator/internal/application/usecase"

// AssessApplicant is the use case for scoring a loan applicant.
type AssessApplicant struct {
	engine    *service.RiskEngine
	publisher port.EventPublisher
	recorder  port.AssessmentRecorder
	logger    *slog.Logger
	tracer    trace.Tracer
}

// NewAssessApplicant creates a new AssessApplicant use case. recorder may be nil.
func NewAssessApplicant(
	engine *service.RiskEngine,
	publisher port.EventPublisher,
	recorder port.AssessmentRecorder,
	logger *slog.Logger,
) *AssessApplicant {
	return &AssessApplicant{
		engine:    engine,
		publisher: publisher,
		recorder:  recorder,
		logger:    logger,
		tracer:    otel.Tracer(tracerName),
	}
}

// Execute validates the applicant, runs the inference engine, derives level and
// decision, and publishes the resulting domain events.
func (uc *AssessApplicant) Execute(ctx context.Context, req dto.ApplicantRequest) (dto.AssessmentResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "AssessApplicant.Execute")
	defer span.End()
	started := time.Now()

	resp, err := uc.execute(ctx, span, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		uc.recordFailure(ctx, err)
		return dto.AssessmentResponse{}, err
	}

	if uc.recorder != nil {
		uc.recorder.RecordAssessment(ctx, resp.RiskLevel, resp.Decision, resp.Score, len(resp.ActiveRules), time.Since(started))
	}
	return resp, nil
}

func (uc *AssessApplicant) execute(ctx context.Context, span trace.Span, req dto.ApplicantRequest) (dto.AssessmentResponse, error) {
	profile, err := valueobject.NewApplicantProfile(req.ToParams())
	if err != nil {
		return dto.AssessmentResponse{}, err
	}
	span.SetAttributes(attribute.String("applicant.id", profile.ApplicantID().String()))

	result, err := uc.engine.Evaluate(profile)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to evaluate applicant: %w", err)
	}

	assessment, err := model.NewRiskAssessment(profile)
	if err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to create assessment: %w", err)
	}
	if err := assessment.Assess(result.Score, service.FiredRules(result)); err != nil {
		return dto.AssessmentResponse{}, fmt.Errorf("failed to assess applicant: %w", err)
	}

	span.SetAttributes(
		attribute.String("assessment.id", assessment.ID().String()),
		attribute.Float64("risk.score", assessment.Score()),
		attribute.String("risk.level", assessment.RiskLevel().String()),
		attribute.Int("risk.active_rules", assessment.ActiveRules()),
	)

	if evts := assessment.DomainEvents(); len(evts) > 0 {
		if err := uc.publisher.Publish(ctx, evts...); err != nil {
			return dto.AssessmentResponse{}, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	uc.logger.InfoContext(ctx, "applicant assessed",
		slog.String("assessment_id", assessment.ID().String()),
		slog.String("applicant_id", assessment.ApplicantID().String()),
		slog.Float64("score", assessment.Score()),
		slog.String("risk_level", assessment.RiskLevel().String()),
		slog.String("decision", assessment.Decision().String()),
		slog.Int("active_rules", assessment.ActiveRules()),
	)

	return dto.FromAssessment(assessment, result), nil
}

func (uc *AssessApplicant) recordFailure(ctx context.Context, err error) {
	if uc.recorder == nil {
		return
	}
	reason := "internal"
	if errors.Is(err, valueobject.ErrInvalidProfile) {
		reason = "invalid_profile"
	}
	uc.recorder.RecordFailure(ctx, reason)
}
