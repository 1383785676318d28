package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/akulaahhhh/Loan-Risk-Evaluator/pkg/events"
)

const (
	// EventTypeAssessmentCompleted is emitted when an applicant assessment finishes.
	EventTypeAssessmentCompleted = "risk.assessment.completed"

	// EventTypeHighRiskFlagged is emitted when an assessment lands in the HIGH band.
	EventTypeHighRiskFlagged = "risk.high_risk.flagged"

	// AggregateTypeRiskAssessment names the aggregate that emits these events.
	AggregateTypeRiskAssessment = "RiskAssessment"
)

// AssessmentCompleted is published for every completed applicant assessment.
type AssessmentCompleted struct {
	events.BaseEvent
	AssessmentID uuid.UUID `json:"assessment_id"`
	ApplicantID  uuid.UUID `json:"applicant_id"`
	Score        float64   `json:"score"`
	RiskLevel    string    `json:"risk_level"`
	Decision     string    `json:"decision"`
	ActiveRules  int       `json:"active_rules"`
	AssessedAt   time.Time `json:"assessed_at"`
}

// NewAssessmentCompleted creates an AssessmentCompleted event.
func NewAssessmentCompleted(
	assessmentID, applicantID uuid.UUID,
	score float64,
	riskLevel, decision string,
	activeRules int,
	assessedAt time.Time,
) AssessmentCompleted {
	return AssessmentCompleted{
		BaseEvent:    events.NewBaseEvent(EventTypeAssessmentCompleted, assessmentID, AggregateTypeRiskAssessment, assessedAt),
		AssessmentID: assessmentID,
		ApplicantID:  applicantID,
		Score:        score,
		RiskLevel:    riskLevel,
		Decision:     decision,
		ActiveRules:  activeRules,
		AssessedAt:   assessedAt,
	}
}

// HighRiskFlagged is published when an applicant is scored HIGH so that
// downstream lending workflows can hold the application.
type HighRiskFlagged struct {
	events.BaseEvent
	AssessmentID uuid.UUID `json:"assessment_id"`
	ApplicantID  uuid.UUID `json:"applicant_id"`
	Score        float64   `json:"score"`
	FiredRules   []string  `json:"fired_rules"`
	FlaggedAt    time.Time `json:"flagged_at"`
}

// NewHighRiskFlagged creates a HighRiskFlagged event.
func NewHighRiskFlagged(
	assessmentID, applicantID uuid.UUID,
	score float64,
	firedRules []string,
	flaggedAt time.Time,
) HighRiskFlagged {
	return HighRiskFlagged{
		BaseEvent:    events.NewBaseEvent(EventTypeHighRiskFlagged, assessmentID, AggregateTypeRiskAssessment, flaggedAt),
		AssessmentID: assessmentID,
		ApplicantID:  applicantID,
		Score:        score,
		FiredRules:   firedRules,
		FlaggedAt:    flaggedAt,
	}
}
