package model

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/domain/event"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/domain/valueobject"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/pkg/events"
)

// RiskAssessment is the aggregate root for a scored loan applicant.
type RiskAssessment struct {
	assessedAt  time.Time
	createdAt   time.Time
	profile     valueobject.ApplicantProfile
	decision    valueobject.AssessmentDecision
	riskLevel   valueobject.RiskLevel
	firedRules  []string
	collector   events.EventCollector
	score       float64
	activeRules int
	id          uuid.UUID
}

// NewRiskAssessment creates an unscored assessment for an applicant profile.
// Call Assess to apply the engine's outcome.
func NewRiskAssessment(profile valueobject.ApplicantProfile) (*RiskAssessment, error) {
	if profile.IsZero() {
		return nil, fmt.Errorf("applicant profile is required")
	}
	return &RiskAssessment{
		id:        uuid.New(),
		profile:   profile,
		createdAt: time.Now().UTC(),
	}, nil
}

// Assess records the defuzzified score and the descriptions of the rules that
// fired, deriving level and decision. It may only be called once.
func (a *RiskAssessment) Assess(score float64, firedRules []string) error {
	if !a.assessedAt.IsZero() {
		return fmt.Errorf("assessment %s already scored", a.id)
	}
	if math.IsNaN(score) || score < 0 || score > 100 {
		return fmt.Errorf("risk score must be between 0 and 100, got %v", score)
	}

	a.score = score
	a.firedRules = append([]string(nil), firedRules...)
	a.activeRules = len(firedRules)
	a.riskLevel = valueobject.RiskLevelFromScore(score)
	a.decision = valueobject.DecisionFor(a.riskLevel, a.activeRules > 0)
	a.assessedAt = time.Now().UTC()

	a.collector.Record(event.NewAssessmentCompleted(
		a.id, a.profile.ApplicantID(),
		a.score, a.riskLevel.String(), a.decision.String(),
		a.activeRules, a.assessedAt,
	))

	if a.riskLevel.Equal(valueobject.RiskLevelHigh) {
		a.collector.Record(event.NewHighRiskFlagged(
			a.id, a.profile.ApplicantID(), a.score, a.firedRules, a.assessedAt,
		))
	}

	return nil
}

// --- Accessors ---

func (a *RiskAssessment) ID() uuid.UUID                            { return a.id }
func (a *RiskAssessment) ApplicantID() uuid.UUID                   { return a.profile.ApplicantID() }
func (a *RiskAssessment) Profile() valueobject.ApplicantProfile    { return a.profile }
func (a *RiskAssessment) Score() float64                           { return a.score }
func (a *RiskAssessment) RiskLevel() valueobject.RiskLevel         { return a.riskLevel }
func (a *RiskAssessment) Decision() valueobject.AssessmentDecision { return a.decision }
func (a *RiskAssessment) ActiveRules() int                         { return a.activeRules }
func (a *RiskAssessment) FiredRules() []string                     { return append([]string(nil), a.firedRules...) }
func (a *RiskAssessment) AssessedAt() time.Time                    { return a.assessedAt }
func (a *RiskAssessment) CreatedAt() time.Time                     { return a.createdAt }

// IsAssessed reports whether Assess has been applied.
func (a *RiskAssessment) IsAssessed() bool {
	return !a.assessedAt.IsZero()
}

// DomainEvents returns all accumulated domain events and clears them.
func (a *RiskAssessment) DomainEvents() []events.DomainEvent {
	return a.collector.Drain()
}
