package valueobject

import "fmt"

// AssessmentDecision is an immutable value object representing the outcome of a risk assessment.
type AssessmentDecision struct {
	value string
}

var (
	DecisionApprove = AssessmentDecision{value: "APPROVE"}
	DecisionReview  = AssessmentDecision{value: "REVIEW"}
	DecisionDecline = AssessmentDecision{value: "DECLINE"}
)

// AssessmentDecisionFromString reconstructs a decision from its string representation.
func AssessmentDecisionFromString(s string) (AssessmentDecision, error) {
	switch s {
	case "APPROVE":
		return DecisionApprove, nil
	case "REVIEW":
		return DecisionReview, nil
	case "DECLINE":
		return DecisionDecline, nil
	default:
		return AssessmentDecision{}, fmt.Errorf("invalid assessment decision: %s", s)
	}
}

// DecisionFor maps a risk level to a decision. An assessment where no rule
// fired carries no information and always goes to manual review.
func DecisionFor(level RiskLevel, rulesFired bool) AssessmentDecision {
	if !rulesFired {
		return DecisionReview
	}
	switch {
	case level.Equal(RiskLevelHigh):
		return DecisionDecline
	case level.Equal(RiskLevelMedium):
		return DecisionReview
	default:
		return DecisionApprove
	}
}

// String returns the string representation.
func (d AssessmentDecision) String() string {
	return d.value
}

// IsZero returns true if the decision has not been set.
func (d AssessmentDecision) IsZero() bool {
	return d.value == ""
}

// Equal checks equality with another AssessmentDecision.
func (d AssessmentDecision) Equal(other AssessmentDecision) bool {
	return d.value == other.value
}
