package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/domain/model"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/domain/valueobject"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/pkg/fuzzy"
)

// ApplicantRequest carries the crisp applicant attributes.
type ApplicantRequest struct {
	Income      decimal.Decimal `json:"income"`
	CoIncome    decimal.Decimal `json:"co_income"`
	LoanAmount  decimal.Decimal `json:"loan_amount"`
	Installment decimal.Decimal `json:"installment"`
	Age         int             `json:"age"`
	Dependents  int             `json:"dependents"`
	ApplicantID uuid.UUID       `json:"applicant_id"`
}

// ToParams maps the request onto profile construction parameters.
func (r ApplicantRequest) ToParams() valueobject.ApplicantProfileParams {
	return valueobject.ApplicantProfileParams{
		ApplicantID: r.ApplicantID,
		Age:         r.Age,
		Income:      r.Income,
		CoIncome:    r.CoIncome,
		LoanAmount:  r.LoanAmount,
		Installment: r.Installment,
		Dependents:  r.Dependents,
	}
}

// AntecedentResponse explains one clause of a fired rule.
type AntecedentResponse struct {
	Variable string  `json:"variable"`
	Set      string  `json:"set"`
	Value    float64 `json:"value"`
	Degree   float64 `json:"degree"`
}

// ActiveRuleResponse is a fired rule with its antecedent breakdown.
type ActiveRuleResponse struct {
	Rule        string               `json:"rule"`
	Description string               `json:"description,omitempty"`
	Antecedents []AntecedentResponse `json:"antecedents"`
	Index       int                  `json:"index"`
	Strength    float64              `json:"strength"`
}

// AssessmentResponse is the output DTO returned after an assessment.
type AssessmentResponse struct {
	AssessedAt      time.Time                     `json:"assessed_at"`
	Fuzzified       map[string]map[string]float64 `json:"fuzzified"`
	RuleStrengths   []float64                     `json:"rule_strengths"`
	ActiveRules     []ActiveRuleResponse          `json:"active_rules"`
	AggregatedCurve []float64                     `json:"aggregated_curve"`
	RiskLevel       string                        `json:"risk_level"`
	Decision        string                        `json:"decision"`
	CurveOrigin     float64                       `json:"curve_origin"`
	Score           float64                       `json:"score"`
	ID              uuid.UUID                     `json:"id"`
	ApplicantID     uuid.UUID                     `json:"applicant_id"`
}

// FromAssessment maps the aggregate and the inference result it was scored with.
func FromAssessment(a *model.RiskAssessment, result fuzzy.Result) AssessmentResponse {
	active := make([]ActiveRuleResponse, len(result.ActiveRules))
	for i, ar := range result.ActiveRules {
		antecedents := make([]AntecedentResponse, len(ar.Antecedents))
		for j, ad := range ar.Antecedents {
			antecedents[j] = AntecedentResponse(ad)
		}
		active[i] = ActiveRuleResponse{
			Index:       ar.Index,
			Rule:        ar.Rule.String(),
			Description: ar.Rule.Description,
			Strength:    ar.Strength,
			Antecedents: antecedents,
		}
	}

	return AssessmentResponse{
		ID:              a.ID(),
		ApplicantID:     a.ApplicantID(),
		Score:           a.Score(),
		RiskLevel:       a.RiskLevel().String(),
		Decision:        a.Decision().String(),
		Fuzzified:       result.Fuzzified,
		RuleStrengths:   result.RuleStrengths,
		ActiveRules:     active,
		AggregatedCurve: result.AggregatedCurve,
		CurveOrigin:     result.CurveOrigin,
		AssessedAt:      a.AssessedAt(),
	}
}
