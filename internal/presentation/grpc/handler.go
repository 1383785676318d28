package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/application/dto"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/application/usecase"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/domain/valueobject"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/pkg/fuzzy"
)

// Compile-time assertion that RiskServiceHandler implements RiskServiceServer.
var _ RiskServiceServer = (*RiskServiceHandler)(nil)

// RiskServiceHandler implements the gRPC RiskServiceServer interface.
type RiskServiceHandler struct {
	UnimplementedRiskServiceServer
	assessApplicant   *usecase.AssessApplicant
	listRules         *usecase.ListRules
	describeVariables *usecase.DescribeVariables
	logger            *slog.Logger
}

// NewRiskServiceHandler creates a new gRPC handler.
func NewRiskServiceHandler(
	assessApplicant *usecase.AssessApplicant,
	listRules *usecase.ListRules,
	describeVariables *usecase.DescribeVariables,
	logger *slog.Logger,
) *RiskServiceHandler {
	return &RiskServiceHandler{
		assessApplicant:   assessApplicant,
		listRules:         listRules,
		describeVariables: describeVariables,
		logger:            logger,
	}
}

// Proto-aligned request/response message types.

// ApplicantMsg represents the proto Applicant message. Money fields are decimal strings.
type ApplicantMsg struct {
	ApplicantID string `json:"applicant_id"`
	Age         int32  `json:"age"`
	Income      string `json:"income"`
	CoIncome    string `json:"co_income"`
	LoanAmount  string `json:"loan_amount"`
	Installment string `json:"installment"`
	Dependents  int32  `json:"dependents"`
}

// AssessApplicantRequest represents the proto AssessApplicantRequest message.
type AssessApplicantRequest struct {
	Applicant *ApplicantMsg `json:"applicant"`
}

// AntecedentMsg represents the proto Antecedent message.
type AntecedentMsg struct {
	Variable string  `json:"variable"`
	Set      string  `json:"set"`
	Value    float64 `json:"value"`
	Degree   float64 `json:"degree"`
}

// ActiveRuleMsg represents the proto ActiveRule message.
type ActiveRuleMsg struct {
	Index       int32            `json:"index"`
	Rule        string           `json:"rule"`
	Description string           `json:"description,omitempty"`
	Strength    float64          `json:"strength"`
	Antecedents []*AntecedentMsg `json:"antecedents"`
}

// DegreesMsg holds set name to membership degree for one variable.
type DegreesMsg struct {
	Degrees map[string]float64 `json:"degrees"`
}

// AssessmentMsg represents the proto Assessment message.
type AssessmentMsg struct {
	ID              string                 `json:"id"`
	ApplicantID     string                 `json:"applicant_id"`
	Score           float64                `json:"score"`
	RiskLevel       string                 `json:"risk_level"`
	RiskLabel       string                 `json:"risk_label"`
	Decision        string                 `json:"decision"`
	Fuzzified       map[string]*DegreesMsg `json:"fuzzified"`
	RuleStrengths   []float64              `json:"rule_strengths"`
	ActiveRules     []*ActiveRuleMsg       `json:"active_rules"`
	AggregatedCurve []float64              `json:"aggregated_curve"`
	CurveOrigin     float64                `json:"curve_origin"`
	AssessedAt      string                 `json:"assessed_at"`
}

// AssessApplicantResponse represents the proto AssessApplicantResponse message.
type AssessApplicantResponse struct {
	Assessment *AssessmentMsg `json:"assessment"`
}

// ListRulesRequest represents the proto ListRulesRequest message.
type ListRulesRequest struct {
	Applicant *ApplicantMsg `json:"applicant,omitempty"`
}

// ClauseMsg represents the proto Clause message.
type ClauseMsg struct {
	Variable string `json:"variable"`
	Set      string `json:"set"`
}

// RuleMsg represents the proto Rule message. Strength is set only when an
// applicant was evaluated.
type RuleMsg struct {
	Index       int32        `json:"index"`
	Text        string       `json:"text"`
	Description string       `json:"description,omitempty"`
	Antecedents []*ClauseMsg `json:"antecedents"`
	Consequent  *ClauseMsg   `json:"consequent"`
	Strength    *float64     `json:"strength,omitempty"`
	Active      bool         `json:"active"`
}

// ListRulesResponse represents the proto ListRulesResponse message.
type ListRulesResponse struct {
	Rules     []*RuleMsg `json:"rules"`
	Evaluated bool       `json:"evaluated"`
}

// DescribeVariablesRequest represents the proto DescribeVariablesRequest message.
type DescribeVariablesRequest struct {
	Applicant *ApplicantMsg `json:"applicant,omitempty"`
}

// FuzzySetMsg represents the proto FuzzySet message.
type FuzzySetMsg struct {
	Name   string    `json:"name"`
	Points []float64 `json:"points"`
	Degree *float64  `json:"degree,omitempty"`
}

// VariableMsg represents the proto Variable message.
type VariableMsg struct {
	Name   string         `json:"name"`
	Label  string         `json:"label"`
	Unit   string         `json:"unit"`
	Min    float64        `json:"min"`
	Max    float64        `json:"max"`
	Output bool           `json:"output"`
	Sets   []*FuzzySetMsg `json:"sets"`
	Value  *float64       `json:"value,omitempty"`
}

// DescribeVariablesResponse represents the proto DescribeVariablesResponse message.
type DescribeVariablesResponse struct {
	Variables []*VariableMsg `json:"variables"`
}

// AssessApplicant handles an applicant assessment request.
func (h *RiskServiceHandler) AssessApplicant(ctx context.Context, req *AssessApplicantRequest) (*AssessApplicantResponse, error) {
	if req == nil || req.Applicant == nil {
		return nil, status.Error(codes.InvalidArgument, "applicant is required")
	}

	applicant, err := parseApplicant(req.Applicant)
	if err != nil {
		return nil, err
	}

	resp, err := h.assessApplicant.Execute(ctx, applicant)
	if err != nil {
		return nil, h.toStatus(ctx, "assess applicant", err)
	}

	return &AssessApplicantResponse{Assessment: toAssessmentMsg(resp)}, nil
}

// ListRules handles a rule catalogue request.
func (h *RiskServiceHandler) ListRules(ctx context.Context, req *ListRulesRequest) (*ListRulesResponse, error) {
	var in dto.ListRulesRequest
	if req != nil && req.Applicant != nil {
		applicant, err := parseApplicant(req.Applicant)
		if err != nil {
			return nil, err
		}
		in.Applicant = &applicant
	}

	resp, err := h.listRules.Execute(ctx, in)
	if err != nil {
		return nil, h.toStatus(ctx, "list rules", err)
	}

	out := &ListRulesResponse{
		Rules:     make([]*RuleMsg, len(resp.Rules)),
		Evaluated: resp.Evaluated,
	}
	for i, r := range resp.Rules {
		antecedents := make([]*ClauseMsg, len(r.Antecedents))
		for j, c := range r.Antecedents {
			antecedents[j] = &ClauseMsg{Variable: c.Variable, Set: c.Set}
		}
		out.Rules[i] = &RuleMsg{
			Index:       int32(r.Index),
			Text:        r.Text,
			Description: r.Description,
			Antecedents: antecedents,
			Consequent:  &ClauseMsg{Variable: r.Consequent.Variable, Set: r.Consequent.Set},
			Strength:    r.Strength,
			Active:      r.Active,
		}
	}
	return out, nil
}

// DescribeVariables handles a variable description request.
func (h *RiskServiceHandler) DescribeVariables(ctx context.Context, req *DescribeVariablesRequest) (*DescribeVariablesResponse, error) {
	var in dto.DescribeVariablesRequest
	if req != nil && req.Applicant != nil {
		applicant, err := parseApplicant(req.Applicant)
		if err != nil {
			return nil, err
		}
		in.Applicant = &applicant
	}

	resp, err := h.describeVariables.Execute(ctx, in)
	if err != nil {
		return nil, h.toStatus(ctx, "describe variables", err)
	}

	out := &DescribeVariablesResponse{Variables: make([]*VariableMsg, len(resp.Variables))}
	for i, v := range resp.Variables {
		sets := make([]*FuzzySetMsg, len(v.Sets))
		for j, s := range v.Sets {
			sets[j] = &FuzzySetMsg{Name: s.Name, Points: s.Points[:], Degree: s.Degree}
		}
		out.Variables[i] = &VariableMsg{
			Name:   v.Name,
			Label:  v.Label,
			Unit:   v.Unit,
			Min:    v.Min,
			Max:    v.Max,
			Output: v.Output,
			Sets:   sets,
			Value:  v.Value,
		}
	}
	return out, nil
}

// toStatus maps application errors to gRPC status codes.
func (h *RiskServiceHandler) toStatus(ctx context.Context, op string, err error) error {
	if isInvalidInput(err) {
		return status.Error(codes.InvalidArgument, err.Error())
	}
	h.logger.ErrorContext(ctx, "request failed", slog.String("operation", op), slog.String("error", err.Error()))
	return status.Errorf(codes.Internal, "failed to %s", op)
}

func isInvalidInput(err error) bool {
	return errors.Is(err, valueobject.ErrInvalidProfile) ||
		errors.Is(err, fuzzy.ErrNonFiniteInput) ||
		errors.Is(err, fuzzy.ErrMissingInput)
}

func parseApplicant(msg *ApplicantMsg) (dto.ApplicantRequest, error) {
	var (
		req dto.ApplicantRequest
		err error
	)

	if msg.ApplicantID != "" {
		req.ApplicantID, err = uuid.Parse(msg.ApplicantID)
		if err != nil {
			return dto.ApplicantRequest{}, status.Errorf(codes.InvalidArgument, "invalid applicant_id: %v", err)
		}
	}

	amounts := []struct {
		field string
		raw   string
		dst   *decimal.Decimal
	}{
		{"income", msg.Income, &req.Income},
		{"co_income", msg.CoIncome, &req.CoIncome},
		{"loan_amount", msg.LoanAmount, &req.LoanAmount},
		{"installment", msg.Installment, &req.Installment},
	}
	for _, a := range amounts {
		if a.raw == "" {
			*a.dst = decimal.Zero
			continue
		}
		*a.dst, err = decimal.NewFromString(a.raw)
		if err != nil {
			return dto.ApplicantRequest{}, status.Errorf(codes.InvalidArgument, "invalid %s: %v", a.field, err)
		}
	}

	req.Age = int(msg.Age)
	req.Dependents = int(msg.Dependents)
	return req, nil
}

func toAssessmentMsg(resp dto.AssessmentResponse) *AssessmentMsg {
	fuzzified := make(map[string]*DegreesMsg, len(resp.Fuzzified))
	for variable, degrees := range resp.Fuzzified {
		fuzzified[variable] = &DegreesMsg{Degrees: degrees}
	}

	active := make([]*ActiveRuleMsg, len(resp.ActiveRules))
	for i, ar := range resp.ActiveRules {
		antecedents := make([]*AntecedentMsg, len(ar.Antecedents))
		for j, ad := range ar.Antecedents {
			antecedents[j] = &AntecedentMsg{Variable: ad.Variable, Set: ad.Set, Value: ad.Value, Degree: ad.Degree}
		}
		active[i] = &ActiveRuleMsg{
			Index:       int32(ar.Index),
			Rule:        ar.Rule,
			Description: ar.Description,
			Strength:    ar.Strength,
			Antecedents: antecedents,
		}
	}

	var label string
	if level, err := valueobject.RiskLevelFromString(resp.RiskLevel); err == nil {
		label = level.Label() + " Risk"
	}

	return &AssessmentMsg{
		ID:              resp.ID.String(),
		ApplicantID:     resp.ApplicantID.String(),
		Score:           resp.Score,
		RiskLevel:       resp.RiskLevel,
		RiskLabel:       label,
		Decision:        resp.Decision,
		Fuzzified:       fuzzified,
		RuleStrengths:   resp.RuleStrengths,
		ActiveRules:     active,
		AggregatedCurve: resp.AggregatedCurve,
		CurveOrigin:     resp.CurveOrigin,
		AssessedAt:      resp.AssessedAt.Format(time.RFC3339Nano),
	}
}
