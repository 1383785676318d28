package dto

import "github.com/akulaahhhh/Loan-Risk-Evaluator/pkg/fuzzy"

// ListRulesRequest optionally carries an applicant to evaluate every rule against.
type ListRulesRequest struct {
	Applicant *ApplicantRequest `json:"applicant,omitempty"`
}

// ClauseResponse is a "variable is set" proposition.
type ClauseResponse struct {
	Variable string `json:"variable"`
	Set      string `json:"set"`
}

// RuleResponse describes one rule of the rule base.
type RuleResponse struct {
	Strength    *float64         `json:"strength,omitempty"`
	Text        string           `json:"text"`
	Description string           `json:"description,omitempty"`
	Antecedents []ClauseResponse `json:"antecedents"`
	Consequent  ClauseResponse   `json:"consequent"`
	Index       int              `json:"index"`
	Active      bool             `json:"active"`
}

// ListRulesResponse lists the rule base in display order.
type ListRulesResponse struct {
	Rules     []RuleResponse `json:"rules"`
	Evaluated bool           `json:"evaluated"`
}

// FromRule maps a rule at index i.
func FromRule(i int, r fuzzy.Rule) RuleResponse {
	antecedents := make([]ClauseResponse, len(r.Antecedents))
	for j, c := range r.Antecedents {
		antecedents[j] = ClauseResponse(c)
	}
	return RuleResponse{
		Index:       i,
		Text:        r.String(),
		Description: r.Description,
		Antecedents: antecedents,
		Consequent:  ClauseResponse(r.Consequent),
	}
}

// DescribeVariablesRequest optionally carries an applicant whose values and
// degrees should be included.
type DescribeVariablesRequest struct {
	Applicant *ApplicantRequest `json:"applicant,omitempty"`
}

// SetResponse is one named trapezoid of a variable.
type SetResponse struct {
	Degree *float64   `json:"degree,omitempty"`
	Name   string     `json:"name"`
	Points [4]float64 `json:"points"`
}

// VariableResponse describes a linguistic variable.
type VariableResponse struct {
	Value  *float64      `json:"value,omitempty"`
	Name   string        `json:"name"`
	Label  string        `json:"label"`
	Unit   string        `json:"unit"`
	Sets   []SetResponse `json:"sets"`
	Min    float64       `json:"min"`
	Max    float64       `json:"max"`
	Output bool          `json:"output"`
}

// DescribeVariablesResponse lists inputs in registry order followed by the output.
type DescribeVariablesResponse struct {
	Variables []VariableResponse `json:"variables"`
}

// FromVariable maps a variable without applicant data.
func FromVariable(v *fuzzy.Variable, output bool) VariableResponse {
	sets := v.Sets()
	out := VariableResponse{
		Name:   v.Name(),
		Label:  v.Label(),
		Unit:   v.Unit(),
		Min:    v.Min(),
		Max:    v.Max(),
		Output: output,
		Sets:   make([]SetResponse, len(sets)),
	}
	for i, s := range sets {
		out.Sets[i] = SetResponse{Name: s.Name, Points: s.Shape.Points()}
	}
	return out
}
