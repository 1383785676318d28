package usecase

import (
	"context"
	"fmt"

	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/application/dto"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/domain/service"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/domain/valueobject"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/pkg/fuzzy"
)

// evaluation is an applicant profile and the inference result it produced.
type evaluation struct {
	profile valueobject.ApplicantProfile
	result  fuzzy.Result
}

// evaluateOptional runs the engine when an applicant is supplied and returns
// nil otherwise.
func evaluateOptional(engine *service.RiskEngine, req *dto.ApplicantRequest) (*evaluation, error) {
	if req == nil {
		return nil, nil
	}
	profile, err := valueobject.NewApplicantProfile(req.ToParams())
	if err != nil {
		return nil, err
	}
	result, err := engine.Evaluate(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate applicant: %w", err)
	}
	return &evaluation{profile: profile, result: result}, nil
}

// ListRules returns the rule catalogue, optionally with per-rule strengths.
type ListRules struct {
	engine *service.RiskEngine
}

// NewListRules creates a new ListRules use case.
func NewListRules(engine *service.RiskEngine) *ListRules {
	return &ListRules{engine: engine}
}

// Execute lists every rule in rule base order.
func (uc *ListRules) Execute(_ context.Context, req dto.ListRulesRequest) (dto.ListRulesResponse, error) {
	eval, err := evaluateOptional(uc.engine, req.Applicant)
	if err != nil {
		return dto.ListRulesResponse{}, err
	}

	rules := uc.engine.Rules()
	resp := dto.ListRulesResponse{
		Rules:     make([]dto.RuleResponse, len(rules)),
		Evaluated: eval != nil,
	}
	for i, r := range rules {
		rr := dto.FromRule(i, r)
		if eval != nil {
			strength := eval.result.RuleStrengths[i]
			rr.Strength = &strength
			rr.Active = strength > 0
		}
		resp.Rules[i] = rr
	}
	return resp, nil
}

// DescribeVariables returns every variable with its fuzzy sets, optionally
// with an applicant's crisp values and membership degrees.
type DescribeVariables struct {
	engine *service.RiskEngine
}

// NewDescribeVariables creates a new DescribeVariables use case.
func NewDescribeVariables(engine *service.RiskEngine) *DescribeVariables {
	return &DescribeVariables{engine: engine}
}

// Execute describes inputs in registry order followed by the output variable.
func (uc *DescribeVariables) Execute(_ context.Context, req dto.DescribeVariablesRequest) (dto.DescribeVariablesResponse, error) {
	eval, err := evaluateOptional(uc.engine, req.Applicant)
	if err != nil {
		return dto.DescribeVariablesResponse{}, err
	}

	reg := uc.engine.Registry()
	inputs := reg.Inputs()
	resp := dto.DescribeVariablesResponse{
		Variables: make([]dto.VariableResponse, 0, len(inputs)+1),
	}

	var crisp fuzzy.Inputs
	if eval != nil {
		crisp = eval.profile.ToInputs()
	}
	for _, v := range inputs {
		vr := dto.FromVariable(v, false)
		if eval != nil {
			value := crisp[v.Name()]
			vr.Value = &value
			for i := range vr.Sets {
				degree := eval.result.Fuzzified.Degree(v.Name(), vr.Sets[i].Name)
				vr.Sets[i].Degree = &degree
			}
		}
		resp.Variables = append(resp.Variables, vr)
	}

	out := dto.FromVariable(reg.Output(), true)
	if eval != nil {
		score := eval.result.Score
		out.Value = &score
	}
	resp.Variables = append(resp.Variables, out)

	return resp, nil
}
