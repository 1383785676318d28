package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/domain/valueobject"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/pkg/fuzzy"
)

// ErrIncompatibleEngine is returned when a rule set cannot be driven by applicant profiles.
var ErrIncompatibleEngine = errors.New("engine incompatible with applicant profile")

// ErrEngineNotReady is returned by Ready when the engine cannot score.
var ErrEngineNotReady = errors.New("risk engine not ready")

// RiskEngine is a domain service that scores applicant profiles with a fuzzy
// inference engine. Its configuration is read-only, so it is safe for concurrent use.
type RiskEngine struct {
	engine *fuzzy.Engine
}

// NewRiskEngine binds a loaded engine to the applicant profile. Every input
// variable must be an applicant attribute and the output domain must lie within
// the 0-100 score range the risk bands are defined on.
func NewRiskEngine(engine *fuzzy.Engine) (*RiskEngine, error) {
	if engine == nil {
		return nil, fmt.Errorf("%w: engine is required", ErrIncompatibleEngine)
	}
	reg := engine.Registry()
	for _, v := range reg.Inputs() {
		if !slices.Contains(valueobject.ApplicantAttributes, v.Name()) {
			return nil, fmt.Errorf("%w: input variable %q is not an applicant attribute", ErrIncompatibleEngine, v.Name())
		}
	}
	out := reg.Output()
	if out.Min() < 0 || out.Max() > 100 {
		return nil, fmt.Errorf("%w: output %q domain [%v,%v] exceeds [0,100]", ErrIncompatibleEngine, out.Name(), out.Min(), out.Max())
	}
	return &RiskEngine{engine: engine}, nil
}

// Evaluate scores a profile and returns the full inference result.
func (e *RiskEngine) Evaluate(profile valueobject.ApplicantProfile) (fuzzy.Result, error) {
	result, err := e.engine.Evaluate(profile.ToInputs())
	if err != nil {
		return fuzzy.Result{}, fmt.Errorf("evaluate applicant %s: %w", profile.ApplicantID(), err)
	}
	return result, nil
}

// Ready scores the midpoint of every input domain and fails unless the engine
// produces a score inside [0,100].
func (e *RiskEngine) Ready(context.Context) error {
	if e == nil || e.engine == nil {
		return fmt.Errorf("%w: no rule set loaded", ErrEngineNotReady)
	}
	inputs := make(fuzzy.Inputs)
	for _, v := range e.engine.Registry().Inputs() {
		inputs[v.Name()] = (v.Min() + v.Max()) / 2
	}
	result, err := e.engine.Evaluate(inputs)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEngineNotReady, err)
	}
	if math.IsNaN(result.Score) || result.Score < 0 || result.Score > 100 {
		return fmt.Errorf("%w: score %v outside [0,100]", ErrEngineNotReady, result.Score)
	}
	return nil
}

// Registry returns the variables the engine reasons over.
func (e *RiskEngine) Registry() *fuzzy.Registry {
	return e.engine.Registry()
}

// Rules returns the rule base in display order.
func (e *RiskEngine) Rules() []fuzzy.Rule {
	return e.engine.RuleBase().Rules()
}

// FiredRules names the rules that fired in result, preferring each rule's
// description over its rendered form.
func FiredRules(result fuzzy.Result) []string {
	names := make([]string, 0, len(result.ActiveRules))
	for _, ar := range result.ActiveRules {
		if ar.Rule.Description != "" {
			names = append(names, ar.Rule.Description)
			continue
		}
		names = append(names, ar.Rule.String())
	}
	return names
}
