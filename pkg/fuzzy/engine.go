package fuzzy

import (
	"fmt"
	"math"
)

// Fuzzify computes the degree of every declared input in every set of its variable.
// Inputs that are not declared in reg are ignored.
func Fuzzify(inputs Inputs, reg *Registry) (Degrees, error) {
	degrees := make(Degrees, len(reg.inputs))
	for _, v := range reg.inputs {
		x, ok := inputs[v.name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingInput, v.name)
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("%w: %q = %v", ErrNonFiniteInput, v.name, x)
		}
		degrees[v.name] = v.Fuzzify(x)
	}
	return degrees, nil
}

// EvaluateRules computes the firing strength of every rule as the minimum of its
// antecedent degrees. It returns the strengths, parallel to rb, and the rules that
// fired with their antecedent breakdown.
func EvaluateRules(inputs Inputs, degrees Degrees, rb *RuleBase) ([]float64, []ActiveRule) {
	strengths := make([]float64, len(rb.rules))
	active := make([]ActiveRule, 0)

	for i, r := range rb.rules {
		ants := make([]AntecedentDegree, len(r.Antecedents))
		strength := 1.0
		for j, c := range r.Antecedents {
			d := degrees.Degree(c.Variable, c.Set)
			ants[j] = AntecedentDegree{
				Variable: c.Variable,
				Set:      c.Set,
				Value:    inputs[c.Variable],
				Degree:   d,
			}
			if d < strength {
				strength = d
			}
		}
		strengths[i] = strength
		if strength > 0 {
			active = append(active, ActiveRule{
				Index:       i,
				Rule:        cloneRule(r),
				Strength:    strength,
				Antecedents: ants,
			})
		}
	}
	return strengths, active
}

// Aggregate clips each active rule's consequent set at the rule's strength and takes
// the pointwise maximum over the output samples. With no active rules the curve is
// all zeros.
func Aggregate(output *Variable, active []ActiveRule) []float64 {
	samples := output.Samples()
	curve := make([]float64, len(samples))

	shapes := make([]Trapezoid, len(active))
	for i, r := range active {
		shapes[i], _ = output.Set(r.Rule.Consequent.Set)
	}

	for i, x := range samples {
		peak := 0.0
		for j, r := range active {
			clipped := Membership(x, shapes[j])
			if r.Strength < clipped {
				clipped = r.Strength
			}
			if clipped > peak {
				peak = clipped
			}
		}
		curve[i] = peak
	}
	return curve
}

// Centroid returns the centre of gravity of curve, whose sample i sits at origin+i.
// A curve with zero total mass has a centroid of 0.
func Centroid(origin float64, curve []float64) float64 {
	var num, den float64
	for i, mu := range curve {
		num += (origin + float64(i)) * mu
		den += mu
	}
	if den == 0 {
		return 0
	}
	return num / den
}

// Evaluate runs fuzzification, rule evaluation, aggregation and defuzzification.
// rb must have been built against reg. Only missing or non-finite inputs are errors;
// finite values outside a variable's domain are evaluated as given.
func Evaluate(inputs Inputs, reg *Registry, rb *RuleBase) (Result, error) {
	if reg == nil || rb == nil {
		return Result{}, fmt.Errorf("%w: registry and rule base are required", ErrInvalidConfig)
	}
	if rb.registry != reg {
		return Result{}, fmt.Errorf("%w: rule base was validated against a different registry", ErrInvalidConfig)
	}

	degrees, err := Fuzzify(inputs, reg)
	if err != nil {
		return Result{}, err
	}

	strengths, active := EvaluateRules(inputs, degrees, rb)
	curve := Aggregate(reg.output, active)

	return Result{
		Fuzzified:       degrees,
		RuleStrengths:   strengths,
		ActiveRules:     active,
		AggregatedCurve: curve,
		CurveOrigin:     reg.output.min,
		Score:           Centroid(reg.output.min, curve),
	}, nil
}

// Engine pairs a registry with a rule base validated against it.
type Engine struct {
	registry *Registry
	rules    *RuleBase
}

// NewEngine validates rules against reg and returns an engine.
func NewEngine(reg *Registry, rules ...Rule) (*Engine, error) {
	rb, err := NewRuleBase(reg, rules...)
	if err != nil {
		return nil, err
	}
	return &Engine{registry: reg, rules: rb}, nil
}

// Evaluate runs the inference pipeline for one input vector.
func (e *Engine) Evaluate(inputs Inputs) (Result, error) {
	return Evaluate(inputs, e.registry, e.rules)
}

// Registry returns the engine's registry.
func (e *Engine) Registry() *Registry { return e.registry }

// RuleBase returns the engine's rule base.
func (e *Engine) RuleBase() *RuleBase { return e.rules }
