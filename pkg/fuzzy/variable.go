package fuzzy

import (
	"fmt"
	"math"
)

// Set is a named trapezoidal fuzzy set.
type Set struct {
	Name  string    `json:"name"`
	Shape Trapezoid `json:"shape"`
}

// Variable is a linguistic variable: a numeric domain and its named fuzzy sets.
type Variable struct {
	name  string
	label string
	unit  string
	min   float64
	max   float64
	sets  []Set
	index map[string]int
}

// VariableOption sets optional display metadata on a Variable.
type VariableOption func(*Variable)

// WithLabel sets a human-readable label.
func WithLabel(label string) VariableOption {
	return func(v *Variable) { v.label = label }
}

// WithUnit sets the unit the crisp values are expressed in.
func WithUnit(unit string) VariableOption {
	return func(v *Variable) { v.unit = unit }
}

// NewVariable builds a variable over [min, max] with the given sets. Set names must be
// non-empty and unique, and every shape must be well ordered. Sets may extend beyond
// the domain.
func NewVariable(name string, min, max float64, sets []Set, opts ...VariableOption) (*Variable, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: variable name is required", ErrInvalidConfig)
	}
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
		return nil, fmt.Errorf("%w: variable %q: domain bounds must be finite", ErrInvalidConfig, name)
	}
	if min > max {
		return nil, fmt.Errorf("%w: variable %q: domain min %g exceeds max %g", ErrInvalidConfig, name, min, max)
	}
	if len(sets) == 0 {
		return nil, fmt.Errorf("%w: variable %q: at least one set is required", ErrInvalidConfig, name)
	}

	v := &Variable{
		name:  name,
		min:   min,
		max:   max,
		sets:  make([]Set, len(sets)),
		index: make(map[string]int, len(sets)),
	}
	for i, s := range sets {
		if s.Name == "" {
			return nil, fmt.Errorf("%w: variable %q: set %d has no name", ErrInvalidConfig, name, i)
		}
		if _, dup := v.index[s.Name]; dup {
			return nil, fmt.Errorf("%w: variable %q: duplicate set %q", ErrInvalidConfig, name, s.Name)
		}
		if err := s.Shape.Validate(); err != nil {
			return nil, fmt.Errorf("variable %q: set %q: %w", name, s.Name, err)
		}
		v.sets[i] = s
		v.index[s.Name] = i
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

func (v *Variable) Name() string  { return v.name }
func (v *Variable) Label() string { return v.label }
func (v *Variable) Unit() string  { return v.unit }
func (v *Variable) Min() float64  { return v.min }
func (v *Variable) Max() float64  { return v.max }

// Sets returns a copy of the sets in declaration order.
func (v *Variable) Sets() []Set {
	out := make([]Set, len(v.sets))
	copy(out, v.sets)
	return out
}

// Set looks up a set shape by name.
func (v *Variable) Set(name string) (Trapezoid, bool) {
	i, ok := v.index[name]
	if !ok {
		return Trapezoid{}, false
	}
	return v.sets[i].Shape, true
}

// Fuzzify returns the degree of x in every set of v, keyed by set name.
func (v *Variable) Fuzzify(x float64) map[string]float64 {
	degrees := make(map[string]float64, len(v.sets))
	for _, s := range v.sets {
		degrees[s.Name] = Membership(x, s.Shape)
	}
	return degrees
}

// Samples returns the output sample points min, min+1, ... up to and including max.
func (v *Variable) Samples() []float64 {
	n := int(math.Floor(v.max-v.min)) + 1
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = v.min + float64(i)
	}
	return xs
}

// MaxOutputSamples bounds the width of the output domain, which is sampled at unit steps.
const MaxOutputSamples = 1 << 20

// Registry declares the input variables of a system and its single output variable.
type Registry struct {
	inputs []*Variable
	index  map[string]*Variable
	output *Variable
}

// NewRegistry builds a registry. Variable names, including the output's, must be unique.
func NewRegistry(output *Variable, inputs ...*Variable) (*Registry, error) {
	if output == nil {
		return nil, fmt.Errorf("%w: output variable is required", ErrInvalidConfig)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: at least one input variable is required", ErrInvalidConfig)
	}
	if output.max-output.min >= MaxOutputSamples {
		return nil, fmt.Errorf("%w: output variable %q: domain [%g, %g] is too wide to sample",
			ErrInvalidConfig, output.name, output.min, output.max)
	}

	r := &Registry{
		inputs: make([]*Variable, 0, len(inputs)),
		index:  make(map[string]*Variable, len(inputs)),
		output: output,
	}
	for _, v := range inputs {
		if v == nil {
			return nil, fmt.Errorf("%w: nil input variable", ErrInvalidConfig)
		}
		if v.name == output.name {
			return nil, fmt.Errorf("%w: variable %q is declared as both input and output", ErrInvalidConfig, v.name)
		}
		if _, dup := r.index[v.name]; dup {
			return nil, fmt.Errorf("%w: duplicate input variable %q", ErrInvalidConfig, v.name)
		}
		r.inputs = append(r.inputs, v)
		r.index[v.name] = v
	}
	return r, nil
}

// Inputs returns the input variables in declaration order.
func (r *Registry) Inputs() []*Variable {
	out := make([]*Variable, len(r.inputs))
	copy(out, r.inputs)
	return out
}

// Input looks up an input variable by name.
func (r *Registry) Input(name string) (*Variable, bool) {
	v, ok := r.index[name]
	return v, ok
}

// Output returns the output variable.
func (r *Registry) Output() *Variable {
	return r.output
}
