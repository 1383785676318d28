package fuzzy

import (
	"fmt"
	"strings"
)

// Clause is a single "variable is set" proposition.
type Clause struct {
	Variable string `json:"variable"`
	Set      string `json:"set"`
}

// String renders the clause as "variable is set".
func (c Clause) String() string {
	return c.Variable + " is " + c.Set
}

// Rule is a conjunction of antecedent clauses implying one consequent clause on the
// output variable. Antecedents are evaluated in slice order.
type Rule struct {
	Antecedents []Clause `json:"antecedents"`
	Consequent  Clause   `json:"consequent"`
	Description string   `json:"description,omitempty"`
}

// String renders the rule as "IF a is X AND b is Y THEN out is Z".
func (r Rule) String() string {
	parts := make([]string, len(r.Antecedents))
	for i, c := range r.Antecedents {
		parts[i] = c.String()
	}
	return "IF " + strings.Join(parts, " AND ") + " THEN " + r.Consequent.String()
}

// RuleBase is an ordered, validated list of rules bound to the registry it was
// checked against. Order affects presentation only.
type RuleBase struct {
	rules    []Rule
	registry *Registry
}

// NewRuleBase validates every rule against reg and returns the rule base. The first
// malformed rule is reported with its zero-based index.
func NewRuleBase(reg *Registry, rules ...Rule) (*RuleBase, error) {
	if reg == nil {
		return nil, fmt.Errorf("%w: registry is required", ErrInvalidConfig)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: at least one rule is required", ErrInvalidConfig)
	}

	rb := &RuleBase{
		rules:    make([]Rule, len(rules)),
		registry: reg,
	}
	for i, r := range rules {
		if err := validateRule(reg, r); err != nil {
			return nil, fmt.Errorf("rule %d (%s): %w", i, r, err)
		}
		rb.rules[i] = cloneRule(r)
	}
	return rb, nil
}

func validateRule(reg *Registry, r Rule) error {
	if len(r.Antecedents) == 0 {
		return fmt.Errorf("%w: no antecedents", ErrInvalidConfig)
	}

	seen := make(map[string]struct{}, len(r.Antecedents))
	for _, c := range r.Antecedents {
		v, ok := reg.Input(c.Variable)
		if !ok {
			return fmt.Errorf("%w: antecedent %q references undeclared input variable %q", ErrInvalidConfig, c, c.Variable)
		}
		if _, ok := v.Set(c.Set); !ok {
			return fmt.Errorf("%w: antecedent %q references undeclared set %q of %q", ErrInvalidConfig, c, c.Set, c.Variable)
		}
		if _, dup := seen[c.Variable]; dup {
			return fmt.Errorf("%w: variable %q appears in more than one antecedent", ErrInvalidConfig, c.Variable)
		}
		seen[c.Variable] = struct{}{}
	}

	out := reg.Output()
	if r.Consequent.Variable != out.Name() {
		return fmt.Errorf("%w: consequent %q must target output variable %q", ErrInvalidConfig, r.Consequent, out.Name())
	}
	if _, ok := out.Set(r.Consequent.Set); !ok {
		return fmt.Errorf("%w: consequent %q references undeclared set %q of %q", ErrInvalidConfig, r.Consequent, r.Consequent.Set, out.Name())
	}
	return nil
}

func cloneRule(r Rule) Rule {
	ants := make([]Clause, len(r.Antecedents))
	copy(ants, r.Antecedents)
	r.Antecedents = ants
	return r
}

// Len returns the number of rules.
func (rb *RuleBase) Len() int {
	return len(rb.rules)
}

// Rules returns a copy of the rules in order.
func (rb *RuleBase) Rules() []Rule {
	out := make([]Rule, len(rb.rules))
	for i, r := range rb.rules {
		out[i] = cloneRule(r)
	}
	return out
}

// Registry returns the registry the rules were validated against.
func (rb *RuleBase) Registry() *Registry {
	return rb.registry
}
