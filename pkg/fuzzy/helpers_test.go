package fuzzy_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akulaahhhh/Loan-Risk-Evaluator/pkg/fuzzy"
)

var (
	shapeLo   = fuzzy.Trapezoid{A: 0, B: 0, C: 4, D: 6}
	shapeHi   = fuzzy.Trapezoid{A: 4, B: 6, C: 10, D: 10}
	shapeLow  = fuzzy.Trapezoid{A: 0, B: 0, C: 40, D: 60}
	shapeHigh = fuzzy.Trapezoid{A: 40, B: 60, C: 100, D: 100}
)

func newInput(t *testing.T, name string) *fuzzy.Variable {
	t.Helper()
	v, err := fuzzy.NewVariable(name, 0, 10, []fuzzy.Set{
		{Name: "Lo", Shape: shapeLo},
		{Name: "Hi", Shape: shapeHi},
	})
	require.NoError(t, err)
	return v
}

func newRisk(t *testing.T) *fuzzy.Variable {
	t.Helper()
	v, err := fuzzy.NewVariable("risk", 0, 100, []fuzzy.Set{
		{Name: "Low", Shape: shapeLow},
		{Name: "High", Shape: shapeHigh},
	})
	require.NoError(t, err)
	return v
}

func rule(consequent string, antecedents ...fuzzy.Clause) fuzzy.Rule {
	return fuzzy.Rule{
		Antecedents: antecedents,
		Consequent:  fuzzy.Clause{Variable: "risk", Set: consequent},
	}
}

// newSingleInputEngine builds v in {Lo, Hi} -> risk in {Low, High} with
// "v is Lo -> Low" and "v is Hi -> High".
func newSingleInputEngine(t *testing.T) *fuzzy.Engine {
	t.Helper()
	reg, err := fuzzy.NewRegistry(newRisk(t), newInput(t, "v"))
	require.NoError(t, err)

	engine, err := fuzzy.NewEngine(reg,
		rule("Low", fuzzy.Clause{Variable: "v", Set: "Lo"}),
		rule("High", fuzzy.Clause{Variable: "v", Set: "Hi"}),
	)
	require.NoError(t, err)
	return engine
}

// newTwoInputEngine adds w and a conjunctive rule "v is Lo AND w is Hi -> High".
func newTwoInputEngine(t *testing.T) *fuzzy.Engine {
	t.Helper()
	reg, err := fuzzy.NewRegistry(newRisk(t), newInput(t, "v"), newInput(t, "w"))
	require.NoError(t, err)

	engine, err := fuzzy.NewEngine(reg,
		rule("Low", fuzzy.Clause{Variable: "v", Set: "Lo"}),
		rule("High", fuzzy.Clause{Variable: "v", Set: "Lo"}, fuzzy.Clause{Variable: "w", Set: "Hi"}),
		rule("High", fuzzy.Clause{Variable: "w", Set: "Hi"}),
	)
	require.NoError(t, err)
	return engine
}
