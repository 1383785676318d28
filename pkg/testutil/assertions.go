package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akulaahhhh/Loan-Risk-Evaluator/pkg/fuzzy"
)

// ScoreTolerance is the absolute tolerance used when comparing crisp scores.
const ScoreTolerance = 1e-9

// AssertScore compares a defuzzified score within ScoreTolerance.
func AssertScore(t *testing.T, expected, actual float64, msgAndArgs ...interface{}) bool {
	t.Helper()
	return assert.InDelta(t, expected, actual, ScoreTolerance, msgAndArgs...)
}

// RequireFiredOnly fails the test unless exactly the given rule indexes fired,
// in rule-base order.
func RequireFiredOnly(t *testing.T, result fuzzy.Result, indexes ...int) {
	t.Helper()

	fired := make([]int, 0, len(result.ActiveRules))
	for _, ar := range result.ActiveRules {
		fired = append(fired, ar.Index)
	}
	require.Equal(t, indexes, fired, "fired rules")
}

// AssertCurveInUnitRange checks every aggregated sample lies in [0, 1].
func AssertCurveInUnitRange(t *testing.T, curve []float64) {
	t.Helper()
	for i, v := range curve {
		assert.GreaterOrEqual(t, v, 0.0, "curve[%d]", i)
		assert.LessOrEqual(t, v, 1.0, "curve[%d]", i)
	}
}
