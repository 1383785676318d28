package fuzzy_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akulaahhhh/Loan-Risk-Evaluator/pkg/fuzzy"
)

func TestMembership(t *testing.T) {
	triangle := fuzzy.Trapezoid{A: 0, B: 5, C: 5, D: 10}
	point := fuzzy.Trapezoid{A: 3, B: 3, C: 3, D: 3}

	tests := []struct {
		name  string
		shape fuzzy.Trapezoid
		x     float64
		want  float64
	}{
		{name: "left edge with step is zero", shape: shapeLo, x: 0, want: 0},
		{name: "below domain", shape: shapeLo, x: -1, want: 0},
		{name: "plateau", shape: shapeLo, x: 2, want: 1},
		{name: "plateau end", shape: shapeLo, x: 4, want: 1},
		{name: "falling ramp", shape: shapeLo, x: 5, want: 0.5},
		{name: "right edge", shape: shapeLo, x: 6, want: 0},
		{name: "rising ramp", shape: shapeHi, x: 5, want: 0.5},
		{name: "plateau start", shape: shapeHi, x: 6, want: 1},
		{name: "right edge with step is zero", shape: shapeHi, x: 10, want: 0},
		{name: "above domain", shape: shapeHi, x: 11, want: 0},
		{name: "triangle peak", shape: triangle, x: 5, want: 1},
		{name: "triangle left slope", shape: triangle, x: 2.5, want: 0.5},
		{name: "triangle right slope", shape: triangle, x: 7.5, want: 0.5},
		{name: "single point set is empty", shape: point, x: 3, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fuzzy.Membership(tt.x, tt.shape))
			assert.Equal(t, tt.want, tt.shape.Membership(tt.x))
		})
	}
}

func TestNewTrapezoid(t *testing.T) {
	t.Run("accepts ordered breakpoints", func(t *testing.T) {
		tr, err := fuzzy.NewTrapezoid(1, 2, 2, 3)
		require.NoError(t, err)
		assert.Equal(t, [4]float64{1, 2, 2, 3}, tr.Points())
	})

	tests := []struct {
		name       string
		a, b, c, d float64
	}{
		{name: "b before a", a: 2, b: 1, c: 3, d: 4},
		{name: "c before b", a: 1, b: 3, c: 2, d: 4},
		{name: "d before c", a: 1, b: 2, c: 4, d: 3},
		{name: "NaN breakpoint", a: 0, b: math.NaN(), c: 1, d: 2},
		{name: "infinite breakpoint", a: math.Inf(-1), b: 0, c: 1, d: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fuzzy.NewTrapezoid(tt.a, tt.b, tt.c, tt.d)
			require.Error(t, err)
			assert.True(t, errors.Is(err, fuzzy.ErrInvalidConfig))
		})
	}
}
