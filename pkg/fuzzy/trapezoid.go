package fuzzy

import (
	"fmt"
	"math"
)

// Trapezoid is a four-breakpoint membership shape with A <= B <= C <= D: zero outside
// [A, D], rising on (A, B), one on [B, C] and falling on (C, D). Triangles (B == C)
// and steps (A == B or C == D) are valid.
type Trapezoid struct {
	A float64 `json:"a" yaml:"a"`
	B float64 `json:"b" yaml:"b"`
	C float64 `json:"c" yaml:"c"`
	D float64 `json:"d" yaml:"d"`
}

// NewTrapezoid validates the breakpoint ordering and returns the shape.
func NewTrapezoid(a, b, c, d float64) (Trapezoid, error) {
	t := Trapezoid{A: a, B: b, C: c, D: d}
	if err := t.Validate(); err != nil {
		return Trapezoid{}, err
	}
	return t, nil
}

// Validate reports whether the breakpoints are finite and ordered.
func (t Trapezoid) Validate() error {
	for _, p := range t.Points() {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return fmt.Errorf("%w: breakpoints %v must be finite", ErrInvalidConfig, t.Points())
		}
	}
	if !(t.A <= t.B && t.B <= t.C && t.C <= t.D) {
		return fmt.Errorf("%w: breakpoints %v must satisfy a <= b <= c <= d", ErrInvalidConfig, t.Points())
	}
	return nil
}

// Points returns the breakpoints in order.
func (t Trapezoid) Points() [4]float64 {
	return [4]float64{t.A, t.B, t.C, t.D}
}

// Membership returns the degree of x in t.
func (t Trapezoid) Membership(x float64) float64 {
	return Membership(x, t)
}

// Membership returns the degree, in [0, 1], to which x belongs to t.
//
// The edge test runs first: x == A or x == D yields 0 even when A == B or C == D would
// place that point on the plateau. Callers that expect a step set to include its
// vertical edge must widen the set instead.
func Membership(x float64, t Trapezoid) float64 {
	switch {
	case x <= t.A || x >= t.D:
		return 0
	case t.B <= x && x <= t.C:
		return 1
	case t.A < x && x < t.B:
		return (x - t.A) / (t.B - t.A)
	default:
		return (t.D - x) / (t.D - t.C)
	}
}
