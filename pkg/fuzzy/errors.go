package fuzzy

import "errors"

var (
	// ErrInvalidConfig is wrapped by every error returned while building variables,
	// registries and rule bases.
	ErrInvalidConfig = errors.New("fuzzy: invalid configuration")

	// ErrMissingInput is returned by Evaluate when a declared input variable has no
	// crisp value.
	ErrMissingInput = errors.New("fuzzy: missing input")

	// ErrNonFiniteInput is returned by Evaluate when a crisp value is NaN or infinite.
	ErrNonFiniteInput = errors.New("fuzzy: non-finite input")
)
