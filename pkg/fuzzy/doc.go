// Package fuzzy implements a Mamdani-style fuzzy inference engine.
//
// An evaluation runs a single pipeline over caller-supplied configuration:
//
//  1. Fuzzify every crisp input against every trapezoidal set of its variable.
//  2. Compute each rule's firing strength as the minimum of its antecedent degrees.
//  3. Clip each fired rule's consequent set at its strength and aggregate the clipped
//     shapes by pointwise maximum over the output domain, sampled at unit steps.
//  4. Reduce the aggregated curve to a crisp score by its centre of gravity.
//
// Registry and RuleBase values are validated when they are built and are immutable
// afterwards, so a single Engine may be shared by any number of goroutines. Evaluate
// never mutates its arguments and performs no I/O.
package fuzzy
