// SPDX-License-Identifier: MIT

// Canonical builders: ready-made factors for common starting points of an
// inference run. Each builder validates through the same engine as New, so
// every model invariant holds for the result.

package factor

import (
	"fmt"
	"math/rand"
)

// ---------- error context tags ----------

const (
	ctxIdentity  = "Identity"  // builder tag used in error wrappers
	ctxRandom    = "Random"    // builder tag used in error wrappers
	ctxIndicator = "Indicator" // builder tag used in error wrappers
)

// Identity builds the multiplicative neutral factor over the given scope:
// every weight is 1, so multiplying any factor by it changes nothing.
// Accepts WithStateNames; value options are ignored.
//
// Errors: the structural set of New (ErrLengthMismatch, ErrBadCardinality,
// ErrDuplicateVariable, label validation).
//
// Complexity: O(size).
func Identity(variables []string, cardinality []int, opts ...Option) (*Factor, error) {
	cfg := newConfig(opts...)
	cfg.values = nil // builder owns the buffer
	f, err := newFactor(ctxIdentity, variables, cardinality, cfg)
	if err != nil {
		return nil, err
	}

	ones := make([]float64, f.Size())
	var k int
	for k = 0; k < len(ones); k++ {
		ones[k] = 1
	}
	if err = f.ReplaceValues(ones); err != nil {
		return nil, err
	}

	return f, nil
}

// Random builds a factor with weights drawn uniformly from [0, 1).
// Unseeded calls fall back to DefaultSeed, so fixtures stay reproducible;
// use WithSeed or WithRand to control the stream. Accepts WithStateNames.
//
// Errors: the structural set of New.
//
// Complexity: O(size).
func Random(variables []string, cardinality []int, opts ...Option) (*Factor, error) {
	cfg := newConfig(opts...)
	cfg.values = nil // builder owns the buffer
	f, err := newFactor(ctxRandom, variables, cardinality, cfg)
	if err != nil {
		return nil, err
	}

	rng := cfg.rng
	if rng == nil {
		rng = rand.New(rand.NewSource(DefaultSeed))
	}
	weights := make([]float64, f.Size())
	var k int
	for k = 0; k < len(weights); k++ {
		weights[k] = rng.Float64()
	}
	if err = f.ReplaceValues(weights); err != nil {
		return nil, err
	}

	return f, nil
}

// Indicator builds a one-hot factor over a single variable: weight 1 at the
// given integer state, 0 elsewhere. The factor-algebra encoding of hard
// evidence. Accepts WithStateNames.
//
// Errors: the structural set of New; ErrUnknownState when state falls
// outside [0, cardinality).
//
// Complexity: O(cardinality).
func Indicator(variable string, cardinality int, state int, opts ...Option) (*Factor, error) {
	cfg := newConfig(opts...)
	cfg.values = nil // builder owns the buffer
	f, err := newFactor(ctxIndicator, []string{variable}, []int{cardinality}, cfg)
	if err != nil {
		return nil, err
	}
	if state < 0 || state >= cardinality {
		return nil, fmt.Errorf("Factor.%s(%q): state %d: %w", ctxIndicator, variable, state, ErrUnknownState)
	}

	hot := make([]float64, cardinality)
	hot[state] = 1
	if err = f.ReplaceValues(hot); err != nil {
		return nil, err
	}

	return f, nil
}
