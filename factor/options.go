// SPDX-License-Identifier: MIT

// Package factor: functional configuration for construction and builders.
// This file defines:
//   - Option (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors,
//   - newConfig helper (internal) that applies options in order.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness; the
//     stochastic builder falls back to a named default seed when unseeded.
//   - Single config as the source of truth: each constructor reads the knobs
//     it cares about and ignores the rest (WithValues is meaningless to the
//     canonical builders, WithSeed is meaningless to New).
//   - Reusability: config fields are unexported; public APIs consume ...Option.

package factor

import "math/rand"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultSeed drives the stochastic builder when no WithSeed/WithRand
	// option is supplied, keeping unseeded Random calls reproducible.
	DefaultSeed int64 = 1
)

// ---------- Public option type (functional) ----------

// Option mutates internal construction config. Options apply in the given
// order; later options override earlier ones.
type Option func(*config)

// config stores the effective configuration after applying Option setters.
// It is intentionally unexported; public entry points accept `...Option`
// and resolve them via newConfig.
type config struct {
	values     []float64           // flat buffer for New; nil = unpopulated
	stateNames map[string][]string // label lists; nil = none
	rng        *rand.Rand          // RNG for stochastic builders; nil = default seed
}

// ---------- Constructors (WithX) ----------

// WithValues supplies the flat value buffer at construction, in row-major
// order with the right-most variable varying fastest. A nil slice leaves the
// factor structurally declared but unpopulated (same as omitting the option).
// The slice is deep-copied by the consuming constructor.
func WithValues(flat []float64) Option {
	return func(c *config) { c.values = flat }
}

// WithStateNames supplies per-variable state label lists: the label at
// position k names integer state k. Every key must belong to the scope and
// every list's length must equal its variable's cardinality; the consuming
// constructor validates and deep-copies the mapping. A nil map is a no-op.
func WithStateNames(names map[string][]string) Option {
	return func(c *config) {
		if names == nil {
			return // keep previous setting; nil carries no information
		}
		c.stateNames = names
	}
}

// WithSeed freezes the stochastic builder's RNG for reproducible fixtures.
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}

// WithRand supplies a caller-owned RNG (stream sharing across builders).
// A nil RNG is ignored.
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		if r == nil {
			return // ignore nil; the default-seed fallback stays in effect
		}
		c.rng = r
	}
}

// newConfig constructs a config with deterministic defaults and applies all
// options in order (last wins). Returned by value to keep callers immutable.
// Complexity: O(len(opts)) time, O(1) space.
func newConfig(opts ...Option) config {
	cfg := config{
		values:     nil, // unpopulated unless WithValues is given
		stateNames: nil, // no labels unless WithStateNames is given
		rng:        nil, // default-seed fallback handled by the consumer
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}
