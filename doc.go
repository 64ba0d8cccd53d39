// Package pgm is your in-memory toolkit for discrete probabilistic
// graphical models — the dense potentials and the factor algebra that
// exact inference is assembled from.
//
// 🚀 What is pgm?
//
//	A small, deterministic library that brings together:
//		• Factors: named variable scopes, positional cardinalities,
//		  optional human-readable state labels
//		• The algebra: product, division, scaling, sum- and
//		  max-marginalization, evidence reduction
//		• Canonical builders: identity, seeded random, one-hot evidence
//		• A dense N-dimensional substrate: row-major tensors with
//		  broadcasting, axis permutation and axis reduction
//
// ✨ Why choose pgm?
//
//   - Deterministic – fixed scope ordering, seeded randomness, no map
//     iteration on any value path
//   - Fail-fast – sentinel errors via errors.Is, no partial mutation of a
//     valid factor
//   - Pure algebra – operands are never mutated; every operation returns a
//     fresh factor
//
// Under the hood, everything is organized under two subpackages:
//
//	factor/ — the discrete factor type and its algebra (Multiply, Divide,
//	          Marginalize, MaxMarginalize, Reduce, builders)
//	tensor/ — dense row-major N-dimensional buffers: strides, broadcast
//	          arithmetic, permutation and reduction kernels
//
// Quick ASCII example:
//
//	    Rain ──▶ Wet
//
//	P(Rain) * P(Wet|Rain) is a product over the union scope [Rain, Wet];
//	marginalizing Rain out yields the belief over Wet.
//
// Dive into factor/example_test.go for an end-to-end variable-elimination
// walkthrough.
//
//	go get github.com/katalvlaran/pgm
package pgm
