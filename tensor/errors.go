// SPDX-License-Identifier: MIT
// Package tensor: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the tensor
// package. All operations MUST return these sentinels and tests MUST check
// them via errors.Is. No operation panics on user-triggered conditions;
// panics are reserved for programmer errors in private helpers (if any).

package tensor

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "tensor: ..." for consistency and to allow
// easy grepping across logs. DO NOT %w wrap these sentinels when returning
// directly; if context is essential, wrap with fmt.Errorf("ctx: %w", ErrX)
// at the detection site — callers still match via errors.Is.

var (
	// ErrNilTensor indicates that a nil *Dense (receiver or argument) was used.
	ErrNilTensor = errors.New("tensor: nil tensor")

	// ErrBadShape is returned when a requested shape is invalid (extent < 1).
	// Constructors must validate shape before allocation. A rank-0 shape
	// (no axes at all) is legal and denotes a scalar.
	ErrBadShape = errors.New("tensor: invalid shape")

	// ErrShapeMismatch indicates that a flat value count does not equal the
	// product of the target shape's extents (construction, Reshape).
	ErrShapeMismatch = errors.New("tensor: element count does not match shape")

	// ErrAxisMismatch indicates a count disagreement along the axis dimension:
	// coordinate tuple length vs rank, permutation length vs rank, or two
	// operands of different rank where equal rank is required.
	ErrAxisMismatch = errors.New("tensor: axis count mismatch")

	// ErrBadAxis indicates an axis index outside [0, rank) or a duplicate
	// axis where a proper permutation/selection was required.
	ErrBadAxis = errors.New("tensor: axis out of range")

	// ErrOutOfRange indicates that a coordinate or flat index is outside
	// valid bounds. Public indexers (At/SetAt/CoordsOf) MUST return this,
	// never panic.
	ErrOutOfRange = errors.New("tensor: index out of range")

	// ErrNotBroadcastable signals that two equal-rank shapes disagree on an
	// axis where neither extent is 1, so no broadcast output shape exists.
	ErrNotBroadcastable = errors.New("tensor: shapes are not broadcast-compatible")
)
