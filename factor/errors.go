// SPDX-License-Identifier: MIT
// Package factor: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the factor
// package. All operations MUST return these sentinels and tests MUST check
// them via errors.Is. Coordinate-level violations surface as tensor package
// sentinels (tensor.ErrOutOfRange, tensor.ErrAxisMismatch); everything keyed
// by variable or state NAME lives here.

package factor

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "factor: ..." for consistency and to allow
// easy grepping across logs. DO NOT %w wrap these sentinels when returning
// directly; if context is essential, wrap with fmt.Errorf("ctx: %w", ErrX)
// at the detection site — callers still match via errors.Is.

var (
	// ErrNilFactor indicates that a nil *Factor (receiver or argument) was
	// passed to an operation.
	ErrNilFactor = errors.New("factor: nil factor")

	// ErrDuplicateVariable is returned when a scope lists the same variable
	// identifier more than once. Scope uniqueness is a model invariant.
	ErrDuplicateVariable = errors.New("factor: duplicate variable in scope")

	// ErrLengthMismatch indicates that variables and cardinalities differ in
	// length at construction.
	ErrLengthMismatch = errors.New("factor: variables and cardinalities disagree in length")

	// ErrBadCardinality is returned for a non-positive domain size. Every
	// discrete variable must have at least one state.
	ErrBadCardinality = errors.New("factor: cardinality must be positive")

	// ErrShapeMismatch indicates that a flat value count does not equal the
	// product of the declared cardinalities (construction, ReplaceValues),
	// or that a state-label list disagrees with its variable's cardinality.
	ErrShapeMismatch = errors.New("factor: value count does not match cardinality product")

	// ErrScopeMismatch indicates that an assignment's key set does not
	// exactly equal the factor's variable scope.
	ErrScopeMismatch = errors.New("factor: assignment keys do not match scope")

	// ErrUnknownState indicates a state label (or state index) that is not
	// registered for the variable, including the case where the factor
	// carries no state names at all.
	ErrUnknownState = errors.New("factor: state not registered for variable")

	// ErrDuplicateState is returned when a variable's label list names the
	// same state twice, which would make label lookups ambiguous.
	ErrDuplicateState = errors.New("factor: duplicate state label for variable")

	// ErrUnknownVariable indicates a referenced variable outside the
	// factor's scope.
	ErrUnknownVariable = errors.New("factor: variable not in scope")

	// ErrCardinalityMismatch is returned when two operands of a combination
	// declare different domain sizes for the same shared variable.
	ErrCardinalityMismatch = errors.New("factor: operands disagree on a shared variable's cardinality")

	// ErrNoValues indicates an operation that requires a populated value
	// buffer was invoked on a structurally-declared, unpopulated factor.
	ErrNoValues = errors.New("factor: value buffer not populated")

	// ErrNoOperands is returned by n-ary facades invoked with no factors.
	ErrNoOperands = errors.New("factor: no operands")
)
