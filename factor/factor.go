// SPDX-License-Identifier: MIT

// Package factor - the discrete factor type: scope, cardinalities, optional
// dense value buffer and optional state labels.
//
// Purpose:
//   - Own the data model: an ordered variable scope, positionally aligned
//     positive cardinalities, an optional row-major value buffer of matching
//     shape and optional per-variable state-label lists.
//   - Guarantee the model invariants after every operation: no duplicate
//     variables, len(variables) == len(cardinalities), and, when populated,
//     buffer rank and extents matching the declared cardinalities (the one
//     documented exception is the broadcast placeholder state created by
//     ExtendWith, where appended axes hold extent 1 until combination).
//   - Fail fast with sentinel errors; never mutate a valid factor on the
//     error path.
//
// AI-Hints:
//   - ReplaceValues is the only mutating operation besides ExtendWith; clone
//     before mutating anything shared across goroutines.
//   - Value resolves labels through state names; use At for integer
//     coordinates when no labels are registered.
//
// Complexity quicksheet:
//   - New: O(size) when values are supplied, O(scope²) scope checks on tiny
//     scopes; Clone: O(size); Value/At: O(scope) + O(rank) lookup.

package factor

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/pgm/tensor"
)

// ---------- error context tags ----------

const (
	ctxNew           = "New"            // ctor tag
	ctxReplaceValues = "ReplaceValues"  // method tag used in error wrappers
	ctxValue         = "Value"          // method tag used in error wrappers
	ctxAt            = "At"             // method tag used in error wrappers
	ctxAssignmentAt  = "AssignmentAt"   // method tag used in error wrappers
	ctxCardinalityOf = "CardinalityOf"  // method tag used in error wrappers
)

// factorErrorf wraps an error with a uniform Factor context tag.
// Stable, human-friendly messages; preserves the sentinel via %w.
// Complexity: O(1).
func factorErrorf(method string, err error) error {
	return fmt.Errorf("Factor.%s: %w", method, err)
}

// nameErrorf wraps an error with a Factor context tag plus the offending
// variable or state name, e.g. `Factor.CardinalityOf("Z"): factor: variable
// not in scope`. Complexity: O(1).
func nameErrorf(method, name string, err error) error {
	return fmt.Errorf("Factor.%s(%q): %w", method, name, err)
}

// Factor maps every joint assignment of a finite set of discrete variables
// to a non-negative weight.
//   - vars is the ordered scope; identifiers never repeat.
//   - card holds the domain size of vars[i] at position i (always >= 1).
//   - values is the dense row-major buffer shaped by card, or nil while the
//     factor is structurally declared but unpopulated.
//   - states optionally maps a variable to its ordered state labels; the
//     label at position k names integer state k.
type Factor struct {
	vars   []string            // ordered scope (unique identifiers)
	card   []int               // positionally aligned domain sizes
	values *tensor.Dense       // nil = unpopulated
	states map[string][]string // nil = no labels registered
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Factor)(nil)

// jointSize returns the product of a cardinality slice (1 for empty scope).
// Complexity: O(scope).
func jointSize(card []int) int {
	size := 1
	var k int
	for k = 0; k < len(card); k++ {
		size *= card[k]
	}

	return size
}

// cloneStates deep-copies a state-label mapping (nil stays nil).
// Complexity: O(total labels).
func cloneStates(states map[string][]string) map[string][]string {
	if states == nil {
		return nil
	}
	out := make(map[string][]string, len(states))
	for v, labels := range states {
		cp := make([]string, len(labels))
		copy(cp, labels)
		out[v] = cp
	}

	return out
}

// New constructs a factor over the given scope.
// MAIN DESCRIPTION:
//   - The single public constructor. The scope and cardinalities are
//     mandatory; values and state names arrive via functional options and
//     may be attached later (ReplaceValues), supporting factors that are
//     declared structurally before their numbers are known.
//
// Implementation:
//   - Stage 1: structural checks: equal lengths, positive cardinalities,
//     no duplicate identifiers.
//   - Stage 2: resolve options; validate and deep-copy state names (keys
//     must be scope members, list lengths must match cardinalities, labels
//     must be unique per variable).
//   - Stage 3: when values are supplied, check the flat count against the
//     cardinality product and build the row-major buffer (the right-most
//     variable varies fastest).
//
// Behavior highlights:
//   - An empty scope is legal: the factor holds a single weight (this is
//     what marginalizing every variable produces).
//   - All inputs are deep-copied; the factor never aliases caller memory.
//
// Inputs:
//   - variables: ordered scope identifiers, unique.
//   - cardinality: positive domain sizes, positionally aligned.
//   - opts: WithValues, WithStateNames.
//
// Returns:
//   - *Factor satisfying every model invariant.
//
// Errors:
//   - ErrLengthMismatch, ErrBadCardinality, ErrDuplicateVariable,
//     ErrUnknownVariable (state-name key outside scope), ErrShapeMismatch
//     (value count or label-list length), ErrDuplicateState.
//
// Determinism:
//   - Scope order is the caller's order; no map iteration over the scope.
//
// Complexity:
//   - Time O(size + total labels), Space O(size + total labels).
func New(variables []string, cardinality []int, opts ...Option) (*Factor, error) {
	return newFactor(ctxNew, variables, cardinality, newConfig(opts...))
}

// newFactor is the shared constructor engine behind New and the canonical
// builders; method selects the context tag errors are wrapped with.
func newFactor(method string, variables []string, cardinality []int, cfg config) (*Factor, error) {
	if len(variables) != len(cardinality) {
		return nil, factorErrorf(method, ErrLengthMismatch)
	}
	var k int
	for k = 0; k < len(cardinality); k++ {
		if cardinality[k] < 1 {
			return nil, nameErrorf(method, variables[k], ErrBadCardinality)
		}
	}
	seen := make(map[string]struct{}, len(variables))
	for k = 0; k < len(variables); k++ {
		if _, dup := seen[variables[k]]; dup {
			return nil, nameErrorf(method, variables[k], ErrDuplicateVariable)
		}
		seen[variables[k]] = struct{}{}
	}

	// Own the scope before touching options; nothing escapes on error paths.
	vars := make([]string, len(variables))
	copy(vars, variables)
	card := make([]int, len(cardinality))
	copy(card, cardinality)

	states, err := validateStates(method, cfg.stateNames, vars, card)
	if err != nil {
		return nil, err
	}

	f := &Factor{vars: vars, card: card, states: states}
	if cfg.values != nil {
		if len(cfg.values) != jointSize(card) {
			return nil, factorErrorf(method, ErrShapeMismatch)
		}
		buf, terr := tensor.NewFromFlat(cfg.values, card...)
		if terr != nil {
			return nil, factorErrorf(method, terr)
		}
		f.values = buf
	}

	return f, nil
}

// validateStates checks a state-name mapping against a scope and returns an
// independent deep copy. Keys must be scope members, each label list must
// match its variable's cardinality and labels must be unique per variable.
// A nil mapping passes through as nil.
func validateStates(method string, states map[string][]string, vars []string, card []int) (map[string][]string, error) {
	if states == nil {
		return nil, nil
	}
	domain := make(map[string]int, len(vars)) // variable -> cardinality
	var k int
	for k = 0; k < len(vars); k++ {
		domain[vars[k]] = card[k]
	}
	out := make(map[string][]string, len(states))
	for v, labels := range states {
		want, ok := domain[v]
		if !ok {
			return nil, nameErrorf(method, v, ErrUnknownVariable)
		}
		if len(labels) != want {
			return nil, nameErrorf(method, v, ErrShapeMismatch)
		}
		uniq := make(map[string]struct{}, len(labels))
		for k = 0; k < len(labels); k++ {
			if _, dup := uniq[labels[k]]; dup {
				return nil, nameErrorf(method, v, ErrDuplicateState)
			}
			uniq[labels[k]] = struct{}{}
		}
		cp := make([]string, len(labels))
		copy(cp, labels)
		out[v] = cp
	}

	return out, nil
}

// indexOf locates a variable in the scope, or -1 when absent.
// Scopes are small; a linear scan keeps the structure allocation-free.
// Complexity: O(scope).
func (f *Factor) indexOf(name string) int {
	var k int
	for k = 0; k < len(f.vars); k++ {
		if f.vars[k] == name {
			return k
		}
	}

	return -1
}

// requireValues returns ErrNoValues (wrapped with the method tag) when the
// factor is structurally declared but unpopulated. Complexity: O(1).
func (f *Factor) requireValues(method string) error {
	if f.values == nil {
		return factorErrorf(method, ErrNoValues)
	}

	return nil
}

// Variables returns a copy of the ordered scope.
// Complexity: O(scope).
func (f *Factor) Variables() []string {
	out := make([]string, len(f.vars))
	copy(out, f.vars)

	return out
}

// Cardinality returns a copy of the positionally aligned domain sizes.
// Complexity: O(scope).
func (f *Factor) Cardinality() []int {
	out := make([]int, len(f.card))
	copy(out, f.card)

	return out
}

// StateNames returns a deep copy of the state-label mapping (nil when no
// labels are registered). Complexity: O(total labels).
func (f *Factor) StateNames() map[string][]string { return cloneStates(f.states) }

// Values returns the factor's value buffer, or nil while unpopulated.
// The tensor is the factor's own storage, exposed for direct buffer access
// by inference collaborators; Clone it before mutating anything shared.
// Complexity: O(1).
func (f *Factor) Values() *tensor.Dense { return f.values }

// IsPopulated reports whether a value buffer is attached.
// Complexity: O(1).
func (f *Factor) IsPopulated() bool { return f.values != nil }

// Size returns the declared joint domain size: the product of all
// cardinalities, 1 for an empty scope. Complexity: O(scope).
func (f *Factor) Size() int { return jointSize(f.card) }

// Clone returns a fully independent duplicate: copied scope and
// cardinalities, duplicated value buffer, deep-copied state labels.
// Mutating either side never affects the other.
// Complexity: O(size + total labels).
func (f *Factor) Clone() *Factor {
	cp := &Factor{
		vars:   make([]string, len(f.vars)),
		card:   make([]int, len(f.card)),
		states: cloneStates(f.states),
	}
	copy(cp.vars, f.vars)
	copy(cp.card, f.card)
	if f.values != nil {
		cp.values = f.values.Clone()
	}

	return cp
}

// ReplaceValues attaches (or swaps) the value buffer, reshaping the flat
// slice into the cardinality-defined shape.
// MAIN DESCRIPTION:
//   - The one mutating operation of the data model, present so a factor can
//     be declared structurally before its numbers are known.
//
// Implementation:
//   - Stage 1: check the flat count against the cardinality product.
//   - Stage 2: build the replacement buffer, then swap. The factor is never
//     left half-mutated: on any error the previous buffer stays intact.
//
// Inputs:
//   - flat: values in row-major order (right-most variable fastest).
//
// Errors:
//   - ErrShapeMismatch.
//
// Complexity:
//   - Time O(size), Space O(size).
func (f *Factor) ReplaceValues(flat []float64) error {
	if len(flat) != jointSize(f.card) {
		return factorErrorf(ctxReplaceValues, ErrShapeMismatch)
	}
	buf, err := tensor.NewFromFlat(flat, f.card...)
	if err != nil {
		return factorErrorf(ctxReplaceValues, err)
	}
	f.values = buf // swap only after successful construction

	return nil
}

// stateIndex resolves a state label to its integer index for one variable.
// Returns ErrUnknownState when no labels are registered for the variable or
// the label is absent from its list. Complexity: O(cardinality).
func (f *Factor) stateIndex(method, variable, label string) (int, error) {
	labels, ok := f.states[variable] // nil map lookups are safe and miss
	if !ok {
		return 0, nameErrorf(method, variable, ErrUnknownState)
	}
	var k int
	for k = 0; k < len(labels); k++ {
		if labels[k] == label {
			return k, nil
		}
	}

	return 0, nameErrorf(method, label, ErrUnknownState)
}

// Value looks up the weight for a complete labelled assignment.
// MAIN DESCRIPTION:
//   - The by-name read path: every scope variable must be assigned exactly
//     one registered state label; the resolved coordinate tuple indexes the
//     buffer.
//
// Implementation:
//   - Stage 1: require a populated buffer.
//   - Stage 2: the assignment's key set must equal the scope exactly (size
//     check + membership sweep in scope order).
//   - Stage 3: resolve each label through the state names; read the cell.
//
// Inputs:
//   - assignment: variable -> state label, one entry per scope variable.
//
// Returns:
//   - float64: the stored weight.
//
// Errors:
//   - ErrNoValues, ErrScopeMismatch (missing or extra keys),
//     ErrUnknownState (label or labels missing).
//
// Determinism:
//   - Scope-order resolution; no map iteration.
//
// Complexity:
//   - Time O(scope * max cardinality), Space O(scope).
func (f *Factor) Value(assignment map[string]string) (float64, error) {
	if err := f.requireValues(ctxValue); err != nil {
		return 0, err
	}
	if len(assignment) != len(f.vars) {
		return 0, factorErrorf(ctxValue, ErrScopeMismatch)
	}
	coords := make([]int, len(f.vars))
	var k int
	for k = 0; k < len(f.vars); k++ {
		label, ok := assignment[f.vars[k]]
		if !ok {
			// Equal sizes plus a missing scope key means some key is foreign.
			return 0, nameErrorf(ctxValue, f.vars[k], ErrScopeMismatch)
		}
		idx, err := f.stateIndex(ctxValue, f.vars[k], label)
		if err != nil {
			return 0, err
		}
		coords[k] = idx
	}

	return f.values.At(coords...)
}

// At reads the weight at an integer coordinate tuple, one coordinate per
// scope variable in scope order. The label-free companion of Value.
//
// Errors:
//   - ErrNoValues; tensor.ErrAxisMismatch / tensor.ErrOutOfRange from the
//     underlying buffer for arity and bounds violations.
//
// Complexity: O(scope).
func (f *Factor) At(coords ...int) (float64, error) {
	if err := f.requireValues(ctxAt); err != nil {
		return 0, err
	}

	return f.values.At(coords...)
}

// AssignmentAt inverts a flat buffer offset into a labelled assignment,
// mapping each scope variable to the state label of the coordinate the
// offset decodes to. Requires registered labels for every scope variable.
//
// Errors:
//   - ErrNoValues, ErrUnknownState (a variable lacks labels);
//     tensor.ErrOutOfRange for an invalid offset.
//
// Complexity: O(scope).
func (f *Factor) AssignmentAt(i int) (map[string]string, error) {
	if err := f.requireValues(ctxAssignmentAt); err != nil {
		return nil, err
	}
	coords, err := f.values.CoordsOf(i)
	if err != nil {
		return nil, factorErrorf(ctxAssignmentAt, err)
	}
	out := make(map[string]string, len(f.vars))
	var k int
	for k = 0; k < len(f.vars); k++ {
		labels, ok := f.states[f.vars[k]]
		if !ok {
			return nil, nameErrorf(ctxAssignmentAt, f.vars[k], ErrUnknownState)
		}
		out[f.vars[k]] = labels[coords[k]]
	}

	return out, nil
}

// CardinalityOf returns the domain size for each requested variable.
// A metadata operation: it works on unpopulated factors too.
//
// Errors:
//   - ErrUnknownVariable.
//
// Complexity: O(len(names) * scope).
func (f *Factor) CardinalityOf(names ...string) (map[string]int, error) {
	out := make(map[string]int, len(names))
	var k, at int
	for k = 0; k < len(names); k++ {
		at = f.indexOf(names[k])
		if at < 0 {
			return nil, nameErrorf(ctxCardinalityOf, names[k], ErrUnknownVariable)
		}
		out[names[k]] = f.card[at]
	}

	return out, nil
}

// String renders a compact scope/shape dump for diagnostics.
// Format: Factor{scope: [A B], card: [2 2], populated: true}.
// Complexity: O(scope).
func (f *Factor) String() string {
	var b strings.Builder
	b.WriteString("Factor{scope: ")
	b.WriteString(fmt.Sprintf("%v", f.vars))
	b.WriteString(", card: ")
	b.WriteString(fmt.Sprintf("%v", f.card))
	b.WriteString(", populated: ")
	b.WriteString(fmt.Sprintf("%t", f.values != nil))
	b.WriteString("}")

	return b.String()
}
