// SPDX-License-Identifier: MIT

// Scope extension: grow a factor's scope by the variables another factor
// carries, preparing both operands of a combination for broadcasting.

package factor

// ctxExtendWith tags ExtendWith errors.
const ctxExtendWith = "ExtendWith"

// ExtendWith appends every variable of other that is missing from f's
// scope, in the order those variables appear in other's scope.
// MAIN DESCRIPTION:
//   - The alignment step of factor combination. Appended variables get a
//     broadcast placeholder: the metadata records the true cardinality taken
//     from other, while the buffer grows a trailing axis of extent 1. In
//     this intermediate state the buffer extent of an appended axis is
//     deliberately smaller than its declared cardinality; the elementwise
//     combination that follows restores full extents, because every union
//     variable has full extent in at least one operand.
//
// Implementation:
//   - Stage 1: guards: other must be non-nil, f must be populated (there is
//     no buffer to grow otherwise). other's buffer is never touched, so an
//     unpopulated other is fine.
//   - Stage 2: collect other's variables absent from f, preserving their
//     first appearance order in other's scope.
//   - Stage 3: grow the buffer by that many unit axes, then append scope
//     entries and true cardinalities, and adopt other's state labels for
//     the appended variables. Labels for variables already in f's scope are
//     kept as they are.
//
// Inputs:
//   - other: the factor whose scope is merged in (unchanged by the call).
//
// Errors:
//   - ErrNilFactor, ErrNoValues.
//
// Determinism:
//   - Appended order is other's scope order; repeated runs agree.
//
// Complexity:
//   - Time O(|f| * |other|) on tiny scopes, Space O(appended).
func (f *Factor) ExtendWith(other *Factor) error {
	if other == nil {
		return factorErrorf(ctxExtendWith, ErrNilFactor)
	}
	if err := f.requireValues(ctxExtendWith); err != nil {
		return err
	}

	// Missing variables in other's scope order.
	missing := make([]int, 0, len(other.vars)) // indexes into other.vars
	var k int
	for k = 0; k < len(other.vars); k++ {
		if f.indexOf(other.vars[k]) < 0 {
			missing = append(missing, k)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	if err := f.values.AppendUnitDims(len(missing)); err != nil {
		return factorErrorf(ctxExtendWith, err)
	}

	var at int
	for _, at = range missing {
		f.vars = append(f.vars, other.vars[at])
		f.card = append(f.card, other.card[at])
		labels, ok := other.states[other.vars[at]]
		if !ok {
			continue
		}
		if f.states == nil {
			f.states = make(map[string][]string, len(missing))
		}
		cp := make([]string, len(labels))
		copy(cp, labels)
		f.states[other.vars[at]] = cp
	}

	return nil
}
