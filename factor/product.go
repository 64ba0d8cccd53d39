// SPDX-License-Identifier: MIT

// Combination operations: scalar scaling, pairwise and n-ary product, and
// division. All of them are pure package-level functions; operands are never
// mutated and every result is a freshly built factor.

package factor

import "github.com/katalvlaran/pgm/tensor"

// ---------- error context tags ----------

const (
	ctxScale       = "Scale"       // operation tag used in error wrappers
	ctxMultiply    = "Multiply"    // operation tag used in error wrappers
	ctxMultiplyAll = "MultiplyAll" // operation tag used in error wrappers
	ctxDivide      = "Divide"      // operation tag used in error wrappers
)

// checkOperands guards a binary combination: both factors non-nil and
// populated, and every shared variable declared with the same cardinality on
// both sides (a silent broadcast across a disagreeing axis would corrupt the
// result's shape invariant). Complexity: O(|a| * |b|) on tiny scopes.
func checkOperands(method string, a, b *Factor) error {
	if a == nil || b == nil {
		return factorErrorf(method, ErrNilFactor)
	}
	if err := a.requireValues(method); err != nil {
		return err
	}
	if err := b.requireValues(method); err != nil {
		return err
	}
	var k, at int
	for k = 0; k < len(b.vars); k++ {
		at = a.indexOf(b.vars[k])
		if at >= 0 && a.card[at] != b.card[k] {
			return nameErrorf(method, b.vars[k], ErrCardinalityMismatch)
		}
	}

	return nil
}

// Scale multiplies every weight of f by a scalar and returns the scaled
// buffer over f's existing scope. A deliberately narrow fast path for
// uniform scaling (normalization): the scope does not change, so no new
// factor is built; pair the buffer with f's metadata or feed it back via
// ReplaceValues. f itself is untouched.
//
// Errors:
//   - ErrNilFactor, ErrNoValues.
//
// Complexity: O(size).
func Scale(f *Factor, alpha float64) (*tensor.Dense, error) {
	if f == nil {
		return nil, factorErrorf(ctxScale, ErrNilFactor)
	}
	if err := f.requireValues(ctxScale); err != nil {
		return nil, err
	}

	return f.values.Scale(alpha), nil
}

// Multiply combines two factors into their product over the union scope.
// MAIN DESCRIPTION:
//   - The core combination of the algebra: the result ranges over every
//     variable either operand mentions, and result(assignment) equals
//     a(restriction to a's scope) * b(restriction to b's scope) for every
//     joint assignment.
//
// Implementation:
//   - Stage 1: guards: non-nil, populated, shared cardinalities agree.
//   - Stage 2: clone both operands and extend each clone with the
//     variables it lacks from the other, so both now range over the union
//     (appended axes are extent-1 broadcast placeholders).
//   - Stage 3: permute the second clone's axes into the first clone's
//     variable order. The permutation is keyed by variable identity:
//     aligned axis i is the right clone's axis holding left.vars[i].
//   - Stage 4: broadcast-multiply the aligned buffers. Every union variable
//     has full extent in at least one operand, so the product restores
//     full extents and the shape invariant.
//
// Behavior highlights:
//   - The result's scope is the left clone's extended order: a's variables
//     first, then b's extras in b's scope order.
//   - State labels merge with the left operand winning on shared
//     variables; labels for appended variables come from b.
//   - Commutative and associative in the values assigned to any fixed joint
//     assignment; the scope ORDER depends on operand order.
//
// Inputs:
//   - a, b: populated factors (unchanged by the call).
//
// Returns:
//   - *Factor over the union scope.
//
// Errors:
//   - ErrNilFactor, ErrNoValues, ErrCardinalityMismatch.
//
// Determinism:
//   - Fixed scope and append order; repeated runs agree bit-for-bit.
//
// Complexity:
//   - Time O(result size * union rank), Space O(result size).
func Multiply(a, b *Factor) (*Factor, error) {
	if err := checkOperands(ctxMultiply, a, b); err != nil {
		return nil, err
	}

	left, right := a.Clone(), b.Clone()
	if err := left.ExtendWith(right); err != nil {
		return nil, err
	}
	if err := right.ExtendWith(left); err != nil {
		return nil, err
	}

	// Align right's axes to left's variable order (identity-keyed gather).
	perm := make([]int, len(left.vars))
	var k int
	for k = 0; k < len(left.vars); k++ {
		perm[k] = right.indexOf(left.vars[k])
	}
	aligned, err := right.values.Permute(perm...)
	if err != nil {
		return nil, factorErrorf(ctxMultiply, err)
	}

	prod, err := tensor.BroadcastMul(left.values, aligned)
	if err != nil {
		return nil, factorErrorf(ctxMultiply, err)
	}
	left.values = prod // the extended clone becomes the result

	return left, nil
}

// MultiplyAll left-folds Multiply across the operands: the result scope
// starts at fs[0]'s order and accumulates extras left to right. A single
// operand is cloned as-is.
//
// Errors:
//   - ErrNoOperands, plus everything Multiply returns.
//
// Complexity: O(sum of intermediate product sizes).
func MultiplyAll(fs ...*Factor) (*Factor, error) {
	if len(fs) == 0 {
		return nil, factorErrorf(ctxMultiplyAll, ErrNoOperands)
	}
	if len(fs) == 1 {
		if fs[0] == nil {
			return nil, factorErrorf(ctxMultiplyAll, ErrNilFactor)
		}
		if err := fs[0].requireValues(ctxMultiplyAll); err != nil {
			return nil, err
		}

		return fs[0].Clone(), nil
	}

	out, err := Multiply(fs[0], fs[1])
	if err != nil {
		return nil, err
	}
	var k int
	for k = 2; k < len(fs); k++ {
		out, err = Multiply(out, fs[k])
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Divide computes the elementwise quotient a / b over a's scope.
// MAIN DESCRIPTION:
//   - The message-division step of belief propagation. The denominator's
//     scope must be a subset of the numerator's; the result keeps a's scope,
//     cardinalities and labels exactly.
//
// Implementation:
//   - Stage 1: guards as in Multiply, plus scope containment: every b
//     variable must appear in a.
//   - Stage 2: clone b, extend it with a's remaining variables and permute
//     into a's order, then broadcast-divide.
//
// Behavior highlights:
//   - 0/0 yields 0 (the usual convention for unreachable message states);
//     x/0 for x != 0 yields the IEEE infinity of x's sign.
//
// Errors:
//   - ErrNilFactor, ErrNoValues, ErrCardinalityMismatch,
//     ErrUnknownVariable (denominator variable outside a's scope).
//
// Complexity:
//   - Time O(size of a * rank), Space O(size of a).
func Divide(a, b *Factor) (*Factor, error) {
	if err := checkOperands(ctxDivide, a, b); err != nil {
		return nil, err
	}
	var k int
	for k = 0; k < len(b.vars); k++ {
		if a.indexOf(b.vars[k]) < 0 {
			return nil, nameErrorf(ctxDivide, b.vars[k], ErrUnknownVariable)
		}
	}

	right := b.Clone()
	if err := right.ExtendWith(a); err != nil {
		return nil, err
	}
	perm := make([]int, len(a.vars))
	for k = 0; k < len(a.vars); k++ {
		perm[k] = right.indexOf(a.vars[k])
	}
	aligned, err := right.values.Permute(perm...)
	if err != nil {
		return nil, factorErrorf(ctxDivide, err)
	}

	out := a.Clone()
	quot, err := tensor.BroadcastDiv(out.values, aligned)
	if err != nil {
		return nil, factorErrorf(ctxDivide, err)
	}
	out.values = quot

	return out, nil
}
