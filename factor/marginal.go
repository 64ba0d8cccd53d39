// SPDX-License-Identifier: MIT

// Scope reduction: sum-marginalization, max-marginalization and evidence
// reduction. Pure package-level functions over populated factors.

package factor

import (
	"sort"

	"github.com/katalvlaran/pgm/tensor"
)

// ---------- error context tags ----------

const (
	ctxMarginalize    = "Marginalize"    // operation tag used in error wrappers
	ctxMaxMarginalize = "MaxMarginalize" // operation tag used in error wrappers
	ctxReduce         = "Reduce"         // operation tag used in error wrappers
)

// marginalizeBy removes the named variables from f's scope, collapsing the
// corresponding buffer axes with the supplied reduction. Shared engine of
// Marginalize and MaxMarginalize.
//   - Every name must be a scope member; repeats in names collapse once.
//   - Kept variables preserve their relative order from the original scope;
//     state labels survive for kept variables only.
//   - Removing the whole scope is legal and yields an empty-scope factor
//     holding a single weight.
func marginalizeBy(method string, f *Factor, names []string, reduce func(*tensor.Dense, ...int) (*tensor.Dense, error)) (*Factor, error) {
	if f == nil {
		return nil, factorErrorf(method, ErrNilFactor)
	}
	if err := f.requireValues(method); err != nil {
		return nil, err
	}

	removed := make(map[int]struct{}, len(names))
	axes := make([]int, 0, len(names))
	var k, at int
	for k = 0; k < len(names); k++ {
		at = f.indexOf(names[k])
		if at < 0 {
			return nil, nameErrorf(method, names[k], ErrUnknownVariable)
		}
		if _, dup := removed[at]; dup {
			continue // removing a variable twice removes it once
		}
		removed[at] = struct{}{}
		axes = append(axes, at)
	}

	buf, err := reduce(f.values, axes...)
	if err != nil {
		return nil, factorErrorf(method, err)
	}

	out := &Factor{
		vars: make([]string, 0, len(f.vars)-len(axes)),
		card: make([]int, 0, len(f.vars)-len(axes)),
	}
	for k = 0; k < len(f.vars); k++ {
		if _, gone := removed[k]; gone {
			continue
		}
		out.vars = append(out.vars, f.vars[k])
		out.card = append(out.card, f.card[k])
		labels, ok := f.states[f.vars[k]]
		if !ok {
			continue
		}
		if out.states == nil {
			out.states = make(map[string][]string, len(out.vars))
		}
		cp := make([]string, len(labels))
		copy(cp, labels)
		out.states[f.vars[k]] = cp
	}
	out.values = buf

	return out, nil
}

// Marginalize sums the named variables out of f's scope.
// MAIN DESCRIPTION:
//   - The projection of the algebra: the result ranges over the kept
//     variables (original relative order preserved) and each kept cell
//     holds the sum of every buffer cell that projects onto it.
//
// Inputs:
//   - f: populated factor (unchanged by the call).
//   - names: scope members to remove; repeats collapse once.
//
// Errors:
//   - ErrNilFactor, ErrNoValues, ErrUnknownVariable.
//
// Determinism:
//   - Kept order is the original scope order; repeated runs agree.
//
// Complexity:
//   - Time O(size * rank), Space O(result size).
func Marginalize(f *Factor, names ...string) (*Factor, error) {
	return marginalizeBy(ctxMarginalize, f, names, (*tensor.Dense).SumAxes)
}

// MaxMarginalize removes the named variables keeping, for every kept cell,
// the maximum over the removed assignments instead of their sum. The
// max-product counterpart of Marginalize, used for most-probable-explanation
// queries. Errors and ordering guarantees match Marginalize.
//
// Complexity: O(size * rank).
func MaxMarginalize(f *Factor, names ...string) (*Factor, error) {
	return marginalizeBy(ctxMaxMarginalize, f, names, (*tensor.Dense).MaxAxes)
}

// Reduce fixes evidence: for every (variable, state label) entry the
// corresponding axis is sliced at the label's integer state and dropped
// from the scope.
// MAIN DESCRIPTION:
//   - Conditioning on observations. The result ranges over the unobserved
//     variables (original relative order preserved) and holds the weights
//     compatible with the evidence. Weights are NOT renormalized.
//
// Implementation:
//   - Stage 1: guards, then resolve every evidence entry against the
//     original scope: variable to axis, label to state index. Keys are
//     visited in sorted order so the first reported offender is stable.
//   - Stage 2: slice axes in descending axis order; earlier axes keep
//     their positions while later ones are dropped.
//   - Stage 3: rebuild the kept scope; labels survive for kept variables.
//
// Behavior highlights:
//   - Empty evidence clones the factor; full evidence yields an
//     empty-scope factor holding the single compatible weight.
//
// Errors:
//   - ErrNilFactor, ErrNoValues, ErrUnknownVariable, ErrUnknownState.
//
// Complexity:
//   - Time O(size), Space O(result size).
func Reduce(f *Factor, evidence map[string]string) (*Factor, error) {
	if f == nil {
		return nil, factorErrorf(ctxReduce, ErrNilFactor)
	}
	if err := f.requireValues(ctxReduce); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(evidence))
	for v := range evidence {
		keys = append(keys, v)
	}
	sort.Strings(keys) // deterministic validation order

	type slice struct{ axis, state int }
	sels := make([]slice, 0, len(keys))
	var k, at, idx int
	var err error
	for k = 0; k < len(keys); k++ {
		at = f.indexOf(keys[k])
		if at < 0 {
			return nil, nameErrorf(ctxReduce, keys[k], ErrUnknownVariable)
		}
		idx, err = f.stateIndex(ctxReduce, keys[k], evidence[keys[k]])
		if err != nil {
			return nil, err
		}
		sels = append(sels, slice{axis: at, state: idx})
	}

	// Descending axis order: slicing drops an axis, which would shift the
	// positions of any later (higher) axis resolved against the original
	// scope; lower axes are unaffected.
	sort.Slice(sels, func(i, j int) bool { return sels[i].axis > sels[j].axis })

	buf := f.values
	if len(sels) == 0 {
		buf = f.values.Clone()
	}
	gone := make(map[int]struct{}, len(sels))
	for k = 0; k < len(sels); k++ {
		buf, err = buf.Select(sels[k].axis, sels[k].state)
		if err != nil {
			return nil, factorErrorf(ctxReduce, err)
		}
		gone[sels[k].axis] = struct{}{}
	}

	out := &Factor{
		vars: make([]string, 0, len(f.vars)-len(sels)),
		card: make([]int, 0, len(f.vars)-len(sels)),
	}
	for k = 0; k < len(f.vars); k++ {
		if _, hit := gone[k]; hit {
			continue
		}
		out.vars = append(out.vars, f.vars[k])
		out.card = append(out.card, f.card[k])
		labels, ok := f.states[f.vars[k]]
		if !ok {
			continue
		}
		if out.states == nil {
			out.states = make(map[string][]string, len(out.vars))
		}
		cp := make([]string, len(labels))
		copy(cp, labels)
		out.states[f.vars[k]] = cp
	}
	out.values = buf

	return out, nil
}
