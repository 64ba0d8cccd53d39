// SPDX-License-Identifier: MIT
// Package: tensor
//
// Purpose:
//   - Axis-level kernels over Dense: trailing unit-dimension append, axis
//     permutation (gather), axis reductions (sum, max), scalar scaling and
//     equal-rank broadcast elementwise multiply/divide.
//   - Every kernel is a pure transformation returning a fresh Dense, except
//     AppendUnitDims which is an O(rank) metadata edit on the receiver.
//
// Design:
//   - All loops run over flat offsets with an explicit coordinate odometer;
//     no recursion, no map iteration, fixed right-most-fastest order.
//   - Broadcast axes contribute stride 0 to an operand's effective strides,
//     so one incremental-offset loop serves every extent combination.
//
// Determinism & Performance:
//   - Output element i is written exactly once per kernel pass; loops are
//     data-parallel over output cells in principle, sequential here.
//   - No hidden allocations beyond the output Dense and O(rank) scratch.
//
// AI-Hints:
//   - Align operand ranks before BroadcastMul/BroadcastDiv (AppendUnitDims).
//   - Permute follows the gather convention: result axis i is input axis
//     perm[i]; build perm by locating each target label in the source order.

package tensor

import (
	"math"
	"sort"
)

// ---------- error context tags ----------

const (
	ctxAppendUnit = "AppendUnitDims" // method tag used in error wrappers
	ctxPermute    = "Permute"        // method tag used in error wrappers
	ctxSumAxes    = "SumAxes"        // method tag used in error wrappers
	ctxMaxAxes    = "MaxAxes"        // method tag used in error wrappers
	ctxSelect     = "Select"         // method tag used in error wrappers
	ctxMul        = "BroadcastMul"   // op tag used in error wrappers
	ctxDiv        = "BroadcastDiv"   // op tag used in error wrappers
	ctxAllClose   = "AllClose"       // op tag used in error wrappers
)

// AppendUnitDims appends n trailing axes of extent 1 to the receiver.
// MAIN DESCRIPTION:
//   - Broadcast placeholder: the buffer is untouched, only shape/strides grow.
//     Appending unit extents on the right leaves every existing row-major
//     offset valid, so this is a metadata-only edit.
//
// Inputs:
//   - n: number of axes to append; 0 is a no-op.
//
// Errors:
//   - ErrBadShape when n < 0.
//
// Complexity:
//   - Time O(rank+n), Space O(rank+n).
func (d *Dense) AppendUnitDims(n int) error {
	if n < 0 {
		return denseErrorf(ctxAppendUnit, ErrBadShape)
	}
	if n == 0 {
		return nil // nothing to append
	}
	grown := make([]int, len(d.shape), len(d.shape)+n)
	copy(grown, d.shape)
	var k int
	for k = 0; k < n; k++ {
		grown = append(grown, 1)
	}
	d.shape = grown
	d.strides = computeStrides(grown) // trailing unit axes get stride 1

	return nil
}

// Permute returns a copy of the receiver with axes rearranged.
// MAIN DESCRIPTION:
//   - Gather convention: result axis i is the receiver's axis perm[i], so the
//     result's shape is shape[perm[0]], shape[perm[1]], ... This is the
//     direction needed to reorder one operand's axes to match another's
//     labeling: perm[i] = position of the target's i-th label in the source.
//
// Implementation:
//   - Stage 1: validate perm is a proper permutation of [0, rank).
//   - Stage 2: precompute effective source strides eff[i] = strides[perm[i]].
//   - Stage 3: odometer over result coordinates, maintaining the source
//     offset incrementally; copy one element per step.
//
// Behavior highlights:
//   - Pure: the receiver is never mutated.
//   - Rank 0 and identity permutations degrade to a plain Clone.
//
// Inputs:
//   - perm: permutation of [0, rank), gather convention.
//
// Returns:
//   - *Dense: fresh tensor with rearranged axes.
//
// Errors:
//   - ErrAxisMismatch (length), ErrBadAxis (range or duplicate).
//
// Determinism:
//   - Fixed odometer order; output offsets written 0,1,2,... exactly once.
//
// Complexity:
//   - Time O(size*rank) worst case, O(size) amortized; Space O(size).
func (d *Dense) Permute(perm ...int) (*Dense, error) {
	if err := ValidatePermutation(len(d.shape), perm); err != nil {
		return nil, denseErrorf(ctxPermute, err)
	}
	rank := len(d.shape)
	outShape := make([]int, rank)
	eff := make([]int, rank) // source stride per result axis
	var k int
	for k = 0; k < rank; k++ {
		outShape[k] = d.shape[perm[k]]
		eff[k] = d.strides[perm[k]]
	}
	out := &Dense{
		shape:   outShape,
		strides: computeStrides(outShape),
		data:    make([]float64, len(d.data)),
	}

	// Odometer over result coordinates; srcOff tracks Σ coords[k]*eff[k].
	coords := make([]int, rank)
	var srcOff, axis int
	var i int
	for i = 0; i < len(out.data); i++ {
		out.data[i] = d.data[srcOff] // result is written in flat order

		// Increment the right-most axis; cascade carries leftwards.
		for axis = rank - 1; axis >= 0; axis-- {
			coords[axis]++
			srcOff += eff[axis]
			if coords[axis] < outShape[axis] {
				break // no carry
			}
			coords[axis] = 0
			srcOff -= eff[axis] * outShape[axis] // rewind the exhausted axis
		}
	}

	return out, nil
}

// normalizeAxes sorts a copy of axes ascending and drops duplicates.
// Assumes entries were range-validated. Complexity: O(n log n).
func normalizeAxes(axes []int) []int {
	tmp := make([]int, len(axes))
	copy(tmp, axes)
	sort.Ints(tmp)
	uniq := tmp[:0]
	var k int
	for k = 0; k < len(tmp); k++ {
		if k == 0 || tmp[k] != tmp[k-1] {
			uniq = append(uniq, tmp[k])
		}
	}

	return uniq
}

// reduceLayout precomputes the output tensor and per-input-axis offset
// contributions for an axis reduction that removes the given (normalized)
// axes. contrib[k] is the output stride of input axis k, or 0 when axis k is
// removed; with it a single odometer pass over the input maintains the
// output offset incrementally.
// Complexity: O(rank) plus the output allocation.
func (d *Dense) reduceLayout(removed []int) (*Dense, []int) {
	rank := len(d.shape)
	drop := make([]bool, rank)
	var k int
	for k = 0; k < len(removed); k++ {
		drop[removed[k]] = true
	}
	keptShape := make([]int, 0, rank-len(removed))
	for k = 0; k < rank; k++ {
		if !drop[k] {
			keptShape = append(keptShape, d.shape[k])
		}
	}
	out := &Dense{
		shape:   keptShape,
		strides: computeStrides(keptShape),
		data:    make([]float64, sizeOf(keptShape)),
	}

	// Scatter the output strides back onto the kept input axes.
	contrib := make([]int, rank)
	pos := 0
	for k = 0; k < rank; k++ {
		if !drop[k] {
			contrib[k] = out.strides[pos]
			pos++
		}
	}

	return out, contrib
}

// SumAxes sums the receiver over the given axes, removing them.
// MAIN DESCRIPTION:
//   - Axis reduction by addition; kept axes preserve their relative order.
//
// Implementation:
//   - Stage 1: validate axes; normalize (sort + dedupe).
//   - Stage 2: precompute the reduced layout and per-axis contributions.
//   - Stage 3: single odometer pass over the input, accumulating into the
//     output offset implied by the kept coordinates.
//
// Behavior highlights:
//   - Pure; duplicates in axes collapse to a single removal.
//   - Removing every axis yields a rank-0 scalar holding the total.
//   - Removing no axes yields a Clone.
//
// Inputs:
//   - axes: input axis indices to remove.
//
// Returns:
//   - *Dense: reduced tensor.
//
// Errors:
//   - ErrBadAxis.
//
// Determinism:
//   - Fixed input traversal order makes float accumulation order stable.
//
// Complexity:
//   - Time O(size), Space O(output size) + O(rank) scratch.
func (d *Dense) SumAxes(axes ...int) (*Dense, error) {
	if err := ValidateAxes(len(d.shape), axes); err != nil {
		return nil, denseErrorf(ctxSumAxes, err)
	}
	removed := normalizeAxes(axes)
	if len(removed) == 0 {
		return d.Clone(), nil
	}
	out, contrib := d.reduceLayout(removed)

	rank := len(d.shape)
	coords := make([]int, rank)
	var outOff, axis int
	var i int
	for i = 0; i < len(d.data); i++ {
		out.data[outOff] += d.data[i] // accumulate into the kept cell

		for axis = rank - 1; axis >= 0; axis-- {
			coords[axis]++
			outOff += contrib[axis] // removed axes contribute 0
			if coords[axis] < d.shape[axis] {
				break
			}
			coords[axis] = 0
			outOff -= contrib[axis] * d.shape[axis]
		}
	}

	return out, nil
}

// MaxAxes reduces the receiver over the given axes by taking maxima.
// Same layout, validation and traversal rules as SumAxes; cells start at
// -Inf and every output cell is covered because extents are >= 1.
//
// Errors:
//   - ErrBadAxis.
//
// Complexity:
//   - Time O(size), Space O(output size) + O(rank) scratch.
func (d *Dense) MaxAxes(axes ...int) (*Dense, error) {
	if err := ValidateAxes(len(d.shape), axes); err != nil {
		return nil, denseErrorf(ctxMaxAxes, err)
	}
	removed := normalizeAxes(axes)
	if len(removed) == 0 {
		return d.Clone(), nil
	}
	out, contrib := d.reduceLayout(removed)
	var j int
	for j = 0; j < len(out.data); j++ {
		out.data[j] = math.Inf(-1) // identity element for max
	}

	rank := len(d.shape)
	coords := make([]int, rank)
	var outOff, axis int
	var i int
	for i = 0; i < len(d.data); i++ {
		if d.data[i] > out.data[outOff] {
			out.data[outOff] = d.data[i]
		}

		for axis = rank - 1; axis >= 0; axis-- {
			coords[axis]++
			outOff += contrib[axis]
			if coords[axis] < d.shape[axis] {
				break
			}
			coords[axis] = 0
			outOff -= contrib[axis] * d.shape[axis]
		}
	}

	return out, nil
}

// Select fixes one axis at the given index and removes it, returning the
// slice as a fresh tensor.
// MAIN DESCRIPTION:
//   - The N-dimensional slicing primitive behind evidence conditioning:
//     out(c0,...,c_{r-2}) = in(c0,...,index,...,c_{r-2}) with index on axis.
//
// Implementation:
//   - Stage 1: validate axis in [0, rank) and index in [0, shape[axis]).
//   - Stage 2: reuse the reduction layout (axis removed) and a base offset of
//     index*strides[axis]; odometer over the input coordinates of the slice.
//
// Behavior highlights:
//   - Pure; selecting the only axis of a vector yields a rank-0 scalar.
//
// Inputs:
//   - axis: the axis to fix; index: the coordinate to keep on that axis.
//
// Returns:
//   - *Dense: tensor of rank-1 lower than the receiver.
//
// Errors:
//   - ErrBadAxis, ErrOutOfRange.
//
// Complexity:
//   - Time O(output size), Space O(output size) + O(rank) scratch.
func (d *Dense) Select(axis, index int) (*Dense, error) {
	if axis < 0 || axis >= len(d.shape) {
		return nil, denseErrorf(ctxSelect, ErrBadAxis)
	}
	if index < 0 || index >= d.shape[axis] {
		return nil, denseErrorf(ctxSelect, ErrOutOfRange)
	}
	out, _ := d.reduceLayout([]int{axis})

	// Walk output cells in flat order; srcOff tracks the matching input cell
	// with the fixed axis pinned at index.
	rank := len(out.shape)
	eff := make([]int, rank) // input stride per output axis
	var k, pos int
	for k = 0; k < len(d.shape); k++ {
		if k != axis {
			eff[pos] = d.strides[k]
			pos++
		}
	}
	coords := make([]int, rank)
	srcOff := index * d.strides[axis]
	var ax int
	var i int
	for i = 0; i < len(out.data); i++ {
		out.data[i] = d.data[srcOff]

		for ax = rank - 1; ax >= 0; ax-- {
			coords[ax]++
			srcOff += eff[ax]
			if coords[ax] < out.shape[ax] {
				break
			}
			coords[ax] = 0
			srcOff -= eff[ax] * out.shape[ax]
		}
	}

	return out, nil
}

// Scale returns a copy of the receiver with every element multiplied by alpha.
// Pure; the receiver is never mutated. Complexity: O(size).
func (d *Dense) Scale(alpha float64) *Dense {
	out := d.Clone()
	var i int
	for i = 0; i < len(out.data); i++ {
		out.data[i] *= alpha
	}

	return out
}

// Sum returns the total of all elements (0 for an impossible empty buffer,
// the single value for a scalar tensor). Fixed flat order keeps float
// accumulation deterministic. Complexity: O(size).
func (d *Dense) Sum() float64 {
	var total float64
	var i int
	for i = 0; i < len(d.data); i++ {
		total += d.data[i]
	}

	return total
}

// ewBroadcast is the shared equal-rank broadcast kernel behind the public
// BroadcastMul/BroadcastDiv wrappers: out[x] = f(a[x'], b[x'']) where x' and
// x'' clamp broadcast axes (extent 1) to coordinate 0.
// MAIN DESCRIPTION:
//   - One odometer over output coordinates; operands contribute effective
//     stride 0 on axes they broadcast along, so both offsets stay in
//     lock-step with the output without per-element coordinate math.
//
// Inputs:
//   - a, b: equal-rank operands with broadcast-compatible shapes.
//   - f: binary combiner applied per output cell.
//   - tag: caller context for error wrapping.
//
// Errors:
//   - ErrNilTensor, ErrAxisMismatch, ErrNotBroadcastable.
//
// Complexity:
//   - Time O(output size), Space O(output size) + O(rank) scratch.
func ewBroadcast(a, b *Dense, f func(av, bv float64) float64, tag string) (*Dense, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, denseErrorf(tag, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return nil, denseErrorf(tag, err)
	}
	if err := ValidateSameRank(a, b); err != nil {
		return nil, denseErrorf(tag, err)
	}
	if err := ValidateBroadcastable(a, b); err != nil {
		return nil, denseErrorf(tag, err)
	}

	rank := len(a.shape)
	outShape := make([]int, rank)
	effA := make([]int, rank) // a's stride per output axis (0 when broadcast)
	effB := make([]int, rank) // b's stride per output axis (0 when broadcast)
	var k int
	for k = 0; k < rank; k++ {
		if a.shape[k] >= b.shape[k] {
			outShape[k] = a.shape[k]
		} else {
			outShape[k] = b.shape[k]
		}
		if a.shape[k] > 1 {
			effA[k] = a.strides[k]
		}
		if b.shape[k] > 1 {
			effB[k] = b.strides[k]
		}
	}
	out := &Dense{
		shape:   outShape,
		strides: computeStrides(outShape),
		data:    make([]float64, sizeOf(outShape)),
	}

	coords := make([]int, rank)
	var aOff, bOff, axis int
	var i int
	for i = 0; i < len(out.data); i++ {
		out.data[i] = f(a.data[aOff], b.data[bOff])

		for axis = rank - 1; axis >= 0; axis-- {
			coords[axis]++
			aOff += effA[axis]
			bOff += effB[axis]
			if coords[axis] < outShape[axis] {
				break
			}
			coords[axis] = 0
			aOff -= effA[axis] * outShape[axis]
			bOff -= effB[axis] * outShape[axis]
		}
	}

	return out, nil
}

// BroadcastMul returns the elementwise product of two equal-rank tensors,
// broadcasting extent-1 axes. Pure; operands are never mutated.
//
// Errors:
//   - ErrNilTensor, ErrAxisMismatch, ErrNotBroadcastable.
//
// Complexity: O(output size).
func BroadcastMul(a, b *Dense) (*Dense, error) {
	return ewBroadcast(a, b, func(av, bv float64) float64 { return av * bv }, ctxMul)
}

// BroadcastDiv returns the elementwise quotient of two equal-rank tensors,
// broadcasting extent-1 axes. The 0/0 cell convention is 0 (the standard
// convention for message passing over sparse potentials); x/0 for x != 0
// follows IEEE and yields ±Inf.
//
// Errors:
//   - ErrNilTensor, ErrAxisMismatch, ErrNotBroadcastable.
//
// Complexity: O(output size).
func BroadcastDiv(a, b *Dense) (*Dense, error) {
	return ewBroadcast(a, b, func(av, bv float64) float64 {
		if bv == 0 && av == 0 {
			return 0 // 0/0 convention
		}

		return av / bv
	}, ctxDiv)
}

// Equal reports exact equality of shape and every element. Nil tensors are
// equal only to nil. NaN != NaN, as in Go. Complexity: O(size).
func Equal(a, b *Dense) bool {
	if a == nil || b == nil {
		return a == b
	}
	if len(a.shape) != len(b.shape) {
		return false
	}
	var k int
	for k = 0; k < len(a.shape); k++ {
		if a.shape[k] != b.shape[k] {
			return false
		}
	}
	for k = 0; k < len(a.data); k++ {
		if a.data[k] != b.data[k] {
			return false
		}
	}

	return true
}

// AllClose checks elementwise |a-b| <= atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) when
// any element violates it or the shapes differ. NaN is close to nothing;
// equal infinities compare close. rtol/atol are normalized to |rtol|/|atol|.
//
// Errors:
//   - ErrNilTensor.
//
// Complexity: O(size), Space O(1).
//
// AI-Hints:
//   - AllClose with small atol/rtol is ideal for invariance checks in tests.
func AllClose(a, b *Dense, rtol, atol float64) (bool, error) {
	if err := ValidateNotNil(a); err != nil {
		return false, denseErrorf(ctxAllClose, err)
	}
	if err := ValidateNotNil(b); err != nil {
		return false, denseErrorf(ctxAllClose, err)
	}
	rtol = math.Abs(rtol)
	atol = math.Abs(atol)
	if len(a.shape) != len(b.shape) {
		return false, nil
	}
	var k int
	for k = 0; k < len(a.shape); k++ {
		if a.shape[k] != b.shape[k] {
			return false, nil
		}
	}
	var av, bv float64
	for k = 0; k < len(a.data); k++ {
		av, bv = a.data[k], b.data[k]
		if av == bv {
			continue // covers equal infinities
		}
		if math.IsNaN(av) || math.IsNaN(bv) || math.IsInf(av, 0) || math.IsInf(bv, 0) {
			return false, nil
		}
		if math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
			return false, nil
		}
	}

	return true, nil
}
