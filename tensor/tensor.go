// SPDX-License-Identifier: MIT

// Package tensor - Dense N-dimensional storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer generalized to arbitrary rank,
//     with the explicit offset formula offset = Σ coords[k]*strides[k].
//   - Guarantee safety at the public surface: At/SetAt return errors instead
//     of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Support rank 0 (a scalar tensor holding exactly one element), which is
//     what full axis reduction produces.
//
// AI-Hints:
//   - Prefer the flat-slice loops in ops.go for hot paths; At/SetAt are for
//     call sites that need bounds safety, not throughput.
//   - The right-most axis varies fastest (row-major); flat input follows the
//     same convention.
//
// Complexity quicksheet:
//   - New: O(size) zero-init; At/SetAt: O(rank); Clone: O(size);
//     Reshape: O(rank); CoordsOf/OffsetOf: O(rank).

package tensor

import (
	"fmt"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxNew      = "New"      // ctor tag
	ctxFromFlat = "FromFlat" // ctor tag for NewFromFlat
	ctxAt       = "At"       // method tag used in error wrappers
	ctxSetAt    = "SetAt"    // method tag used in error wrappers
	ctxReshape  = "Reshape"  // method tag used in error wrappers
	ctxOffsetOf = "OffsetOf" // method tag used in error wrappers
	ctxCoordsOf = "CoordsOf" // method tag used in error wrappers
)

// ---------- formatting literals ----------

const (
	_fmtOpen  = "Dense{shape: "
	_fmtMid   = ", values: "
	_fmtClose = "}"
	_fmtSep   = " "
)

// denseErrorf wraps an error with a uniform Dense context tag.
// Stable, human-friendly messages; preserves the sentinel via %w.
// Complexity: O(1).
func denseErrorf(method string, err error) error {
	return fmt.Errorf("Dense.%s: %w", method, err)
}

// coordErrorf wraps an error with a Dense context tag plus the offending
// coordinate tuple, e.g. "Dense.At[1 0]: tensor: index out of range".
// Complexity: O(rank) for formatting.
func coordErrorf(method string, coords []int, err error) error {
	return fmt.Errorf("Dense.%s%v: %w", method, coords, err)
}

// Dense is a concrete row-major N-dimensional tensor.
//   - shape holds the extent of each axis (len == rank; empty == scalar).
//   - strides holds the row-major step per axis (strides[rank-1] == 1).
//   - data is a flat buffer of length equal to the product of all extents
//     (a rank-0 tensor holds exactly one element).
type Dense struct {
	shape   []int     // per-axis extents (each >= 1)
	strides []int     // row-major strides, positionally aligned with shape
	data    []float64 // contiguous row-major storage
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Dense)(nil)

// computeStrides derives row-major strides for a shape: the right-most axis
// varies fastest (stride 1), each axis to the left steps by the product of
// all extents to its right. Rank 0 yields an empty stride slice.
// Complexity: O(rank).
func computeStrides(shape []int) []int {
	strides := make([]int, len(shape))
	step := 1
	var k int
	for k = len(shape) - 1; k >= 0; k-- { // walk axes right to left
		strides[k] = step
		step *= shape[k]
	}

	return strides
}

// sizeOf returns the element count implied by a shape: the product of all
// extents, 1 for rank 0. Assumes the shape was validated (extents >= 1).
// Complexity: O(rank).
func sizeOf(shape []int) int {
	size := 1
	var k int
	for k = 0; k < len(shape); k++ {
		size *= shape[k]
	}

	return size
}

// New creates a zero-filled tensor with the given shape.
// MAIN DESCRIPTION:
//   - Public constructor with strict shape validation.
//
// Implementation:
//   - Stage 1: validate every extent >= 1; else ErrBadShape.
//   - Stage 2: allocate a zero-filled buffer of the shape's product size.
//
// Behavior highlights:
//   - No panics on user errors; returns sentinel errors.
//   - New() with no arguments builds a rank-0 scalar holding one zero.
//
// Inputs:
//   - shape: per-axis extents, each >= 1; may be empty (scalar).
//
// Returns:
//   - *Dense: newly allocated tensor.
//
// Errors:
//   - ErrBadShape (some extent < 1).
//
// Determinism:
//   - Fixed zero initialization; identical layout for a given shape.
//
// Complexity:
//   - Time O(size), Space O(size).
func New(shape ...int) (*Dense, error) {
	if err := ValidateShape(shape); err != nil {
		return nil, denseErrorf(ctxNew, err)
	}
	// Copy the caller's shape so later caller mutations cannot alias us.
	own := make([]int, len(shape))
	copy(own, shape)

	return &Dense{
		shape:   own,
		strides: computeStrides(own),
		data:    make([]float64, sizeOf(own)),
	}, nil
}

// NewFromFlat creates a tensor with the given shape from a flat value slice.
// MAIN DESCRIPTION:
//   - Constructor for pre-computed buffers; the flat layout must follow the
//     row-major convention (right-most axis varies fastest).
//
// Implementation:
//   - Stage 1: validate shape extents; else ErrBadShape.
//   - Stage 2: check len(flat) equals the shape's product; else ErrShapeMismatch.
//   - Stage 3: deep-copy the values into owned storage.
//
// Behavior highlights:
//   - The input slice is copied; the tensor never aliases caller memory.
//
// Inputs:
//   - flat: values in row-major order.
//   - shape: per-axis extents, each >= 1; may be empty (scalar, len(flat)==1).
//
// Returns:
//   - *Dense: independent tensor over copied values.
//
// Errors:
//   - ErrBadShape, ErrShapeMismatch.
//
// Complexity:
//   - Time O(size), Space O(size).
func NewFromFlat(flat []float64, shape ...int) (*Dense, error) {
	if err := ValidateShape(shape); err != nil {
		return nil, denseErrorf(ctxFromFlat, err)
	}
	if len(flat) != sizeOf(shape) {
		return nil, denseErrorf(ctxFromFlat, ErrShapeMismatch)
	}
	own := make([]int, len(shape))
	copy(own, shape)
	buf := make([]float64, len(flat))
	copy(buf, flat) // deep copy; caller keeps ownership of its slice

	return &Dense{
		shape:   own,
		strides: computeStrides(own),
		data:    buf,
	}, nil
}

// Scalar builds a rank-0 tensor holding the single value v.
// Complexity: O(1).
func Scalar(v float64) *Dense {
	return &Dense{
		shape:   []int{},
		strides: []int{},
		data:    []float64{v},
	}
}

// Rank returns the number of axes. No side effects.
// Complexity: O(1).
func (d *Dense) Rank() int { return len(d.shape) }

// Size returns the total element count (1 for a scalar tensor).
// Complexity: O(1).
func (d *Dense) Size() int { return len(d.data) }

// Shape returns a copy of the per-axis extents.
// Complexity: O(rank).
func (d *Dense) Shape() []int {
	out := make([]int, len(d.shape))
	copy(out, d.shape)

	return out
}

// Strides returns a copy of the row-major strides.
// Complexity: O(rank).
func (d *Dense) Strides() []int {
	out := make([]int, len(d.strides))
	copy(out, d.strides)

	return out
}

// Flat returns a copy of the underlying row-major buffer.
// The copy guarantees callers can never alias internal storage.
// Complexity: O(size).
func (d *Dense) Flat() []float64 {
	out := make([]float64, len(d.data))
	copy(out, d.data)

	return out
}

// offsetOf bounds-checks a coordinate tuple and computes its flat offset.
// MAIN DESCRIPTION:
//   - The single source of truth for coordinate-to-offset translation.
//
// Implementation:
//   - Stage 1: require len(coords) == rank; else ErrAxisMismatch.
//   - Stage 2: per axis, require 0 <= coords[k] < shape[k]; else ErrOutOfRange.
//   - Stage 3: accumulate Σ coords[k]*strides[k].
//
// Behavior highlights:
//   - Returns plain sentinels; public callers wrap with method context.
//   - A scalar tensor accepts only the empty tuple (offset 0).
//
// Complexity:
//   - Time O(rank), Space O(1).
func (d *Dense) offsetOf(coords []int) (int, error) {
	if len(coords) != len(d.shape) {
		return 0, ErrAxisMismatch
	}
	var off, k int
	for k = 0; k < len(coords); k++ {
		if coords[k] < 0 || coords[k] >= d.shape[k] {
			return 0, ErrOutOfRange
		}
		off += coords[k] * d.strides[k] // row-major accumulation
	}

	return off, nil
}

// OffsetOf is the public, error-wrapped form of coordinate translation.
// Useful for collaborators that index the Flat() buffer directly.
//
// Errors:
//   - ErrAxisMismatch (tuple length != rank), ErrOutOfRange.
//
// Complexity: O(rank).
func (d *Dense) OffsetOf(coords ...int) (int, error) {
	off, err := d.offsetOf(coords)
	if err != nil {
		return 0, coordErrorf(ctxOffsetOf, coords, err)
	}

	return off, nil
}

// CoordsOf inverts a flat offset into its coordinate tuple.
// MAIN DESCRIPTION:
//   - Inverse of OffsetOf under the row-major layout.
//
// Implementation:
//   - Stage 1: require 0 <= flat < Size(); else ErrOutOfRange.
//   - Stage 2: divide by strides left to right, taking remainders.
//
// Inputs:
//   - flat: flat buffer offset.
//
// Returns:
//   - []int: coordinate tuple of length rank (empty for a scalar).
//
// Errors:
//   - ErrOutOfRange.
//
// Complexity:
//   - Time O(rank), Space O(rank).
func (d *Dense) CoordsOf(flat int) ([]int, error) {
	if flat < 0 || flat >= len(d.data) {
		return nil, denseErrorf(ctxCoordsOf, ErrOutOfRange)
	}
	coords := make([]int, len(d.shape))
	rem := flat
	var k int
	for k = 0; k < len(d.shape); k++ { // left to right: largest stride first
		coords[k] = rem / d.strides[k]
		rem %= d.strides[k]
	}

	return coords, nil
}

// At returns the value at the given coordinate tuple.
//
// Errors:
//   - ErrAxisMismatch (tuple length != rank), ErrOutOfRange.
//
// Determinism:
//   - Stable access cost; no allocations.
//
// Complexity: O(rank).
func (d *Dense) At(coords ...int) (float64, error) {
	off, err := d.offsetOf(coords)
	if err != nil {
		return 0, coordErrorf(ctxAt, coords, err) // wrap with context
	}

	return d.data[off], nil
}

// SetAt stores v at the given coordinate tuple.
//
// Errors:
//   - ErrAxisMismatch (tuple length != rank), ErrOutOfRange.
//
// Complexity: O(rank).
func (d *Dense) SetAt(v float64, coords ...int) error {
	off, err := d.offsetOf(coords)
	if err != nil {
		return coordErrorf(ctxSetAt, coords, err) // wrap with context
	}
	d.data[off] = v // direct flat write

	return nil
}

// Clone returns a deep copy (new shape, strides and buffer).
// Independence: mutations on either side never affect the other.
// Complexity: O(size).
func (d *Dense) Clone() *Dense {
	shape := make([]int, len(d.shape))
	copy(shape, d.shape)
	strides := make([]int, len(d.strides))
	copy(strides, d.strides)
	buf := make([]float64, len(d.data))
	copy(buf, d.data)

	return &Dense{shape: shape, strides: strides, data: buf}
}

// Reshape swaps the tensor's shape in place, keeping the buffer.
// MAIN DESCRIPTION:
//   - Metadata-only reinterpretation of the same row-major buffer.
//
// Implementation:
//   - Stage 1: validate the new extents; else ErrBadShape.
//   - Stage 2: require the new product to equal Size(); else ErrShapeMismatch.
//   - Stage 3: swap shape and recompute strides. Nothing is mutated on error.
//
// Inputs:
//   - shape: target extents; empty reshapes a one-element tensor to a scalar.
//
// Errors:
//   - ErrBadShape, ErrShapeMismatch.
//
// Complexity:
//   - Time O(rank), Space O(rank).
func (d *Dense) Reshape(shape ...int) error {
	if err := ValidateShape(shape); err != nil {
		return denseErrorf(ctxReshape, err)
	}
	if sizeOf(shape) != len(d.data) {
		return denseErrorf(ctxReshape, ErrShapeMismatch)
	}
	own := make([]int, len(shape))
	copy(own, shape)
	d.shape = own
	d.strides = computeStrides(own)

	return nil
}

// String renders a compact single-line dump for diagnostics.
// Not for hot paths; intended for logs, test failures and debugging.
// Format: Dense{shape: [2 2], values: [1 2 3 4]}.
// Complexity: O(size).
func (d *Dense) String() string {
	var b strings.Builder
	b.WriteString(_fmtOpen)
	b.WriteString(fmt.Sprintf("%v", d.shape))
	b.WriteString(_fmtMid)
	b.WriteString("[")
	var i int
	for i = 0; i < len(d.data); i++ { // flat row-major order
		b.WriteString(fmt.Sprintf("%g", d.data[i]))
		if i+1 < len(d.data) {
			b.WriteString(_fmtSep)
		}
	}
	b.WriteString("]")
	b.WriteString(_fmtClose)

	return b.String()
}
