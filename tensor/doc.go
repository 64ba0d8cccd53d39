// Package tensor provides dense N-dimensional float64 arrays in row-major
// layout, the numeric substrate for discrete factor algebra.
//
// The tensor package provides:
//
//   - Dense: contiguous row-major storage with explicit shape and strides,
//     safe At/SetAt accessors and flat-offset translation (OffsetOf/CoordsOf).
//   - Axis kernels: Permute (gather), SumAxes/MaxAxes reductions, Select
//     (fix-and-drop one axis), Scale, AppendUnitDims for broadcast
//     placeholders.
//   - Equal-rank broadcast arithmetic: BroadcastMul and BroadcastDiv.
//
// The right-most axis always varies fastest, both in the storage layout and
// in the flat slices accepted by constructors. Rank 0 is legal and denotes a
// scalar tensor holding exactly one element, which is what reducing every
// axis produces.
//
// See the examples in this package and in package factor for usage patterns.
package tensor
