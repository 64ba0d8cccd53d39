// SPDX-License-Identifier: MIT
// Package: tensor
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating shape/nil/axis checks here.
//  - Return sentinel errors wrapped with the validator tag so call sites can
//    add method context uniformly and callers still match via errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate only where a normalized
//    axis list must be returned.
//
// AI-Hints:
//  - Centralizing validators eliminates inconsistent guard logic across files.
//  - Use ValidateBroadcastable before elementwise kernels to fail fast.

package tensor

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
// Used internally to maintain consistent labeling of sentinel violations.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil – Ensures the tensor reference is non-nil.
//
// Inputs: *Dense value.
// Returns ErrNilTensor if d == nil.
// Complexity: O(1).
// AI-Hints: Use as the first step in composite validations.
func ValidateNotNil(d *Dense) error {
	if d == nil {
		return validatorErrorf("ValidateNotNil", ErrNilTensor) // single source of truth for "nil argument"
	}

	return nil
}

// ValidateShape – Ensures every extent of a shape is >= 1.
// A rank-0 shape (no extents) is legal: it denotes a scalar.
//
// Return: nil or wrapped ErrBadShape.
// Complexity: O(rank).
func ValidateShape(shape []int) error {
	var k int
	for k = 0; k < len(shape); k++ {
		if shape[k] < 1 {
			return validatorErrorf("ValidateShape", ErrBadShape)
		}
	}

	return nil
}

// ValidateSameRank – Ensures tensors a and b have equal rank.
//
// Implementation: Assumes a and b are not nil (caller must ensure).
// Return: nil or wrapped ErrAxisMismatch.
// Complexity: O(1).
// AI-Hints: Broadcast kernels require equal rank; align operands first.
func ValidateSameRank(a, b *Dense) error {
	if len(a.shape) != len(b.shape) {
		return validatorErrorf("ValidateSameRank", ErrAxisMismatch)
	}

	return nil
}

// ValidateBroadcastable – Ensures two equal-rank tensors agree on every axis
// extent or hold extent 1 where they disagree (the broadcast rule).
//
// Implementation: Assumes equal rank (run ValidateSameRank first).
// Return: nil or wrapped ErrNotBroadcastable.
// Complexity: O(rank).
func ValidateBroadcastable(a, b *Dense) error {
	var k int
	for k = 0; k < len(a.shape); k++ {
		if a.shape[k] != b.shape[k] && a.shape[k] != 1 && b.shape[k] != 1 {
			return validatorErrorf("ValidateBroadcastable", ErrNotBroadcastable)
		}
	}

	return nil
}

// ValidateAxes – Ensures every axis index lies in [0, rank).
// Duplicates are permitted here; reduction kernels dedupe explicitly.
//
// Return: nil or wrapped ErrBadAxis.
// Complexity: O(len(axes)).
func ValidateAxes(rank int, axes []int) error {
	var k int
	for k = 0; k < len(axes); k++ {
		if axes[k] < 0 || axes[k] >= rank {
			return validatorErrorf("ValidateAxes", ErrBadAxis)
		}
	}

	return nil
}

// ValidatePermutation – Ensures perm is a proper permutation of [0, rank):
// correct length, every entry in range, no duplicates.
//
// Return: nil or wrapped ErrAxisMismatch (length) / ErrBadAxis (content).
// Complexity: O(rank) time and space.
func ValidatePermutation(rank int, perm []int) error {
	if len(perm) != rank {
		return validatorErrorf("ValidatePermutation", ErrAxisMismatch)
	}
	seen := make([]bool, rank)
	var k int
	for k = 0; k < rank; k++ {
		if perm[k] < 0 || perm[k] >= rank {
			return validatorErrorf("ValidatePermutation", ErrBadAxis)
		}
		if seen[perm[k]] {
			return validatorErrorf("ValidatePermutation", ErrBadAxis) // duplicate axis
		}
		seen[perm[k]] = true
	}

	return nil
}
