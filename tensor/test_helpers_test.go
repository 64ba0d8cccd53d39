// Package tensor_test: shared helpers for the tensor test suite.
// Keep helpers tiny and fatal-on-error so tests read linearly.
package tensor_test

import (
	"testing"

	"github.com/katalvlaran/pgm/tensor"
	"github.com/stretchr/testify/require"
)

// MustDense builds a tensor from a flat slice and shape, failing the test on
// any constructor error. Use for fixtures where the shape is known-good.
func MustDense(t *testing.T, flat []float64, shape ...int) *tensor.Dense {
	t.Helper()
	d, err := tensor.NewFromFlat(flat, shape...)
	require.NoError(t, err, "fixture construction must succeed")

	return d
}

// MustZeros builds a zero-filled tensor, failing the test on error.
func MustZeros(t *testing.T, shape ...int) *tensor.Dense {
	t.Helper()
	d, err := tensor.New(shape...)
	require.NoError(t, err, "fixture construction must succeed")

	return d
}
