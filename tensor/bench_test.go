// Package tensor_test provides benchmarks for the axis kernels, using
// deterministic random fill so runs stay comparable.
package tensor_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/katalvlaran/pgm/tensor"
)

// benchEdges are the per-axis extents to benchmark (rank-3 cubes).
var benchEdges = []int{8, 16, 32}

// sinks to defeat dead-code elimination
var (
	sinkT *tensor.Dense
	sinkF float64
)

// benchDense builds a rank-3 cube filled with seeded uniform values.
func benchDense(b *testing.B, seed int64, shape ...int) *tensor.Dense {
	b.Helper()
	rng := rand.New(rand.NewSource(seed))
	size := 1
	for _, n := range shape {
		size *= n
	}
	flat := make([]float64, size)
	for i := range flat {
		flat[i] = rng.Float64()
	}
	d, err := tensor.NewFromFlat(flat, shape...)
	if err != nil {
		b.Fatal(err)
	}

	return d
}

func BenchmarkBroadcastMul(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchEdges {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := benchDense(b, 1337, n, n, n)
			B := benchDense(b, 4242, n, n, 1) // broadcast along the last axis
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := tensor.BroadcastMul(A, B)
				if err != nil {
					b.Fatal(err)
				}
				sinkT = m
			}
		})
	}
}

func BenchmarkSumAxes(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchEdges {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := benchDense(b, 7, n, n, n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := A.SumAxes(1)
				if err != nil {
					b.Fatal(err)
				}
				sinkT = m
			}
		})
	}
}

func BenchmarkPermute(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchEdges {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := benchDense(b, 99, n, n, n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				m, err := A.Permute(2, 1, 0)
				if err != nil {
					b.Fatal(err)
				}
				sinkT = m
			}
		})
	}
}

func BenchmarkSum(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchEdges {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			A := benchDense(b, 3, n, n, n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				sinkF = A.Sum()
			}
		})
	}
}
