// Package factor_test: shared helpers for the factor test suite.
// Keep helpers tiny and fatal-on-error so tests read linearly.
package factor_test

import (
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/katalvlaran/pgm/factor"
	"github.com/stretchr/testify/require"
)

// MustFactor builds a factor, failing the test on any constructor error.
// Use for fixtures where the scope is known-good.
func MustFactor(t *testing.T, vars []string, card []int, opts ...factor.Option) *factor.Factor {
	t.Helper()
	f, err := factor.New(vars, card, opts...)
	require.NoError(t, err, "fixture construction must succeed")

	return f
}

// MustAt reads one cell by integer coordinates, failing the test on error.
func MustAt(t *testing.T, f *factor.Factor, coords ...int) float64 {
	t.Helper()
	v, err := f.At(coords...)
	require.NoError(t, err, "fixture lookup must succeed")

	return v
}

// JointTable flattens a populated factor into a map keyed by a canonical,
// scope-order-independent assignment string ("A=0|B=1"), so tables from
// differently ordered but semantically equal factors compare directly.
func JointTable(t *testing.T, f *factor.Factor) map[string]float64 {
	t.Helper()
	vars := f.Variables()
	buf := f.Values()
	require.NotNil(t, buf, "factor must be populated")

	out := make(map[string]float64, f.Size())
	for i := 0; i < f.Size(); i++ {
		coords, err := buf.CoordsOf(i)
		require.NoError(t, err)
		keys := make([]string, len(vars))
		for k := range vars {
			keys[k] = fmt.Sprintf("%s=%d", vars[k], coords[k])
		}
		sort.Strings(keys)
		v, err := buf.At(coords...)
		require.NoError(t, err)
		out[strings.Join(keys, "|")] = v
	}

	return out
}
