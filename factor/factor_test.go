// Package factor_test contains unit tests for the Factor data model:
// construction, accessors, cloning, value replacement and lookups.
package factor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pgm/factor"
	"github.com/katalvlaran/pgm/tensor"
)

// abLabels is the canonical label set for the two-variable fixture.
func abLabels() map[string][]string {
	return map[string][]string{
		"A": {"a0", "a1"},
		"B": {"b0", "b1"},
	}
}

// abFactor builds the canonical fixture: scope [A B], cardinalities [2 2],
// flat values [1 2 3 4] (buffer [[1,2],[3,4]]) and labels a0/a1, b0/b1.
func abFactor(t *testing.T) *factor.Factor {
	t.Helper()

	return MustFactor(t, []string{"A", "B"}, []int{2, 2},
		factor.WithValues([]float64{1, 2, 3, 4}),
		factor.WithStateNames(abLabels()),
	)
}

// TestNew_PopulatedLabeled verifies a fully specified construction: scope,
// cardinalities, row-major buffer and label registration.
func TestNew_PopulatedLabeled(t *testing.T) {
	f := abFactor(t)

	assert.Equal(t, []string{"A", "B"}, f.Variables())
	assert.Equal(t, []int{2, 2}, f.Cardinality())
	assert.Equal(t, abLabels(), f.StateNames())
	assert.True(t, f.IsPopulated())
	assert.Equal(t, 4, f.Size(), "joint domain size is the cardinality product")

	// Right-most variable varies fastest: buffer is [[1,2],[3,4]].
	assert.Equal(t, 3.0, MustAt(t, f, 1, 0))
	assert.Equal(t, 2.0, MustAt(t, f, 0, 1))
}

// TestNew_DeclaredUnpopulated verifies the structurally-declared lifecycle
// stage: metadata works, every value-dependent operation refuses.
func TestNew_DeclaredUnpopulated(t *testing.T) {
	f := MustFactor(t, []string{"A", "B"}, []int{2, 3})

	assert.False(t, f.IsPopulated())
	assert.Nil(t, f.Values())
	assert.Equal(t, 6, f.Size(), "size is declared by cardinalities, not by the buffer")

	_, err := f.Value(map[string]string{"A": "a0", "B": "b0"})
	require.ErrorIs(t, err, factor.ErrNoValues)

	_, err = f.At(0, 0)
	require.ErrorIs(t, err, factor.ErrNoValues)

	_, err = f.AssignmentAt(0)
	require.ErrorIs(t, err, factor.ErrNoValues)
}

// TestNew_StructuralErrors sweeps the fail-fast constructor checks.
func TestNew_StructuralErrors(t *testing.T) {
	cases := []struct {
		name string
		vars []string
		card []int
		opts []factor.Option
		want error
	}{
		{
			name: "length mismatch",
			vars: []string{"A", "B"},
			card: []int{2},
			want: factor.ErrLengthMismatch,
		},
		{
			name: "zero cardinality",
			vars: []string{"A"},
			card: []int{0},
			want: factor.ErrBadCardinality,
		},
		{
			name: "negative cardinality",
			vars: []string{"A", "B"},
			card: []int{2, -3},
			want: factor.ErrBadCardinality,
		},
		{
			name: "duplicate variable",
			vars: []string{"A", "A"},
			card: []int{2, 2},
			want: factor.ErrDuplicateVariable,
		},
		{
			name: "value count mismatch",
			vars: []string{"A", "B"},
			card: []int{2, 2},
			opts: []factor.Option{factor.WithValues([]float64{1, 2, 3})},
			want: factor.ErrShapeMismatch,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := factor.New(tc.vars, tc.card, tc.opts...)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

// TestNew_StateNameErrors sweeps label-mapping validation.
func TestNew_StateNameErrors(t *testing.T) {
	cases := []struct {
		name   string
		labels map[string][]string
		want   error
	}{
		{
			name:   "key outside scope",
			labels: map[string][]string{"Z": {"z0", "z1"}},
			want:   factor.ErrUnknownVariable,
		},
		{
			name:   "list length disagrees with cardinality",
			labels: map[string][]string{"A": {"a0"}},
			want:   factor.ErrShapeMismatch,
		},
		{
			name:   "duplicate label",
			labels: map[string][]string{"A": {"same", "same"}},
			want:   factor.ErrDuplicateState,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := factor.New([]string{"A", "B"}, []int{2, 2},
				factor.WithStateNames(tc.labels))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

// TestNew_EmptyScope verifies the degenerate factor over no variables: a
// single weight addressed by the empty coordinate tuple.
func TestNew_EmptyScope(t *testing.T) {
	f := MustFactor(t, nil, nil, factor.WithValues([]float64{7}))

	assert.Empty(t, f.Variables())
	assert.Equal(t, 1, f.Size())
	assert.Equal(t, 7.0, MustAt(t, f))
}

// TestNew_InputAliasing ensures the constructor deep-copies every input;
// mutating caller-owned slices afterwards must not leak into the factor.
func TestNew_InputAliasing(t *testing.T) {
	vars := []string{"A", "B"}
	card := []int{2, 2}
	flat := []float64{1, 2, 3, 4}
	labels := abLabels()
	f := MustFactor(t, vars, card,
		factor.WithValues(flat), factor.WithStateNames(labels))

	vars[0] = "X"
	card[0] = 9
	flat[2] = 100
	labels["A"][0] = "corrupted"

	assert.Equal(t, []string{"A", "B"}, f.Variables())
	assert.Equal(t, []int{2, 2}, f.Cardinality())
	assert.Equal(t, 3.0, MustAt(t, f, 1, 0), "buffer must not alias caller memory")
	assert.Equal(t, abLabels(), f.StateNames())
}

// TestFactor_Clone_Independence verifies the clone shares no mutable state
// with the original.
func TestFactor_Clone_Independence(t *testing.T) {
	orig := abFactor(t)
	cp := orig.Clone()

	assert.Equal(t, orig.Variables(), cp.Variables())
	assert.Equal(t, orig.Cardinality(), cp.Cardinality())
	assert.Equal(t, orig.StateNames(), cp.StateNames())
	assert.Equal(t, 3.0, MustAt(t, cp, 1, 0))

	// Mutating the clone's buffer must leave the original intact.
	require.NoError(t, cp.Values().SetAt(42, 1, 0))
	assert.Equal(t, 42.0, MustAt(t, cp, 1, 0))
	assert.Equal(t, 3.0, MustAt(t, orig, 1, 0), "original untouched by clone mutation")
}

// TestFactor_ReplaceValues covers attaching a buffer late, swapping an
// existing one and the no-mutation guarantee on a failed swap.
func TestFactor_ReplaceValues(t *testing.T) {
	f := MustFactor(t, []string{"A", "B"}, []int{2, 2})

	err := f.ReplaceValues([]float64{1, 2, 3}) // wrong count
	require.ErrorIs(t, err, factor.ErrShapeMismatch)
	assert.False(t, f.IsPopulated(), "failed attach leaves the factor unpopulated")

	require.NoError(t, f.ReplaceValues([]float64{1, 2, 3, 4}))
	assert.Equal(t, 3.0, MustAt(t, f, 1, 0))

	err = f.ReplaceValues([]float64{9}) // wrong count again
	require.ErrorIs(t, err, factor.ErrShapeMismatch)
	assert.Equal(t, 3.0, MustAt(t, f, 1, 0), "failed swap keeps the previous buffer")

	require.NoError(t, f.ReplaceValues([]float64{5, 6, 7, 8}))
	assert.Equal(t, 7.0, MustAt(t, f, 1, 0))
}

// TestFactor_Value_LabelledLookup pins the by-name read path: labels resolve
// positionally and the resolved coordinates address the row-major buffer.
func TestFactor_Value_LabelledLookup(t *testing.T) {
	f := abFactor(t)

	v, err := f.Value(map[string]string{"A": "a1", "B": "b0"})
	require.NoError(t, err)
	assert.Equal(t, 3.0, v)

	// Sweep every assignment against the flat layout [1 2 3 4].
	wants := map[string]float64{
		"a0|b0": 1, "a0|b1": 2, "a1|b0": 3, "a1|b1": 4,
	}
	for a := 0; a < 2; a++ {
		for b := 0; b < 2; b++ {
			la, lb := abLabels()["A"][a], abLabels()["B"][b]
			v, err = f.Value(map[string]string{"A": la, "B": lb})
			require.NoError(t, err)
			assert.Equal(t, wants[la+"|"+lb], v, "assignment %s|%s", la, lb)
		}
	}
}

// TestFactor_Value_Errors sweeps the scope and label failure modes.
func TestFactor_Value_Errors(t *testing.T) {
	f := abFactor(t)

	_, err := f.Value(map[string]string{"A": "a0"}) // missing B
	require.ErrorIs(t, err, factor.ErrScopeMismatch)

	_, err = f.Value(map[string]string{"A": "a0", "B": "b0", "C": "c0"}) // extra key
	require.ErrorIs(t, err, factor.ErrScopeMismatch)

	_, err = f.Value(map[string]string{"A": "a0", "Z": "b0"}) // foreign key
	require.ErrorIs(t, err, factor.ErrScopeMismatch)

	_, err = f.Value(map[string]string{"A": "a0", "B": "nope"}) // bad label
	require.ErrorIs(t, err, factor.ErrUnknownState)

	bare := MustFactor(t, []string{"A"}, []int{2},
		factor.WithValues([]float64{1, 2})) // no labels registered
	_, err = bare.Value(map[string]string{"A": "a0"})
	require.ErrorIs(t, err, factor.ErrUnknownState)
}

// TestFactor_At_TensorErrors verifies coordinate-level violations surface as
// tensor sentinels through the factor facade.
func TestFactor_At_TensorErrors(t *testing.T) {
	f := abFactor(t)

	_, err := f.At(2, 0) // out of bounds on axis 0
	require.ErrorIs(t, err, tensor.ErrOutOfRange)

	_, err = f.At(0) // arity violation
	require.ErrorIs(t, err, tensor.ErrAxisMismatch)
}

// TestFactor_AssignmentAt_RoundTrip checks that decoding a flat offset into
// labels and reading it back through Value reproduces the stored weight.
func TestFactor_AssignmentAt_RoundTrip(t *testing.T) {
	f := abFactor(t)
	flat := []float64{1, 2, 3, 4}

	for i := 0; i < f.Size(); i++ {
		asg, err := f.AssignmentAt(i)
		require.NoError(t, err)
		v, err := f.Value(asg)
		require.NoError(t, err)
		assert.Equal(t, flat[i], v, "offset %d", i)
	}

	_, err := f.AssignmentAt(99) // invalid offset
	require.ErrorIs(t, err, tensor.ErrOutOfRange)

	bare := MustFactor(t, []string{"A"}, []int{2},
		factor.WithValues([]float64{1, 2})) // no labels to decode into
	_, err = bare.AssignmentAt(0)
	require.ErrorIs(t, err, factor.ErrUnknownState)
}

// TestFactor_CardinalityOf covers subset queries, the unknown-variable error
// and availability on unpopulated factors.
func TestFactor_CardinalityOf(t *testing.T) {
	f := MustFactor(t, []string{"A", "B", "C"}, []int{2, 3, 4})

	got, err := f.CardinalityOf("C", "A")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A": 2, "C": 4}, got)

	_, err = f.CardinalityOf("A", "Z")
	require.ErrorIs(t, err, factor.ErrUnknownVariable)

	got, err = f.CardinalityOf()
	require.NoError(t, err)
	assert.Empty(t, got)
}

// TestFactor_String pins the diagnostic rendering.
func TestFactor_String(t *testing.T) {
	f := abFactor(t)
	assert.Equal(t, "Factor{scope: [A B], card: [2 2], populated: true}", f.String())

	bare := MustFactor(t, []string{"X"}, []int{3})
	assert.Equal(t, "Factor{scope: [X], card: [3], populated: false}", bare.String())
}
