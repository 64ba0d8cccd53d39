// Package factor implements the discrete factor algebra of probabilistic
// graphical models: multiply, divide, marginalize and condition dense
// potentials over named discrete variables.
//
// 🚀 What is a factor?
//
//	A factor maps every joint assignment of a finite set of discrete
//	variables to a non-negative weight. Conditional probability tables,
//	likelihood messages and intermediate products of variable elimination
//	are all factors. The algebra over them powers:
//	  • exact inference (variable elimination, junction trees)
//	  • message passing (belief propagation, with Divide for messages)
//	  • MAP / most-probable-explanation queries (MaxMarginalize)
//	  • evidence conditioning (Reduce, Indicator)
//
// ✨ Key features:
//   - named scopes with positionally aligned cardinalities and optional
//     human-readable state labels (Value / AssignmentAt translate both ways)
//   - dense row-major buffers (right-most variable varies fastest) backed
//     by the tensor package
//   - product over the union scope with identity-keyed axis alignment;
//     operands stay untouched
//   - sum- and max-marginalization preserving the kept variables' order
//   - sentinel errors matched via errors.Is; fail-fast, no partial mutation
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/pgm/factor"
//
//	rain, err := factor.New(
//	  []string{"Rain"}, []int{2},
//	  factor.WithValues([]float64{0.8, 0.2}),
//	  factor.WithStateNames(map[string][]string{"Rain": {"no", "yes"}}),
//	)
//	wet, err := factor.New(
//	  []string{"Rain", "Wet"}, []int{2, 2},
//	  factor.WithValues([]float64{0.9, 0.1, 0.2, 0.8}),
//	)
//
//	joint, err := factor.Multiply(rain, wet)        // scope [Rain Wet]
//	belief, err := factor.Marginalize(joint, "Rain") // scope [Wet]
//
// Performance:
//
//   - Multiply: O(result size · union rank)
//   - Marginalize / MaxMarginalize / Reduce: O(size · rank)
//   - Value / At: O(scope)
//
// See examples in example_test.go for an end-to-end variable-elimination
// walkthrough.
package factor
