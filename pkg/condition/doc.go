// Package condition provides boolean audience-condition trees evaluated
// against a user attribute map.
//
// Evaluation is three-valued: a leaf whose attribute is absent, of the wrong
// type, or whose match type is unrecognized resolves to Unknown rather than
// an error, and Unknown propagates through the combinators under standard
// ternary logic (Or still short-circuits to True on any true child, And to
// False on any false child).
//
// # Usage
//
//	tree := condition.And{
//		condition.Leaf{Name: "plan", Match: condition.MatchExact, Value: "pro"},
//		condition.Not{Child: condition.Leaf{Name: "beta_opt_out", Match: condition.MatchExact, Value: true}},
//	}
//
//	if condition.Evaluate(tree, attrs) == condition.True {
//		// user is in the audience
//	}
//
// A nil tree matches unconditionally, which models an experiment without
// audience conditions.
//
// The package never mutates its inputs and has no error path: the worst
// outcome of a malformed tree is an Unknown result, which callers treat as
// "not in the audience".
package condition
