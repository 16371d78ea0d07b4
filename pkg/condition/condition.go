package condition

// Result is the three-valued outcome of evaluating a condition node.
// The host bool is deliberately not reused: absence of an attribute must be
// distinguishable from a failed match.
type Result uint8

const (
	// Unknown means the node could not be decided (missing attribute, type
	// mismatch, unrecognized match type).
	Unknown Result = iota
	// False means the node decidedly did not match.
	False
	// True means the node decidedly matched.
	True
)

// String implements fmt.Stringer for log output.
func (r Result) String() string {
	switch r {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// MatchType selects the comparison a Leaf performs.
type MatchType string

const (
	// MatchExact compares strings, booleans and numbers for equality.
	MatchExact MatchType = "exact"
	// MatchSubstring checks that a string attribute contains the expected value.
	MatchSubstring MatchType = "substring"
	// MatchExists checks that the attribute is present and non-nil.
	MatchExists MatchType = "exists"
	// MatchGreaterThan compares numeric attributes.
	MatchGreaterThan MatchType = "gt"
	// MatchLessThan compares numeric attributes.
	MatchLessThan MatchType = "lt"
)

// Node is a single node of an audience-condition tree.
type Node interface {
	// Evaluate resolves the node against the attribute map.
	Evaluate(attrs map[string]any) Result
}

// And matches when all children match. A single false child decides the node
// even if other children are unknown.
type And []Node

// Or matches when any child matches. A single true child decides the node
// even if other children are unknown.
type Or []Node

// Not negates its child; an unknown child stays unknown.
type Not struct {
	Child Node
}

// Leaf is a single attribute predicate.
type Leaf struct {
	Name  string
	Match MatchType
	Value any
}

// Evaluate resolves a tree against the attribute map. A nil tree matches
// unconditionally, modeling an empty audience condition.
func Evaluate(n Node, attrs map[string]any) Result {
	if n == nil {
		return True
	}
	return n.Evaluate(attrs)
}
