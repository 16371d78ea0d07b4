package condition

import "strings"

// Evaluate resolves the conjunction with ternary short-circuiting: the first
// false child decides the node, otherwise any unknown child taints the result.
func (n And) Evaluate(attrs map[string]any) Result {
	sawUnknown := false
	for _, child := range n {
		switch Evaluate(child, attrs) {
		case False:
			return False
		case Unknown:
			sawUnknown = true
		}
	}
	if sawUnknown {
		return Unknown
	}
	return True
}

// Evaluate resolves the disjunction with ternary short-circuiting: the first
// true child decides the node, otherwise any unknown child taints the result.
func (n Or) Evaluate(attrs map[string]any) Result {
	sawUnknown := false
	for _, child := range n {
		switch Evaluate(child, attrs) {
		case True:
			return True
		case Unknown:
			sawUnknown = true
		}
	}
	if sawUnknown {
		return Unknown
	}
	return False
}

// Evaluate negates the child; Unknown is preserved.
func (n Not) Evaluate(attrs map[string]any) Result {
	switch Evaluate(n.Child, attrs) {
	case True:
		return False
	case False:
		return True
	default:
		return Unknown
	}
}

// Evaluate resolves the predicate against the attribute map. Missing
// attributes, type mismatches and unrecognized match types all resolve to
// Unknown; a leaf never errors.
func (n Leaf) Evaluate(attrs map[string]any) Result {
	value, present := attrs[n.Name]

	switch n.Match {
	case MatchExists:
		if present && value != nil {
			return True
		}
		return False

	case MatchExact:
		if !present {
			return Unknown
		}
		return matchExact(value, n.Value)

	case MatchSubstring:
		if !present {
			return Unknown
		}
		actual, okActual := value.(string)
		expected, okExpected := n.Value.(string)
		if !okActual || !okExpected {
			return Unknown
		}
		return fromBool(strings.Contains(actual, expected))

	case MatchGreaterThan:
		return matchNumeric(value, present, n.Value, func(a, b float64) bool { return a > b })

	case MatchLessThan:
		return matchNumeric(value, present, n.Value, func(a, b float64) bool { return a < b })

	default:
		return Unknown
	}
}

func matchExact(actual, expected any) Result {
	switch want := expected.(type) {
	case string:
		got, ok := actual.(string)
		if !ok {
			return Unknown
		}
		return fromBool(got == want)
	case bool:
		got, ok := actual.(bool)
		if !ok {
			return Unknown
		}
		return fromBool(got == want)
	default:
		wantNum, ok := toFloat(expected)
		if !ok {
			return Unknown
		}
		gotNum, ok := toFloat(actual)
		if !ok {
			return Unknown
		}
		return fromBool(gotNum == wantNum)
	}
}

func matchNumeric(actual any, present bool, expected any, cmp func(a, b float64) bool) Result {
	if !present {
		return Unknown
	}
	got, ok := toFloat(actual)
	if !ok {
		return Unknown
	}
	want, ok := toFloat(expected)
	if !ok {
		return Unknown
	}
	return fromBool(cmp(got, want))
}

// toFloat widens any supported numeric attribute value to float64. Booleans
// and strings are not numbers here; JSON-decoded values arrive as float64
// while caller-supplied attributes may use native integer types.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func fromBool(b bool) Result {
	if b {
		return True
	}
	return False
}
