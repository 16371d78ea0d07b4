package datafile

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrymomot/expkit/pkg/condition"
)

// Condition trees are encoded as nested JSON arrays with the operator as the
// first element, e.g.
//
//	["and", {"name": "plan", "match": "exact", "value": "pro"},
//	        ["not", {"name": "beta_opt_out", "match": "exact", "value": true}]]
//
// A bare object is a leaf predicate. Null or absent conditions mean the
// audience matches everyone.
func parseConditions(raw json.RawMessage) (condition.Node, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	return parseNode(raw)
}

func parseNode(raw json.RawMessage) (condition.Node, error) {
	var probe any
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, errors.Join(ErrMalformedCondition, err)
	}

	switch probe.(type) {
	case []any:
		return parseOperator(raw)
	case map[string]any:
		return parseLeaf(raw)
	default:
		return nil, fmt.Errorf("%w: node must be an array or an object", ErrMalformedCondition)
	}
}

func parseOperator(raw json.RawMessage) (condition.Node, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, errors.Join(ErrMalformedCondition, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: empty operator node", ErrMalformedCondition)
	}

	var op string
	if err := json.Unmarshal(items[0], &op); err != nil {
		return nil, fmt.Errorf("%w: operator must be a string", ErrMalformedCondition)
	}

	children := make([]condition.Node, 0, len(items)-1)
	for _, item := range items[1:] {
		child, err := parseNode(item)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}

	switch op {
	case "and":
		return condition.And(children), nil
	case "or":
		return condition.Or(children), nil
	case "not":
		if len(children) != 1 {
			return nil, fmt.Errorf("%w: not takes exactly one child", ErrMalformedCondition)
		}
		return condition.Not{Child: children[0]}, nil
	default:
		return nil, fmt.Errorf("%w: unknown operator %q", ErrMalformedCondition, op)
	}
}

func parseLeaf(raw json.RawMessage) (condition.Node, error) {
	var leaf struct {
		Name  string `json:"name"`
		Match string `json:"match"`
		Value any    `json:"value"`
	}
	if err := json.Unmarshal(raw, &leaf); err != nil {
		return nil, errors.Join(ErrMalformedCondition, err)
	}
	if leaf.Name == "" {
		return nil, fmt.Errorf("%w: leaf missing attribute name", ErrMalformedCondition)
	}
	// Unknown match types are kept: the evaluator resolves them to Unknown,
	// so a newer datafile degrades gracefully on an older SDK.
	return condition.Leaf{
		Name:  leaf.Name,
		Match: condition.MatchType(leaf.Match),
		Value: leaf.Value,
	}, nil
}
