package entities

import "github.com/dmitrymomot/expkit/pkg/condition"

// Experiment statuses as they appear in the datafile. Only StatusRunning
// experiments serve traffic.
const (
	StatusRunning    = "running"
	StatusNotRunning = "not_running"
)

// Variation is a single arm of an experiment. Variables carry the feature
// variable payload verbatim; the decision pipeline never inspects it.
type Variation struct {
	ID             string            `json:"id"`
	Key            string            `json:"key"`
	FeatureEnabled bool              `json:"featureEnabled,omitempty"`
	Variables      map[string]string `json:"variables,omitempty"`
}

// Range is one cumulative slice of a traffic allocation. EndOfRange is the
// exclusive upper bound in basis points.
type Range struct {
	EntityID   string `json:"entityId"`
	EndOfRange int    `json:"endOfRange"`
}

// TrafficAllocation is an ordered list of cumulative ranges over
// [0, 10000) basis points. The ranges need not cover the whole space; a
// bucket value past the last range means the identity is not allocated.
type TrafficAllocation []Range

// Experiment is a single experiment or rollout targeting rule.
type Experiment struct {
	ID                string
	Key               string
	Status            string
	Variations        []Variation
	TrafficAllocation TrafficAllocation

	// AudienceConditions is nil when the experiment has no audience, which
	// matches every user.
	AudienceConditions condition.Node

	// GroupID is non-empty when the experiment is a member of a mutually
	// exclusive group; bucketing then runs against the group space first.
	GroupID string

	// Whitelist maps user ids to variation ids assigned at configuration
	// authoring time. Entries referencing unknown variations are ignored.
	Whitelist map[string]string
}

// IsRunning reports whether the experiment serves traffic.
func (e *Experiment) IsRunning() bool {
	return e.Status == StatusRunning
}

// VariationByID returns the variation with the given id, or nil. A dangling
// id from a traffic range, whitelist or saved profile is a normal miss.
func (e *Experiment) VariationByID(id string) *Variation {
	for i := range e.Variations {
		if e.Variations[i].ID == id {
			return &e.Variations[i]
		}
	}
	return nil
}

// VariationByKey returns the variation with the given key, or nil.
func (e *Experiment) VariationByKey(key string) *Variation {
	for i := range e.Variations {
		if e.Variations[i].Key == key {
			return &e.Variations[i]
		}
	}
	return nil
}

// GroupPolicyRandom is the only group policy with bucketing semantics:
// members share one bucketing space so a user enters at most one of them.
const GroupPolicyRandom = "random"

// Group is a set of mutually exclusive experiments sharing a single
// bucketing space. TrafficAllocation ranges reference experiment ids.
type Group struct {
	ID                string
	Policy            string
	TrafficAllocation TrafficAllocation
}
