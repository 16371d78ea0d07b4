package userprofile

import (
	"context"
	"maps"
)

// Profile is one user's persisted decision record: a mapping from experiment
// id to the variation id the user was previously assigned.
type Profile struct {
	UserID            string            `json:"user_id"`
	ExperimentBuckets map[string]string `json:"experiment_bucket_map"`
}

// NewProfile creates an empty profile for the user.
func NewProfile(userID string) *Profile {
	return &Profile{
		UserID:            userID,
		ExperimentBuckets: make(map[string]string),
	}
}

// Variation returns the saved variation id for the experiment.
func (p *Profile) Variation(experimentID string) (string, bool) {
	if p == nil || p.ExperimentBuckets == nil {
		return "", false
	}
	id, ok := p.ExperimentBuckets[experimentID]
	return id, ok
}

// SetVariation records an assignment, merging into existing entries rather
// than replacing them.
func (p *Profile) SetVariation(experimentID, variationID string) {
	if p.ExperimentBuckets == nil {
		p.ExperimentBuckets = make(map[string]string)
	}
	p.ExperimentBuckets[experimentID] = variationID
}

// Clone returns a deep copy so stored profiles cannot be mutated through
// previously returned pointers.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	clone := &Profile{UserID: p.UserID}
	if p.ExperimentBuckets != nil {
		clone.ExperimentBuckets = maps.Clone(p.ExperimentBuckets)
	}
	return clone
}

// Store is the contract an external user profile store implements. Both
// operations are fallible; the decision service treats a Lookup failure as a
// miss and a Save failure as a no-op.
type Store interface {
	// Lookup returns the user's profile, or nil when none is saved.
	Lookup(ctx context.Context, userID string) (*Profile, error)

	// Save persists the profile, replacing any previous record for the user.
	Save(ctx context.Context, profile *Profile) error
}

// NoopStore is the default store: every lookup misses and saves are
// discarded.
type NoopStore struct{}

func (NoopStore) Lookup(ctx context.Context, userID string) (*Profile, error) { return nil, nil }

func (NoopStore) Save(ctx context.Context, profile *Profile) error { return nil }
