package userprofile

import (
	"context"
	"errors"
	"fmt"
)

// guarded shields callers from misbehaving store implementations by turning
// panics into errors.
type guarded struct {
	store Store
}

// Guard wraps a store so that a panicking implementation surfaces as an
// ErrStorePanic error instead of unwinding the caller. The decision service
// wraps every injected store with Guard; combined with its own error
// handling this guarantees a broken store can cost at most sticky bucketing,
// never a decision.
func Guard(store Store) Store {
	if store == nil {
		return NoopStore{}
	}
	if _, ok := store.(*guarded); ok {
		return store
	}
	return &guarded{store: store}
}

func (g *guarded) Lookup(ctx context.Context, userID string) (profile *Profile, err error) {
	defer func() {
		if r := recover(); r != nil {
			profile = nil
			err = errors.Join(ErrStorePanic, fmt.Errorf("lookup: %v", r))
		}
	}()
	return g.store.Lookup(ctx, userID)
}

func (g *guarded) Save(ctx context.Context, profile *Profile) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Join(ErrStorePanic, fmt.Errorf("save: %v", r))
		}
	}()
	return g.store.Save(ctx, profile)
}
