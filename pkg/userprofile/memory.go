package userprofile

import (
	"context"
	"sync"

	"github.com/dmitrymomot/expkit/pkg/cache"
)

// MemoryStore is an unbounded in-process profile store. Profiles are deep
// copied on the way in and out, so callers can keep mutating the records
// they hold without corrupting stored state.
type MemoryStore struct {
	profiles map[string]*Profile
	mu       sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]*Profile)}
}

// Lookup returns a copy of the user's profile, or nil on a miss.
func (m *MemoryStore) Lookup(ctx context.Context, userID string) (*Profile, error) {
	m.mu.RLock()
	profile := m.profiles[userID]
	m.mu.RUnlock()
	return profile.Clone(), nil
}

// Save stores a copy of the profile, replacing any previous record.
func (m *MemoryStore) Save(ctx context.Context, profile *Profile) error {
	if profile == nil {
		return ErrNilProfile
	}
	if profile.UserID == "" {
		return ErrEmptyUserID
	}

	clone := profile.Clone()
	m.mu.Lock()
	m.profiles[profile.UserID] = clone
	m.mu.Unlock()
	return nil
}

// LRUStore is an in-process profile store bounded by an LRU: once capacity
// is reached the least recently decided user's profile is evicted and that
// user simply gets rebucketed on their next decision.
type LRUStore struct {
	profiles *cache.LRU[string, *Profile]
}

// NewLRUStore creates a bounded store holding at most capacity profiles.
// Panics on non-positive capacity.
func NewLRUStore(capacity int) *LRUStore {
	return &LRUStore{profiles: cache.NewLRU[string, *Profile](capacity)}
}

// Lookup returns a copy of the user's profile, or nil on a miss.
func (s *LRUStore) Lookup(ctx context.Context, userID string) (*Profile, error) {
	profile, ok := s.profiles.Get(userID)
	if !ok {
		return nil, nil
	}
	return profile.Clone(), nil
}

// Save stores a copy of the profile, possibly evicting the least recently
// used one.
func (s *LRUStore) Save(ctx context.Context, profile *Profile) error {
	if profile == nil {
		return ErrNilProfile
	}
	if profile.UserID == "" {
		return ErrEmptyUserID
	}
	s.profiles.Put(profile.UserID, profile.Clone())
	return nil
}
