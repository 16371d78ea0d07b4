package decision_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/expkit/pkg/condition"
	"github.com/dmitrymomot/expkit/pkg/entities"
	"github.com/dmitrymomot/expkit/pkg/userprofile"
)

// fakeConfig is a hand-built snapshot for decision tests.
type fakeConfig struct {
	experiments []*entities.Experiment
	features    map[string]*entities.FeatureFlag
	rollouts    map[string]*entities.Rollout
	groups      map[string]*entities.Group
}

func (c *fakeConfig) ExperimentByKey(key string) (*entities.Experiment, bool) {
	for _, e := range c.experiments {
		if e.Key == key {
			return e, true
		}
	}
	return nil, false
}

func (c *fakeConfig) ExperimentByID(id string) (*entities.Experiment, bool) {
	for _, e := range c.experiments {
		if e.ID == id {
			return e, true
		}
	}
	return nil, false
}

func (c *fakeConfig) FeatureByKey(key string) (*entities.FeatureFlag, bool) {
	f, ok := c.features[key]
	return f, ok
}

func (c *fakeConfig) RolloutByID(id string) (*entities.Rollout, bool) {
	r, ok := c.rollouts[id]
	return r, ok
}

func (c *fakeConfig) GroupByID(id string) (*entities.Group, bool) {
	g, ok := c.groups[id]
	return g, ok
}

// testExperiment is the concrete scenario used across the pipeline tests:
// running, no audience, and every bucket value landing in variation 111128.
func testExperiment() *entities.Experiment {
	return &entities.Experiment{
		ID:     "1886780721",
		Key:    "test_experiment",
		Status: entities.StatusRunning,
		Variations: []entities.Variation{
			{ID: "111128", Key: "control"},
			{ID: "111129", Key: "variation"},
		},
		TrafficAllocation: entities.TrafficAllocation{
			{EntityID: "111128", EndOfRange: 10000},
		},
	}
}

// audienceProPlan matches users whose plan attribute equals "pro".
func audienceProPlan() condition.Node {
	return condition.Leaf{Name: "plan", Match: condition.MatchExact, Value: "pro"}
}

// recordingHandler captures log records so tests can assert on levels and
// messages.
type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func (h *recordingHandler) count(level slog.Level) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, r := range h.records {
		if r.Level == level {
			n++
		}
	}
	return n
}

func (h *recordingHandler) messages() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.records))
	for i, r := range h.records {
		out[i] = r.Message
	}
	return out
}

// spyStore records profile store traffic and can be primed with profiles or
// failures.
type spyStore struct {
	mu       sync.Mutex
	profiles map[string]*userprofile.Profile
	lookups  int
	saves    int

	lookupErr error
	saveErr   error
	panicOn   string // "lookup" or "save"
}

func newSpyStore() *spyStore {
	return &spyStore{profiles: make(map[string]*userprofile.Profile)}
}

func (s *spyStore) Lookup(ctx context.Context, userID string) (*userprofile.Profile, error) {
	s.mu.Lock()
	s.lookups++
	s.mu.Unlock()
	if s.panicOn == "lookup" {
		panic("store blew up on lookup")
	}
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profiles[userID].Clone(), nil
}

func (s *spyStore) Save(ctx context.Context, profile *userprofile.Profile) error {
	s.mu.Lock()
	s.saves++
	s.mu.Unlock()
	if s.panicOn == "save" {
		panic("store blew up on save")
	}
	if s.saveErr != nil {
		return s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UserID] = profile.Clone()
	return nil
}

func (s *spyStore) lookupCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookups
}

func (s *spyStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func (s *spyStore) saved(userID string) *userprofile.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profiles[userID].Clone()
}

var errStoreDown = errors.New("store down")
