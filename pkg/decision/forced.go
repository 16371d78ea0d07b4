package decision

import "sync"

type forcedKey struct {
	experimentKey string
	userID        string
}

// ForcedVariations is the runtime forced-variation override store. Entries
// are set by the embedding application (typically for QA and debugging),
// live for the lifetime of the service independent of configuration
// reloads, and take precedence over every other decision stage.
type ForcedVariations struct {
	mu        sync.RWMutex
	overrides map[forcedKey]string
}

// NewForcedVariations creates an empty override store.
func NewForcedVariations() *ForcedVariations {
	return &ForcedVariations{overrides: make(map[forcedKey]string)}
}

// Set forces the user into the variation with the given key for the
// experiment. An empty variation key removes the override.
func (f *ForcedVariations) Set(experimentKey, userID, variationKey string) {
	key := forcedKey{experimentKey: experimentKey, userID: userID}
	f.mu.Lock()
	defer f.mu.Unlock()
	if variationKey == "" {
		delete(f.overrides, key)
		return
	}
	f.overrides[key] = variationKey
}

// Get returns the forced variation key for the (experiment, user) pair.
func (f *ForcedVariations) Get(experimentKey, userID string) (string, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	variationKey, ok := f.overrides[forcedKey{experimentKey: experimentKey, userID: userID}]
	return variationKey, ok
}

// Remove clears the override for the (experiment, user) pair.
func (f *ForcedVariations) Remove(experimentKey, userID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.overrides, forcedKey{experimentKey: experimentKey, userID: userID})
}
