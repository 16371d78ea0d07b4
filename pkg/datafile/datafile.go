package datafile

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrymomot/expkit/pkg/condition"
	"github.com/dmitrymomot/expkit/pkg/entities"
)

// Wire shapes of the datafile document. Experiments appear both at the top
// level and nested inside groups and rollouts; the shape is identical.
type document struct {
	Version      string           `json:"version"`
	Audiences    []audienceJSON   `json:"audiences"`
	Experiments  []experimentJSON `json:"experiments"`
	Groups       []groupJSON      `json:"groups"`
	FeatureFlags []featureJSON    `json:"featureFlags"`
	Rollouts     []rolloutJSON    `json:"rollouts"`
}

type audienceJSON struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Conditions json.RawMessage `json:"conditions"`
}

type experimentJSON struct {
	ID                string                     `json:"id"`
	Key               string                     `json:"key"`
	Status            string                     `json:"status"`
	Variations        []entities.Variation       `json:"variations"`
	TrafficAllocation entities.TrafficAllocation `json:"trafficAllocation"`
	AudienceIDs       []string                   `json:"audienceIds"`
	ForcedVariations  map[string]string          `json:"forcedVariations"`
}

type groupJSON struct {
	ID                string                     `json:"id"`
	Policy            string                     `json:"policy"`
	TrafficAllocation entities.TrafficAllocation `json:"trafficAllocation"`
	Experiments       []experimentJSON           `json:"experiments"`
}

type featureJSON struct {
	Key           string   `json:"key"`
	ExperimentIDs []string `json:"experimentIds"`
	RolloutID     string   `json:"rolloutId"`
}

type rolloutJSON struct {
	ID          string           `json:"id"`
	Experiments []experimentJSON `json:"experiments"`
}

// Parse decodes a datafile and builds the indexed snapshot.
func Parse(data []byte) (*Config, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrMalformedDatafile, err)
	}

	audiences := make(map[string]condition.Node, len(doc.Audiences))
	for _, a := range doc.Audiences {
		node, err := parseConditions(a.Conditions)
		if err != nil {
			return nil, fmt.Errorf("audience %q: %w", a.ID, err)
		}
		audiences[a.ID] = node
	}

	cfg := &Config{
		version:          doc.Version,
		experimentsByID:  make(map[string]*entities.Experiment),
		experimentsByKey: make(map[string]*entities.Experiment),
		featuresByKey:    make(map[string]*entities.FeatureFlag, len(doc.FeatureFlags)),
		rolloutsByID:     make(map[string]*entities.Rollout, len(doc.Rollouts)),
		groupsByID:       make(map[string]*entities.Group, len(doc.Groups)),
	}

	for _, raw := range doc.Experiments {
		cfg.addExperiment(buildExperiment(raw, "", audiences))
	}

	for _, g := range doc.Groups {
		group := &entities.Group{
			ID:                g.ID,
			Policy:            g.Policy,
			TrafficAllocation: g.TrafficAllocation,
		}
		cfg.groupsByID[group.ID] = group
		for _, raw := range g.Experiments {
			cfg.addExperiment(buildExperiment(raw, group.ID, audiences))
		}
	}

	for _, f := range doc.FeatureFlags {
		cfg.featuresByKey[f.Key] = &entities.FeatureFlag{
			Key:           f.Key,
			ExperimentIDs: f.ExperimentIDs,
			RolloutID:     f.RolloutID,
		}
	}

	for _, r := range doc.Rollouts {
		rollout := &entities.Rollout{ID: r.ID, Rules: make([]entities.Experiment, 0, len(r.Experiments))}
		for _, raw := range r.Experiments {
			rollout.Rules = append(rollout.Rules, *buildExperiment(raw, "", audiences))
		}
		cfg.rolloutsByID[rollout.ID] = rollout
	}

	return cfg, nil
}

// buildExperiment converts the wire shape into the decision model. Multiple
// audience ids combine with OR; ids referencing no declared audience are
// dropped, which widens the audience rather than silently excluding
// everyone.
func buildExperiment(raw experimentJSON, groupID string, audiences map[string]condition.Node) *entities.Experiment {
	var node condition.Node
	if len(raw.AudienceIDs) > 0 {
		or := make(condition.Or, 0, len(raw.AudienceIDs))
		for _, id := range raw.AudienceIDs {
			if audience, ok := audiences[id]; ok && audience != nil {
				or = append(or, audience)
			}
		}
		if len(or) > 0 {
			node = or
		}
	}

	return &entities.Experiment{
		ID:                 raw.ID,
		Key:                raw.Key,
		Status:             raw.Status,
		Variations:         raw.Variations,
		TrafficAllocation:  raw.TrafficAllocation,
		AudienceConditions: node,
		GroupID:            groupID,
		Whitelist:          raw.ForcedVariations,
	}
}
