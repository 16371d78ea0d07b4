package datafile

import "github.com/dmitrymomot/expkit/pkg/entities"

// Config is one immutable configuration snapshot with all lookup indexes
// built at parse time. It implements entities.ProjectConfig and is safe for
// concurrent use without locking.
type Config struct {
	version          string
	experimentsByID  map[string]*entities.Experiment
	experimentsByKey map[string]*entities.Experiment
	featuresByKey    map[string]*entities.FeatureFlag
	rolloutsByID     map[string]*entities.Rollout
	groupsByID       map[string]*entities.Group
}

func (c *Config) addExperiment(exp *entities.Experiment) {
	c.experimentsByID[exp.ID] = exp
	c.experimentsByKey[exp.Key] = exp
}

// Version returns the datafile schema version string.
func (c *Config) Version() string {
	return c.version
}

func (c *Config) ExperimentByKey(key string) (*entities.Experiment, bool) {
	exp, ok := c.experimentsByKey[key]
	return exp, ok
}

func (c *Config) ExperimentByID(id string) (*entities.Experiment, bool) {
	exp, ok := c.experimentsByID[id]
	return exp, ok
}

func (c *Config) FeatureByKey(key string) (*entities.FeatureFlag, bool) {
	feature, ok := c.featuresByKey[key]
	return feature, ok
}

func (c *Config) RolloutByID(id string) (*entities.Rollout, bool) {
	rollout, ok := c.rolloutsByID[id]
	return rollout, ok
}

func (c *Config) GroupByID(id string) (*entities.Group, bool) {
	group, ok := c.groupsByID[id]
	return group, ok
}
