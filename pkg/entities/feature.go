package entities

// FeatureFlag associates a feature key with the experiments that can decide
// it and an optional rollout used when no experiment claims the user.
type FeatureFlag struct {
	Key           string
	ExperimentIDs []string
	RolloutID     string
}

// Rollout is an ordered list of targeting rules. Rules are regular
// experiments evaluated strictly in order; the last rule is the
// "Everyone Else" fallback and usually carries no audience conditions.
type Rollout struct {
	ID    string
	Rules []Experiment
}

// Source tells whether a feature decision came from a named experiment or a
// rollout targeting rule.
type Source string

const (
	SourceExperiment Source = "experiment"
	SourceRollout    Source = "rollout"
)

// Decision is the outcome of a feature decision: the experiment (or rollout
// rule) that produced it, the assigned variation and the source.
type Decision struct {
	Experiment *Experiment
	Variation  *Variation
	Source     Source
}

// ProjectConfig is the read-only accessor surface over one configuration
// snapshot. Implementations must be safe for concurrent use and must report
// missing entities with ok=false rather than panicking or erroring.
type ProjectConfig interface {
	ExperimentByKey(key string) (*Experiment, bool)
	ExperimentByID(id string) (*Experiment, bool)
	FeatureByKey(key string) (*FeatureFlag, bool)
	RolloutByID(id string) (*Rollout, bool)
	GroupByID(id string) (*Group, bool)
}
