package bucketer

import (
	"log/slog"
	"math"

	"github.com/spaolacci/murmur3"

	"github.com/dmitrymomot/expkit/pkg/entities"
)

const (
	// hashSeed is fixed across all SDK implementations; changing it would
	// rebucket every user.
	hashSeed = 1

	// MaxTrafficValue is the exclusive upper bound of the bucketing space,
	// in basis points.
	MaxTrafficValue = 10000
)

// maxHashValue spans the full 32-bit hash range for the ratio reduction.
var maxHashValue = math.Pow(2, 32)

// Bucketer assigns identities to weighted traffic ranges. The zero value is
// not usable; construct with New.
type Bucketer struct {
	logger *slog.Logger
}

// New creates a Bucketer. A nil logger falls back to slog.Default.
func New(logger *slog.Logger) *Bucketer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bucketer{logger: logger}
}

// Bucket assigns the bucketing id to one of the experiment's variations and
// returns nil when the id falls outside the experiment's traffic allocation.
//
// For a member of a mutually exclusive group the identity is first bucketed
// against the group's experiment ranges using the group id as the hashing
// entity; only when that selects this very experiment does variation
// bucketing proceed. The two stages are sequential calls into the same pure
// allocation, never a special case inside it.
func (b *Bucketer) Bucket(bucketingID string, exp *entities.Experiment, config entities.ProjectConfig) *entities.Variation {
	if exp.GroupID != "" && config != nil {
		if group, ok := config.GroupByID(exp.GroupID); ok && group.Policy == entities.GroupPolicyRandom {
			experimentID, ok := b.Allocate(bucketingID, group.ID, group.TrafficAllocation)
			if !ok || experimentID != exp.ID {
				b.logger.Debug("user not bucketed into mutually exclusive experiment",
					slog.String("bucketing_id", bucketingID),
					slog.String("group_id", group.ID),
					slog.String("experiment_key", exp.Key))
				return nil
			}
			b.logger.Debug("user bucketed into mutually exclusive experiment",
				slog.String("bucketing_id", bucketingID),
				slog.String("group_id", group.ID),
				slog.String("experiment_key", exp.Key))
		}
	}

	variationID, ok := b.Allocate(bucketingID, exp.ID, exp.TrafficAllocation)
	if !ok {
		return nil
	}
	// A range referencing an id absent from the variation set is a normal
	// "no assignment", never an error.
	return exp.VariationByID(variationID)
}

// Allocate maps the bucketing id to the first cumulative range whose upper
// bound exceeds the computed bucket value. ok is false when the value falls
// past the last range (unallocated remainder).
func (b *Bucketer) Allocate(bucketingID, entityID string, ranges entities.TrafficAllocation) (string, bool) {
	value := b.bucketValue(bucketingID, entityID)
	for _, r := range ranges {
		if value < r.EndOfRange {
			if r.EntityID == "" {
				return "", false
			}
			return r.EntityID, true
		}
	}
	return "", false
}

// bucketValue reduces the 32-bit hash of bucketingID+entityID to a basis
// point value in [0, MaxTrafficValue). The ratio reduction is the canonical
// cross-SDK algorithm and must stay bit-for-bit identical to it.
func (b *Bucketer) bucketValue(bucketingID, entityID string) int {
	hash := murmur3.Sum32WithSeed([]byte(bucketingID+entityID), hashSeed)
	ratio := float64(hash) / maxHashValue
	return int(ratio * MaxTrafficValue)
}
