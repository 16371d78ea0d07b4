package bucketer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/expkit/pkg/entities"
)

// The bucket value computation is a cross-implementation compatibility
// surface: the same identity must land on the same basis point in every SDK
// and every release. These vectors come from the established ecosystem
// algorithm (murmur3 x86-32, seed 1, bucketingID+entityID, truncating ratio
// reduction); a change to the seed, the concatenation order or the
// truncation must fail here even though the behavioral tests still pass.
func TestBucketValueKnownVectors(t *testing.T) {
	t.Parallel()
	b := New(nil)

	vectors := []struct {
		bucketingID string
		entityID    string
		want        int
	}{
		{"ppid1", "1886780721", 5254},
		{"ppid2", "1886780721", 4299},
		{"ppid2", "1886780722", 2434},
		{"ppid3", "1886780721", 5439},
	}

	for _, v := range vectors {
		assert.Equal(t, v.want, b.bucketValue(v.bucketingID, v.entityID),
			"bucketValue(%q, %q)", v.bucketingID, v.entityID)
	}
}

// The ranges walk is exclusive on the upper bound: a value of exactly
// EndOfRange belongs to the next range. Pinned through Allocate with range
// boundaries placed around a known vector.
func TestAllocateBoundaryIsExclusive(t *testing.T) {
	t.Parallel()
	b := New(nil)

	// bucketValue("ppid1", "1886780721") == 5254.
	id, ok := b.Allocate("ppid1", "1886780721", entities.TrafficAllocation{
		{EntityID: "below", EndOfRange: 5254},
		{EntityID: "at", EndOfRange: 5255},
	})
	assert.True(t, ok)
	assert.Equal(t, "at", id)

	id, ok = b.Allocate("ppid1", "1886780721", entities.TrafficAllocation{
		{EntityID: "covers", EndOfRange: 5255},
	})
	assert.True(t, ok)
	assert.Equal(t, "covers", id)

	_, ok = b.Allocate("ppid1", "1886780721", entities.TrafficAllocation{
		{EntityID: "short", EndOfRange: 5254},
	})
	assert.False(t, ok)
}
