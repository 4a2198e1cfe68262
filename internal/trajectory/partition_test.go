package trajectory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caster-trail/internal/config"
	"caster-trail/internal/mathutil"
	"caster-trail/internal/wheel"
)

func TestPartitionCompleteness(t *testing.T) {
	res := defaultRun(t)
	b := res.Buckets

	require.Len(t, b.All, 3600)
	assert.Equal(t, res.Trajectory.Records(), b.All)

	// 0.1° … 50.0°
	require.Len(t, b.Within, 500)
	assert.Equal(t, 1, b.Within[0].Step)
	assert.Equal(t, 500, b.Within[499].Step)

	// 310.0° … 360.0°, both ends included.
	require.Len(t, b.Beyond, 501)
	assert.Equal(t, 3100, b.Beyond[0].Step)
	assert.Equal(t, 3600, b.Beyond[500].Step)

	for _, r := range b.All {
		inWithin := containsStep(b.Within, r.Step)
		inBeyond := containsStep(b.Beyond, r.Step)
		assert.Equal(t, r.Angle <= 50+1e-9, inWithin, "step %d", r.Step)
		assert.Equal(t, r.Angle >= 310-1e-9, inBeyond, "step %d", r.Step)
		assert.False(t, inWithin && inBeyond)
	}
}

func TestPartitionLimits(t *testing.T) {
	tr, err := Run(wheel.InitialPose(1, 12), mathutil.Vec3{0, 0, 1}, 30, 12)
	require.NoError(t, err)

	tests := []struct {
		limit          float64
		within, beyond []int
	}{
		{0, nil, []int{12}},
		{29.9, nil, []int{12}},
		{30, []int{1}, []int{11, 12}},
		{90, []int{1, 2, 3}, []int{9, 10, 11, 12}},
		{179, []int{1, 2, 3, 4, 5}, []int{7, 8, 9, 10, 11, 12}},
	}
	for _, tc := range tests {
		b := Partition(tr, tc.limit)
		assert.Len(t, b.All, 12)
		assert.Equal(t, tc.within, steps(b.Within), "within at %v°", tc.limit)
		assert.Equal(t, tc.beyond, steps(b.Beyond), "beyond at %v°", tc.limit)
	}
}

func TestPartitionDoesNotAlias(t *testing.T) {
	res := defaultRun(t)
	b := Partition(res.Trajectory, 50)
	b.All[0].Point = mathutil.Vec3{1, 2, 3}
	b.Within[0].Point = mathutil.Vec3{4, 5, 6}
	assert.NotEqual(t, mathutil.Vec3{1, 2, 3}, res.Trajectory.At(0).Point)
	assert.NotEqual(t, mathutil.Vec3{4, 5, 6}, res.Trajectory.At(0).Point)
}

func TestClassify(t *testing.T) {
	res := defaultRun(t)
	b := res.Buckets

	assert.Equal(t, BucketWithin, b.Classify(1))
	assert.Equal(t, BucketWithin, b.Classify(500))
	assert.Equal(t, BucketOutside, b.Classify(501))
	assert.Equal(t, BucketOutside, b.Classify(3099))
	assert.Equal(t, BucketBeyond, b.Classify(3100))
	assert.Equal(t, BucketBeyond, b.Classify(3600))

	assert.Len(t, b.WithinPoints(), 500)
	assert.Len(t, b.BeyondPoints(), 501)
	assert.Equal(t, res.Trajectory.Points(), b.AllPoints())
}

func TestPartitionFollowsConfiguredLimit(t *testing.T) {
	trail := config.DefaultTrail()
	trail.SteeringLimitDeg = 35
	trail.Elements = 90
	res, err := Simulate(trail)
	require.NoError(t, err)
	assert.Len(t, res.Buckets.Within, 350)
	assert.Len(t, res.Buckets.Beyond, 351)
}

func containsStep(records []ContactRecord, step int) bool {
	for _, r := range records {
		if r.Step == step {
			return true
		}
	}
	return false
}

func steps(records []ContactRecord) []int {
	var out []int
	for _, r := range records {
		out = append(out, r.Step)
	}
	return out
}
