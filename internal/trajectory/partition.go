package trajectory

import "caster-trail/internal/mathutil"

// angleTolerance absorbs the rounding in Step·step so a record that lands
// on the limit is not dropped.
const angleTolerance = 1e-9

// Buckets splits a trajectory by handlebar angle. All three slices keep step
// order and share no backing storage with the Trajectory.
type Buckets struct {
	All    []ContactRecord
	Within []ContactRecord // Angle <= limit
	Beyond []ContactRecord // Angle >= 360 - limit, the turn to the other side
}

// Partition sorts every record into All and, by angle, into Within and
// Beyond. A record can land in both only when limitDeg >= 180, which
// config validation rejects.
func Partition(t *Trajectory, limitDeg float64) Buckets {
	b := Buckets{All: t.Records()}
	for _, r := range t.records {
		if r.Angle <= limitDeg+angleTolerance {
			b.Within = append(b.Within, r)
		}
		if r.Angle >= 360-limitDeg-angleTolerance {
			b.Beyond = append(b.Beyond, r)
		}
	}
	return b
}

// Bucket names a Buckets member; used by exporters.
type Bucket string

const (
	BucketWithin  Bucket = "within"
	BucketBeyond  Bucket = "beyond"
	BucketOutside Bucket = "outside"
)

// Classify names the bucket of the record at step. Within wins over Beyond
// on overlap.
func (b Buckets) Classify(step int) Bucket {
	if n := len(b.Within); n > 0 && step <= b.Within[n-1].Step {
		return BucketWithin
	}
	if len(b.Beyond) > 0 && step >= b.Beyond[0].Step {
		return BucketBeyond
	}
	return BucketOutside
}

// The Points methods expose the buckets as plain
// (x, y, z) sequences for renderers.
func (b Buckets) AllPoints() []mathutil.Vec3    { return points(b.All) }
func (b Buckets) WithinPoints() []mathutil.Vec3 { return points(b.Within) }
func (b Buckets) BeyondPoints() []mathutil.Vec3 { return points(b.Beyond) }
