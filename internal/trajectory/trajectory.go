package trajectory

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"caster-trail/internal/mathutil"
)

// Trajectory is the ordered, read-only sequence of contact records of one
// run.
type Trajectory struct {
	records []ContactRecord
}

func (t *Trajectory) Len() int { return len(t.records) }

func (t *Trajectory) At(i int) ContactRecord { return t.records[i] }

// Records returns a copy of all records in step order.
func (t *Trajectory) Records() []ContactRecord {
	return append([]ContactRecord(nil), t.records...)
}

// Points returns the contact points in step order.
func (t *Trajectory) Points() []mathutil.Vec3 {
	return points(t.records)
}

// Lowest returns the record with the smallest height; ties go to the
// earliest step.
func (t *Trajectory) Lowest() ContactRecord {
	best := 0
	for i, r := range t.records {
		if r.Point[2] < t.records[best].Point[2] {
			best = i
		}
	}
	return t.records[best]
}

// Extent returns the component-wise bounds of the contact points.
func (t *Trajectory) Extent() (lo, hi mathutil.Vec3) {
	lo = mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi = mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for _, r := range t.records {
		for k := 0; k < 3; k++ {
			lo[k] = math.Min(lo[k], r.Point[k])
			hi[k] = math.Max(hi[k], r.Point[k])
		}
	}
	return lo, hi
}

// Fingerprint hashes the exact bits of every record. Identical inputs give
// identical fingerprints.
func (t *Trajectory) Fingerprint() uint64 {
	h := xxhash.New()
	var buf [8 * 5]byte
	for _, r := range t.records {
		binary.LittleEndian.PutUint64(buf[0:], uint64(r.Step))
		binary.LittleEndian.PutUint64(buf[8:], uint64(r.Index))
		binary.LittleEndian.PutUint64(buf[16:], math.Float64bits(r.Point[0]))
		binary.LittleEndian.PutUint64(buf[24:], math.Float64bits(r.Point[1]))
		binary.LittleEndian.PutUint64(buf[32:], math.Float64bits(r.Point[2]))
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

func points(records []ContactRecord) []mathutil.Vec3 {
	out := make([]mathutil.Vec3, len(records))
	for i, r := range records {
		out[i] = r.Point
	}
	return out
}
