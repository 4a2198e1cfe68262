// Package wheel models the front wheel as a rigid ring of sample points.
package wheel

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"caster-trail/internal/mathutil"
)

// Cloud is the wheel rim sampled at a fixed number of points. A Cloud is
// never modified after construction; Transform returns a new one.
type Cloud struct {
	pts []mathutil.Vec3
}

// InitialPose samples n points of the unsteered wheel. Point k sits at
// ω = 2πk/n on a circle of radius diameter in the x–z plane, with the hub at
// height diameter, so the rim touches the ground at the origin.
func InitialPose(diameter float64, n int) Cloud {
	pts := make([]mathutil.Vec3, n)
	for k := range pts {
		omega := 2 * math.Pi * float64(k) / float64(n)
		pts[k] = mathutil.Vec3{
			diameter * math.Cos(omega),
			0,
			diameter*math.Sin(omega) + diameter,
		}
	}
	return Cloud{pts: pts}
}

// FromPoints copies pts into a new Cloud.
func FromPoints(pts []mathutil.Vec3) Cloud {
	return Cloud{pts: append([]mathutil.Vec3(nil), pts...)}
}

func (c Cloud) Len() int { return len(c.pts) }

func (c Cloud) At(i int) mathutil.Vec3 { return c.pts[i] }

// Points returns a copy of the samples in order.
func (c Cloud) Points() []mathutil.Vec3 {
	return append([]mathutil.Vec3(nil), c.pts...)
}

// Transform applies m to every point and returns the result as a new Cloud.
func (c Cloud) Transform(m mathutil.Mat3) Cloud {
	out := make([]mathutil.Vec3, len(c.pts))
	for i, p := range c.pts {
		out[i] = m.MulVec3(p)
	}
	return Cloud{pts: out}
}

// Lowest returns the index of the point with the smallest z. Ties go to the
// lowest index. It panics on an empty Cloud.
func (c Cloud) Lowest() int {
	return floats.MinIdx(c.heights(make([]float64, len(c.pts))))
}

// MinHeight returns the smallest z in the cloud.
func (c Cloud) MinHeight() float64 {
	return c.pts[c.Lowest()][2]
}

// NonFinite returns the index and value of the first NaN or infinite
// coordinate, or -1 when every point is finite.
func (c Cloud) NonFinite() (int, float64) {
	for i, p := range c.pts {
		if p.IsFinite() {
			continue
		}
		for _, v := range p {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return i, v
			}
		}
	}
	return -1, 0
}

func (c Cloud) heights(dst []float64) []float64 {
	for i, p := range c.pts {
		dst[i] = p[2]
	}
	return dst
}
