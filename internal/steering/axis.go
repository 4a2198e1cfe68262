// Package steering derives the steering-axis direction from the fork
// geometry.
package steering

import (
	"fmt"
	"math"

	"caster-trail/internal/config"
	"caster-trail/internal/mathutil"
)

// degenerateTolerance scales with the anchor magnitude so rounding noise in
// the anchor formula is not mistaken for a direction.
const degenerateTolerance = 1e-12

// DegenerateAxisError is returned when two anchors do not define a
// direction.
type DegenerateAxisError struct {
	Anchor1, Anchor2 mathutil.Vec3
}

func (e *DegenerateAxisError) Error() string {
	return fmt.Sprintf("steering: anchors %v and %v do not define an axis", e.Anchor1, e.Anchor2)
}

// Solve returns the unit vector pointing from anchor1 to anchor2.
func Solve(anchor1, anchor2 mathutil.Vec3) (mathutil.Vec3, error) {
	d := anchor2.Sub(anchor1)
	l := d.Len()
	scale := math.Max(1, math.Max(anchor1.Len(), anchor2.Len()))
	if math.IsNaN(l) || math.IsInf(l, 0) || l <= degenerateTolerance*scale {
		return mathutil.Vec3{}, &DegenerateAxisError{Anchor1: anchor1, Anchor2: anchor2}
	}
	return mathutil.Vec3{d[0] / l, d[1] / l, d[2] / l}, nil
}

// Anchors returns the two points the steering axis passes through, ordered
// so that Solve(ground, head) points from the ground anchor up to the head
// anchor.
//
// head sits on the vertical through the unsteered contact point, at
// D - offset/cos(caster); ground sits on the x axis at
// D/tan(caster) - offset/sin(caster).
func Anchors(t config.Trail) (ground, head mathutil.Vec3) {
	theta := mathutil.Deg2Rad(t.CasterDeg)
	head = mathutil.Vec3{0, 0, t.Diameter - t.Offset/math.Cos(theta)}
	ground = mathutil.Vec3{t.Diameter/math.Tan(theta) - t.Offset/math.Sin(theta), 0, 0}
	return ground, head
}

// Axis is Anchors followed by Solve.
func Axis(t config.Trail) (mathutil.Vec3, error) {
	ground, head := Anchors(t)
	return Solve(ground, head)
}
