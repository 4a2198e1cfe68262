package render

import "caster-trail/internal/mathutil"

// Camera matrices for the charts.
var (
	// TrailView turns the ground-plane trace by +90° about z so the travel
	// direction points up the page.
	TrailView = mathutil.RotZ(mathutil.Deg2Rad(90))

	// zUpToYUp maps world z (up) to screen y: Rx(-90°).
	zUpToYUp = mathutil.RotX(mathutil.Deg2Rad(-90))

	// ObliqueView looks down at the wheel from the front left.
	// Rx(-15°) @ Ry(12°) @ zUpToYUp
	ObliqueView = mathutil.Mat3Mul(mathutil.Mat3Mul(mathutil.RotX(mathutil.Deg2Rad(-15)), mathutil.RotY(mathutil.Deg2Rad(12))), zUpToYUp)
)

// Project maps world points through view and keeps screen x and y
// (orthographic).
func Project(points []mathutil.Vec3, view mathutil.Mat3) (xs, ys []float64) {
	xs = make([]float64, len(points))
	ys = make([]float64, len(points))
	for i, p := range points {
		t := view.MulVec3(p)
		xs[i] = t[0]
		ys[i] = t[1]
	}
	return xs, ys
}
