package mathutil

import "math"

// SignedAngle folds a handlebar rotation in degrees into (-180, 180].
// 350° of rotation is a 10° turn to the other side.
func SignedAngle(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	if d > 180 {
		return d - 360
	}
	return d
}
