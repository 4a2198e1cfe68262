package mathutil

import "math"

// RotX returns a 3×3 rotation matrix around the X axis. Angle in radians.
func RotX(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

// RotY returns a 3×3 rotation matrix around the Y axis.
func RotY(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}
}

// RotZ returns a 3×3 rotation matrix around the Z axis.
func RotZ(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// RotAxis returns the right-handed rotation by deg degrees about the unit
// axis n through the origin (Rodrigues' formula, expanded per element).
// n is not re-normalised; callers pass a unit vector.
func RotAxis(deg float64, n Vec3) Mat3 {
	t := Deg2Rad(deg)
	c, s := math.Cos(t), math.Sin(t)
	k := 1 - c
	nx, ny, nz := n[0], n[1], n[2]
	return Mat3{
		c + nx*nx*k, nx*ny*k - nz*s, nx*nz*k + ny*s,
		ny*nx*k + nz*s, c + ny*ny*k, ny*nz*k - nx*s,
		nz*nx*k - ny*s, nz*ny*k + nx*s, c + nz*nz*k,
	}
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}
