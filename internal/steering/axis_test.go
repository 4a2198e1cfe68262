package steering

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caster-trail/internal/config"
	"caster-trail/internal/mathutil"
)

func TestSolveUnitLength(t *testing.T) {
	pairs := [][2]mathutil.Vec3{
		{{0, 0, 0}, {1, 0, 0}},
		{{-3.362373039435073, 0, 0}, {0, 0, -9.238044001630865}},
		{{1, 2, 3}, {-4, 5, 6.5}},
		{{1e6, 1e6, 1e6}, {1e6 + 1, 1e6, 1e6}},
		{{0, 0, 0}, {1e-6, 0, 0}},
	}
	for _, p := range pairs {
		axis, err := Solve(p[0], p[1])
		require.NoError(t, err)
		assert.InDelta(t, 1.0, axis.Len(), 1e-9)

		// Direction follows anchor2 - anchor1.
		assert.Greater(t, axis.Dot(p[1].Sub(p[0])), 0.0)
	}
}

func TestSolveIsBitIdentical(t *testing.T) {
	a1 := mathutil.Vec3{-3.362373039435073, 0, 0}
	a2 := mathutil.Vec3{0, 0, -9.238044001630865}
	first, err := Solve(a1, a2)
	require.NoError(t, err)
	second, err := Solve(a1, a2)
	require.NoError(t, err)
	for k := 0; k < 3; k++ {
		assert.Equal(t, math.Float64bits(first[k]), math.Float64bits(second[k]))
	}
}

func TestSolveDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		a1, a2 mathutil.Vec3
	}{
		{"coincident", mathutil.Vec3{1, 2, 3}, mathutil.Vec3{1, 2, 3}},
		{"origin", mathutil.Vec3{}, mathutil.Vec3{}},
		{"rounding noise", mathutil.Vec3{1.7763568394002505e-15, 0, 0}, mathutil.Vec3{0, 0, 3.552713678800501e-15}},
		{"nan", mathutil.Vec3{math.NaN(), 0, 0}, mathutil.Vec3{1, 0, 0}},
		{"inf", mathutil.Vec3{0, 0, 0}, mathutil.Vec3{math.Inf(1), 0, 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Solve(tc.a1, tc.a2)
			var degenerate *DegenerateAxisError
			require.True(t, errors.As(err, &degenerate))
			assert.Equal(t, tc.a1[1], degenerate.Anchor1[1])
		})
	}
}

func TestAnchorsDefaultGeometry(t *testing.T) {
	ground, head := Anchors(config.DefaultTrail())

	assert.InDelta(t, -3.362373039435073, ground[0], 1e-12)
	assert.Equal(t, 0.0, ground[2])
	assert.Equal(t, 0.0, head[0])
	assert.InDelta(t, -9.238044001630865, head[2], 1e-12)

	axis, err := Axis(config.DefaultTrail())
	require.NoError(t, err)
	assert.InDelta(t, 0.3420201433256689, axis[0], 1e-12)
	assert.Equal(t, 0.0, axis[1])
	assert.InDelta(t, -0.9396926207859083, axis[2], 1e-12)

	// The caster angle is measured between the axis and the ground plane.
	assert.InDelta(t, 70.0, math.Acos(math.Abs(axis[0]))*180/math.Pi, 1e-9)
}

func TestAxisDegenerateGeometry(t *testing.T) {
	// offset = D·cos(caster) puts both anchors on the origin.
	trail := config.DefaultTrail()
	trail.CasterDeg = 60
	trail.Offset = 10

	_, err := Axis(trail)
	var degenerate *DegenerateAxisError
	assert.ErrorAs(t, err, &degenerate)
}
