package trajectory

import (
	"fmt"

	"caster-trail/internal/config"
	"caster-trail/internal/mathutil"
	"caster-trail/internal/steering"
	"caster-trail/internal/wheel"
)

// Result bundles a finished run with the inputs renderers need to label it.
type Result struct {
	Trail config.Trail

	Ground, Head mathutil.Vec3 // steering-axis anchors
	Axis         mathutil.Vec3

	// InitialMinHeight is the lowest point of the unsteered wheel.
	InitialMinHeight float64

	Trajectory *Trajectory
	Buckets    Buckets
}

// Simulate validates trail, derives the steering axis, turns the wheel one
// full revolution and partitions the contact points by the steering limit.
func Simulate(trail config.Trail) (*Result, error) {
	if err := trail.Validate(); err != nil {
		return nil, err
	}

	ground, head := steering.Anchors(trail)
	axis, err := steering.Solve(ground, head)
	if err != nil {
		return nil, fmt.Errorf("trajectory: caster %g°: %w", trail.CasterDeg, err)
	}

	initial := wheel.InitialPose(trail.Diameter, trail.Elements)
	tr, err := Run(initial, axis, trail.StepDeg, trail.TotalSteps())
	if err != nil {
		return nil, fmt.Errorf("trajectory: caster %g°: %w", trail.CasterDeg, err)
	}

	return &Result{
		Trail:            trail,
		Ground:           ground,
		Head:             head,
		Axis:             axis,
		InitialMinHeight: initial.MinHeight(),
		Trajectory:       tr,
		Buckets:          Partition(tr, trail.SteeringLimitDeg),
	}, nil
}
