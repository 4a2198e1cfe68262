// Package trajectory turns the wheel about the steering axis one fixed step
// at a time and records where it touches the ground.
package trajectory

import (
	"fmt"

	"caster-trail/internal/config"
	"caster-trail/internal/mathutil"
	"caster-trail/internal/wheel"
)

// ContactRecord is the ground-contact sample captured after Step increments.
type ContactRecord struct {
	Step  int           // 1-based increment count
	Angle float64       // handlebar rotation in degrees, Step·step
	Index int           // sample index within the wheel cloud
	Point mathutil.Vec3 // the sample itself, never interpolated
}

// NumericalInstabilityError reports a NaN or infinite coordinate produced
// while turning the wheel.
type NumericalInstabilityError struct {
	Step  int
	Angle float64
	Index int
	Value float64
}

func (e *NumericalInstabilityError) Error() string {
	return fmt.Sprintf("trajectory: non-finite coordinate %v at point %d, step %d (%.6g°)",
		e.Value, e.Index, e.Step, e.Angle)
}

// Run turns initial about axis in totalSteps increments of stepDeg and
// records the lowest point after every increment.
//
// The same small-angle matrix is applied to the previous pose each step, so
// rounding accumulates exactly as a step-by-step rotation would. The 0° pose
// is not recorded; the last record is at totalSteps·stepDeg.
func Run(initial wheel.Cloud, axis mathutil.Vec3, stepDeg float64, totalSteps int) (*Trajectory, error) {
	switch {
	case initial.Len() == 0:
		return nil, &config.ConfigurationError{Field: "elements", Value: 0, Reason: "wheel has no points"}
	case !(stepDeg > 0):
		return nil, &config.ConfigurationError{Field: "step_deg", Value: stepDeg, Reason: "must be positive"}
	case totalSteps < 1:
		return nil, &config.ConfigurationError{Field: "total_steps", Value: totalSteps, Reason: "must be at least 1"}
	}

	r := mathutil.RotAxis(stepDeg, axis)
	cloud := initial
	records := make([]ContactRecord, 0, totalSteps)

	for step := 1; step <= totalSteps; step++ {
		angle := float64(step) * stepDeg
		cloud = cloud.Transform(r)

		if i, v := cloud.NonFinite(); i >= 0 {
			return nil, &NumericalInstabilityError{Step: step, Angle: angle, Index: i, Value: v}
		}

		idx := cloud.Lowest()
		records = append(records, ContactRecord{
			Step:  step,
			Angle: angle,
			Index: idx,
			Point: cloud.At(idx),
		})
	}

	return &Trajectory{records: records}, nil
}
