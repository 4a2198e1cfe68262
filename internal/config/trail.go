package config

import (
	"fmt"
	"math"
)

// Trail is the immutable input of one steering-trajectory run.
type Trail struct {
	CasterDeg        float64 `json:"caster_deg" yaml:"caster_deg"`
	Diameter         float64 `json:"diameter" yaml:"diameter"`
	Offset           float64 `json:"offset" yaml:"offset"`
	Elements         int     `json:"elements" yaml:"elements"`
	StepDeg          float64 `json:"step_deg" yaml:"step_deg"`
	SteeringLimitDeg float64 `json:"steering_limit_deg" yaml:"steering_limit_deg"`
}

// DefaultTrail is a 70° caster, 20 unit wheel with a 10 unit offset,
// sampled with 1000 points and turned in 0.1° steps.
func DefaultTrail() Trail {
	return Trail{
		CasterDeg:        70,
		Diameter:         20,
		Offset:           10,
		Elements:         1000,
		StepDeg:          0.1,
		SteeringLimitDeg: 50,
	}
}

// stepTolerance is the relative slack allowed when checking that the
// step divides a full turn.
const stepTolerance = 1e-9

// ConfigurationError reports an invalid scalar input. It is always returned
// before a simulation starts.
type ConfigurationError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("config: invalid %s=%v: %s", e.Field, e.Value, e.Reason)
}

func invalid(field string, value any, reason string) error {
	return &ConfigurationError{Field: field, Value: value, Reason: reason}
}

// Validate returns a *ConfigurationError for the first invalid field.
func (t Trail) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"caster_deg", t.CasterDeg},
		{"diameter", t.Diameter},
		{"offset", t.Offset},
		{"step_deg", t.StepDeg},
		{"steering_limit_deg", t.SteeringLimitDeg},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return invalid(f.name, f.v, "must be finite")
		}
	}

	if t.CasterDeg <= 0 || t.CasterDeg >= 90 {
		return invalid("caster_deg", t.CasterDeg, "must be strictly between 0 and 90")
	}
	if t.Diameter <= 0 {
		return invalid("diameter", t.Diameter, "must be positive")
	}
	if t.Offset <= 0 {
		return invalid("offset", t.Offset, "must be positive")
	}
	if t.Elements < 3 {
		return invalid("elements", t.Elements, "must be at least 3")
	}
	if t.StepDeg <= 0 {
		return invalid("step_deg", t.StepDeg, "must be positive")
	}
	n := 360 / t.StepDeg
	r := math.Round(n)
	if r < 1 || math.Abs(n-r) > stepTolerance*r {
		return invalid("step_deg", t.StepDeg, "must divide 360 exactly")
	}
	if t.SteeringLimitDeg < 0 || t.SteeringLimitDeg >= 180 {
		return invalid("steering_limit_deg", t.SteeringLimitDeg, "must be in [0, 180)")
	}
	return nil
}

// TotalSteps is the number of increments in one full turn. Only meaningful
// after Validate succeeds.
func (t Trail) TotalSteps() int {
	return int(math.Round(360 / t.StepDeg))
}
