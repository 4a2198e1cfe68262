package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the simulation scalars plus output and sweep settings.
type Config struct {
	Trail    Trail  `json:"trail" yaml:"trail"`
	Sweep    Sweep  `json:"sweep" yaml:"sweep"`
	Output   Output `json:"output" yaml:"output"`
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// Sweep lists caster angles to simulate side by side. Every other scalar
// comes from Trail.
type Sweep struct {
	Casters []float64 `json:"casters" yaml:"casters"`
}

// Output controls chart rendering and where results are written.
type Output struct {
	Dir         string  `json:"dir" yaml:"dir"`
	Format      string  `json:"format" yaml:"format"`
	WidthIn     float64 `json:"width_in" yaml:"width_in"`
	HeightIn    float64 `json:"height_in" yaml:"height_in"`
	DPI         int     `json:"dpi" yaml:"dpi"`
	Supersample int     `json:"supersample" yaml:"supersample"`
	Workers     int     `json:"workers" yaml:"workers"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Trail:    DefaultTrail(),
		LogLevel: "info",
	}
}

// Load reads a JSON or YAML config file (chosen by extension) on top of
// Default, so fields missing from the file keep their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
// Nil pointers and empty values leave the file setting alone.
type Flags struct {
	CasterDeg        *float64
	Diameter         *float64
	Offset           *float64
	Elements         *int
	StepDeg          *float64
	SteeringLimitDeg *float64
	Casters          []float64

	OutputDir string
	Format    string
	Workers   int
	LogLevel  string
}

// Resolve applies flag overrides and fills in any empty output fields.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.CasterDeg != nil {
		c.Trail.CasterDeg = *flags.CasterDeg
	}
	if flags.Diameter != nil {
		c.Trail.Diameter = *flags.Diameter
	}
	if flags.Offset != nil {
		c.Trail.Offset = *flags.Offset
	}
	if flags.Elements != nil {
		c.Trail.Elements = *flags.Elements
	}
	if flags.StepDeg != nil {
		c.Trail.StepDeg = *flags.StepDeg
	}
	if flags.SteeringLimitDeg != nil {
		c.Trail.SteeringLimitDeg = *flags.SteeringLimitDeg
	}
	if len(flags.Casters) > 0 {
		c.Sweep.Casters = flags.Casters
	}
	if flags.OutputDir != "" {
		c.Output.Dir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Output.Format = flags.Format
	}
	if flags.Workers > 0 {
		c.Output.Workers = flags.Workers
	}
	if flags.LogLevel != "" {
		c.LogLevel = flags.LogLevel
	}

	// Defaults for output settings
	if c.Output.Dir == "" {
		c.Output.Dir = "trail-renders"
	}
	if c.Output.Format == "" {
		c.Output.Format = "webp"
	}
	if c.Output.WidthIn <= 0 {
		c.Output.WidthIn = 10
	}
	if c.Output.HeightIn <= 0 {
		c.Output.HeightIn = 6.25
	}
	if c.Output.DPI <= 0 {
		c.Output.DPI = 100
	}
	if c.Output.Supersample <= 0 {
		c.Output.Supersample = 2
	}
	if c.Output.Workers <= 0 {
		c.Output.Workers = runtime.NumCPU()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Trails expands the sweep into one Trail per caster angle. Without a sweep
// it returns the base Trail alone.
func (c Config) Trails() []Trail {
	if len(c.Sweep.Casters) == 0 {
		return []Trail{c.Trail}
	}
	out := make([]Trail, len(c.Sweep.Casters))
	for i, caster := range c.Sweep.Casters {
		t := c.Trail
		t.CasterDeg = caster
		out[i] = t
	}
	return out
}

// ParseCasters reads a comma-separated list of caster angles such as
// "60,65,70".
func ParseCasters(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, invalid("sweep.casters", part, "not a number")
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, invalid("sweep.casters", s, "no caster angles given")
	}
	return out, nil
}

// Validate checks every trail of the sweep and the output settings.
func (c Config) Validate() error {
	for i, t := range c.Trails() {
		if err := t.Validate(); err != nil {
			if len(c.Sweep.Casters) > 0 {
				return fmt.Errorf("sweep entry %d: %w", i, err)
			}
			return err
		}
	}
	if c.Output.DPI <= 0 {
		return invalid("output.dpi", c.Output.DPI, "must be positive")
	}
	if c.Output.Supersample < 1 {
		return invalid("output.supersample", c.Output.Supersample, "must be at least 1")
	}
	if c.Output.WidthIn <= 0 || c.Output.HeightIn <= 0 {
		return invalid("output.size", fmt.Sprintf("%gx%g", c.Output.WidthIn, c.Output.HeightIn), "must be positive")
	}
	return nil
}
