package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"caster-trail/internal/config"
	"caster-trail/internal/logging"
	"caster-trail/internal/render"
	"caster-trail/internal/sweep"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to a JSON or YAML config file")
	caster := flag.Float64("caster", 0, "Caster angle in degrees (default: 70)")
	diameter := flag.Float64("diameter", 0, "Wheel diameter (default: 20)")
	offset := flag.Float64("offset", 0, "Fork offset (default: 10)")
	elements := flag.Int("elements", 0, "Sample points on the wheel rim (default: 1000)")
	step := flag.Float64("step", 0, "Steering increment in degrees (default: 0.1)")
	limit := flag.Float64("limit", 0, "Steering limit in degrees (default: 50)")
	outputDir := flag.String("output", "", "Output directory (default: trail-renders)")
	format := flag.String("format", "", "Image format: webp, png or tga (default: webp)")
	logLevel := flag.String("log-level", "", "debug, info, warn or error (default: info)")

	flag.Parse()

	// Load config
	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// Only flags given on the command line override the file.
	flags := config.Flags{OutputDir: *outputDir, Format: *format, LogLevel: *logLevel}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "caster":
			flags.CasterDeg = caster
		case "diameter":
			flags.Diameter = diameter
		case "offset":
			flags.Offset = offset
		case "elements":
			flags.Elements = elements
		case "step":
			flags.StepDeg = step
		case "limit":
			flags.SteeringLimitDeg = limit
		}
	})
	cfg.Resolve(flags)
	cfg.Sweep.Casters = nil

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	opts, err := render.OptionsFrom(cfg.Output)
	if err != nil {
		log.Error("invalid output settings", zap.Error(err))
		os.Exit(1)
	}

	t := cfg.Trail
	fmt.Printf("Caster trail: caster %g°, diameter %g, offset %g\n", t.CasterDeg, t.Diameter, t.Offset)
	fmt.Printf("Points: %d, Step: %g° (%d steps), Limit: ±%g°\n", t.Elements, t.StepDeg, t.TotalSteps(), t.SteeringLimitDeg)
	fmt.Printf("Output: %s\n", cfg.Output.Dir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	r := sweep.Process(sweep.Config{OutputDir: cfg.Output.Dir, Render: opts, Workers: 1, Logger: log}, "", t)
	if !r.Success {
		fmt.Fprintf(os.Stderr, "Error: %s\n", r.Error)
		os.Exit(1)
	}

	sim := r.Sim
	low := sim.Trajectory.Lowest()
	fmt.Printf("Steering axis: (%.6f, %.6f, %.6f)\n", sim.Axis[0], sim.Axis[1], sim.Axis[2])
	fmt.Printf("Ground anchor: (%.6f, %.6f, %.6f)\n", sim.Ground[0], sim.Ground[1], sim.Ground[2])
	fmt.Printf("Head anchor:   (%.6f, %.6f, %.6f)\n", sim.Head[0], sim.Head[1], sim.Head[2])
	fmt.Printf("Records: %d (within %d, beyond %d)\n",
		sim.Trajectory.Len(), len(sim.Buckets.Within), len(sim.Buckets.Beyond))
	fmt.Printf("Initial min height: %.6f\n", sim.InitialMinHeight)
	fmt.Printf("Lowest contact: %.6f at %g° (point %d)\n", low.Point[2], low.Angle, low.Index)
	fmt.Printf("Fingerprint: %016x\n", sim.Trajectory.Fingerprint())
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())
	fmt.Printf("Wrote %s, %s, %s\n", r.Files.Trail, r.Files.Perspective, r.Files.CSV)
}
