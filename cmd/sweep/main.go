package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
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
	casters := flag.String("casters", "", "Comma-separated caster angles, e.g. 60,65,70,75")
	diameter := flag.Float64("diameter", 0, "Wheel diameter (default: 20)")
	offset := flag.Float64("offset", 0, "Fork offset (default: 10)")
	elements := flag.Int("elements", 0, "Sample points on the wheel rim (default: 1000)")
	step := flag.Float64("step", 0, "Steering increment in degrees (default: 0.1)")
	limit := flag.Float64("limit", 0, "Steering limit in degrees (default: 50)")
	workers := flag.Int("workers", 0, "Number of concurrent runs (default: NumCPU)")
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

	flags := config.Flags{OutputDir: *outputDir, Format: *format, Workers: *workers, LogLevel: *logLevel}
	if *casters != "" {
		list, err := config.ParseCasters(*casters)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		flags.Casters = list
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
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

	if len(cfg.Sweep.Casters) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no caster angles. Use -casters or sweep.casters in the config file.")
		os.Exit(1)
	}
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

	trails := cfg.Trails()
	fmt.Printf("Caster sweep: %v\n", cfg.Sweep.Casters)
	fmt.Printf("Runs: %d, Workers: %d\n", len(trails), cfg.Output.Workers)
	fmt.Printf("Output: %s\n", cfg.Output.Dir)
	fmt.Println("------------------------------------------------------------")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	results, runErr := sweep.Run(ctx, sweep.Config{
		OutputDir: cfg.Output.Dir,
		Render:    opts,
		Workers:   cfg.Output.Workers,
		Logger:    log,
	}, trails)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())

	// Count results
	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
			fmt.Printf("  caster %g°: FAILED: %s\n", r.Trail.CasterDeg, r.Error)
			continue
		}
		low := r.Sim.Trajectory.Lowest()
		fmt.Printf("  caster %g°: lowest %.6f at %g°, %s\n", r.Trail.CasterDeg, low.Point[2], low.Angle, r.Files.Trail)
	}
	fmt.Printf("Rendered: %d/%d\n", len(results)-failed, len(results))

	// Write manifest
	manifestPath := filepath.Join(cfg.Output.Dir, sweep.ManifestName)
	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		log.Warn("manifest write failed", zap.Error(err))
	} else if err := sweep.WriteManifest(manifestPath, results); err != nil {
		log.Warn("manifest write failed", zap.Error(err))
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if runErr != nil {
		log.Error("sweep interrupted", zap.Error(runErr))
		os.Exit(1)
	}
	if failed > 0 {
		os.Exit(1)
	}
}
