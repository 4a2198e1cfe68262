// Package sweep runs a batch of trail simulations on a bounded worker pool
// and writes each run's charts and contact table.
package sweep

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"caster-trail/internal/config"
	"caster-trail/internal/export"
	"caster-trail/internal/logging"
	"caster-trail/internal/render"
	"caster-trail/internal/trajectory"
)

// Output file names inside a run directory.
const (
	TrailName       = "trail"
	PerspectiveName = "perspective"
	CSVName         = "contacts.csv"
	ManifestName    = "manifest.json"
)

// Config holds the shared settings of a batch.
type Config struct {
	OutputDir string
	Render    render.Options
	Workers   int
	Logger    *zap.Logger

	// Progress is the interval between progress log lines. Zero means
	// two seconds.
	Progress time.Duration
}

// Result holds the outcome of one run.
type Result struct {
	RunID   string
	Trail   config.Trail
	Sim     *trajectory.Result // nil when the simulation failed
	Files   export.Files
	Success bool
	Error   string
}

// Run simulates every trail using at most cfg.Workers goroutines. Results
// come back in the order of trails. A failing run is reported in its Result
// and does not stop the others; cancelling ctx stops scheduling new runs
// and Run returns ctx.Err() alongside the partial results.
func Run(ctx context.Context, cfg Config, trails []config.Trail) ([]Result, error) {
	log := cfg.logger()
	total := len(trails)
	results := make([]Result, total)
	for i, t := range trails {
		results[i] = Result{Trail: t, Error: "not run"}
	}
	var processed atomic.Int64

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		interval := cfg.Progress
		if interval <= 0 {
			interval = 2 * time.Second
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					log.Info("progress",
						zap.Int64("done", p),
						zap.Int("total", total),
						zap.Float64("runs_per_sec", float64(p)/elapsed))
				}
			}
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))

	for i, t := range trails {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = Process(cfg, runDir(i, t), t)
			processed.Add(1)
			return nil
		})
	}

	err := g.Wait()
	close(done)

	if err == nil {
		err = ctx.Err()
	}
	log.Info("sweep finished",
		zap.Int64("done", processed.Load()),
		zap.Int("total", total),
		zap.Duration("elapsed", time.Since(start)))
	return results, err
}

// Process simulates one trail and writes its outputs under
// cfg.OutputDir/dir. Failures are reported in the Result.
func Process(cfg Config, dir string, t config.Trail) Result {
	log := cfg.logger()
	res := Result{RunID: uuid.NewString(), Trail: t}
	fail := func(err error) Result {
		res.Error = err.Error()
		log.Warn("run failed",
			zap.String("run_id", res.RunID),
			zap.Float64("caster_deg", t.CasterDeg),
			zap.Error(err))
		return res
	}

	sim, err := trajectory.Simulate(t)
	if err != nil {
		return fail(err)
	}
	res.Sim = sim

	ext := cfg.Render.Format.Ext()
	files := export.Files{
		Trail:       filepath.Join(dir, TrailName+ext),
		Perspective: filepath.Join(dir, PerspectiveName+ext),
		CSV:         filepath.Join(dir, CSVName),
	}

	trail, err := render.TrailChart(sim)
	if err != nil {
		return fail(err)
	}
	if err := render.SaveChart(filepath.Join(cfg.OutputDir, files.Trail), trail, cfg.Render); err != nil {
		return fail(err)
	}

	persp, err := render.PerspectiveChart(sim)
	if err != nil {
		return fail(err)
	}
	if err := render.SaveChart(filepath.Join(cfg.OutputDir, files.Perspective), persp, cfg.Render); err != nil {
		return fail(err)
	}

	if err := export.WriteCSV(filepath.Join(cfg.OutputDir, files.CSV), sim.Buckets); err != nil {
		return fail(err)
	}

	res.Files = files
	res.Success = true
	log.Debug("run finished",
		zap.String("run_id", res.RunID),
		zap.Float64("caster_deg", t.CasterDeg),
		zap.Int("records", sim.Trajectory.Len()))
	return res
}

// Entry converts r for the manifest.
func (r Result) Entry() export.Entry {
	if !r.Success || r.Sim == nil {
		return export.Entry{RunID: r.RunID, Trail: r.Trail, Error: r.Error}
	}
	return export.NewEntry(r.RunID, r.Sim, r.Files)
}

// WriteManifest writes one entry per result to path.
func WriteManifest(path string, results []Result) error {
	entries := make([]export.Entry, len(results))
	for i, r := range results {
		entries[i] = r.Entry()
	}
	return export.WriteManifest(path, entries)
}

func runDir(i int, t config.Trail) string {
	return fmt.Sprintf("%03d_caster_%g", i, t.CasterDeg)
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return logging.Nop()
	}
	return c.Logger
}
