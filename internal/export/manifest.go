package export

import (
	"encoding/json"
	"fmt"
	"os"

	"caster-trail/internal/config"
	"caster-trail/internal/trajectory"
)

// Files lists the outputs of one run, relative to the manifest.
type Files struct {
	Trail       string `json:"trail,omitempty"`
	Perspective string `json:"perspective,omitempty"`
	CSV         string `json:"csv,omitempty"`
}

// Entry summarises one run in the output manifest.
type Entry struct {
	RunID string       `json:"run_id"`
	Trail config.Trail `json:"trail"`

	Records int `json:"records"`
	Within  int `json:"within"`
	Beyond  int `json:"beyond"`

	InitialMinHeight float64 `json:"initial_min_height"`
	MinHeight        float64 `json:"min_height"`
	LowestStep       int     `json:"lowest_step"`
	Fingerprint      string  `json:"fingerprint"`

	Files   Files  `json:"files"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// NewEntry summarises a successful run.
func NewEntry(runID string, res *trajectory.Result, files Files) Entry {
	e := Entry{
		RunID:            runID,
		Trail:            res.Trail,
		Within:           len(res.Buckets.Within),
		Beyond:           len(res.Buckets.Beyond),
		InitialMinHeight: res.InitialMinHeight,
		Files:            files,
		Success:          true,
	}
	if tr := res.Trajectory; tr != nil && tr.Len() > 0 {
		low := tr.Lowest()
		e.Records = tr.Len()
		e.MinHeight = low.Point[2]
		e.LowestStep = low.Step
		e.Fingerprint = fmt.Sprintf("%016x", tr.Fingerprint())
	}
	return e
}

// WriteManifest writes entries to path as indented JSON.
func WriteManifest(path string, entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("export: manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("export: manifest: %w", err)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("export: manifest: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("export: manifest %s: %w", path, err)
	}
	return entries, nil
}
