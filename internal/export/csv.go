// Package export writes simulation results as CSV tables and a JSON
// manifest.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"caster-trail/internal/mathutil"
	"caster-trail/internal/trajectory"
)

// Header is the first row of every contact table.
var Header = []string{"step", "angle_deg", "steer_deg", "index", "x", "y", "z", "bucket"}

// WriteCSV writes one row per contact record to path, creating parent
// directories as needed.
func WriteCSV(path string, b trajectory.Buckets) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("export: cannot create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: cannot open %s: %w", path, err)
	}
	defer f.Close()

	return EncodeCSV(f, b)
}

// EncodeCSV writes the contact table to w. Rows follow step order; the
// bucket column names the partition each record falls in.
func EncodeCSV(w io.Writer, b trajectory.Buckets) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("export: cannot write header: %w", err)
	}

	row := make([]string, len(Header))
	for _, r := range b.All {
		row[0] = strconv.Itoa(r.Step)
		row[1] = formatFloat(r.Angle)
		row[2] = formatFloat(mathutil.SignedAngle(r.Angle))
		row[3] = strconv.Itoa(r.Index)
		row[4] = formatFloat(r.Point[0])
		row[5] = formatFloat(r.Point[1])
		row[6] = formatFloat(r.Point[2])
		row[7] = string(b.Classify(r.Step))
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("export: cannot write row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("export: flush: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.15g", v)
}
