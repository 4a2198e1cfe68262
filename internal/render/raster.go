package render

import (
	"bufio"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Rasterize draws p at Supersample times the target resolution and
// downsamples the result to o.Pixels().
func Rasterize(p *plot.Plot, o Options) *image.NRGBA {
	ss := max(o.Supersample, 1)
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(o.WidthIn)*vg.Inch, vg.Length(o.HeightIn)*vg.Inch),
		vgimg.UseDPI(o.DPI*ss),
	)
	p.Draw(draw.New(c))

	w, h := o.Pixels()
	return Downsample(toNRGBA(c.Image()), w, h)
}

// SaveChart rasterizes p and writes it to path in o.Format.
func SaveChart(path string, p *plot.Plot, o Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("render: cannot create directory: %w", err)
	}
	img := Rasterize(p, o)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: cannot create %s: %w", path, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := Encode(bw, img, o.Format); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("render: write %s: %w", path, err)
	}
	return nil
}
