package render

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"

	"caster-trail/internal/config"
)

// Format is an image container the charts can be written in.
type Format string

const (
	FormatWebP Format = "webp"
	FormatPNG  Format = "png"
	FormatTGA  Format = "tga"
)

// ParseFormat accepts a format name in any case, with or without a dot.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.TrimPrefix(strings.ToLower(s), ".")); f {
	case FormatWebP, FormatPNG, FormatTGA:
		return f, nil
	}
	return "", fmt.Errorf("render: unknown image format %q", s)
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Encode writes img to w in format f.
func Encode(w io.Writer, img image.Image, f Format) error {
	var err error
	switch f {
	case FormatWebP:
		err = nativewebp.Encode(w, img, nil)
	case FormatPNG:
		err = png.Encode(w, img)
	case FormatTGA:
		err = tga.Encode(w, img)
	default:
		return fmt.Errorf("render: unknown image format %q", string(f))
	}
	if err != nil {
		return fmt.Errorf("render: %s encode: %w", f, err)
	}
	return nil
}

// Options sets the physical size and resolution of a rendered chart.
type Options struct {
	WidthIn, HeightIn float64
	DPI               int
	Supersample       int
	Format            Format
}

// OptionsFrom converts resolved output settings.
func OptionsFrom(out config.Output) (Options, error) {
	f, err := ParseFormat(out.Format)
	if err != nil {
		return Options{}, err
	}
	return Options{
		WidthIn:     out.WidthIn,
		HeightIn:    out.HeightIn,
		DPI:         out.DPI,
		Supersample: max(out.Supersample, 1),
		Format:      f,
	}, nil
}

// Pixels returns the final image size.
func (o Options) Pixels() (int, int) {
	return int(o.WidthIn*float64(o.DPI) + 0.5), int(o.HeightIn*float64(o.DPI) + 0.5)
}
