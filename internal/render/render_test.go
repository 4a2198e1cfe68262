package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/webp"

	"caster-trail/internal/config"
	"caster-trail/internal/mathutil"
	"caster-trail/internal/trajectory"
)

var smallChart = Options{WidthIn: 6, HeightIn: 4, DPI: 50, Supersample: 2, Format: FormatPNG}

func simulate(t *testing.T) *trajectory.Result {
	t.Helper()
	trail := config.DefaultTrail()
	trail.Elements = 200
	trail.StepDeg = 1
	res, err := trajectory.Simulate(trail)
	require.NoError(t, err)
	return res
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"webp":  FormatWebP,
		"PNG":   FormatPNG,
		".tga":  FormatTGA,
		".WebP": FormatWebP,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("gif")
	assert.ErrorContains(t, err, "unknown image format")

	assert.Equal(t, ".tga", FormatTGA.Ext())
}

func TestOptionsFrom(t *testing.T) {
	cfg := config.Default()
	cfg.Resolve(config.Flags{})
	o, err := OptionsFrom(cfg.Output)
	require.NoError(t, err)
	assert.Equal(t, FormatWebP, o.Format)
	w, h := o.Pixels()
	assert.Equal(t, 1000, w)
	assert.Equal(t, 625, h)

	cfg.Output.Format = "bmp"
	_, err = OptionsFrom(cfg.Output)
	assert.Error(t, err)
}

func TestDownsample(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 8, 6))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+3] = 200, 255
	}

	small := Downsample(src, 4, 3)
	require.Equal(t, image.Rect(0, 0, 4, 3), small.Bounds())
	r, g, b, a := small.At(1, 1).RGBA()
	assert.InDelta(t, 200, r>>8, 1)
	assert.Equal(t, uint32(0), g)
	assert.Equal(t, uint32(0), b)
	assert.InDelta(t, 255, a>>8, 1)

	assert.Same(t, src, Downsample(src, 8, 6))
}

func TestProject(t *testing.T) {
	xs, ys := Project([]mathutil.Vec3{{1, 0, 0}, {0, 1, 0}}, TrailView)
	assert.InDelta(t, 0, xs[0], 1e-15)
	assert.InDelta(t, 1, ys[0], 1e-15)
	assert.InDelta(t, -1, xs[1], 1e-15)
	assert.InDelta(t, 0, ys[1], 1e-15)

	// Up stays up on the oblique camera.
	_, ys = Project([]mathutil.Vec3{{0, 0, 1}}, ObliqueView)
	assert.Greater(t, ys[0], 0.9)
}

func TestTrailChartRasterizes(t *testing.T) {
	p, err := TrailChart(simulate(t))
	require.NoError(t, err)

	img := Rasterize(p, smallChart)
	assert.Equal(t, image.Rect(0, 0, 300, 200), img.Bounds())
	assert.True(t, hasReddish(img), "trail is drawn in red")
}

func TestPerspectiveChartRasterizes(t *testing.T) {
	p, err := PerspectiveChart(simulate(t))
	require.NoError(t, err)

	img := Rasterize(p, smallChart)
	assert.Equal(t, image.Rect(0, 0, 300, 200), img.Bounds())
	assert.True(t, hasInk(img), "wheel and axis are drawn")
}

func TestTrailChartWithoutSteeringRange(t *testing.T) {
	trail := config.DefaultTrail()
	trail.Elements = 60
	trail.StepDeg = 5
	trail.SteeringLimitDeg = 0
	res, err := trajectory.Simulate(trail)
	require.NoError(t, err)
	require.Empty(t, res.Buckets.Within)

	_, err = TrailChart(res)
	assert.NoError(t, err)
}

func TestEncodeRoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 5, 4))
	src.Set(2, 1, color.NRGBA{R: 10, G: 200, B: 30, A: 255})
	src.Set(4, 3, color.NRGBA{R: 255, A: 255})

	decoders := map[Format]func(*bytes.Buffer) (image.Image, error){
		FormatPNG:  func(b *bytes.Buffer) (image.Image, error) { return png.Decode(b) },
		FormatTGA:  func(b *bytes.Buffer) (image.Image, error) { return tga.Decode(b) },
		FormatWebP: func(b *bytes.Buffer) (image.Image, error) { return webp.Decode(b) },
	}
	for f, decode := range decoders {
		t.Run(string(f), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, src, f))
			got, err := decode(&buf)
			require.NoError(t, err)
			require.Equal(t, 5, got.Bounds().Dx())
			require.Equal(t, 4, got.Bounds().Dy())

			r, g, b, _ := got.At(got.Bounds().Min.X+2, got.Bounds().Min.Y+1).RGBA()
			assert.Equal(t, []uint32{10, 200, 30}, []uint32{r >> 8, g >> 8, b >> 8})
		})
	}

	assert.Error(t, Encode(&bytes.Buffer{}, src, Format("gif")))
}

func TestSaveChart(t *testing.T) {
	p, err := TrailChart(simulate(t))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nested", "trail.webp")
	o := smallChart
	o.Format = FormatWebP
	require.NoError(t, SaveChart(path, p, o))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := webp.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 300, img.Bounds().Dx())
}

func hasReddish(img *image.NRGBA) bool {
	for i := 0; i < len(img.Pix); i += 4 {
		r, g, b := img.Pix[i], img.Pix[i+1], img.Pix[i+2]
		if r > 150 && g < 100 && b < 100 {
			return true
		}
	}
	return false
}

func hasInk(img *image.NRGBA) bool {
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i+3] > 0 && img.Pix[i] < 200 && img.Pix[i+1] < 200 && img.Pix[i+2] < 200 {
			return true
		}
	}
	return false
}
