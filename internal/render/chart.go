package render

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"caster-trail/internal/mathutil"
	"caster-trail/internal/trajectory"
	"caster-trail/internal/wheel"
)

var (
	trailRed  = color.RGBA{R: 220, G: 20, B: 30, A: 255}
	wheelGray = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	axisBlack = color.RGBA{A: 255}
	steerBlue = color.RGBA{R: 40, G: 90, B: 200, A: 255}
)

// TrailChart draws the ground trace of the contact point, seen from above
// and turned so the direction of travel points up. The segments inside the
// steering limit are drawn thick.
func TrailChart(res *trajectory.Result) (*plot.Plot, error) {
	d := res.Trail.Diameter

	p := plot.New()
	p.Title.Text = "Trajectory of Turning Handle at 360 degrees"
	p.X.Label.Text = "Turning Direction"
	p.Y.Label.Text = "Traveling Direction"
	stylePlot(p)

	p.X.Min, p.X.Max = -(2*d + 2), math.Max(20*math.Pi, 2*d+2)
	p.Y.Min, p.Y.Max = -(2*d + 2), 2*d+1
	p.Add(plotter.NewGrid())

	all, err := trailLine(res.Buckets.AllPoints(), TrailView, 1)
	if err != nil {
		return nil, err
	}
	p.Add(all)
	p.Legend.Add("full turn", all)

	for i, seg := range [][]mathutil.Vec3{res.Buckets.WithinPoints(), res.Buckets.BeyondPoints()} {
		if len(seg) == 0 {
			continue
		}
		thick, err := trailLine(seg, TrailView, 3)
		if err != nil {
			return nil, err
		}
		p.Add(thick)
		if i == 0 {
			p.Legend.Add(fmt.Sprintf("±%g° steering", res.Trail.SteeringLimitDeg), thick)
		}
	}

	notes, err := plotter.NewLabels(plotter.XYLabels{
		XYs: plotter.XYs{{X: d, Y: d}, {X: d, Y: d - 2}, {X: d, Y: d - 4}, {X: d, Y: d - 6}},
		Labels: []string{
			fmt.Sprintf("Caster angle = %g degree,  Diameter = %g", res.Trail.CasterDeg, d),
			fmt.Sprintf("Offset between center of the wheel and caster = %g", res.Trail.Offset),
			fmt.Sprintf("Steering angle is %g degree.", res.Trail.SteeringLimitDeg),
			fmt.Sprintf("Thick line: ground contact from -%g to %g degree of steering",
				res.Trail.SteeringLimitDeg, res.Trail.SteeringLimitDeg),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("render: labels: %w", err)
	}
	p.Add(notes)

	return p, nil
}

// PerspectiveChart shows the wheel, the steering axis and the contact
// points from an oblique camera. The wheel is drawn unsteered and turned to
// the steering limit.
func PerspectiveChart(res *trajectory.Result) (*plot.Plot, error) {
	t := res.Trail
	d := t.Diameter

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Contact point over a full turn (caster %g°)", t.CasterDeg)
	stylePlot(p)
	p.X.Tick.Marker = plot.ConstantTicks(nil)
	p.Y.Tick.Marker = plot.ConstantTicks(nil)

	rest := wheel.InitialPose(d, t.Elements)
	steered := rest.Transform(mathutil.RotAxis(t.SteeringLimitDeg, res.Axis))

	for _, w := range []struct {
		name  string
		cloud wheel.Cloud
		c     color.Color
	}{
		{"wheel at rest", rest, wheelGray},
		{fmt.Sprintf("wheel at %g°", t.SteeringLimitDeg), steered, steerBlue},
	} {
		ring := append(w.cloud.Points(), w.cloud.At(0))
		l, err := plotter.NewLine(projected(ring, ObliqueView))
		if err != nil {
			return nil, fmt.Errorf("render: wheel: %w", err)
		}
		l.LineStyle.Color = w.c
		l.LineStyle.Width = vg.Points(1.2)
		p.Add(l)
		p.Legend.Add(w.name, l)
	}

	// Steering axis from the head anchor up past the top of the wheel.
	top := res.Head.Add(res.Axis.Scale((2.4*d - res.Head[2]) / res.Axis[2]))
	axis, err := plotter.NewLine(projected([]mathutil.Vec3{res.Head, top}, ObliqueView))
	if err != nil {
		return nil, fmt.Errorf("render: axis: %w", err)
	}
	axis.LineStyle.Color = axisBlack
	axis.LineStyle.Width = vg.Points(1.5)
	axis.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	p.Add(axis)
	p.Legend.Add("steering axis", axis)

	contacts, err := plotter.NewScatter(projected(res.Buckets.AllPoints(), ObliqueView))
	if err != nil {
		return nil, fmt.Errorf("render: contacts: %w", err)
	}
	contacts.GlyphStyle.Color = trailRed
	contacts.GlyphStyle.Shape = draw.CircleGlyph{}
	contacts.GlyphStyle.Radius = vg.Points(0.6)
	p.Add(contacts)
	p.Legend.Add("contact points", contacts)

	p.Legend.Top = true
	return p, nil
}

func trailLine(pts []mathutil.Vec3, view mathutil.Mat3, width float64) (*plotter.Line, error) {
	l, err := plotter.NewLine(projected(pts, view))
	if err != nil {
		return nil, fmt.Errorf("render: trail: %w", err)
	}
	l.LineStyle.Color = trailRed
	l.LineStyle.Width = vg.Points(width)
	return l, nil
}

func projected(pts []mathutil.Vec3, view mathutil.Mat3) plotter.XYs {
	xs, ys := Project(pts, view)
	out := make(plotter.XYs, len(xs))
	for i := range xs {
		out[i].X = xs[i]
		out[i].Y = ys[i]
	}
	return out
}

func stylePlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Title.Padding = vg.Points(8)

	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	p.X.Label.Padding = vg.Points(6)
	p.Y.Label.Padding = vg.Points(6)

	p.X.LineStyle.Width = vg.Points(1.2)
	p.Y.LineStyle.Width = vg.Points(1.2)

	p.X.Tick.Label.Font.Size = vg.Points(10)
	p.Y.Tick.Label.Font.Size = vg.Points(10)
	p.Legend.TextStyle.Font.Size = vg.Points(10)
}
