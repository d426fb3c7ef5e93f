package export

import (
	"fmt"
	"image/color"
	"io"

	"github.com/san-kum/rovsim/internal/dynamo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	depthColor    = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	controlColor  = color.RGBA{R: 40, G: 80, B: 220, A: 255}
	setpointColor = color.RGBA{R: 30, G: 160, B: 60, A: 255}
)

// ChartSize is the default size of saved charts.
var ChartSize = struct{ W, H vg.Length }{8 * vg.Inch, 5 * vg.Inch}

func series(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}
	return pts
}

func addLine(p *plot.Plot, name string, pts plotter.XYs, c color.Color, dashed bool) error {
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.LineStyle.Color = c
	line.LineStyle.Width = vg.Points(1.5)
	if dashed {
		line.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(3)}
	}
	p.Add(line)
	p.Legend.Add(name, line)
	return nil
}

// DepthChart plots depth and target depth over time.
func DepthChart(res *dynamo.Result) (*plot.Plot, error) {
	if len(res.Samples) == 0 {
		return nil, dynamo.ErrNoSamples
	}
	t := res.Times()

	setpoints := make([]float64, len(res.Samples))
	for i, s := range res.Samples {
		setpoints[i] = s.Setpoint
	}

	p := plot.New()
	p.Title.Text = "ROV depth"
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "depth (m)"
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	if err := addLine(p, "depth", series(t, res.Depths()), depthColor, false); err != nil {
		return nil, err
	}
	if err := addLine(p, "target", series(t, setpoints), setpointColor, true); err != nil {
		return nil, err
	}
	return p, nil
}

// ControlChart plots the thrust command over time.
func ControlChart(res *dynamo.Result) (*plot.Plot, error) {
	if len(res.Samples) == 0 {
		return nil, dynamo.ErrNoSamples
	}

	p := plot.New()
	p.Title.Text = "Thrust command"
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "thrust"
	p.Add(plotter.NewGrid())

	if err := addLine(p, "thrust", series(res.Times(), res.Signals()), controlColor, false); err != nil {
		return nil, err
	}
	return p, nil
}

// WriteChart encodes p as format ("png", "svg", "pdf") to w.
func WriteChart(w io.Writer, p *plot.Plot, format string) error {
	wt, err := p.WriterTo(ChartSize.W, ChartSize.H, format)
	if err != nil {
		return fmt.Errorf("chart encoder: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}
