package chart

import (
	"errors"
	"image/color"
	"math"

	"github.com/KaramelBytes/loanlens-cli/internal/aggregate"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

var errEmpty = errors.New("no data to plot")

var (
	steelBlue  = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	crimson    = color.RGBA{R: 220, G: 20, B: 60, A: 255}
	seaGreen   = color.RGBA{R: 46, G: 139, B: 87, A: 255}
	darkOrange = color.RGBA{R: 255, G: 140, B: 0, A: 255}
	slateGray  = color.RGBA{R: 112, G: 128, B: 144, A: 255}
)

// series extracts labels and values from groups in order.
func series(groups []aggregate.Group, value func(aggregate.Group) float64) ([]string, []float64) {
	labels := make([]string, len(groups))
	vals := make([]float64, len(groups))
	for i, g := range groups {
		labels[i] = g.Key
		vals[i] = value(g)
	}
	return labels, vals
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(11)
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	return p
}

func rotateTicks(p *plot.Plot, n int) {
	if n <= 4 {
		return
	}
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter
}

// BarPanel plots one bar per label.
func BarPanel(name, title, yLabel string, labels []string, vals []float64, c color.Color) Panel {
	return Panel{Name: name, Build: func() (*plot.Plot, error) {
		if len(vals) == 0 {
			return nil, errEmpty
		}
		p := newPlot(title, "", yLabel)
		bars, err := plotter.NewBarChart(plotter.Values(vals), vg.Points(18))
		if err != nil {
			return nil, err
		}
		bars.Color = c
		bars.LineStyle.Width = vg.Length(0)
		p.Add(bars)
		p.NominalX(labels...)
		rotateTicks(p, len(labels))
		p.Y.Min = math.Min(0, p.Y.Min)
		return p, nil
	}}
}

// HistPanel plots the distribution of vals in bins buckets.
func HistPanel(name, title, xLabel string, vals []float64, bins int, c color.Color) Panel {
	return Panel{Name: name, Build: func() (*plot.Plot, error) {
		if len(vals) == 0 {
			return nil, errEmpty
		}
		p := newPlot(title, xLabel, "Loans")
		h, err := plotter.NewHist(plotter.Values(vals), bins)
		if err != nil {
			return nil, err
		}
		h.FillColor = c
		h.LineStyle.Width = vg.Length(0)
		p.Add(h)
		return p, nil
	}}
}

// LinePanel plots vals against ordered labels with point markers.
func LinePanel(name, title, yLabel string, labels []string, vals []float64, c color.Color) Panel {
	return Panel{Name: name, Build: func() (*plot.Plot, error) {
		if len(vals) == 0 {
			return nil, errEmpty
		}
		p := newPlot(title, "", yLabel)
		pts := make(plotter.XYs, len(vals))
		for i, v := range vals {
			pts[i].X = float64(i)
			pts[i].Y = v
		}
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, err
		}
		line.Color = c
		line.Width = vg.Points(2)
		points.GlyphStyle.Color = c
		points.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(line, points)
		p.NominalX(labels...)
		rotateTicks(p, len(labels))
		return p, nil
	}}
}
