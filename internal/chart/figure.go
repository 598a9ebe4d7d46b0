// Package chart composes grids of gonum/plot panels into PNG figures.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/KaramelBytes/loanlens-cli/internal/utils"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// ErrNoPanels is returned when every panel of a figure failed to build.
var ErrNoPanels = errors.New("figure has no renderable panels")

// Options sets the figure size and histogram resolution.
type Options struct {
	WidthIn       float64
	HeightIn      float64
	DPI           int
	HistogramBins int
}

// DefaultOptions returns a 15x10 inch figure at 300 DPI with 50 histogram bins.
func DefaultOptions() Options {
	return Options{WidthIn: 15, HeightIn: 10, DPI: 300, HistogramBins: 50}
}

// Panel builds one sub-chart of a figure.
type Panel struct {
	Name  string
	Build func() (*plot.Plot, error)
}

type cell struct {
	row, col int
	panel    Panel
}

// Figure is a fixed grid of panels rendered onto one canvas.
type Figure struct {
	Name       string
	Rows, Cols int
	opts       Options
	cells      []cell
	log        *logrus.Logger
}

// NewFigure returns an empty rows x cols figure.
func NewFigure(name string, rows, cols int, opts Options, log *logrus.Logger) *Figure {
	return &Figure{Name: name, Rows: rows, Cols: cols, opts: opts, log: log}
}

// Place puts p at the given grid cell, replacing any earlier panel there.
func (f *Figure) Place(row, col int, p Panel) {
	for i, c := range f.cells {
		if c.row == row && c.col == col {
			f.cells[i].panel = p
			return
		}
	}
	f.cells = append(f.cells, cell{row: row, col: col, panel: p})
}

// Render renders the figure as PNG into w. Panels that fail to build or
// draw are skipped and their names returned.
func (f *Figure) Render(w io.Writer) (skipped []string, err error) {
	plots := make([][]*plot.Plot, f.Rows)
	for i := range plots {
		plots[i] = make([]*plot.Plot, f.Cols)
	}
	names := map[*plot.Plot]string{}
	for _, c := range f.cells {
		if c.row < 0 || c.row >= f.Rows || c.col < 0 || c.col >= f.Cols {
			skipped = append(skipped, f.skip(c.panel.Name, fmt.Errorf("cell (%d,%d) outside %dx%d grid", c.row, c.col, f.Rows, f.Cols)))
			continue
		}
		p, err := build(c.panel)
		if err != nil {
			skipped = append(skipped, f.skip(c.panel.Name, err))
			continue
		}
		plots[c.row][c.col] = p
		names[p] = c.panel.Name
	}
	if len(names) == 0 {
		return skipped, ErrNoPanels
	}

	img := vgimg.NewWith(
		vgimg.UseWH(vg.Length(f.opts.WidthIn)*vg.Inch, vg.Length(f.opts.HeightIn)*vg.Inch),
		vgimg.UseDPI(f.opts.DPI),
	)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: f.Rows, Cols: f.Cols,
		PadTop: vg.Points(8), PadBottom: vg.Points(8),
		PadLeft: vg.Points(8), PadRight: vg.Points(8),
		PadX: vg.Points(16), PadY: vg.Points(16),
	}
	canvases := plot.Align(plots, tiles, dc)
	for r := range plots {
		for c, p := range plots[r] {
			if p == nil {
				continue
			}
			if err := drawPanel(p, canvases[r][c]); err != nil {
				skipped = append(skipped, f.skip(names[p], err))
			}
		}
	}

	pc := vgimg.PngCanvas{Canvas: img}
	if _, err := pc.WriteTo(w); err != nil {
		return skipped, fmt.Errorf("encode png: %w", err)
	}
	return skipped, nil
}

// Save renders the figure and writes it to path atomically.
func (f *Figure) Save(path string) (skipped []string, err error) {
	var buf bytes.Buffer
	skipped, err = f.Render(&buf)
	if err != nil {
		return skipped, err
	}
	if err := utils.SafeWriteFile(path, buf.Bytes()); err != nil {
		return skipped, fmt.Errorf("save %s: %w", f.Name, err)
	}
	return skipped, nil
}

func (f *Figure) skip(panel string, err error) string {
	if f.log != nil {
		f.log.WithFields(logrus.Fields{"figure": f.Name, "panel": panel}).WithError(err).Warn("skipping chart panel")
	}
	return panel
}

func build(p Panel) (pl *plot.Plot, err error) {
	defer func() {
		if r := recover(); r != nil {
			pl, err = nil, fmt.Errorf("panic: %v", r)
		}
	}()
	if p.Build == nil {
		return nil, errors.New("no builder")
	}
	pl, err = p.Build()
	if err == nil && pl == nil {
		err = errors.New("builder returned no plot")
	}
	return pl, err
}

func drawPanel(p *plot.Plot, c draw.Canvas) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("draw panic: %v", r)
		}
	}()
	p.Draw(c)
	return nil
}
