// Package chart renders estimated bonding curves with gonum/plot.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/rovshanmuradov/bondcurve/internal/curve"
)

// Options controls chart output.
type Options struct {
	Path     string // .png, .svg or .pdf
	Title    string
	WidthIn  float64
	HeightIn float64
}

var (
	lineColor   = color.RGBA{R: 30, G: 120, B: 200, A: 255}
	sampleColor = color.RGBA{R: 220, G: 60, B: 60, A: 255}
)

// Render draws the interpolated estimates as a line and the table samples
// as points, then saves the chart to opts.Path.
func Render(table *curve.Table, estimates []curve.Estimate, opts Options) error {
	if len(estimates) == 0 {
		return errors.New("no estimates to render")
	}
	if table == nil {
		return errors.New("nil curve table")
	}
	if opts.WidthIn <= 0 || opts.HeightIn <= 0 {
		return fmt.Errorf("invalid chart size %vx%v", opts.WidthIn, opts.HeightIn)
	}

	p := plot.New()
	p.Title.Text = opts.Title
	if p.Title.Text == "" {
		p.Title.Text = "Bonding curve estimate"
	}
	p.X.Label.Text = "Supply"
	p.Y.Label.Text = "Price"
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(estimateXYs(estimates))
	if err != nil {
		return fmt.Errorf("failed to build curve line: %w", err)
	}
	line.Color = lineColor
	line.Width = vg.Points(1.5)

	samples, err := plotter.NewScatter(sampleXYs(table))
	if err != nil {
		return fmt.Errorf("failed to build sample points: %w", err)
	}
	samples.GlyphStyle.Color = sampleColor
	samples.GlyphStyle.Shape = draw.CircleGlyph{}
	samples.GlyphStyle.Radius = vg.Points(3)

	p.Add(line, samples)
	p.Legend.Add("interpolated", line)
	p.Legend.Add("samples", samples)
	p.Legend.Top = true

	if dir := filepath.Dir(opts.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := p.Save(vg.Length(opts.WidthIn)*vg.Inch, vg.Length(opts.HeightIn)*vg.Inch, opts.Path); err != nil {
		return fmt.Errorf("failed to save chart: %w", err)
	}
	return nil
}

func estimateXYs(estimates []curve.Estimate) plotter.XYs {
	pts := make(plotter.XYs, len(estimates))
	for i, e := range estimates {
		pts[i].X = e.Supply
		pts[i].Y = e.Price
	}
	return pts
}

func sampleXYs(table *curve.Table) plotter.XYs {
	points := table.Points()
	pts := make(plotter.XYs, len(points))
	for i, p := range points {
		pts[i].X = p.Supply
		pts[i].Y = p.Price
	}
	return pts
}
