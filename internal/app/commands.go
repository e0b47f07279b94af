// internal/app/commands.go
package app

import (
	"context"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/bondcurve/internal/chart"
	"github.com/rovshanmuradov/bondcurve/internal/curve"
	"github.com/rovshanmuradov/bondcurve/internal/export"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

func (r *Runner) runEstimate(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: estimate needs at least one supply", ErrUsage)
	}

	for _, arg := range args {
		supply, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return fmt.Errorf("%w: bad supply %q", ErrUsage, arg)
		}

		seg, err := r.estimator.Segment(supply)
		if err != nil {
			return err
		}
		price, err := r.estimator.EstimatePrice(supply)
		if err != nil {
			return err
		}

		r.logger.Debug("Price estimated",
			zap.Float64("supply", supply),
			zap.Float64("segment_from", seg.A.Supply),
			zap.Float64("segment_to", seg.B.Supply),
			zap.Float64("ratio", seg.Ratio),
			zap.Stringer("clamp", seg.Clamped))

		fmt.Fprintf(r.out, "%s\t%s\n", formatNumber(supply), formatNumber(price))
	}
	return nil
}

func (r *Runner) runTable(args []string) error {
	fs := newFlagSet("table")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	points := r.estimator.Table().Points()
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{formatNumber(p.Supply), formatNumber(p.Price)})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("SUPPLY", "PRICE").
		Rows(rows...)

	fmt.Fprintln(r.out, t.Render())
	return nil
}

type sweepFlags struct {
	lo, hi float64
	steps  int
}

func (r *Runner) bindSweepFlags(fs *flag.FlagSet) *sweepFlags {
	lo, hi := r.estimator.Table().Domain()
	sf := &sweepFlags{}
	fs.Float64Var(&sf.lo, "lo", lo, "lowest supply")
	fs.Float64Var(&sf.hi, "hi", hi, "highest supply")
	fs.IntVar(&sf.steps, "steps", r.config.SweepSteps, "number of grid points")
	return sf
}

func (r *Runner) sweep(ctx context.Context, sf *sweepFlags) ([]curve.Estimate, error) {
	grid, err := curve.Grid(sf.lo, sf.hi, sf.steps)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}

	start := time.Now()
	estimates, err := r.estimator.Sweep(ctx, grid, r.config.Workers)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("Sweep finished",
		zap.Int("points", len(estimates)),
		zap.Duration("elapsed", time.Since(start)))
	return estimates, nil
}

func (r *Runner) runSweep(ctx context.Context, args []string) error {
	fs := newFlagSet("sweep")
	sf := r.bindSweepFlags(fs)
	format := fs.String("format", string(export.FormatCSV), "csv or json")
	outDir := fs.String("out", r.config.OutputDir, "output directory")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	f, err := export.ParseFormat(*format)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	estimates, err := r.sweep(ctx, sf)
	if err != nil {
		return err
	}

	exporter := export.NewEstimateExporter(r.logger.Named("export"))
	path, err := exporter.Export(estimates, export.ExportOptions{
		Format:    f,
		OutputDir: *outDir,
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(r.out, path)
	return nil
}

func (r *Runner) runChart(ctx context.Context, args []string) error {
	fs := newFlagSet("chart")
	sf := r.bindSweepFlags(fs)
	out := fs.String("out", filepath.Join(r.config.OutputDir, "bonding_curve.png"), "chart file (.png, .svg, .pdf)")
	title := fs.String("title", "", "chart title")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	estimates, err := r.sweep(ctx, sf)
	if err != nil {
		return err
	}

	err = chart.Render(r.estimator.Table(), estimates, chart.Options{
		Path:     *out,
		Title:    *title,
		WidthIn:  r.config.ChartWidthIn,
		HeightIn: r.config.ChartHeightIn,
	})
	if err != nil {
		return err
	}

	r.logger.Info("Chart rendered", zap.String("file", *out))
	fmt.Fprintln(r.out, *out)
	return nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
