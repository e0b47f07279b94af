package chart

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rovshanmuradov/bondcurve/internal/curve"
)

func TestRenderPNG(t *testing.T) {
	est := curve.NewDefaultEstimator()
	grid, err := curve.Grid(0, 1e7, 100)
	require.NoError(t, err)
	estimates, err := est.Sweep(context.Background(), grid, 2)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "charts", "curve.png")
	err = Render(est.Table(), estimates, Options{Path: path, WidthIn: 6, HeightIn: 3})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRenderErrors(t *testing.T) {
	table := curve.DefaultTable()
	path := filepath.Join(t.TempDir(), "curve.png")

	assert.Error(t, Render(table, nil, Options{Path: path, WidthIn: 6, HeightIn: 3}))
	assert.Error(t, Render(nil, []curve.Estimate{{Supply: 1, Price: 1}}, Options{Path: path, WidthIn: 6, HeightIn: 3}))
	assert.Error(t, Render(table, []curve.Estimate{{Supply: 1, Price: 1}}, Options{Path: path}))
}
