// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rovshanmuradov/bondcurve/internal/curve"
)

var validConfigJSON = `{
    "curve_points": [
        {"supply": 0, "price": 1},
        {"supply": 1000, "price": 11},
        {"supply": 500, "price": 6}
    ],
    "debug_logging": true,
    "workers": 8,
    "sweep_steps": 50,
    "output_dir": "/tmp/bondcurve",
    "chart_width_in": 12,
    "chart_height_in": 6
}`

var validConfigYAML = `
workers: 2
curve_points:
  - supply: 10
    price: 1.5
  - supply: 20
    price: 3.5
`

func setupTestConfig(t *testing.T, name, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return configPath
}

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr bool
		check   func(*testing.T, *Config)
	}{
		{
			name:    "Valid JSON config",
			file:    "config.json",
			content: validConfigJSON,
			check: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.DebugLogging)
				assert.Equal(t, 8, cfg.Workers)
				assert.Equal(t, 50, cfg.SweepSteps)
				assert.Equal(t, "/tmp/bondcurve", cfg.OutputDir)
				assert.Len(t, cfg.CurvePoints, 3)
			},
		},
		{
			name:    "YAML config with defaults",
			file:    "config.yaml",
			content: validConfigYAML,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 2, cfg.Workers)
				assert.Equal(t, DefaultSweepSteps, cfg.SweepSteps)
				assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
				assert.Equal(t, []curve.Point{{Supply: 10, Price: 1.5}, {Supply: 20, Price: 3.5}}, cfg.CurvePoints)
			},
		},
		{
			name:    "Single curve point",
			file:    "config.json",
			content: `{"curve_points": [{"supply": 1, "price": 1}]}`,
			wantErr: true,
		},
		{
			name:    "Invalid sweep steps",
			file:    "config.json",
			content: `{"sweep_steps": 1}`,
			wantErr: true,
		},
		{
			name:    "Sweep steps above limit",
			file:    "config.json",
			content: `{"sweep_steps": 2000000000}`,
			wantErr: true,
		},
		{
			name:    "Invalid JSON syntax",
			file:    "config.json",
			content: "{invalid json",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := setupTestConfig(t, tt.file, tt.content)

			cfg, err := LoadConfig(configPath)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoadConfigNoFile(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, Default().Workers, cfg.Workers)
	assert.Empty(t, cfg.CurvePoints)

	table, err := cfg.Table()
	require.NoError(t, err)
	assert.Equal(t, curve.DefaultPoints(), table.Points())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadConfigEnvironmentVariables(t *testing.T) {
	t.Setenv("BONDCURVE_OUTPUT_DIR", "/env/out")
	t.Setenv("BONDCURVE_WORKERS", "3")
	t.Setenv("BONDCURVE_DEBUG_LOGGING", "true")

	configPath := setupTestConfig(t, "config.json", `{"workers": 8, "output_dir": "./file-out"}`)

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, "/env/out", cfg.OutputDir)
	assert.Equal(t, 3, cfg.Workers)
	assert.True(t, cfg.DebugLogging)
}

func TestLoadConfigBadEnvironmentValue(t *testing.T) {
	t.Setenv("BONDCURVE_WORKERS", "many")

	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"Defaults", func(*Config) {}, false},
		{"Negative workers", func(c *Config) { c.Workers = -1 }, true},
		{"Empty output dir", func(c *Config) { c.OutputDir = " " }, true},
		{"Zero chart width", func(c *Config) { c.ChartWidthIn = 0 }, true},
		{"Sweep steps at limit", func(c *Config) { c.SweepSteps = curve.MaxGridSteps }, false},
		{"Sweep steps above limit", func(c *Config) { c.SweepSteps = curve.MaxGridSteps + 1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigTableSortsPoints(t *testing.T) {
	cfg := Default()
	cfg.CurvePoints = []curve.Point{{Supply: 1000, Price: 11}, {Supply: 0, Price: 1}}

	table, err := cfg.Table()
	require.NoError(t, err)
	assert.Equal(t, 0.0, table.Min().Supply)

	cfg.CurvePoints = []curve.Point{{Supply: 1, Price: 1}, {Supply: 1, Price: 2}}
	_, err = cfg.Table()
	assert.ErrorIs(t, err, curve.ErrDuplicateSupply)
}
