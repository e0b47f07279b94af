// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/rovshanmuradov/bondcurve/internal/curve"
)

type Config struct {
	CurvePoints   []curve.Point `mapstructure:"curve_points"`
	DebugLogging  bool          `mapstructure:"debug_logging"`
	Workers       int           `mapstructure:"workers"`
	SweepSteps    int           `mapstructure:"sweep_steps"`
	OutputDir     string        `mapstructure:"output_dir"`
	ChartWidthIn  float64       `mapstructure:"chart_width_in"`
	ChartHeightIn float64       `mapstructure:"chart_height_in"`
}

const (
	DefaultWorkers       = 4
	DefaultSweepSteps    = 200
	DefaultOutputDir     = "./output"
	DefaultChartWidthIn  = 10.0
	DefaultChartHeightIn = 5.0

	EnvPrefix = "BONDCURVE"
)

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"workers":         DefaultWorkers,
		"sweep_steps":     DefaultSweepSteps,
		"output_dir":      DefaultOutputDir,
		"chart_width_in":  DefaultChartWidthIn,
		"chart_height_in": DefaultChartHeightIn,
	}
}

// Default returns a configuration with every default applied and the
// canonical curve table.
func Default() *Config {
	return &Config{
		Workers:       DefaultWorkers,
		SweepSteps:    DefaultSweepSteps,
		OutputDir:     DefaultOutputDir,
		ChartWidthIn:  DefaultChartWidthIn,
		ChartHeightIn: DefaultChartHeightIn,
	}
}

// LoadConfig reads the config file at path (JSON or YAML by extension) and
// applies BONDCURVE_* environment overrides. An empty path loads defaults only.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults() {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := loadEnvironmentVariables(v, &cfg); err != nil {
		return nil, err
	}

	return &cfg, Validate(&cfg)
}

// Validate checks numeric and path parameters. Curve points are validated
// when the table is built.
func Validate(cfg *Config) error {
	if cfg.Workers < 0 {
		return errors.New("invalid workers count")
	}
	if cfg.SweepSteps < 2 {
		return errors.New("sweep_steps must be at least 2")
	}
	if cfg.SweepSteps > curve.MaxGridSteps {
		return fmt.Errorf("sweep_steps must not exceed %d", curve.MaxGridSteps)
	}
	if strings.TrimSpace(cfg.OutputDir) == "" {
		return errors.New("output_dir is empty")
	}
	if cfg.ChartWidthIn <= 0 || cfg.ChartHeightIn <= 0 {
		return errors.New("invalid chart dimensions")
	}
	if len(cfg.CurvePoints) == 1 {
		return fmt.Errorf("curve_points: %w", curve.ErrDegenerateTable)
	}
	return nil
}

// Table builds the curve table from CurvePoints, or the canonical table when
// none are configured.
func (c *Config) Table() (*curve.Table, error) {
	if len(c.CurvePoints) == 0 {
		return curve.DefaultTable(), nil
	}
	table, err := curve.NewTable(c.CurvePoints)
	if err != nil {
		return nil, fmt.Errorf("curve_points: %w", err)
	}
	return table, nil
}

func loadEnvironmentVariables(v *viper.Viper, cfg *Config) error {
	v.AutomaticEnv()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if envDir := v.GetString("OUTPUT_DIR"); envDir != "" {
		cfg.OutputDir = envDir
	}

	if envWorkers := v.GetString("WORKERS"); envWorkers != "" {
		workers, err := strconv.Atoi(strings.TrimSpace(envWorkers))
		if err != nil {
			return fmt.Errorf("invalid %s_WORKERS: %w", EnvPrefix, err)
		}
		cfg.Workers = workers
	}

	if envDebug := v.GetString("DEBUG_LOGGING"); envDebug != "" {
		debug, err := strconv.ParseBool(strings.TrimSpace(envDebug))
		if err != nil {
			return fmt.Errorf("invalid %s_DEBUG_LOGGING: %w", EnvPrefix, err)
		}
		cfg.DebugLogging = debug
	}
	return nil
}
