// internal/app/runner.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/rovshanmuradov/bondcurve/internal/config"
	"github.com/rovshanmuradov/bondcurve/internal/curve"
)

// ErrUsage is returned for unknown commands or malformed arguments.
var ErrUsage = errors.New("usage error")

type Runner struct {
	logger    *zap.Logger
	config    *config.Config
	estimator *curve.Estimator
	out       io.Writer
}

// NewRunner creates a runner that prints command output to out.
func NewRunner(logger *zap.Logger, out io.Writer) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		logger: logger,
		out:    out,
	}
}

// Initialize loads configuration and builds the estimator. An empty path
// uses the built-in defaults and the canonical table.
func (r *Runner) Initialize(configPath string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	return r.InitializeWith(cfg)
}

// InitializeWith builds the estimator from an already loaded configuration.
func (r *Runner) InitializeWith(cfg *config.Config) error {
	table, err := cfg.Table()
	if err != nil {
		return err
	}

	est, err := curve.NewEstimator(table, curve.WithLogger(r.logger.Named("curve")))
	if err != nil {
		return err
	}

	lo, hi := table.Domain()
	r.logger.Debug("Curve table loaded",
		zap.Int("points", table.Len()),
		zap.Float64("min_supply", lo),
		zap.Float64("max_supply", hi))

	r.config = cfg
	r.estimator = est
	return nil
}

// ExitCode maps a command error to a process exit status: 0 on success,
// 2 for usage errors (unknown command, unparsable argument or flag),
// 1 for everything else, including rejected supplies.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrUsage):
		return 2
	default:
		return 1
	}
}

// Config returns the active configuration.
func (r *Runner) Config() *config.Config {
	return r.config
}

// Run dispatches a subcommand.
func (r *Runner) Run(ctx context.Context, args []string) error {
	if r.estimator == nil {
		return errors.New("runner is not initialized")
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command (estimate, table, sweep, chart)", ErrUsage)
	}

	cmd, rest := args[0], args[1:]
	r.logger.Debug("Executing command", zap.String("command", cmd), zap.Strings("args", rest))

	switch cmd {
	case "estimate":
		return r.runEstimate(rest)
	case "table":
		return r.runTable(rest)
	case "sweep":
		return r.runSweep(ctx, rest)
	case "chart":
		return r.runChart(ctx, rest)
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, cmd)
	}
}
