// internal/curve/sweep.go
package curve

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Estimate is a single supply/price evaluation.
type Estimate struct {
	Supply float64 `json:"supply"`
	Price  float64 `json:"price"`
}

// MaxGridSteps caps the number of points a single Grid call may allocate.
const MaxGridSteps = 1_000_000

// Grid returns steps evenly spaced supplies from lo to hi inclusive.
func Grid(lo, hi float64, steps int) ([]float64, error) {
	if steps < 2 {
		return nil, fmt.Errorf("grid needs at least 2 steps, got %d", steps)
	}
	if steps > MaxGridSteps {
		return nil, fmt.Errorf("grid steps %d exceed limit %d", steps, MaxGridSteps)
	}
	if !validValue(lo) || !validValue(hi) || lo >= hi {
		return nil, fmt.Errorf("invalid grid range [%v, %v]", lo, hi)
	}

	out := make([]float64, steps)
	step := (hi - lo) / float64(steps-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	// последний узел без накопленной погрешности
	out[steps-1] = hi
	return out, nil
}

// Sweep evaluates supplies concurrently using at most workers goroutines.
// Results keep the input order. The first invalid supply aborts the sweep.
func (e *Estimator) Sweep(ctx context.Context, supplies []float64, workers int) ([]Estimate, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]Estimate, len(supplies))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, s := range supplies {
		if gctx.Err() != nil {
			break
		}
		i, s := i, s
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			price, err := e.EstimatePrice(s)
			if err != nil {
				return fmt.Errorf("sweep item %d: %w", i, err)
			}
			results[i] = Estimate{Supply: s, Price: price}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		e.logger.Debug("Sweep aborted", zap.Error(err))
		return nil, err
	}
	// ошибки группы нет, но родительский контекст мог быть отменён до запуска задач
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.logger.Debug("Sweep completed",
		zap.Int("count", len(results)),
		zap.Int("workers", workers))
	return results, nil
}
