// =================================
// File: internal/curve/estimator.go
// =================================
package curve

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"
)

// ClampKind reports whether a query fell outside the sampled domain.
type ClampKind int

const (
	ClampNone ClampKind = iota
	ClampLow
	ClampHigh
)

func (c ClampKind) String() string {
	switch c {
	case ClampLow:
		return "low"
	case ClampHigh:
		return "high"
	default:
		return "none"
	}
}

// Segment describes how a price was derived for a given supply.
type Segment struct {
	A       Point
	B       Point
	Ratio   float64
	Clamped ClampKind
}

// Estimator maps supply to price over an immutable Table.
// It holds no mutable state and is safe for concurrent use.
type Estimator struct {
	table  *Table
	logger *zap.Logger
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithLogger sets the logger used by batch operations.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Estimator) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEstimator creates an estimator over table.
func NewEstimator(table *Table, opts ...Option) (*Estimator, error) {
	if table == nil || table.Len() < 2 {
		return nil, fmt.Errorf("%w: nil or empty table", ErrDegenerateTable)
	}

	e := &Estimator{
		table:  table,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// NewDefaultEstimator creates an estimator over the canonical sample table.
func NewDefaultEstimator(opts ...Option) *Estimator {
	e, _ := NewEstimator(DefaultTable(), opts...)
	return e
}

// Table returns the underlying sample table.
func (e *Estimator) Table() *Table {
	return e.table
}

// EstimatePrice returns the interpolated price at supply.
// Supplies outside the sampled domain clamp to the boundary prices.
func (e *Estimator) EstimatePrice(supply float64) (float64, error) {
	seg, err := e.Segment(supply)
	if err != nil {
		return 0, err
	}
	if seg.Clamped != ClampNone || seg.A == seg.B {
		return seg.A.Price, nil
	}
	return seg.A.Price + seg.Ratio*(seg.B.Price-seg.A.Price), nil
}

// MustEstimate is like EstimatePrice but panics on invalid input.
func (e *Estimator) MustEstimate(supply float64) float64 {
	price, err := e.EstimatePrice(supply)
	if err != nil {
		panic(err)
	}
	return price
}

// Segment returns the bracketing samples and interpolation ratio for supply.
// Clamped and exact-hit queries yield a degenerate segment with A == B.
func (e *Estimator) Segment(supply float64) (Segment, error) {
	if math.IsNaN(supply) || math.IsInf(supply, 0) || supply < 0 {
		return Segment{}, &InputError{Supply: supply}
	}

	t := e.table
	first, last := t.Min(), t.Max()

	if supply <= first.Supply {
		return Segment{A: first, B: first, Clamped: ClampLow}, nil
	}
	if supply >= last.Supply {
		return Segment{A: last, B: last, Clamped: ClampHigh}, nil
	}

	// first.Supply < supply < last.Supply, so 1 <= idx <= t.Len()-1
	idx := sort.Search(t.Len(), func(i int) bool {
		return t.At(i).Supply >= supply
	})
	b := t.At(idx)
	if b.Supply == supply {
		return Segment{A: b, B: b}, nil
	}
	a := t.At(idx - 1)

	ratio := (supply - a.Supply) / (b.Supply - a.Supply)
	return Segment{A: a, B: b, Ratio: ratio}, nil
}
