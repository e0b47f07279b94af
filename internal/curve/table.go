// =============================
// File: internal/curve/table.go
// =============================
package curve

import (
	"fmt"
	"math"
	"sort"
)

// Point is one observed sample of the bonding curve.
type Point struct {
	Supply float64 `json:"supply" mapstructure:"supply"` // токенов выпущено на момент замера
	Price  float64 `json:"price" mapstructure:"price"`   // маржинальная цена в валюте котировки
}

// Table is an immutable set of curve samples sorted ascending by supply.
type Table struct {
	points []Point
}

// NewTable validates and sorts the given samples. The input slice is copied.
func NewTable(points []Point) (*Table, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrDegenerateTable, len(points))
	}

	sorted := make([]Point, len(points))
	copy(sorted, points)

	for i, p := range sorted {
		if !validValue(p.Supply) || !validValue(p.Price) {
			return nil, fmt.Errorf("%w at index %d: supply=%v price=%v", ErrInvalidPoint, i, p.Supply, p.Price)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Supply < sorted[j].Supply
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Supply == sorted[i-1].Supply {
			return nil, fmt.Errorf("%w: %v", ErrDuplicateSupply, sorted[i].Supply)
		}
	}

	return &Table{points: sorted}, nil
}

// Len returns the number of samples.
func (t *Table) Len() int {
	return len(t.points)
}

// Points returns a copy of the samples in ascending supply order.
func (t *Table) Points() []Point {
	out := make([]Point, len(t.points))
	copy(out, t.points)
	return out
}

// At returns the i-th sample.
func (t *Table) At(i int) Point {
	return t.points[i]
}

func (t *Table) Min() Point {
	return t.points[0]
}

func (t *Table) Max() Point {
	return t.points[len(t.points)-1]
}

// Domain returns the smallest and largest sampled supply.
func (t *Table) Domain() (lo, hi float64) {
	return t.Min().Supply, t.Max().Supply
}

func validValue(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

// DefaultPoints returns the canonical samples observed on the launchpad.
func DefaultPoints() []Point {
	return []Point{
		{Supply: 100000, Price: 31.2750343},
		{Supply: 200000, Price: 90.373179},
		{Supply: 300000, Price: 322.1326362},
		{Supply: 400000, Price: 933.837364},
		{Supply: 500000, Price: 2317.347211},
		{Supply: 1000000, Price: 31741.65481},
		// TODO: confirm the 5M sample with the launchpad team, it breaks monotonicity.
		{Supply: 5000000, Price: 9348.46001},
		{Supply: 9000000, Price: 35586.8634},
	}
}

// DefaultTable builds a Table from DefaultPoints.
func DefaultTable() *Table {
	t, err := NewTable(DefaultPoints())
	if err != nil {
		// литерал выше всегда валиден
		panic(fmt.Sprintf("curve: default table: %v", err))
	}
	return t
}
