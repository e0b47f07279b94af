package curve

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable_Degenerate(t *testing.T) {
	_, err := NewTable(nil)
	assert.ErrorIs(t, err, ErrDegenerateTable)

	_, err = NewTable([]Point{{Supply: 1, Price: 2}})
	assert.ErrorIs(t, err, ErrDegenerateTable)
}

func TestNewTable_InvalidPoints(t *testing.T) {
	tests := []struct {
		name  string
		point Point
	}{
		{"negative supply", Point{Supply: -1, Price: 1}},
		{"negative price", Point{Supply: 1, Price: -1}},
		{"NaN price", Point{Supply: 1, Price: math.NaN()}},
		{"infinite supply", Point{Supply: math.Inf(1), Price: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable([]Point{{Supply: 0, Price: 1}, tt.point})
			assert.ErrorIs(t, err, ErrInvalidPoint)
		})
	}
}

func TestNewTable_DuplicateSupply(t *testing.T) {
	_, err := NewTable([]Point{{10, 1}, {20, 2}, {10, 3}})
	assert.ErrorIs(t, err, ErrDuplicateSupply)
}

func TestNewTable_SortsAndCopies(t *testing.T) {
	input := []Point{{300, 3}, {100, 1}, {200, 2}}

	table, err := NewTable(input)
	require.NoError(t, err)

	input[0].Price = 999

	assert.Equal(t, []Point{{100, 1}, {200, 2}, {300, 3}}, table.Points())
	lo, hi := table.Domain()
	assert.Equal(t, 100.0, lo)
	assert.Equal(t, 300.0, hi)
	assert.Equal(t, 3, table.Len())

	// Points returns a copy
	pts := table.Points()
	pts[0].Price = -1
	assert.Equal(t, 1.0, table.Min().Price)
}

func TestUnsortedTableEstimatesLikeSorted(t *testing.T) {
	shuffled := DefaultPoints()
	shuffled[0], shuffled[7] = shuffled[7], shuffled[0]
	shuffled[2], shuffled[5] = shuffled[5], shuffled[2]

	table, err := NewTable(shuffled)
	require.NoError(t, err)
	est, err := NewEstimator(table)
	require.NoError(t, err)

	ref := NewDefaultEstimator()
	for _, s := range []float64{5, 150000, 450000, 3000000, 7000000, 2e7} {
		assert.Equal(t, ref.MustEstimate(s), est.MustEstimate(s))
	}
}

func TestTwoPointTable(t *testing.T) {
	table, err := NewTable([]Point{{0, 0}, {10, 100}})
	require.NoError(t, err)
	est, err := NewEstimator(table)
	require.NoError(t, err)

	assert.Equal(t, 0.0, est.MustEstimate(0))
	assert.Equal(t, 25.0, est.MustEstimate(2.5))
	assert.Equal(t, 100.0, est.MustEstimate(10))
}
