package market

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tradesim/internal/contracts"
)

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func f(v float64) *float64 {
	return &v
}

func full(d int, c float64) rawBar {
	return rawBar{Date: day(d), Open: f(c), High: f(c), Low: f(c), Close: f(c), Volume: f(100)}
}

func TestClean(t *testing.T) {
	tests := []struct {
		name   string
		raw    []rawBar
		closes []float64
		dates  []int
	}{
		{
			name: "empty",
		},
		{
			name:   "sorts ascending",
			raw:    []rawBar{full(3, 30), full(1, 10), full(2, 20)},
			closes: []float64{10, 20, 30},
			dates:  []int{1, 2, 3},
		},
		{
			name:   "forward fills missing close",
			raw:    []rawBar{full(1, 10), {Date: day(2), Open: f(11)}, full(3, 12)},
			closes: []float64{10, 10, 12},
			dates:  []int{1, 2, 3},
		},
		{
			name:   "drops leading incomplete rows",
			raw:    []rawBar{{Date: day(1), Close: f(9)}, full(2, 10), full(3, 11)},
			closes: []float64{10, 11},
			dates:  []int{2, 3},
		},
		{
			name:   "duplicate date later value wins",
			raw:    []rawBar{full(1, 10), full(2, 20), full(2, 25)},
			closes: []float64{10, 25},
			dates:  []int{1, 2},
		},
		{
			name:   "incomplete later duplicate keeps earlier fields",
			raw:    []rawBar{full(1, 10), full(2, 20), {Date: day(2), Open: f(21)}},
			closes: []float64{10, 20},
			dates:  []int{1, 2},
		},
		{
			name:   "leading duplicates merge into a complete bar",
			raw:    []rawBar{full(1, 10), {Date: day(1), Close: f(12)}, full(2, 11)},
			closes: []float64{12, 11},
			dates:  []int{1, 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := Clean("AAPL", tt.raw)
			require.Equal(t, len(tt.closes), series.Len())
			assert.Equal(t, "AAPL", series.Symbol)

			for i, bar := range series.Bars {
				assert.Equal(t, tt.closes[i], bar.Close)
				assert.Equal(t, day(tt.dates[i]), bar.Date)
			}
		})
	}
}

func TestClean_FillKeepsPresentFields(t *testing.T) {
	series := Clean("AAPL", []rawBar{full(1, 10), {Date: day(2), Open: f(11), Volume: f(5)}})
	require.Equal(t, 2, series.Len())

	bar := series.Bars[1]
	assert.Equal(t, 11.0, bar.Open)
	assert.Equal(t, 10.0, bar.Close)
	assert.Equal(t, 5.0, bar.Volume)
}

func TestClean_MergesDuplicateFields(t *testing.T) {
	series := Clean("AAPL", []rawBar{
		{Date: day(1), Open: f(10), High: f(12), Low: f(9), Close: f(11)},
		{Date: day(1), Close: f(11.5), Volume: f(300)},
	})
	require.Equal(t, 1, series.Len())

	bar := series.Bars[0]
	assert.Equal(t, 10.0, bar.Open)
	assert.Equal(t, 12.0, bar.High)
	assert.Equal(t, 11.5, bar.Close)
	assert.Equal(t, 300.0, bar.Volume)
}

func TestBuildPriceQuery(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	t.Run("unbounded", func(t *testing.T) {
		query, args, err := buildPriceQuery("AAPL", contracts.Unbounded())
		require.NoError(t, err)
		assert.Equal(t,
			"SELECT date, open_price, high_price, low_price, close_price, volume FROM stock_data WHERE symbol = $1 ORDER BY date ASC",
			query)
		assert.Equal(t, []interface{}{"AAPL"}, args)
	})

	t.Run("bounded", func(t *testing.T) {
		dr, err := contracts.ParseDateRange("2024-01-01", "2024-06-30")
		require.NoError(t, err)

		query, args, err := buildPriceQuery("AAPL", dr)
		require.NoError(t, err)
		assert.Contains(t, query, "date >= $2")
		assert.Contains(t, query, "date <= $3")
		assert.Equal(t, []interface{}{"AAPL", from, to}, args)
	})
}

func TestNormalizeSymbol(t *testing.T) {
	assert.Equal(t, "AAPL", NormalizeSymbol("  aapl "))
}
