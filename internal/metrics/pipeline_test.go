package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tradesim/internal/contracts"
	"github.com/wonny/tradesim/pkg/logger"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) Fetch(ctx context.Context, symbol string, r contracts.DateRange) (*contracts.PriceSeries, error) {
	args := m.Called(ctx, symbol, r)
	if s := args.Get(0); s != nil {
		return s.(*contracts.PriceSeries), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) UpsertBatch(ctx context.Context, symbol string, rows []contracts.DailyMetric) (*contracts.UpsertResult, error) {
	args := m.Called(ctx, symbol, rows)
	if r := args.Get(0); r != nil {
		return r.(*contracts.UpsertResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func testSeries(n int) *contracts.PriceSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := &contracts.PriceSeries{Symbol: "AAPL"}
	for i := 0; i < n; i++ {
		c := 100 + float64(i%5)
		series.Bars = append(series.Bars, contracts.PriceBar{
			Date: start.AddDate(0, 0, i), Open: c, High: c, Low: c, Close: c, Volume: 1000,
		})
	}
	return series
}

func TestPipeline_Run(t *testing.T) {
	src := new(mockSource)
	src.On("Fetch", mock.Anything, "AAPL", contracts.Unbounded()).Return(testSeries(25), nil)

	writer := new(mockWriter)
	writer.On("UpsertBatch", mock.Anything, "AAPL", mock.MatchedBy(func(rows []contracts.DailyMetric) bool {
		return len(rows) == 25
	})).Return(&contracts.UpsertResult{Succeeded: 25}, nil)

	result, err := NewPipeline(src, writer, logger.Nop()).Run(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", result.Symbol)
	assert.Equal(t, 25, result.Upsert.Succeeded)
	require.Len(t, result.Rows, 25)

	first := result.Rows[0]
	assert.True(t, first.DailyReturn.IsNone())
	assert.Equal(t, 1.0, first.CumulativeReturn.Unwrap())
	assert.True(t, first.SMA10.IsNone())
	assert.True(t, result.Rows[9].SMA10.IsSome())
	assert.True(t, result.Rows[19].Volatility20.IsNone())
	assert.True(t, result.Rows[20].Volatility20.IsSome())

	src.AssertExpectations(t)
	writer.AssertExpectations(t)
}

func TestPipeline_Run_Errors(t *testing.T) {
	writeErr := errors.New("connection reset")

	tests := []struct {
		name     string
		series   *contracts.PriceSeries
		fetchErr error
		writeErr error
		wantErr  error
	}{
		{
			name:     "no data",
			fetchErr: contracts.ErrNoDataFound,
			wantErr:  contracts.ErrNoDataFound,
		},
		{
			name:    "empty series",
			series:  &contracts.PriceSeries{Symbol: "AAPL"},
			wantErr: contracts.ErrNoDataFound,
		},
		{
			name:     "write failure",
			series:   testSeries(3),
			writeErr: writeErr,
			wantErr:  writeErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := new(mockSource)
			src.On("Fetch", mock.Anything, mock.Anything, mock.Anything).Return(tt.series, tt.fetchErr)

			writer := new(mockWriter)
			writer.On("UpsertBatch", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.writeErr)

			_, err := NewPipeline(src, writer, logger.Nop()).Run(context.Background(), "AAPL")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPtrConversion(t *testing.T) {
	assert.Nil(t, toPtr(fromPtr(nil)))

	v := 0.25
	p := toPtr(fromPtr(&v))
	require.NotNil(t, p)
	assert.Equal(t, 0.25, *p)
}
