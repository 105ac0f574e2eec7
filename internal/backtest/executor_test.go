package backtest

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tradesim/internal/contracts"
	"github.com/wonny/tradesim/internal/signal"
)

const (
	H = contracts.Hold
	B = contracts.Buy
	S = contracts.Sell
)

func series(closes ...float64) *contracts.PriceSeries {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s := &contracts.PriceSeries{Symbol: "TEST"}
	for i, c := range closes {
		s.Bars = append(s.Bars, contracts.PriceBar{Date: start.AddDate(0, 0, i), Close: c})
	}
	return s
}

func TestExecute_LaggedSignal(t *testing.T) {
	// moving average crossover (2, 3) on these closes gives H, H, B, H, S
	exec, err := Execute(series(10, 10, 12, 8, 15), contracts.SignalSeries{H, H, B, H, S}, 100)
	require.NoError(t, err)

	require.Len(t, exec.Trades, 1)
	trade := exec.Trades[0]
	assert.Equal(t, contracts.ActionBuy, trade.Action)
	assert.Equal(t, "2024-03-04", trade.Date.Format(contracts.DateLayout))
	assert.Equal(t, 8.0, trade.Price)
	assert.Equal(t, 12.5, trade.Shares)

	// open position is marked, not closed
	assert.Equal(t, contracts.AllPosition, exec.Final.Holding())
	assert.Equal(t, 187.5, exec.FinalValue)
	assert.Len(t, exec.EquityCurve, 5)
	assert.Equal(t, 187.5, exec.EquityCurve[4].Equity)
}

func TestExecute_RoundTrip(t *testing.T) {
	exec, err := Execute(series(10, 10, 20, 20), contracts.SignalSeries{B, S, H, H}, 100)
	require.NoError(t, err)

	require.Len(t, exec.Trades, 2)
	assert.Equal(t, contracts.ActionSell, exec.Trades[1].Action)
	assert.Equal(t, 200.0, exec.Trades[1].Cash)
	assert.Equal(t, 200.0, exec.FinalValue)
	assert.Equal(t, Stats{RoundTrips: 1, WinningTrades: 1}, exec.Stats)
	assert.Equal(t, "2024-03-03 SELL all at 20, final cash = $200.00", exec.Trades[1].String())
}

func TestExecute_IgnoresRedundantSignals(t *testing.T) {
	exec, err := Execute(series(10, 10, 10, 10, 10), contracts.SignalSeries{S, B, B, S, S}, 50)
	require.NoError(t, err)

	// Sell in cash and Buy while invested are no-ops
	require.Len(t, exec.Trades, 2)
	assert.Equal(t, contracts.ActionBuy, exec.Trades[0].Action)
	assert.Equal(t, contracts.ActionSell, exec.Trades[1].Action)
	assert.Equal(t, 50.0, exec.FinalValue)
	assert.Equal(t, Stats{RoundTrips: 1}, exec.Stats)
}

func TestExecute_LastSignalNeverTraded(t *testing.T) {
	exec, err := Execute(series(10, 11, 12), contracts.SignalSeries{H, H, B}, 100)
	require.NoError(t, err)

	assert.Empty(t, exec.Trades)
	assert.Equal(t, 100.0, exec.FinalValue)
}

func TestExecute_ShortSeries(t *testing.T) {
	tests := []struct {
		name    string
		series  *contracts.PriceSeries
		signals contracts.SignalSeries
	}{
		{"empty", series(), contracts.SignalSeries{}},
		{"one bar", series(10), contracts.SignalSeries{B}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec, err := Execute(tt.series, tt.signals, 1000)
			require.NoError(t, err)
			assert.Empty(t, exec.Trades)
			assert.Equal(t, 1000.0, exec.FinalValue)
		})
	}
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		series  *contracts.PriceSeries
		signals contracts.SignalSeries
		cash    float64
		wantErr error
	}{
		{"negative cash", series(10, 11), contracts.SignalSeries{H, H}, -1, contracts.ErrInvalidCash},
		{"nan cash", series(10, 11), contracts.SignalSeries{H, H}, math.NaN(), contracts.ErrInvalidCash},
		{"infinite cash", series(10, 11), contracts.SignalSeries{H, H}, math.Inf(1), contracts.ErrInvalidCash},
		{"nan close", series(10, math.NaN()), contracts.SignalSeries{H, H}, 100, contracts.ErrDegeneratePrice},
		{"length mismatch", series(10, 11), contracts.SignalSeries{H}, 100, contracts.ErrSignalLength},
		{"zero close", series(10, 0, 11), contracts.SignalSeries{H, H, H}, 100, contracts.ErrDegeneratePrice},
		{"negative close", series(-1, 10), contracts.SignalSeries{H, H}, 100, contracts.ErrDegeneratePrice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Execute(tt.series, tt.signals, tt.cash)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_StateInvariant(t *testing.T) {
	closes := []float64{10, 12, 9, 14, 13, 8, 15, 16, 11, 10}
	signals := contracts.SignalSeries{B, S, B, B, S, S, B, H, S, B}

	sim := NewSimulator(100)
	s := series(closes...)
	for i := 1; i < s.Len(); i++ {
		_, err := sim.Apply(signals[i-1], s.Bars[i])
		require.NoError(t, err)
		assert.True(t, sim.State().IsConsistent(), "bar %d: %+v", i, sim.State())
	}
}

func TestSimulator_Initialize(t *testing.T) {
	sim := NewSimulator(100)
	_, err := sim.Apply(B, contracts.PriceBar{Close: 10})
	require.NoError(t, err)
	require.Len(t, sim.Trades(), 1)

	sim.Initialize(50)
	assert.Empty(t, sim.Trades())
	assert.Equal(t, contracts.PortfolioState{Cash: 50}, sim.State())
	assert.Equal(t, Stats{}, sim.Stats())
}

func TestExecutePlan_BuyLowSellHigh(t *testing.T) {
	exec, err := ExecutePlan(signal.NewBuyLowSellHigh(), series(5, 3, 9, 1, 7), 1000)
	require.NoError(t, err)

	require.Len(t, exec.Trades, 2)
	assert.Equal(t, 1.0, exec.Trades[0].Price)
	assert.Equal(t, 9.0, exec.Trades[1].Price)
	assert.Equal(t, 9000.0, exec.FinalValue)
	assert.Equal(t, Stats{RoundTrips: 1, WinningTrades: 1}, exec.Stats)
}
