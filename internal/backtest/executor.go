package backtest

import (
	"fmt"
	"math"
	"time"

	"github.com/wonny/tradesim/internal/contracts"
)

// Execution is the outcome of replaying a signal series over prices
type Execution struct {
	Trades      []contracts.TradeLogEntry `json:"trades"`
	Final       contracts.PortfolioState  `json:"final_state"`
	FinalValue  float64                   `json:"final_value"`
	EquityCurve []EquityPoint             `json:"equity_curve"`
	Stats       Stats                     `json:"stats"`
}

// EquityPoint is the marked-to-close portfolio value after a bar
type EquityPoint struct {
	Date   time.Time `json:"date"`
	Equity float64   `json:"equity"`
}

// Execute replays signals over the series. The signal of bar i-1 is acted on
// at the close of bar i, so the last bar's signal is never traded. An open
// position is marked to the last close, not liquidated.
//
// Fewer than two bars trade nothing and keep the initial cash. Any close at
// or below zero is rejected before the replay starts.
func Execute(series *contracts.PriceSeries, signals contracts.SignalSeries, initialCash float64) (*Execution, error) {
	if err := contracts.ValidateCash(initialCash); err != nil {
		return nil, err
	}
	if len(signals) != series.Len() {
		return nil, fmt.Errorf("%w: %d signals for %d bars", contracts.ErrSignalLength, len(signals), series.Len())
	}
	for _, bar := range series.Bars {
		if bar.Close <= 0 || math.IsNaN(bar.Close) || math.IsInf(bar.Close, 0) {
			return nil, fmt.Errorf("%s: %w", bar.Date.Format(contracts.DateLayout), contracts.ErrDegeneratePrice)
		}
	}

	sim := NewSimulator(initialCash)
	curve := make([]EquityPoint, 0, series.Len())
	if series.Len() > 0 {
		first := series.Bars[0]
		curve = append(curve, EquityPoint{Date: first.Date, Equity: sim.State().Value(first.Close)})
	}

	for i := 1; i < series.Len(); i++ {
		bar := series.Bars[i]
		if _, err := sim.Apply(signals[i-1], bar); err != nil {
			return nil, err
		}
		curve = append(curve, EquityPoint{Date: bar.Date, Equity: sim.State().Value(bar.Close)})
	}

	final := sim.State()
	finalValue := initialCash
	if series.Len() > 0 {
		finalValue = final.Value(series.Bars[series.Len()-1].Close)
	}

	return &Execution{
		Trades:      sim.Trades(),
		Final:       final,
		FinalValue:  finalValue,
		EquityCurve: curve,
		Stats:       sim.Stats(),
	}, nil
}

// ExecutePlan wraps a planner's trades into an Execution so every strategy
// reports the same shape. Planners produce no equity curve.
func ExecutePlan(planner contracts.Planner, series *contracts.PriceSeries, initialCash float64) (*Execution, error) {
	trades, cash, err := planner.Plan(series, initialCash)
	if err != nil {
		return nil, err
	}

	exec := &Execution{
		Trades:     trades,
		Final:      contracts.PortfolioState{Cash: cash},
		FinalValue: cash,
	}
	if len(trades) == 2 {
		exec.Stats.RoundTrips = 1
		switch {
		case cash > initialCash:
			exec.Stats.WinningTrades = 1
		case cash < initialCash:
			exec.Stats.LosingTrades = 1
		}
	}
	return exec, nil
}
