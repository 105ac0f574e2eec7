package audit

import (
	"math"

	"github.com/wonny/tradesim/internal/backtest"
	"github.com/wonny/tradesim/internal/contracts"
)

// PerformanceReport summarises one simulation run
// ⭐ SSOT: performance figures are computed only here
type PerformanceReport struct {
	InitialCash float64 `json:"initial_cash"`
	FinalValue  float64 `json:"final_value"`
	PnL         float64 `json:"pnl"`

	// ROI in percent; nil when initial cash is zero
	ROI *float64 `json:"roi"`

	MaxDrawdown float64 `json:"max_drawdown"`
	RoundTrips  int     `json:"round_trips"`
	WinRate     float64 `json:"win_rate"`
}

// ROI returns (final-initial)/initial*100. Zero initial cash is undefined.
func ROI(initialCash, finalValue float64) (float64, error) {
	if initialCash == 0 {
		return 0, contracts.ErrZeroInitialCash
	}
	return (finalValue - initialCash) / initialCash * 100, nil
}

// Analyze builds the report for an execution
func Analyze(initialCash float64, exec *backtest.Execution) *PerformanceReport {
	report := &PerformanceReport{
		InitialCash: initialCash,
		FinalValue:  exec.FinalValue,
		PnL:         exec.FinalValue - initialCash,
		MaxDrawdown: MaxDrawdown(exec.EquityCurve),
		RoundTrips:  exec.Stats.RoundTrips,
	}

	if roi, err := ROI(initialCash, exec.FinalValue); err == nil {
		report.ROI = &roi
	}

	if exec.Stats.RoundTrips > 0 {
		report.WinRate = float64(exec.Stats.WinningTrades) / float64(exec.Stats.RoundTrips)
	}

	return report
}

// MaxDrawdown returns the largest peak-to-trough fall of the equity curve as
// a fraction of the peak
func MaxDrawdown(curve []backtest.EquityPoint) float64 {
	if len(curve) == 0 {
		return 0
	}

	maxDrawdown := 0.0
	peak := curve[0].Equity

	for _, point := range curve {
		if point.Equity > peak {
			peak = point.Equity
		}
		if peak <= 0 {
			continue
		}

		drawdown := (peak - point.Equity) / peak
		maxDrawdown = math.Max(maxDrawdown, drawdown)
	}

	return maxDrawdown
}
