package indicator

import (
	"github.com/wonny/tradesim/internal/contracts"
)

// Windows of the persisted daily metrics
const (
	SMA10Window        = 10
	Volatility20Window = 20
)

// ComputeDailyMetrics fills the four persisted columns of frame:
// daily return, cumulative return, 10-day SMA and 20-day volatility.
func ComputeDailyMetrics(frame *contracts.IndicatorFrame) error {
	closes := frame.Series.Closes()

	frame.DailyReturn = DailyReturn(closes)
	frame.CumulativeReturn = CumulativeReturn(frame.DailyReturn)

	sma, err := SMA(closes, SMA10Window)
	if err != nil {
		return err
	}
	frame.SMA10 = sma

	vol, err := Volatility(frame.DailyReturn, Volatility20Window)
	if err != nil {
		return err
	}
	frame.Volatility20 = vol

	return nil
}

// DailyMetricRows flattens a computed frame into rows for the metrics store
func DailyMetricRows(frame *contracts.IndicatorFrame) []contracts.DailyMetric {
	rows := make([]contracts.DailyMetric, frame.Len())
	for i, bar := range frame.Series.Bars {
		rows[i] = contracts.DailyMetric{
			Symbol:           frame.Series.Symbol,
			Date:             bar.Date,
			DailyReturn:      frame.DailyReturn[i],
			CumulativeReturn: frame.CumulativeReturn[i],
			SMA10:            frame.SMA10[i],
			Volatility20:     frame.Volatility20[i],
		}
	}
	return rows
}
