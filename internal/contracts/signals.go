package contracts

import "github.com/moznion/go-optional"

// Signal is a discrete daily trading decision
type Signal int

const (
	Sell Signal = -1
	Hold Signal = 0
	Buy  Signal = 1
)

// String returns the display name of the signal
func (s Signal) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "HOLD"
	}
}

// SignalSeries holds one signal per bar, aligned with PriceSeries.Bars
type SignalSeries []Signal

// Count returns how many entries equal s
func (ss SignalSeries) Count(s Signal) int {
	n := 0
	for _, v := range ss {
		if v == s {
			n++
		}
	}
	return n
}

// Column is a per-bar indicator value; None marks a missing value
type Column []optional.Option[float64]

// NewColumn returns n missing values
func NewColumn(n int) Column {
	col := make(Column, n)
	for i := range col {
		col[i] = optional.None[float64]()
	}
	return col
}

// IndicatorFrame is a price series extended with computed indicator columns.
// Columns stay nil until a calculator fills them.
type IndicatorFrame struct {
	Series *PriceSeries

	DailyReturn      Column
	CumulativeReturn Column
	SMA10            Column
	Volatility20     Column
	SMAShort         Column
	SMALong          Column
	RSI              Column
	Momentum         Column
}

// NewIndicatorFrame wraps a series with no indicator columns yet
func NewIndicatorFrame(series *PriceSeries) *IndicatorFrame {
	return &IndicatorFrame{Series: series}
}

// Len returns the number of bars in the frame
func (f *IndicatorFrame) Len() int {
	return f.Series.Len()
}
