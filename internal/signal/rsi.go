package signal

import (
	"fmt"

	"github.com/wonny/tradesim/internal/contracts"
	"github.com/wonny/tradesim/internal/indicator"
)

// RSIStrategy buys oversold and sells overbought days
type RSIStrategy struct {
	Period     int
	Oversold   float64
	Overbought float64
}

// NewRSIStrategy returns the RSI strategy with 14 / 30 / 70 defaults
func NewRSIStrategy() *RSIStrategy {
	return &RSIStrategy{Period: 14, Oversold: 30, Overbought: 70}
}

// Name implements contracts.Strategy
func (s *RSIStrategy) Name() string {
	return "rsi"
}

// Signals implements contracts.Strategy
func (s *RSIStrategy) Signals(frame *contracts.IndicatorFrame) (contracts.SignalSeries, error) {
	rsi, err := indicator.RSI(frame.Series.Closes(), s.Period)
	if err != nil {
		return nil, fmt.Errorf("rsi: %w", err)
	}
	frame.RSI = rsi

	signals := make(contracts.SignalSeries, len(rsi))
	for i, v := range rsi {
		if v.IsNone() {
			continue
		}
		switch value := v.Unwrap(); {
		case value < s.Oversold:
			signals[i] = contracts.Buy
		case value > s.Overbought:
			signals[i] = contracts.Sell
		}
	}
	return signals, nil
}
