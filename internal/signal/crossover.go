package signal

import (
	"fmt"

	"github.com/wonny/tradesim/internal/contracts"
	"github.com/wonny/tradesim/internal/indicator"
)

// MACrossover emits Buy while the short SMA is above the long SMA and Sell
// while it is below. Equal or missing averages hold.
type MACrossover struct {
	ShortWindow int
	LongWindow  int
}

// NewMACrossover returns the crossover strategy with the 10/50 defaults
func NewMACrossover() *MACrossover {
	return &MACrossover{ShortWindow: 10, LongWindow: 50}
}

// Name implements contracts.Strategy
func (s *MACrossover) Name() string {
	return "moving_average_crossover"
}

// Signals implements contracts.Strategy
func (s *MACrossover) Signals(frame *contracts.IndicatorFrame) (contracts.SignalSeries, error) {
	closes := frame.Series.Closes()

	short, err := indicator.SMA(closes, s.ShortWindow)
	if err != nil {
		return nil, fmt.Errorf("short sma: %w", err)
	}
	long, err := indicator.SMA(closes, s.LongWindow)
	if err != nil {
		return nil, fmt.Errorf("long sma: %w", err)
	}
	frame.SMAShort = short
	frame.SMALong = long

	signals := make(contracts.SignalSeries, len(closes))
	for i := range signals {
		if short[i].IsNone() || long[i].IsNone() {
			continue
		}
		switch a, b := short[i].Unwrap(), long[i].Unwrap(); {
		case a > b:
			signals[i] = contracts.Buy
		case a < b:
			signals[i] = contracts.Sell
		}
	}
	return signals, nil
}
