package signal

import (
	"fmt"

	"github.com/wonny/tradesim/internal/contracts"
	"github.com/wonny/tradesim/internal/indicator"
)

// MomentumStrategy buys when price has risen by more than Threshold over the
// lookback and sells when it fell below the mirrored level 2-Threshold.
type MomentumStrategy struct {
	Lookback  int
	Threshold float64
}

// NewMomentumStrategy returns the momentum strategy with 3-day / 1.02 defaults
func NewMomentumStrategy() *MomentumStrategy {
	return &MomentumStrategy{Lookback: 3, Threshold: 1.02}
}

// Name implements contracts.Strategy
func (s *MomentumStrategy) Name() string {
	return "momentum"
}

// Signals implements contracts.Strategy
func (s *MomentumStrategy) Signals(frame *contracts.IndicatorFrame) (contracts.SignalSeries, error) {
	mom, err := indicator.Momentum(frame.Series.Closes(), s.Lookback)
	if err != nil {
		return nil, fmt.Errorf("momentum: %w", err)
	}
	frame.Momentum = mom

	sellBelow := 2 - s.Threshold
	signals := make(contracts.SignalSeries, len(mom))
	for i, v := range mom {
		if v.IsNone() {
			continue
		}
		switch value := v.Unwrap(); {
		case value > s.Threshold:
			signals[i] = contracts.Buy
		case value < sellBelow:
			signals[i] = contracts.Sell
		}
	}
	return signals, nil
}
