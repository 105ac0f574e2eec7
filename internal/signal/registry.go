package signal

import (
	"fmt"
	"strings"

	"github.com/moznion/go-optional"

	"github.com/wonny/tradesim/internal/contracts"
)

// Choice is a resolved strategy selector: exactly one of Strategy and
// Planner is set.
type Choice struct {
	Key      string
	Label    string
	Strategy contracts.Strategy
	Planner  contracts.Planner
}

// Name returns the underlying strategy name
func (c Choice) Name() string {
	if c.Planner != nil {
		return c.Planner.Name()
	}
	return c.Strategy.Name()
}

// Params carries tunable strategy parameters. Zero windows and None
// thresholds keep the defaults; a Some(0) threshold is used as given.
type Params struct {
	ShortWindow       int
	LongWindow        int
	RSIPeriod         int
	Oversold          optional.Option[float64]
	Overbought        optional.Option[float64]
	MomentumLookback  int
	MomentumThreshold optional.Option[float64]
}

// Menu lists the selectors in prompt order
var Menu = []struct {
	Key   string
	Label string
}{
	{"1", "Moving Average Crossover"},
	{"2", "RSI Strategy"},
	{"3", "Buy Low, Sell High"},
	{"4", "Momentum Strategy"},
}

// Select resolves a menu selector ("1".."4") or a strategy name.
// ⭐ SSOT: strategy selection happens only here
func Select(selector string, params Params) (Choice, error) {
	key := strings.ToLower(strings.TrimSpace(selector))

	switch key {
	case "1", "ma", "moving_average_crossover":
		s := NewMACrossover()
		if params.ShortWindow > 0 {
			s.ShortWindow = params.ShortWindow
		}
		if params.LongWindow > 0 {
			s.LongWindow = params.LongWindow
		}
		return Choice{Key: "1", Label: Menu[0].Label, Strategy: s}, nil
	case "2", "rsi":
		s := NewRSIStrategy()
		if params.RSIPeriod > 0 {
			s.Period = params.RSIPeriod
		}
		s.Oversold = params.Oversold.TakeOr(s.Oversold)
		s.Overbought = params.Overbought.TakeOr(s.Overbought)
		return Choice{Key: "2", Label: Menu[1].Label, Strategy: s}, nil
	case "3", "blsh", "buy_low_sell_high":
		return Choice{Key: "3", Label: Menu[2].Label, Planner: NewBuyLowSellHigh()}, nil
	case "4", "momentum":
		s := NewMomentumStrategy()
		if params.MomentumLookback > 0 {
			s.Lookback = params.MomentumLookback
		}
		s.Threshold = params.MomentumThreshold.TakeOr(s.Threshold)
		return Choice{Key: "4", Label: Menu[3].Label, Strategy: s}, nil
	default:
		return Choice{}, fmt.Errorf("%w: %q (valid: 1-4)", contracts.ErrInvalidStrategySelector, selector)
	}
}
