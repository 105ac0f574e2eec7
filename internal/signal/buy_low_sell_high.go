package signal

import (
	"github.com/wonny/tradesim/internal/contracts"
)

// BuyLowSellHigh is an idealized benchmark: it buys at the lowest close of the
// whole range and sells at the highest close. The two trades are not ordered
// in time; the sell may be dated before the buy.
type BuyLowSellHigh struct{}

// NewBuyLowSellHigh returns the benchmark planner
func NewBuyLowSellHigh() *BuyLowSellHigh {
	return &BuyLowSellHigh{}
}

// Name implements contracts.Planner
func (p *BuyLowSellHigh) Name() string {
	return "buy_low_sell_high"
}

// Plan implements contracts.Planner. Ties resolve to the earliest bar. An
// empty series plans nothing and returns the initial cash.
func (p *BuyLowSellHigh) Plan(series *contracts.PriceSeries, initialCash float64) ([]contracts.TradeLogEntry, float64, error) {
	if err := contracts.ValidateCash(initialCash); err != nil {
		return nil, 0, err
	}
	if series.IsEmpty() {
		return nil, initialCash, nil
	}

	minIdx, maxIdx := 0, 0
	for i, bar := range series.Bars {
		if bar.Close < series.Bars[minIdx].Close {
			minIdx = i
		}
		if bar.Close > series.Bars[maxIdx].Close {
			maxIdx = i
		}
	}

	low, high := series.Bars[minIdx], series.Bars[maxIdx]
	if low.Close <= 0 {
		return nil, 0, contracts.ErrDegeneratePrice
	}

	shares := initialCash / low.Close
	cash := shares * high.Close

	trades := []contracts.TradeLogEntry{
		{Action: contracts.ActionBuy, Date: low.Date, Price: low.Close, Shares: shares},
		{Action: contracts.ActionSell, Date: high.Date, Price: high.Close, Shares: shares, Cash: cash},
	}
	return trades, cash, nil
}
