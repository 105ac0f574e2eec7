package indicator

import (
	"github.com/moznion/go-optional"

	"github.com/wonny/tradesim/internal/contracts"
)

// DailyReturn computes close[i]/close[i-1] - 1. Index 0 is missing, as is any
// day whose previous close is zero.
func DailyReturn(closes []float64) contracts.Column {
	out := contracts.NewColumn(len(closes))
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		out[i] = optional.Some(closes[i]/closes[i-1] - 1)
	}
	return out
}

// CumulativeReturn is the running product of (1 + r). Missing returns count
// as the identity, so the first day is 1.
func CumulativeReturn(returns contracts.Column) contracts.Column {
	out := contracts.NewColumn(len(returns))
	acc := 1.0
	for i, r := range returns {
		acc *= 1 + r.TakeOr(0)
		out[i] = optional.Some(acc)
	}
	return out
}

// Momentum computes close[i]/close[i-lookback]; missing for i < lookback or
// a zero base price.
func Momentum(closes []float64, lookback int) (contracts.Column, error) {
	if lookback < 1 {
		return nil, contracts.ErrInvalidWindow
	}

	out := contracts.NewColumn(len(closes))
	for i := lookback; i < len(closes); i++ {
		base := closes[i-lookback]
		if base == 0 {
			continue
		}
		out[i] = optional.Some(closes[i] / base)
	}
	return out, nil
}
