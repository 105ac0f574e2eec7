package indicator

import (
	"github.com/moznion/go-optional"

	"github.com/wonny/tradesim/internal/contracts"
)

const (
	// RSIMax is reported when the window has gains and no losses
	RSIMax = 100.0
	// RSINeutral is reported when the window has neither gains nor losses
	RSINeutral = 50.0
)

// RSI computes the Relative Strength Index from simple averages of the
// zero-clamped gains and losses over the trailing period deltas. Index 0 has
// no previous close and counts as a zero delta, so the first value appears at
// index period-1.
//
// A window with no losses never divides by zero: it reports RSIMax when there
// were gains and RSINeutral for a flat window.
func RSI(closes []float64, period int) (contracts.Column, error) {
	if period < 1 {
		return nil, contracts.ErrInvalidWindow
	}

	out := contracts.NewColumn(len(closes))
	for i := period - 1; i < len(closes); i++ {
		var gains, losses float64
		for j := i - period + 1; j <= i; j++ {
			if j == 0 {
				continue
			}
			delta := closes[j] - closes[j-1]
			if delta > 0 {
				gains += delta
			} else {
				losses -= delta
			}
		}

		avgGain := gains / float64(period)
		avgLoss := losses / float64(period)
		out[i] = optional.Some(rsiValue(avgGain, avgLoss))
	}
	return out, nil
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return RSINeutral
		}
		return RSIMax
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}
