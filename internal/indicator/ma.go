package indicator

import (
	"math"

	"github.com/moznion/go-optional"

	"github.com/wonny/tradesim/internal/contracts"
)

// SMA computes the simple moving average of the trailing window ending at
// each index. Each window is summed afresh so equal windows give bit-equal
// means.
func SMA(values []float64, window int) (contracts.Column, error) {
	if window < 1 {
		return nil, contracts.ErrInvalidWindow
	}

	out := contracts.NewColumn(len(values))
	for i := window - 1; i < len(values); i++ {
		sum := 0.0
		for _, v := range values[i-window+1 : i+1] {
			sum += v
		}
		out[i] = optional.Some(sum / float64(window))
	}
	return out, nil
}

// Volatility is the sample standard deviation (n-1) of the trailing window
// of returns. A window containing a missing return is missing.
func Volatility(returns contracts.Column, window int) (contracts.Column, error) {
	if window < 2 {
		return nil, contracts.ErrInvalidWindow
	}

	out := contracts.NewColumn(len(returns))
	buf := make([]float64, 0, window)
	for i := window - 1; i < len(returns); i++ {
		buf = buf[:0]
		for _, r := range returns[i-window+1 : i+1] {
			if r.IsNone() {
				break
			}
			buf = append(buf, r.Unwrap())
		}
		if len(buf) < window {
			continue
		}
		out[i] = optional.Some(sampleStdDev(buf))
	}
	return out, nil
}

func sampleStdDev(xs []float64) float64 {
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))

	variance := 0.0
	for _, x := range xs {
		d := x - mean
		variance += d * d
	}
	variance /= float64(len(xs) - 1)

	return math.Sqrt(variance)
}
