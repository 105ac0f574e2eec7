package contracts

import (
	"time"

	"github.com/moznion/go-optional"
)

// DateLayout is the calendar date format used on every surface
const DateLayout = "2006-01-02"

// PriceBar is one day of OHLCV data
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceSeries is a symbol's bars ordered strictly ascending by date
// ⭐ SSOT: Provider → Calculator/Executor price hand-off
type PriceSeries struct {
	Symbol string     `json:"symbol"`
	Bars   []PriceBar `json:"bars"`
}

// Len returns the number of bars
func (s *PriceSeries) Len() int {
	return len(s.Bars)
}

// Closes returns the close prices in bar order
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// IsEmpty reports whether the series has no bars
func (s *PriceSeries) IsEmpty() bool {
	return len(s.Bars) == 0
}

// DateRange bounds a price query. Either side may be open.
type DateRange struct {
	From optional.Option[time.Time]
	To   optional.Option[time.Time]
}

// Unbounded returns a range covering all stored dates
func Unbounded() DateRange {
	return DateRange{
		From: optional.None[time.Time](),
		To:   optional.None[time.Time](),
	}
}

// ParseDateRange builds a range from YYYY-MM-DD strings; blank means open
func ParseDateRange(from, to string) (DateRange, error) {
	r := Unbounded()

	if from != "" {
		d, err := time.Parse(DateLayout, from)
		if err != nil {
			return r, err
		}
		r.From = optional.Some(d)
	}
	if to != "" {
		d, err := time.Parse(DateLayout, to)
		if err != nil {
			return r, err
		}
		r.To = optional.Some(d)
	}

	if r.From.IsSome() && r.To.IsSome() && r.To.Unwrap().Before(r.From.Unwrap()) {
		return r, ErrInvalidDateRange
	}
	return r, nil
}

// Bounds renders both ends as YYYY-MM-DD, blank when open
func (r DateRange) Bounds() (string, string) {
	var from, to string
	if r.From.IsSome() {
		from = r.From.Unwrap().Format(DateLayout)
	}
	if r.To.IsSome() {
		to = r.To.Unwrap().Format(DateLayout)
	}
	return from, to
}
