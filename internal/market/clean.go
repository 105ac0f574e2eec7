package market

import (
	"sort"

	"github.com/wonny/tradesim/internal/contracts"
)

// Clean turns stored rows into an ascending series. Rows are ordered by
// date and rows sharing a date are merged field by field, a later non-null
// value winning. Missing fields are then carried forward from the previous
// bar. Rows before the first complete bar have nothing to carry and are
// dropped.
func Clean(symbol string, raw []rawBar) *contracts.PriceSeries {
	series := &contracts.PriceSeries{Symbol: symbol}
	var prev *contracts.PriceBar

	for _, row := range mergeByDate(raw) {
		if prev == nil && !row.complete() {
			continue
		}

		bar := contracts.PriceBar{Date: row.Date}
		if prev != nil {
			bar = *prev
			bar.Date = row.Date
		}
		fill(&bar.Open, row.Open)
		fill(&bar.High, row.High)
		fill(&bar.Low, row.Low)
		fill(&bar.Close, row.Close)
		fill(&bar.Volume, row.Volume)

		series.Bars = append(series.Bars, bar)
		prev = &series.Bars[len(series.Bars)-1]
	}

	return series
}

// mergeByDate sorts rows ascending and collapses each date into one row
func mergeByDate(raw []rawBar) []rawBar {
	sorted := make([]rawBar, len(raw))
	copy(sorted, raw)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	merged := make([]rawBar, 0, len(sorted))
	for _, row := range sorted {
		n := len(merged)
		if n == 0 || !merged[n-1].Date.Equal(row.Date) {
			merged = append(merged, row)
			continue
		}
		last := &merged[n-1]
		overlay(&last.Open, row.Open)
		overlay(&last.High, row.High)
		overlay(&last.Low, row.Low)
		overlay(&last.Close, row.Close)
		overlay(&last.Volume, row.Volume)
	}
	return merged
}

func (b rawBar) complete() bool {
	return b.Open != nil && b.High != nil && b.Low != nil && b.Close != nil && b.Volume != nil
}

func fill(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func overlay(dst **float64, v *float64) {
	if v != nil {
		*dst = v
	}
}
