package contracts

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
)

// ⭐ SSOT: repository interfaces are defined here only

// PriceSource supplies a clean, ascending daily price series
type PriceSource interface {
	Fetch(ctx context.Context, symbol string, r DateRange) (*PriceSeries, error)
}

// MetricsWriter persists daily metric rows keyed by (symbol, date)
type MetricsWriter interface {
	UpsertBatch(ctx context.Context, symbol string, rows []DailyMetric) (*UpsertResult, error)
}

// MetricsReader reads stored daily metric rows
type MetricsReader interface {
	GetBySymbol(ctx context.Context, symbol string, r DateRange) ([]DailyMetric, error)
}

// DailyMetric is one persisted indicator row. None persists as NULL.
type DailyMetric struct {
	Symbol           string                   `json:"symbol"`
	Date             time.Time                `json:"date"`
	DailyReturn      optional.Option[float64] `json:"daily_return"`
	CumulativeReturn optional.Option[float64] `json:"cumulative_return"`
	SMA10            optional.Option[float64] `json:"sma_10"`
	Volatility20     optional.Option[float64] `json:"volatility_20"`
}

// RowError describes one metrics row that failed to persist
type RowError struct {
	Date time.Time
	Err  error
}

func (e RowError) Error() string {
	return e.Date.Format(DateLayout) + ": " + e.Err.Error()
}

func (e RowError) Unwrap() error {
	return e.Err
}

// UpsertResult is the explicit partial-failure outcome of a batch upsert
type UpsertResult struct {
	Succeeded int        `json:"succeeded"`
	Failed    int        `json:"failed"`
	Errors    []RowError `json:"-"`
}

// Total returns the number of rows attempted
func (r *UpsertResult) Total() int {
	return r.Succeeded + r.Failed
}

// HasFailures reports whether any row was skipped
func (r *UpsertResult) HasFailures() bool {
	return r.Failed > 0
}
