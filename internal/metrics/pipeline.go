package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/tradesim/internal/contracts"
	"github.com/wonny/tradesim/internal/indicator"
	"github.com/wonny/tradesim/pkg/logger"
)

// Pipeline recomputes and stores the daily metrics of a symbol:
// Provider → Indicator Calculator → Metrics Store.
type Pipeline struct {
	prices contracts.PriceSource
	writer contracts.MetricsWriter
	logger *logger.Logger
}

// RunResult is the outcome of one pipeline run
type RunResult struct {
	Symbol   string                  `json:"symbol"`
	Rows     []contracts.DailyMetric `json:"-"`
	Upsert   *contracts.UpsertResult `json:"upsert"`
	Duration time.Duration           `json:"duration"`
}

// NewPipeline creates a new metrics pipeline
func NewPipeline(prices contracts.PriceSource, writer contracts.MetricsWriter, log *logger.Logger) *Pipeline {
	return &Pipeline{
		prices: prices,
		writer: writer,
		logger: log,
	}
}

// Run fetches every stored bar of symbol, computes the four daily metrics
// and upserts them. An empty series returns ErrNoDataFound.
func (p *Pipeline) Run(ctx context.Context, symbol string) (*RunResult, error) {
	start := time.Now()

	series, err := p.prices.Fetch(ctx, symbol, contracts.Unbounded())
	if err != nil {
		return nil, fmt.Errorf("fetch prices: %w", err)
	}
	if series.IsEmpty() {
		return nil, fmt.Errorf("%s: %w", symbol, contracts.ErrNoDataFound)
	}

	frame := contracts.NewIndicatorFrame(series)
	if err := indicator.ComputeDailyMetrics(frame); err != nil {
		return nil, fmt.Errorf("compute metrics: %w", err)
	}
	rows := indicator.DailyMetricRows(frame)

	upsert, err := p.writer.UpsertBatch(ctx, series.Symbol, rows)
	if err != nil {
		return nil, err
	}

	result := &RunResult{
		Symbol:   series.Symbol,
		Rows:     rows,
		Upsert:   upsert,
		Duration: time.Since(start),
	}

	p.logger.WithSymbol(series.Symbol).WithFields(map[string]interface{}{
		"rows":        len(rows),
		"failed":      upsert.Failed,
		"duration_ms": result.Duration.Milliseconds(),
	}).Info("Metrics pipeline completed")

	return result, nil
}
