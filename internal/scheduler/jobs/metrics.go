package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/wonny/tradesim/internal/metrics"
	"github.com/wonny/tradesim/pkg/logger"
)

// MetricsRunner computes and stores the daily metrics of one symbol
type MetricsRunner interface {
	Run(ctx context.Context, symbol string) (*metrics.RunResult, error)
}

// MetricsRefreshJob refreshes daily metrics for a fixed symbol list.
// Symbols run one after another; a failing symbol does not stop the rest.
type MetricsRefreshJob struct {
	pipeline MetricsRunner
	symbols  []string
	schedule string
	logger   *logger.Logger
}

// NewMetricsRefreshJob creates a new metrics refresh job
func NewMetricsRefreshJob(pipeline MetricsRunner, symbols []string, schedule string, log *logger.Logger) *MetricsRefreshJob {
	return &MetricsRefreshJob{
		pipeline: pipeline,
		symbols:  symbols,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *MetricsRefreshJob) Name() string {
	return "metrics_refresh"
}

// Schedule returns the cron schedule
func (j *MetricsRefreshJob) Schedule() string {
	return j.schedule
}

// Run executes the metrics refresh
func (j *MetricsRefreshJob) Run(ctx context.Context) error {
	j.logger.WithField("symbols", len(j.symbols)).Info("Starting scheduled metrics refresh")

	var errs []error
	stored, skipped := 0, 0

	for _, symbol := range j.symbols {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		result, err := j.pipeline.Run(ctx, symbol)
		if err != nil {
			j.logger.WithSymbol(symbol).WithError(err).Warn("Metrics refresh failed")
			errs = append(errs, fmt.Errorf("%s: %w", symbol, err))
			continue
		}
		stored += result.Upsert.Succeeded
		skipped += result.Upsert.Failed
	}

	j.logger.WithFields(map[string]interface{}{
		"stored":  stored,
		"skipped": skipped,
		"failed":  len(errs),
	}).Info("Metrics refresh completed")

	return errors.Join(errs...)
}
