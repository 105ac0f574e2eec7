package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/tradesim/pkg/logger"
)

// CacheInvalidator drops cached price ranges of a symbol
type CacheInvalidator interface {
	Invalidate(ctx context.Context, symbol string) (int, error)
}

// CacheCleanupJob drops cached price series so the next fetch sees newly
// loaded bars
type CacheCleanupJob struct {
	cache    CacheInvalidator
	symbols  []string
	schedule string
	logger   *logger.Logger
}

// NewCacheCleanupJob creates a new cache cleanup job
func NewCacheCleanupJob(cache CacheInvalidator, symbols []string, schedule string, log *logger.Logger) *CacheCleanupJob {
	return &CacheCleanupJob{
		cache:    cache,
		symbols:  symbols,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *CacheCleanupJob) Name() string {
	return "price_cache_cleanup"
}

// Schedule returns the cron schedule
func (j *CacheCleanupJob) Schedule() string {
	return j.schedule
}

// Run executes the cache cleanup
func (j *CacheCleanupJob) Run(ctx context.Context) error {
	j.logger.Debug("Starting scheduled cache cleanup")

	removed := 0
	for _, symbol := range j.symbols {
		n, err := j.cache.Invalidate(ctx, symbol)
		if err != nil {
			return fmt.Errorf("invalidate %s: %w", symbol, err)
		}
		removed += n
	}

	if removed > 0 {
		j.logger.WithField("removed", removed).Info("Cache cleanup completed")
	}

	return nil
}
