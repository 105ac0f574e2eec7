package market

import (
	"context"
	"time"

	"github.com/wonny/tradesim/internal/contracts"
	"github.com/wonny/tradesim/pkg/logger"
	"github.com/wonny/tradesim/pkg/redis"
)

// CachedPriceSource is a read-through cache in front of another source.
// Cache failures are logged and fall through to the source.
type CachedPriceSource struct {
	source contracts.PriceSource
	cache  *redis.Cache
	ttl    time.Duration
	logger *logger.Logger
}

// NewCachedPriceSource wraps source with a Redis cache
func NewCachedPriceSource(source contracts.PriceSource, cache *redis.Cache, ttl time.Duration, log *logger.Logger) *CachedPriceSource {
	return &CachedPriceSource{
		source: source,
		cache:  cache,
		ttl:    ttl,
		logger: log,
	}
}

// Fetch implements contracts.PriceSource
func (c *CachedPriceSource) Fetch(ctx context.Context, symbol string, dr contracts.DateRange) (*contracts.PriceSeries, error) {
	symbol = NormalizeSymbol(symbol)
	from, to := dr.Bounds()
	key := redis.PriceSeriesKey(symbol, from, to)

	var cached contracts.PriceSeries
	found, err := c.cache.Get(ctx, key, &cached)
	if err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Price cache read failed")
	}
	if found && !cached.IsEmpty() {
		c.logger.WithField("key", key).Debug("Price cache hit")
		return &cached, nil
	}

	series, err := c.source.Fetch(ctx, symbol, dr)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, series, c.ttl); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Price cache write failed")
	}
	return series, nil
}

// Invalidate drops every cached range of a symbol
func (c *CachedPriceSource) Invalidate(ctx context.Context, symbol string) (int, error) {
	return c.cache.DeletePattern(ctx, redis.PriceSeriesPattern(NormalizeSymbol(symbol)))
}
