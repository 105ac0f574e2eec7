package market

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tradesim/internal/contracts"
	"github.com/wonny/tradesim/pkg/config"
	"github.com/wonny/tradesim/pkg/logger"
	"github.com/wonny/tradesim/pkg/redis"
)

type mockSource struct {
	mock.Mock
}

func (m *mockSource) Fetch(ctx context.Context, symbol string, r contracts.DateRange) (*contracts.PriceSeries, error) {
	args := m.Called(ctx, symbol, r)
	if s := args.Get(0); s != nil {
		return s.(*contracts.PriceSeries), args.Error(1)
	}
	return nil, args.Error(1)
}

func disabledCache(t *testing.T) *redis.Cache {
	t.Helper()
	client, err := redis.New(context.Background(), &config.Config{})
	require.NoError(t, err)
	return redis.NewCache(client, "tradesim")
}

func TestCachedPriceSource_DisabledPassesThrough(t *testing.T) {
	series := Clean("AAPL", []rawBar{full(1, 10), full(2, 11)})

	src := new(mockSource)
	src.On("Fetch", mock.Anything, "AAPL", mock.Anything).Return(series, nil).Twice()

	cached := NewCachedPriceSource(src, disabledCache(t), time.Minute, logger.Nop())
	for i := 0; i < 2; i++ {
		got, err := cached.Fetch(context.Background(), "aapl", contracts.Unbounded())
		require.NoError(t, err)
		assert.Equal(t, series, got)
	}
	src.AssertExpectations(t)

	n, err := cached.Invalidate(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCachedPriceSource_PropagatesErrors(t *testing.T) {
	src := new(mockSource)
	src.On("Fetch", mock.Anything, mock.Anything, mock.Anything).Return(nil, contracts.ErrNoDataFound)

	cached := NewCachedPriceSource(src, disabledCache(t), time.Minute, logger.Nop())
	_, err := cached.Fetch(context.Background(), "NONE", contracts.Unbounded())
	assert.ErrorIs(t, err, contracts.ErrNoDataFound)
}
