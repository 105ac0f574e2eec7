package metrics

import (
	"context"
	"os"
	"testing"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tradesim/internal/contracts"
	"github.com/wonny/tradesim/internal/indicator"
	"github.com/wonny/tradesim/pkg/config"
	"github.com/wonny/tradesim/pkg/database"
	"github.com/wonny/tradesim/pkg/logger"
)

const testSymbol = "TSTMET"

func openTestStore(t *testing.T) *Store {
	t.Helper()

	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	ctx := context.Background()
	db, err := database.New(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	store := NewStore(db, logger.Nop())
	require.NoError(t, store.EnsureSchema(ctx))

	cleanup := func() {
		_, _ = db.Pool.Exec(ctx, `DELETE FROM daily_metrics WHERE symbol = $1`, testSymbol)
	}
	cleanup()
	t.Cleanup(cleanup)

	return store
}

func computedRows(t *testing.T, n int) []contracts.DailyMetric {
	t.Helper()
	series := testSeries(n)
	series.Symbol = testSymbol

	frame := contracts.NewIndicatorFrame(series)
	require.NoError(t, indicator.ComputeDailyMetrics(frame))
	return indicator.DailyMetricRows(frame)
}

func TestStore_UpsertIsIdempotent(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	rows := computedRows(t, 25)

	for i := 0; i < 2; i++ {
		result, err := store.UpsertBatch(ctx, testSymbol, rows)
		require.NoError(t, err)
		assert.Equal(t, 25, result.Succeeded)
		assert.False(t, result.HasFailures())
	}

	n, err := store.Count(ctx, testSymbol)
	require.NoError(t, err)
	assert.Equal(t, 25, n)

	stored, err := store.GetBySymbol(ctx, testSymbol, contracts.Unbounded())
	require.NoError(t, err)
	require.Len(t, stored, 25)

	assert.True(t, stored[0].DailyReturn.IsNone())
	assert.InDelta(t, rows[24].SMA10.Unwrap(), stored[24].SMA10.Unwrap(), 1e-9)
	assert.InDelta(t, rows[24].Volatility20.Unwrap(), stored[24].Volatility20.Unwrap(), 1e-9)
}

func TestStore_UpsertOverwrites(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()
	rows := computedRows(t, 2)

	_, err := store.UpsertBatch(ctx, testSymbol, rows)
	require.NoError(t, err)

	rows[1].DailyReturn = optional.Some(0.5)
	_, err = store.UpsertBatch(ctx, testSymbol, rows)
	require.NoError(t, err)

	stored, err := store.GetBySymbol(ctx, testSymbol, contracts.Unbounded())
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, 0.5, stored[1].DailyReturn.Unwrap())
}

func TestStore_UpsertEmpty(t *testing.T) {
	store := openTestStore(t)

	result, err := store.UpsertBatch(context.Background(), testSymbol, nil)
	require.NoError(t, err)
	assert.Zero(t, result.Total())
}
