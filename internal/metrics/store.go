package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/moznion/go-optional"

	"github.com/wonny/tradesim/internal/contracts"
	"github.com/wonny/tradesim/pkg/database"
	"github.com/wonny/tradesim/pkg/logger"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

const schemaSQL = `
	CREATE TABLE IF NOT EXISTS daily_metrics (
		symbol            VARCHAR(16)      NOT NULL,
		date              DATE             NOT NULL,
		daily_return      DOUBLE PRECISION,
		cumulative_return DOUBLE PRECISION,
		sma_10            DOUBLE PRECISION,
		volatility_20     DOUBLE PRECISION,
		PRIMARY KEY (symbol, date)
	)
`

const upsertSQL = `
	INSERT INTO daily_metrics (symbol, date, daily_return, cumulative_return, sma_10, volatility_20)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (symbol, date) DO UPDATE SET
		daily_return = EXCLUDED.daily_return,
		cumulative_return = EXCLUDED.cumulative_return,
		sma_10 = EXCLUDED.sma_10,
		volatility_20 = EXCLUDED.volatility_20
`

// Store persists daily metrics keyed by (symbol, date)
// ⭐ SSOT: daily_metrics is written only here
type Store struct {
	db     *database.DB
	logger *logger.Logger
}

// NewStore creates a new metrics store
func NewStore(db *database.DB, log *logger.Logger) *Store {
	return &Store{db: db, logger: log}
}

// EnsureSchema creates the daily_metrics table if it does not exist
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create daily_metrics: %w", err)
	}
	return nil
}

// UpsertBatch writes rows for one symbol in a single transaction. Each row
// runs inside its own savepoint: a failing row is rolled back, logged and
// counted while the rest of the batch still commits.
func (s *Store) UpsertBatch(ctx context.Context, symbol string, rows []contracts.DailyMetric) (*contracts.UpsertResult, error) {
	result := &contracts.UpsertResult{}
	if len(rows) == 0 {
		return result, nil
	}

	log := s.logger.WithSymbol(symbol)

	err := s.db.InTx(ctx, func(tx pgx.Tx) error {
		for _, row := range rows {
			if err := upsertRow(ctx, tx, symbol, row); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.WithError(err).WithField("date", row.Date.Format(contracts.DateLayout)).Warn("Skipping metrics row")
				result.Failed++
				result.Errors = append(result.Errors, contracts.RowError{Date: row.Date, Err: err})
				continue
			}
			result.Succeeded++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("upsert metrics for %s: %w", symbol, err)
	}

	log.WithFields(map[string]interface{}{
		"succeeded": result.Succeeded,
		"failed":    result.Failed,
	}).Info("Metrics stored")

	return result, nil
}

// upsertRow writes one row inside a savepoint
func upsertRow(ctx context.Context, tx pgx.Tx, symbol string, row contracts.DailyMetric) error {
	sp, err := tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("savepoint: %w", err)
	}
	defer sp.Rollback(ctx)

	_, err = sp.Exec(ctx, upsertSQL,
		symbol,
		row.Date,
		toPtr(row.DailyReturn),
		toPtr(row.CumulativeReturn),
		toPtr(row.SMA10),
		toPtr(row.Volatility20),
	)
	if err != nil {
		return err
	}

	return sp.Commit(ctx)
}

// GetBySymbol reads stored metrics for a symbol ordered by date
func (s *Store) GetBySymbol(ctx context.Context, symbol string, dr contracts.DateRange) ([]contracts.DailyMetric, error) {
	q := psql.
		Select("date", "daily_return", "cumulative_return", "sma_10", "volatility_20").
		From("daily_metrics").
		Where(squirrel.Eq{"symbol": symbol})
	if dr.From.IsSome() {
		q = q.Where(squirrel.GtOrEq{"date": dr.From.Unwrap()})
	}
	if dr.To.IsSome() {
		q = q.Where(squirrel.LtOrEq{"date": dr.To.Unwrap()})
	}

	query, args, err := q.OrderBy("date ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build metrics query: %w", err)
	}

	rows, err := s.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query metrics: %w", err)
	}
	defer rows.Close()

	var metrics []contracts.DailyMetric
	for rows.Next() {
		var date time.Time
		var daily, cumulative, sma, vol *float64
		if err := rows.Scan(&date, &daily, &cumulative, &sma, &vol); err != nil {
			return nil, fmt.Errorf("scan metrics row: %w", err)
		}
		metrics = append(metrics, contracts.DailyMetric{
			Symbol:           symbol,
			Date:             date,
			DailyReturn:      fromPtr(daily),
			CumulativeReturn: fromPtr(cumulative),
			SMA10:            fromPtr(sma),
			Volatility20:     fromPtr(vol),
		})
	}
	return metrics, rows.Err()
}

// Count returns the number of stored rows for a symbol
func (s *Store) Count(ctx context.Context, symbol string) (int, error) {
	query, args, err := psql.Select("COUNT(*)").From("daily_metrics").Where(squirrel.Eq{"symbol": symbol}).ToSql()
	if err != nil {
		return 0, err
	}

	var n int
	if err := s.db.Pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count metrics: %w", err)
	}
	return n, nil
}

// toPtr maps None to SQL NULL
func toPtr(v optional.Option[float64]) *float64 {
	if v.IsNone() {
		return nil
	}
	f := v.Unwrap()
	return &f
}

func fromPtr(v *float64) optional.Option[float64] {
	if v == nil {
		return optional.None[float64]()
	}
	return optional.Some(*v)
}
