package market

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/tradesim/internal/contracts"
)

// psql builds PostgreSQL ($n) placeholders
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// PriceRepository reads daily bars from the stock_data table
// ⭐ SSOT: price reads happen only here
type PriceRepository struct {
	pool *pgxpool.Pool
}

// NewPriceRepository creates a new price repository
func NewPriceRepository(pool *pgxpool.Pool) *PriceRepository {
	return &PriceRepository{pool: pool}
}

// rawBar is a stored row before missing values are resolved
type rawBar struct {
	Date   time.Time
	Open   *float64
	High   *float64
	Low    *float64
	Close  *float64
	Volume *float64
}

// Fetch implements contracts.PriceSource. The result is cleaned and never
// empty; a symbol with no usable rows returns ErrNoDataFound.
func (r *PriceRepository) Fetch(ctx context.Context, symbol string, dr contracts.DateRange) (*contracts.PriceSeries, error) {
	symbol = NormalizeSymbol(symbol)

	query, args, err := buildPriceQuery(symbol, dr)
	if err != nil {
		return nil, fmt.Errorf("build price query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query prices: %w", err)
	}
	defer rows.Close()

	var raw []rawBar
	for rows.Next() {
		var b rawBar
		if err := rows.Scan(&b.Date, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, fmt.Errorf("scan price row: %w", err)
		}
		raw = append(raw, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prices: %w", err)
	}

	series := Clean(symbol, raw)
	if series.IsEmpty() {
		return nil, fmt.Errorf("%s: %w", symbol, contracts.ErrNoDataFound)
	}
	return series, nil
}

// Symbols lists every symbol with stored prices
func (r *PriceRepository) Symbols(ctx context.Context) ([]string, error) {
	query, args, err := psql.Select("DISTINCT symbol").From("stock_data").OrderBy("symbol").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query symbols: %w", err)
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		symbols = append(symbols, s)
	}
	return symbols, rows.Err()
}

func buildPriceQuery(symbol string, dr contracts.DateRange) (string, []interface{}, error) {
	q := psql.
		Select("date", "open_price", "high_price", "low_price", "close_price", "volume").
		From("stock_data").
		Where(squirrel.Eq{"symbol": symbol})

	if dr.From.IsSome() {
		q = q.Where(squirrel.GtOrEq{"date": dr.From.Unwrap()})
	}
	if dr.To.IsSome() {
		q = q.Where(squirrel.LtOrEq{"date": dr.To.Unwrap()})
	}

	return q.OrderBy("date ASC").ToSql()
}

// NormalizeSymbol trims and upper-cases a ticker
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
