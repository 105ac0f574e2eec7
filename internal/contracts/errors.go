package contracts

import "errors"

var (
	// ErrNoDataFound means the price source returned no rows. It halts a run
	// but is a reportable condition, not a failure of the source.
	ErrNoDataFound = errors.New("no data found")

	// ErrInvalidStrategySelector is returned before any computation starts
	ErrInvalidStrategySelector = errors.New("invalid strategy selector")

	// ErrDegeneratePrice marks a zero or negative price used as a divisor
	ErrDegeneratePrice = errors.New("degenerate price: close must be > 0")

	// ErrZeroInitialCash makes ROI undefined
	ErrZeroInitialCash = errors.New("initial cash is zero")

	// ErrInvalidCash rejects negative starting cash
	ErrInvalidCash = errors.New("initial cash must be a finite non-negative amount")

	// ErrInvalidWindow rejects indicator windows below 1
	ErrInvalidWindow = errors.New("indicator window must be >= 1")

	// ErrSignalLength means signals and bars are not aligned
	ErrSignalLength = errors.New("signal series length does not match price series")

	// ErrInvalidDateRange means the end date precedes the start date
	ErrInvalidDateRange = errors.New("end date is before start date")
)
