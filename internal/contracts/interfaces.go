package contracts

// Strategy turns an indicator frame into one signal per bar.
// Implementations write the indicator columns they need into the frame.
// ⭐ SSOT: Signal Generator contract
type Strategy interface {
	Name() string
	Signals(frame *IndicatorFrame) (SignalSeries, error)
}

// Planner is a strategy that picks its trades directly from the whole
// series instead of emitting per-day signals.
type Planner interface {
	Name() string
	Plan(series *PriceSeries, initialCash float64) ([]TradeLogEntry, float64, error)
}
