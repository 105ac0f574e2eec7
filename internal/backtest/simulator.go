package backtest

import (
	"fmt"
	"time"

	"github.com/wonny/tradesim/internal/contracts"
)

// Simulator holds the single cash/position state of one run and applies
// all-in / all-out transitions to it.
// ⭐ SSOT: portfolio state transitions happen only here
type Simulator struct {
	state  contracts.PortfolioState
	trades []contracts.TradeLogEntry

	// cost of the open position, for round-trip stats
	entryCash float64
	stats     Stats
}

// Stats counts completed buy→sell round trips
type Stats struct {
	RoundTrips    int `json:"round_trips"`
	WinningTrades int `json:"winning_trades"`
	LosingTrades  int `json:"losing_trades"`
}

// NewSimulator creates a simulator holding initialCash in cash
func NewSimulator(initialCash float64) *Simulator {
	s := &Simulator{}
	s.Initialize(initialCash)
	return s
}

// Initialize resets the simulator to all cash
func (s *Simulator) Initialize(initialCash float64) {
	s.state = contracts.PortfolioState{Cash: initialCash}
	s.trades = make([]contracts.TradeLogEntry, 0)
	s.entryCash = 0
	s.stats = Stats{}
}

// State returns a copy of the current portfolio state
func (s *Simulator) State() contracts.PortfolioState {
	return s.state
}

// Trades returns the trade log so far
func (s *Simulator) Trades() []contracts.TradeLogEntry {
	return s.trades
}

// Stats returns round-trip statistics
func (s *Simulator) Stats() Stats {
	return s.stats
}

// Apply acts on a signal at the given bar. It reports whether a transition
// happened; Hold, Buy while invested and Sell while in cash are no-ops.
func (s *Simulator) Apply(sig contracts.Signal, bar contracts.PriceBar) (bool, error) {
	switch {
	case sig == contracts.Buy && s.state.Cash > 0:
		return true, s.buyAll(bar.Date, bar.Close)
	case sig == contracts.Sell && s.state.Position > 0:
		return true, s.sellAll(bar.Date, bar.Close)
	default:
		return false, nil
	}
}

func (s *Simulator) buyAll(date time.Time, price float64) error {
	if price <= 0 {
		return fmt.Errorf("buy on %s: %w", date.Format(contracts.DateLayout), contracts.ErrDegeneratePrice)
	}

	s.entryCash = s.state.Cash
	shares := s.state.Cash / price
	s.state = contracts.PortfolioState{Cash: 0, Position: shares}

	s.trades = append(s.trades, contracts.TradeLogEntry{
		Action: contracts.ActionBuy,
		Date:   date,
		Price:  price,
		Shares: shares,
	})
	return nil
}

func (s *Simulator) sellAll(date time.Time, price float64) error {
	shares := s.state.Position
	cash := shares * price
	s.state = contracts.PortfolioState{Cash: cash, Position: 0}

	s.stats.RoundTrips++
	switch {
	case cash > s.entryCash:
		s.stats.WinningTrades++
	case cash < s.entryCash:
		s.stats.LosingTrades++
	}

	s.trades = append(s.trades, contracts.TradeLogEntry{
		Action: contracts.ActionSell,
		Date:   date,
		Price:  price,
		Shares: shares,
		Cash:   cash,
	})
	return nil
}
