package contracts

import "math"

// Holding names which side of the all-in/all-out model a portfolio is on
type Holding string

const (
	AllCash     Holding = "ALL_CASH"
	AllPosition Holding = "ALL_POSITION"
)

// PortfolioState is the single cash/position pair owned by one simulation run.
// Outside a transition at most one of Cash and Position is positive.
type PortfolioState struct {
	Cash     float64 `json:"cash"`
	Position float64 `json:"position"` // shares held
}

// Holding derives the current side from the balances
func (p PortfolioState) Holding() Holding {
	if p.Position > 0 {
		return AllPosition
	}
	return AllCash
}

// Value marks the state to price
func (p PortfolioState) Value(price float64) float64 {
	return p.Cash + p.Position*price
}

// IsConsistent reports whether the all-in/all-out invariant holds
func (p PortfolioState) IsConsistent() bool {
	return !(p.Cash > 0 && p.Position > 0) && p.Cash >= 0 && p.Position >= 0
}

// ValidateCash rejects a starting balance that is negative, NaN or infinite
func ValidateCash(cash float64) error {
	if cash < 0 || math.IsNaN(cash) || math.IsInf(cash, 0) {
		return ErrInvalidCash
	}
	return nil
}
