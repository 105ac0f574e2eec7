package contracts

import (
	"fmt"
	"strconv"
	"time"
)

// TradeAction is the side of an executed transition
type TradeAction string

const (
	ActionBuy  TradeAction = "BUY"
	ActionSell TradeAction = "SELL"
)

// TradeLogEntry records one transition that actually happened
type TradeLogEntry struct {
	Action TradeAction `json:"action"`
	Date   time.Time   `json:"date"`
	Price  float64     `json:"price"`
	Shares float64     `json:"shares"` // shares bought, or shares sold
	Cash   float64     `json:"cash"`   // cash after the transition
}

// String renders the entry the way the trade log is printed
func (e TradeLogEntry) String() string {
	price := strconv.FormatFloat(e.Price, 'f', -1, 64)
	if e.Action == ActionBuy {
		return fmt.Sprintf("%s BUY %.2f shares at %s", e.Date.Format(DateLayout), e.Shares, price)
	}
	return fmt.Sprintf("%s SELL all at %s, final cash = $%.2f", e.Date.Format(DateLayout), price, e.Cash)
}
