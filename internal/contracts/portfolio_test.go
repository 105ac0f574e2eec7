package contracts

import (
	"strings"
	"testing"
	"time"
)

func TestPortfolioState_Holding(t *testing.T) {
	tests := []struct {
		name  string
		state PortfolioState
		want  Holding
	}{
		{"cash only", PortfolioState{Cash: 100}, AllCash},
		{"position only", PortfolioState{Position: 12.5}, AllPosition},
		{"empty", PortfolioState{}, AllCash},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.Holding(); got != tt.want {
				t.Errorf("Holding() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPortfolioState_IsConsistent(t *testing.T) {
	if !(PortfolioState{Cash: 100}).IsConsistent() {
		t.Error("cash-only state should be consistent")
	}
	if (PortfolioState{Cash: 1, Position: 1}).IsConsistent() {
		t.Error("mixed state should be inconsistent")
	}
	if (PortfolioState{Cash: -1}).IsConsistent() {
		t.Error("negative cash should be inconsistent")
	}
}

func TestPortfolioState_Value(t *testing.T) {
	state := PortfolioState{Position: 12.5}
	if v := state.Value(15); v != 187.5 {
		t.Errorf("Value() = %v, want 187.5", v)
	}
}

func TestTradeLogEntry_String(t *testing.T) {
	day := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	buy := TradeLogEntry{Action: ActionBuy, Date: day, Price: 8, Shares: 12.5}
	if got := buy.String(); got != "2024-03-04 BUY 12.50 shares at 8" {
		t.Errorf("String() = %q", got)
	}

	sell := TradeLogEntry{Action: ActionSell, Date: day, Price: 15.25, Shares: 12.5, Cash: 190.5}
	if got := sell.String(); !strings.HasSuffix(got, "SELL all at 15.25, final cash = $190.50") {
		t.Errorf("String() = %q", got)
	}
}

func TestSignal_String(t *testing.T) {
	if Buy.String() != "BUY" || Sell.String() != "SELL" || Hold.String() != "HOLD" {
		t.Error("unexpected signal names")
	}
	if (SignalSeries{Buy, Hold, Buy, Sell}).Count(Buy) != 2 {
		t.Error("Count(Buy) != 2")
	}
}
