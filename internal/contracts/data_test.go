package contracts

import (
	"errors"
	"testing"
	"time"
)

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		wantFrom string
		wantTo   string
		wantErr  error
	}{
		{name: "both bounds", from: "2024-01-01", to: "2024-06-30", wantFrom: "2024-01-01", wantTo: "2024-06-30"},
		{name: "open start", to: "2024-06-30", wantTo: "2024-06-30"},
		{name: "open end", from: "2024-01-01", wantFrom: "2024-01-01"},
		{name: "unbounded"},
		{name: "reversed", from: "2024-06-30", to: "2024-01-01", wantErr: ErrInvalidDateRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := ParseDateRange(tt.from, tt.to)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseDateRange() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDateRange() error = %v", err)
			}

			from, to := r.Bounds()
			if from != tt.wantFrom || to != tt.wantTo {
				t.Errorf("Bounds() = (%q, %q), want (%q, %q)", from, to, tt.wantFrom, tt.wantTo)
			}
		})
	}
}

func TestParseDateRange_BadFormat(t *testing.T) {
	if _, err := ParseDateRange("01/02/2024", ""); err == nil {
		t.Error("Expected error for non ISO date")
	}
}

func TestPriceSeries_Closes(t *testing.T) {
	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	series := &PriceSeries{
		Symbol: "AAPL",
		Bars: []PriceBar{
			{Date: day, Close: 10},
			{Date: day.AddDate(0, 0, 1), Close: 11.5},
		},
	}

	closes := series.Closes()
	if len(closes) != 2 || closes[0] != 10 || closes[1] != 11.5 {
		t.Errorf("Closes() = %v, want [10 11.5]", closes)
	}
	if series.IsEmpty() {
		t.Error("IsEmpty() = true, want false")
	}
	if !(&PriceSeries{}).IsEmpty() {
		t.Error("IsEmpty() on zero series = false, want true")
	}
}

func TestNewColumn(t *testing.T) {
	col := NewColumn(3)
	for i, v := range col {
		if v.IsSome() {
			t.Errorf("NewColumn()[%d] is set, want missing", i)
		}
	}
}
