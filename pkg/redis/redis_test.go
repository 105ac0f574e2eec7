package redis

import (
	"context"
	"testing"
	"time"

	"github.com/wonny/tradesim/pkg/config"
)

func disabledClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(context.Background(), &config.Config{
		Redis: config.RedisConfig{Enabled: false},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

func TestNewClient_Disabled(t *testing.T) {
	client := disabledClient(t)

	if client.Enabled() {
		t.Error("Expected client to be disabled")
	}
	if err := client.Ping(context.Background()); err != nil {
		t.Errorf("Ping() on disabled client error = %v", err)
	}
	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestCache_Disabled(t *testing.T) {
	cache := NewCache(disabledClient(t), "test")
	ctx := context.Background()

	if err := cache.Set(ctx, "key", []float64{1, 2}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var result []float64
	found, err := cache.Get(ctx, "key", &result)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Expected cache miss when Redis disabled")
	}

	n, err := cache.DeletePattern(ctx, PriceSeriesPattern("AAPL"))
	if err != nil || n != 0 {
		t.Errorf("DeletePattern() = %d, %v; want 0, nil", n, err)
	}
}

func TestCacheKeys(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"bounded range", PriceSeriesKey("AAPL", "2024-01-01", "2024-06-30"), "prices:AAPL:2024-01-01:2024-06-30"},
		{"open start", PriceSeriesKey("AAPL", "", "2024-06-30"), "prices:AAPL:*:2024-06-30"},
		{"fully open", PriceSeriesKey("NVDA", "", ""), "prices:NVDA:*:*"},
		{"pattern", PriceSeriesPattern("NVDA"), "prices:NVDA:*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("got %q, want %q", tt.got, tt.expected)
			}
		})
	}
}
