package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/wonny/tradesim/internal/contracts"
	"github.com/wonny/tradesim/internal/metrics"
	"github.com/wonny/tradesim/pkg/logger"
)

// MetricsRunner recomputes a symbol's daily metrics
type MetricsRunner interface {
	Run(ctx context.Context, symbol string) (*metrics.RunResult, error)
}

// MetricsHandler handles daily metrics API endpoints
type MetricsHandler struct {
	runner MetricsRunner
	reader contracts.MetricsReader
	logger *logger.Logger
}

// NewMetricsHandler creates a new metrics handler
func NewMetricsHandler(runner MetricsRunner, reader contracts.MetricsReader, log *logger.Logger) *MetricsHandler {
	return &MetricsHandler{
		runner: runner,
		reader: reader,
		logger: log,
	}
}

// DailyMetricResponse is one stored metrics row; missing values are null
type DailyMetricResponse struct {
	Date             string   `json:"date"`
	DailyReturn      *float64 `json:"daily_return"`
	CumulativeReturn *float64 `json:"cumulative_return"`
	SMA10            *float64 `json:"sma_10"`
	Volatility20     *float64 `json:"volatility_20"`
}

// Refresh recomputes and stores the metrics of a symbol
// POST /api/metrics/{symbol}
func (h *MetricsHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(mux.Vars(r)["symbol"])

	result, err := h.runner.Run(r.Context(), symbol)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.WithError(err).WithSymbol(symbol).Error("Metrics refresh failed")
		}
		respondError(w, status, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"symbol":      result.Symbol,
		"rows":        len(result.Rows),
		"succeeded":   result.Upsert.Succeeded,
		"failed":      result.Upsert.Failed,
		"duration_ms": result.Duration.Milliseconds(),
	})
}

// Get returns stored metrics for a symbol
// GET /api/metrics/{symbol}?from=2024-01-01&to=2024-06-30
func (h *MetricsHandler) Get(w http.ResponseWriter, r *http.Request) {
	symbol := strings.ToUpper(mux.Vars(r)["symbol"])

	dr, err := contracts.ParseDateRange(r.URL.Query().Get("from"), r.URL.Query().Get("to"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date range: "+err.Error())
		return
	}

	rows, err := h.reader.GetBySymbol(r.Context(), symbol, dr)
	if err != nil {
		h.logger.WithError(err).WithSymbol(symbol).Error("Failed to get metrics")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve metrics")
		return
	}

	result := make([]DailyMetricResponse, len(rows))
	for i, m := range rows {
		result[i] = DailyMetricResponse{
			Date:             m.Date.Format(contracts.DateLayout),
			DailyReturn:      optionalPtr(m.DailyReturn),
			CumulativeReturn: optionalPtr(m.CumulativeReturn),
			SMA10:            optionalPtr(m.SMA10),
			Volatility20:     optionalPtr(m.Volatility20),
		}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"symbol":  symbol,
		"count":   len(result),
		"metrics": result,
	})
}
