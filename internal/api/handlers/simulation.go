package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/wonny/tradesim/internal/brain"
	"github.com/wonny/tradesim/internal/contracts"
	"github.com/wonny/tradesim/internal/strategyconfig"
	"github.com/wonny/tradesim/pkg/logger"
)

// Simulator runs one simulation
type Simulator interface {
	Run(ctx context.Context, config brain.RunConfig) (*brain.RunResult, error)
}

// SimulationHandler handles backtest API endpoints
// ⭐ SSOT: simulation HTTP handling lives only here
type SimulationHandler struct {
	simulator Simulator
	params    *strategyconfig.Config
	logger    *logger.Logger
}

// NewSimulationHandler creates a new simulation handler
func NewSimulationHandler(simulator Simulator, params *strategyconfig.Config, log *logger.Logger) *SimulationHandler {
	return &SimulationHandler{
		simulator: simulator,
		params:    params,
		logger:    log,
	}
}

// SimulationResponse is the API view of a run
type SimulationResponse struct {
	RunID       string   `json:"run_id"`
	Symbol      string   `json:"symbol"`
	Strategy    string   `json:"strategy"`
	Label       string   `json:"label"`
	Bars        int      `json:"bars"`
	StartDate   string   `json:"start_date"`
	EndDate     string   `json:"end_date"`
	TradeLog    []string `json:"trade_log"`
	InitialCash float64  `json:"initial_cash"`
	FinalValue  float64  `json:"final_value"`
	ROI         *float64 `json:"roi"`
	MaxDrawdown float64  `json:"max_drawdown"`
	RoundTrips  int      `json:"round_trips"`
	WinRate     float64  `json:"win_rate"`
}

// Simulate runs a backtest
// GET /api/simulate?symbol=AAPL&from=2024-01-01&to=2024-06-30&cash=10000&strategy=1
func (h *SimulationHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	symbol := strings.ToUpper(strings.TrimSpace(q.Get("symbol")))
	if symbol == "" {
		respondError(w, http.StatusBadRequest, "symbol is required")
		return
	}

	dr, err := contracts.ParseDateRange(q.Get("from"), q.Get("to"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid date range: "+err.Error())
		return
	}

	cash := h.params.Simulation.InitialCash
	if cashStr := q.Get("cash"); cashStr != "" {
		cash, err = strconv.ParseFloat(cashStr, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "cash must be a number")
			return
		}
	}

	strategy := q.Get("strategy")
	if strategy == "" {
		strategy = h.params.Simulation.Strategy
	}

	result, err := h.simulator.Run(r.Context(), brain.RunConfig{
		Symbol:      symbol,
		Range:       dr,
		InitialCash: cash,
		Strategy:    strategy,
		Params:      h.params.Params(),
	})
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			h.logger.WithError(err).WithSymbol(symbol).Error("Simulation failed")
		}
		respondError(w, status, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, newSimulationResponse(result))
}

func newSimulationResponse(result *brain.RunResult) SimulationResponse {
	log := make([]string, len(result.Execution.Trades))
	for i, trade := range result.Execution.Trades {
		log[i] = trade.String()
	}

	perf := result.Performance
	return SimulationResponse{
		RunID:       result.RunID,
		Symbol:      result.Symbol,
		Strategy:    result.Strategy,
		Label:       result.Label,
		Bars:        result.Bars,
		StartDate:   result.StartDate.Format(contracts.DateLayout),
		EndDate:     result.EndDate.Format(contracts.DateLayout),
		TradeLog:    log,
		InitialCash: perf.InitialCash,
		FinalValue:  perf.FinalValue,
		ROI:         perf.ROI,
		MaxDrawdown: perf.MaxDrawdown,
		RoundTrips:  perf.RoundTrips,
		WinRate:     perf.WinRate,
	}
}
