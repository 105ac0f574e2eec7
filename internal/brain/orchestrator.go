package brain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wonny/tradesim/internal/audit"
	"github.com/wonny/tradesim/internal/backtest"
	"github.com/wonny/tradesim/internal/contracts"
	"github.com/wonny/tradesim/internal/signal"
	"github.com/wonny/tradesim/pkg/logger"
)

// Orchestrator runs one simulation: Provider → Indicators → Signals →
// Executor → Performance.
// ⭐ SSOT: simulation runs are coordinated only here
type Orchestrator struct {
	prices contracts.PriceSource
	logger *logger.Logger
}

// RunConfig describes a simulation run
type RunConfig struct {
	RunID       string
	Symbol      string
	Range       contracts.DateRange
	InitialCash float64
	Strategy    string // menu selector "1".."4" or strategy name
	Params      signal.Params
}

// RunResult holds everything a run produced
type RunResult struct {
	RunID       string                    `json:"run_id"`
	Symbol      string                    `json:"symbol"`
	Strategy    string                    `json:"strategy"`
	Label       string                    `json:"label"`
	Bars        int                       `json:"bars"`
	StartDate   time.Time                 `json:"start_date"`
	EndDate     time.Time                 `json:"end_date"`
	Signals     map[string]int            `json:"signals,omitempty"`
	Execution   *backtest.Execution       `json:"execution"`
	Performance *audit.PerformanceReport  `json:"performance"`
	Frame       *contracts.IndicatorFrame `json:"-"`
	Duration    time.Duration             `json:"duration"`
}

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(prices contracts.PriceSource, log *logger.Logger) *Orchestrator {
	return &Orchestrator{
		prices: prices,
		logger: log,
	}
}

// Run executes a simulation. An invalid strategy selector fails before the
// price source is touched; an empty price series returns ErrNoDataFound.
func (o *Orchestrator) Run(ctx context.Context, config RunConfig) (*RunResult, error) {
	startTime := time.Now()

	if config.RunID == "" {
		config.RunID = GenerateRunID()
	}

	choice, err := signal.Select(config.Strategy, config.Params)
	if err != nil {
		return nil, err
	}
	if err := contracts.ValidateCash(config.InitialCash); err != nil {
		return nil, err
	}

	log := o.logger.WithSymbol(config.Symbol).WithFields(map[string]interface{}{
		"run_id":   config.RunID,
		"strategy": choice.Name(),
	})
	from, to := config.Range.Bounds()
	log.WithFields(map[string]interface{}{
		"from":         from,
		"to":           to,
		"initial_cash": config.InitialCash,
	}).Info("Starting simulation")

	series, err := o.prices.Fetch(ctx, config.Symbol, config.Range)
	if err != nil {
		return nil, fmt.Errorf("fetch prices: %w", err)
	}
	if series.IsEmpty() {
		return nil, fmt.Errorf("%s: %w", config.Symbol, contracts.ErrNoDataFound)
	}

	result := &RunResult{
		RunID:     config.RunID,
		Symbol:    config.Symbol,
		Strategy:  choice.Name(),
		Label:     choice.Label,
		Bars:      series.Len(),
		StartDate: series.Bars[0].Date,
		EndDate:   series.Bars[series.Len()-1].Date,
		Frame:     contracts.NewIndicatorFrame(series),
	}

	var exec *backtest.Execution
	if choice.Planner != nil {
		exec, err = backtest.ExecutePlan(choice.Planner, series, config.InitialCash)
	} else {
		exec, err = o.runSignals(choice.Strategy, result, config.InitialCash)
	}
	if err != nil {
		log.WithError(err).Warn("Simulation failed")
		return nil, err
	}

	result.Execution = exec
	result.Performance = audit.Analyze(config.InitialCash, exec)
	result.Duration = time.Since(startTime)

	fields := map[string]interface{}{
		"bars":        result.Bars,
		"trades":      len(exec.Trades),
		"final_value": exec.FinalValue,
		"duration_ms": result.Duration.Milliseconds(),
	}
	if result.Performance.ROI != nil {
		fields["roi_pct"] = *result.Performance.ROI
	}
	log.WithFields(fields).Info("Simulation completed")

	return result, nil
}

func (o *Orchestrator) runSignals(strategy contracts.Strategy, result *RunResult, initialCash float64) (*backtest.Execution, error) {
	signals, err := strategy.Signals(result.Frame)
	if err != nil {
		return nil, fmt.Errorf("generate signals: %w", err)
	}

	result.Signals = map[string]int{
		contracts.Buy.String():  signals.Count(contracts.Buy),
		contracts.Sell.String(): signals.Count(contracts.Sell),
		contracts.Hold.String(): signals.Count(contracts.Hold),
	}

	return backtest.Execute(result.Frame.Series, signals, initialCash)
}

// IsNoData reports whether err means the symbol has no stored prices
func IsNoData(err error) bool {
	return errors.Is(err, contracts.ErrNoDataFound)
}

// GenerateRunID generates a unique run ID
func GenerateRunID() string {
	return fmt.Sprintf("run_%s", time.Now().Format("20060102_150405.000"))
}
