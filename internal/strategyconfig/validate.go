package strategyconfig

import (
	"fmt"

	"github.com/wonny/tradesim/internal/signal"
)

// ValidationError is a parameter that cannot be used
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning is a usable but suspicious parameter
type Warning struct {
	Code    string
	Message string
}

// Validate checks all required constraints
func Validate(cfg *Config) error {
	if cfg.Meta.StrategyID == "" {
		return ValidationError{"meta.strategy_id", "required"}
	}

	if cfg.Simulation.InitialCash < 0 {
		return ValidationError{"simulation.initial_cash", "must be >= 0"}
	}
	if cfg.Simulation.Strategy != "" {
		if _, err := signal.Select(cfg.Simulation.Strategy, signal.Params{}); err != nil {
			return ValidationError{"simulation.strategy", err.Error()}
		}
	}

	if cfg.Crossover.ShortWindow < 1 {
		return ValidationError{"moving_average_crossover.short_window", "must be >= 1"}
	}
	if cfg.Crossover.LongWindow <= cfg.Crossover.ShortWindow {
		return ValidationError{"moving_average_crossover.long_window", "must be > short_window"}
	}

	if cfg.RSI.Period < 1 {
		return ValidationError{"rsi.period", "must be >= 1"}
	}
	if err := validateRange(cfg.RSI.Oversold, 0, 100); err != nil {
		return ValidationError{"rsi.oversold", err.Error()}
	}
	if err := validateRange(cfg.RSI.Overbought, 0, 100); err != nil {
		return ValidationError{"rsi.overbought", err.Error()}
	}
	if cfg.RSI.Oversold >= cfg.RSI.Overbought {
		return ValidationError{"rsi", "oversold must be < overbought"}
	}

	if cfg.Momentum.Lookback < 1 {
		return ValidationError{"momentum.lookback", "must be >= 1"}
	}
	if cfg.Momentum.Threshold <= 1 || cfg.Momentum.Threshold >= 2 {
		return ValidationError{"momentum.threshold", "must be in (1, 2)"}
	}

	return nil
}

// CheckWarnings reports parameters that are valid but unusual
func CheckWarnings(cfg *Config) []Warning {
	var warnings []Warning

	if cfg.Crossover.LongWindow > 200 {
		warnings = append(warnings, Warning{
			Code:    "LONG_WINDOW",
			Message: fmt.Sprintf("long_window %d needs more than %d bars before the first signal", cfg.Crossover.LongWindow, cfg.Crossover.LongWindow),
		})
	}
	if cfg.RSI.Oversold > 50 || cfg.RSI.Overbought < 50 {
		warnings = append(warnings, Warning{
			Code:    "RSI_BANDS",
			Message: fmt.Sprintf("rsi bands %.0f/%.0f do not straddle 50", cfg.RSI.Oversold, cfg.RSI.Overbought),
		})
	}
	if cfg.Momentum.Threshold > 1.2 {
		warnings = append(warnings, Warning{
			Code:    "MOMENTUM_THRESHOLD",
			Message: fmt.Sprintf("momentum threshold %.2f rarely triggers", cfg.Momentum.Threshold),
		})
	}

	return warnings
}

func validateRange(v, min, max float64) error {
	if v < min || v > max {
		return fmt.Errorf("must be in [%.0f, %.0f]", min, max)
	}
	return nil
}
