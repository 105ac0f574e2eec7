package strategyconfig

import (
	"github.com/moznion/go-optional"

	"github.com/wonny/tradesim/internal/signal"
)

// Config holds tunable strategy parameters
type Config struct {
	Meta       Meta       `yaml:"meta" json:"meta"`
	Simulation Simulation `yaml:"simulation" json:"simulation"`
	Crossover  Crossover  `yaml:"moving_average_crossover" json:"moving_average_crossover"`
	RSI        RSI        `yaml:"rsi" json:"rsi"`
	Momentum   Momentum   `yaml:"momentum" json:"momentum"`
}

// Meta identifies the parameter set
type Meta struct {
	StrategyID string `yaml:"strategy_id" json:"strategy_id"`
	Version    string `yaml:"version" json:"version"`
}

// Simulation holds run defaults used when the caller gives none
type Simulation struct {
	InitialCash float64 `yaml:"initial_cash" json:"initial_cash"`
	Strategy    string  `yaml:"strategy" json:"strategy"` // selector "1".."4" or name
}

// Crossover parameters of the moving average crossover
type Crossover struct {
	ShortWindow int `yaml:"short_window" json:"short_window"`
	LongWindow  int `yaml:"long_window" json:"long_window"`
}

// RSI parameters of the RSI strategy
type RSI struct {
	Period     int     `yaml:"period" json:"period"`
	Oversold   float64 `yaml:"oversold" json:"oversold"`
	Overbought float64 `yaml:"overbought" json:"overbought"`
}

// Momentum parameters of the momentum strategy
type Momentum struct {
	Lookback  int     `yaml:"lookback" json:"lookback"`
	Threshold float64 `yaml:"threshold" json:"threshold"`
}

// Default returns the built-in parameter set
func Default() *Config {
	return &Config{
		Meta: Meta{StrategyID: "default", Version: "1"},
		Simulation: Simulation{
			InitialCash: 10000,
			Strategy:    "1",
		},
		Crossover: Crossover{ShortWindow: 10, LongWindow: 50},
		RSI:       RSI{Period: 14, Oversold: 30, Overbought: 70},
		Momentum:  Momentum{Lookback: 3, Threshold: 1.02},
	}
}

// Params converts the config into strategy parameters
func (c *Config) Params() signal.Params {
	return signal.Params{
		ShortWindow:       c.Crossover.ShortWindow,
		LongWindow:        c.Crossover.LongWindow,
		RSIPeriod:         c.RSI.Period,
		Oversold:          optional.Some(c.RSI.Oversold),
		Overbought:        optional.Some(c.RSI.Overbought),
		MomentumLookback:  c.Momentum.Lookback,
		MomentumThreshold: optional.Some(c.Momentum.Threshold),
	}
}
