package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/tradesim/internal/brain"
	"github.com/wonny/tradesim/internal/contracts"
	"github.com/wonny/tradesim/internal/signal"
)

// simulateCmd represents the simulate command
var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Backtest a strategy on one symbol",
	Long: `Runs one single-position backtest and prints the trade log, the final
portfolio value and the ROI.

Values not given as flags are prompted for, in this order:
initial cash, symbol, start date, end date, strategy.
A blank date leaves that side of the range open.

Strategies:
  1) Moving Average Crossover
  2) RSI Strategy
  3) Buy Low, Sell High
  4) Momentum Strategy

Example:
  go run ./cmd/tradesim simulate
  go run ./cmd/tradesim simulate --cash 10000 --symbol NVDA --from 2024-01-01 --to 2024-06-30 --strategy 1`,
	RunE: runSimulate,
}

var (
	simCash     float64
	simSymbol   string
	simFrom     string
	simTo       string
	simStrategy string
)

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().Float64Var(&simCash, "cash", 0, "initial investment ($)")
	simulateCmd.Flags().StringVar(&simSymbol, "symbol", "", "stock symbol (e.g. NVDA)")
	simulateCmd.Flags().StringVar(&simFrom, "from", "", "start date (YYYY-MM-DD)")
	simulateCmd.Flags().StringVar(&simTo, "to", "", "end date (YYYY-MM-DD)")
	simulateCmd.Flags().StringVar(&simStrategy, "strategy", "", "strategy selector (1-4)")
}

// simulationInput is what the user asked to run
type simulationInput struct {
	Cash     float64
	Symbol   string
	From     string
	To       string
	Strategy string
}

func runSimulate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Welcome to the Stock Trading Simulator 🚀")
	fmt.Fprintln(out)

	given := simulationInput{Symbol: simSymbol, From: simFrom, To: simTo, Strategy: simStrategy}
	if cmd.Flags().Changed("cash") {
		given.Cash = simCash
	} else {
		given.Cash = -1
	}
	prompted := !cmd.Flags().Changed("symbol") || !cmd.Flags().Changed("strategy")

	input, err := promptSimulation(cmd.InOrStdin(), out, given, prompted)
	if err != nil {
		return err
	}

	dr, err := contracts.ParseDateRange(input.From, input.To)
	if err != nil {
		PrintError(fmt.Sprintf("Invalid date range: %v", err))
		return err
	}

	// reject an unknown strategy before touching the database
	if _, err := signal.Select(input.Strategy, signal.Params{}); err != nil {
		PrintError("Invalid choice! Exiting program.")
		return err
	}

	ctx := context.Background()
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	orchestrator := brain.NewOrchestrator(a.prices, a.log)
	result, err := orchestrator.Run(ctx, brain.RunConfig{
		Symbol:      input.Symbol,
		Range:       dr,
		InitialCash: input.Cash,
		Strategy:    input.Strategy,
		Params:      a.params.Params(),
	})
	if errors.Is(err, contracts.ErrNoDataFound) {
		PrintWarning(fmt.Sprintf("No historical data available for %s. Please ensure data has been collected.", input.Symbol))
		return err
	}
	if err != nil {
		PrintError(err.Error())
		return err
	}

	printSimulationReport(out, result)
	return nil
}

// promptSimulation fills the missing fields of given from in. A negative
// cash means "not given".
func promptSimulation(in io.Reader, out io.Writer, given simulationInput, prompted bool) (simulationInput, error) {
	input := given
	reader := bufio.NewReader(in)

	ask := func(prompt string) (string, error) {
		fmt.Fprint(out, prompt)
		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return "", fmt.Errorf("read input: %w", err)
		}
		return strings.TrimSpace(line), nil
	}

	if input.Cash < 0 {
		answer, err := ask("Enter your initial investment ($): ")
		if err != nil {
			return input, err
		}
		cash, err := strconv.ParseFloat(answer, 64)
		if err != nil || contracts.ValidateCash(cash) != nil {
			return input, fmt.Errorf("initial investment must be a non-negative number: %q", answer)
		}
		input.Cash = cash
	}

	if input.Symbol == "" {
		answer, err := ask("Enter the stock symbol to trade (e.g., NVDA): ")
		if err != nil {
			return input, err
		}
		input.Symbol = answer
	}
	input.Symbol = strings.ToUpper(strings.TrimSpace(input.Symbol))
	if input.Symbol == "" {
		return input, errors.New("stock symbol is required")
	}

	if prompted {
		if input.From == "" {
			answer, err := ask("Enter start date (YYYY-MM-DD): ")
			if err != nil {
				return input, err
			}
			input.From = answer
		}
		if input.To == "" {
			answer, err := ask("Enter end date (YYYY-MM-DD): ")
			if err != nil {
				return input, err
			}
			input.To = answer
		}
	}

	if input.Strategy == "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Available Trading Strategies:")
		for _, item := range signal.Menu {
			fmt.Fprintf(out, "%s) %s\n", item.Key, item.Label)
		}
		answer, err := ask("\nChoose a trading strategy (1-4): ")
		if err != nil {
			return input, err
		}
		input.Strategy = answer
	}

	return input, nil
}

// printSimulationReport prints the trade log, final value and ROI
func printSimulationReport(out io.Writer, result *brain.RunResult) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "===== Trading Log =====")
	for _, trade := range result.Execution.Trades {
		fmt.Fprintln(out, trade.String())
	}
	fmt.Fprintln(out, "=======================")
	fmt.Fprintf(out, "Strategy: %s (%d bars, %s ~ %s)\n",
		result.Label,
		result.Bars,
		result.StartDate.Format(contracts.DateLayout),
		result.EndDate.Format(contracts.DateLayout),
	)
	fmt.Fprintf(out, "Final portfolio value: $%.2f\n", result.Execution.FinalValue)

	if roi := result.Performance.ROI; roi != nil {
		fmt.Fprintf(out, "Return on Investment (ROI): %.2f%%\n", *roi)
	} else {
		fmt.Fprintln(out, "Return on Investment (ROI): n/a (initial investment is zero)")
	}
	fmt.Fprintf(out, "Max drawdown: %.2f%%\n", result.Performance.MaxDrawdown*100)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Thank you for using the Stock Trading Simulator! 📈")
}
