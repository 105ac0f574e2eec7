package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/moznion/go-optional"
	"github.com/spf13/cobra"

	"github.com/wonny/tradesim/internal/contracts"
)

// previewRows is how many computed rows the metrics command prints
const previewRows = 15

// metricsCmd represents the metrics command
var metricsCmd = &cobra.Command{
	Use:   "metrics [SYMBOL]",
	Short: "Compute and store daily metrics for a symbol",
	Long: `Reads every stored price of a symbol, computes the daily return,
cumulative return, 10-day SMA and 20-day volatility, and upserts them
into daily_metrics. Re-running overwrites the same (symbol, date) rows.

The symbol is prompted for when not given.

Example:
  go run ./cmd/tradesim metrics AAPL`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMetrics,
}

func init() {
	rootCmd.AddCommand(metricsCmd)
}

func runMetrics(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var symbol string
	if len(args) == 1 {
		symbol = args[0]
	} else {
		fmt.Fprint(out, "Enter the stock symbol for daily metrics calculation (e.g., AAPL): ")
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read input: %w", err)
		}
		symbol = line
	}
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return errors.New("stock symbol is required")
	}

	ctx := context.Background()
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	pipeline, err := a.pipeline(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Fetching historical data for %s from the database...\n", symbol)
	result, err := pipeline.Run(ctx, symbol)
	if errors.Is(err, contracts.ErrNoDataFound) {
		PrintWarning(fmt.Sprintf("No historical data available for %s. Please ensure data has been collected.", symbol))
		return err
	}
	if err != nil {
		PrintError(err.Error())
		return err
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Preview of computed daily metrics:")
	printMetricsPreview(out, result.Rows, previewRows)
	fmt.Fprintln(out)

	if result.Upsert.HasFailures() {
		PrintWarning(fmt.Sprintf("%d of %d rows failed and were skipped", result.Upsert.Failed, result.Upsert.Total()))
	}
	PrintSuccess(fmt.Sprintf("Successfully stored %d daily metric rows for %s.", result.Upsert.Succeeded, symbol))

	if stored, err := a.store.Count(ctx, symbol); err == nil {
		PrintInfo(fmt.Sprintf("%s now has %d rows in daily_metrics", symbol, stored))
	}
	return nil
}

// printMetricsPreview prints the first n rows as a table
func printMetricsPreview(out io.Writer, rows []contracts.DailyMetric, n int) {
	columns := []string{"date", "daily_return", "cumulative_return", "SMA_10", "volatility_20"}
	widths := []int{10, 12, 17, 10, 13}

	if n > len(rows) {
		n = len(rows)
	}

	FprintTableHeader(out, columns, widths)
	for _, row := range rows[:n] {
		FprintTableRow(out, []string{
			row.Date.Format(contracts.DateLayout),
			formatOptional(row.DailyReturn, 6),
			formatOptional(row.CumulativeReturn, 6),
			formatOptional(row.SMA10, 4),
			formatOptional(row.Volatility20, 6),
		}, widths)
	}
}

// formatOptional renders None as NaN, the way the original preview showed it
func formatOptional(v optional.Option[float64], precision int) string {
	if v.IsNone() {
		return "NaN"
	}
	return fmt.Sprintf("%.*f", precision, v.Unwrap())
}
