package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/wonny/tradesim/internal/api"
	"github.com/wonny/tradesim/internal/api/handlers"
	"github.com/wonny/tradesim/internal/brain"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP API server",
	Long: `Starts the REST API server.

Endpoints:
  GET  /health                 - Health check
  GET  /api/simulate           - Run a backtest (symbol, from, to, cash, strategy)
  GET  /api/metrics/{symbol}   - Stored daily metrics (from, to)
  POST /api/metrics/{symbol}   - Recompute and store daily metrics

Example:
  go run ./cmd/tradesim api
  go run ./cmd/tradesim api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (default is PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== tradesim API Server ===")

	ctx := context.Background()
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	pipeline, err := a.pipeline(ctx)
	if err != nil {
		return err
	}

	router := api.NewRouter(api.Handlers{
		Simulation: handlers.NewSimulationHandler(brain.NewOrchestrator(a.prices, a.log), a.params, a.log),
		Metrics:    handlers.NewMetricsHandler(pipeline, a.store, a.log),
	}, rate.NewLimiter(rate.Limit(a.cfg.API.RateLimit), a.cfg.API.RateBurst), a.log)

	server := api.New(a.cfg, a.log, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", a.cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  GET  /api/simulate")
	fmt.Println("  GET  /api/metrics/{symbol}")
	fmt.Println("  POST /api/metrics/{symbol}")
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	a.log.Info("Server stopped")
	return nil
}
