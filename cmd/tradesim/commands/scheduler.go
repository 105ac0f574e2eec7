package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/tradesim/internal/scheduler"
	"github.com/wonny/tradesim/internal/scheduler/jobs"
)


// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Scheduled metrics refresh",
	Long: `Starts the scheduler or manages its jobs.

Jobs:
  metrics_refresh      - recompute daily metrics for METRICS_SYMBOLS (METRICS_SCHEDULE)
  price_cache_cleanup  - drop cached price series for METRICS_SYMBOLS

Subcommands:
  start   - start the scheduler daemon
  list    - list registered jobs
  run     - run one job now

Example:
  go run ./cmd/tradesim scheduler start
  go run ./cmd/tradesim scheduler run metrics_refresh`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the scheduler",
		RunE:  runSchedulerStart,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "List registered jobs",
		RunE:  runSchedulerList,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job-name]",
		Short: "Run a job immediately",
		Args:  cobra.ExactArgs(1),
		RunE:  runSchedulerRun,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

// newScheduler registers every job against the wired app
func newScheduler(ctx context.Context, a *app) (*scheduler.Scheduler, error) {
	pipeline, err := a.pipeline(ctx)
	if err != nil {
		return nil, err
	}

	sched := scheduler.New(a.log, scheduler.Options{
		JobTimeout:   a.cfg.Scheduler.JobTimeout,
		HistoryLimit: a.cfg.Scheduler.HistoryLimit,
	})
	if err := sched.AddJob(jobs.NewMetricsRefreshJob(pipeline, a.cfg.Metrics.Symbols, a.cfg.Metrics.Schedule, a.log)); err != nil {
		return nil, err
	}
	if a.redis.Enabled() {
		if err := sched.AddJob(jobs.NewCacheCleanupJob(a.prices, a.cfg.Metrics.Symbols, a.cfg.Redis.PriceCacheSchedule, a.log)); err != nil {
			return nil, err
		}
	}
	return sched, nil
}

func runSchedulerStart(cmd *cobra.Command, args []string) error {
	fmt.Println("=== tradesim Scheduler ===")

	ctx := context.Background()
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if len(a.cfg.Metrics.Symbols) == 0 {
		PrintWarning("METRICS_SYMBOLS is empty; metrics_refresh will have nothing to do")
	}

	sched, err := newScheduler(ctx, a)
	if err != nil {
		return err
	}
	sched.Start()

	fmt.Println("\nRegistered jobs:")
	for name, stats := range sched.GetJobStats() {
		PrintKeyValue(name, stats.Schedule, 20)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}

func runSchedulerList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	sched, err := newScheduler(ctx, a)
	if err != nil {
		return err
	}

	stats := sched.GetJobStats()
	PrintDoubleSeparator()
	for _, name := range sched.GetAllJobs() {
		PrintKeyValue(name, stats[name].Schedule, 20)
	}
	PrintDoubleSeparator()
	return nil
}

func runSchedulerRun(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	sched, err := newScheduler(ctx, a)
	if err != nil {
		return err
	}

	result, err := sched.RunJob(args[0])
	if err != nil {
		PrintError(err.Error())
		PrintNumberedList(sched.GetAllJobs())
		return err
	}

	if !result.Success {
		PrintError(fmt.Sprintf("%s failed after %v: %s", result.JobName, result.Duration, result.Error))
		return fmt.Errorf("job %s failed", result.JobName)
	}
	PrintSuccess(fmt.Sprintf("%s completed in %v", result.JobName, result.Duration))
	return nil
}
