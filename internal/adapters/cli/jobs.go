package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/carrierplus-go/internal/adapters/engine"
	"github.com/andrescamacho/carrierplus-go/internal/adapters/grpc"
	"github.com/andrescamacho/carrierplus-go/internal/application/scheduler"
	"github.com/andrescamacho/carrierplus-go/internal/application/setup"
	"github.com/andrescamacho/carrierplus-go/internal/infrastructure/config"
	"github.com/andrescamacho/carrierplus-go/internal/infrastructure/pidfile"
)

const daemonProbeTimeout = 5 * time.Second

// NewJobsCommand creates the jobs command with subcommands
func NewJobsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect and trigger simulation jobs",
	}

	cmd.AddCommand(newJobsListCommand())
	cmd.AddCommand(newJobsRunCommand())

	return cmd
}

func newJobsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List jobs with their live state from the daemon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			jobs, err := daemonJobs(context.Background(), cfg)
			if errors.Is(err, grpc.ErrDaemonUnavailable) {
				fmt.Fprintf(cmd.ErrOrStderr(), "daemon not running (%s); showing configured intervals\n", cfg.Scheduler.SocketPath)
				return printConfiguredJobs(cmd.OutOrStdout(), cfg)
			}
			if err != nil {
				return err
			}
			return printLiveJobs(cmd.OutOrStdout(), jobs)
		},
	}
}

func daemonJobs(ctx context.Context, cfg *config.Config) ([]scheduler.JobInfo, error) {
	client, err := grpc.NewDaemonClient(cfg.Scheduler.SocketPath)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, daemonProbeTimeout)
	defer cancel()
	return client.ListJobs(ctx)
}

func printConfiguredJobs(out io.Writer, cfg *config.Config) error {
	intervals := engine.IntervalsFromConfig(cfg.Scheduler.Intervals)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Job\tInterval")
	fmt.Fprintln(w, "───\t────────")
	for _, name := range setup.JobNames() {
		fmt.Fprintf(w, "%s\t%s\n", name, describeInterval(intervals[name]))
	}
	return w.Flush()
}

func printLiveJobs(out io.Writer, jobs []scheduler.JobInfo) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Job\tInterval\tState\tRuns\tFailures\tLast Run\tLast Error")
	fmt.Fprintln(w, "───\t────────\t─────\t────\t────────\t────────\t──────────")
	for _, job := range jobs {
		state := "idle"
		if job.Running {
			state = "running"
		}
		lastRun := "-"
		if job.LastRunAt != nil {
			lastRun = job.LastRunAt.Local().Format("2006-01-02 15:04:05")
		}
		lastError := job.LastError
		if lastError == "" {
			lastError = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			job.Name, describeInterval(job.Interval), state, job.Runs, job.Failures, lastRun, lastError)
	}
	return w.Flush()
}

func describeInterval(d time.Duration) string {
	if d < 0 {
		return "disabled"
	}
	return d.String()
}

func newJobsRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run <job>",
		Short: "Run one job synchronously",
		Long: `Run a single simulation job once and wait for it.

When the daemon is running the job runs inside it, so it never overlaps the
daemon's own run of the same job. A job that is already running is refused.
Without a daemon the job runs in this process while holding the daemon's
PID file, which keeps a daemon from starting until it finishes.

Example:
  carrierplus jobs run mission_expiry`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			where, took, err := runJob(context.Background(), cfg, args[0])
			if err != nil {
				return fmt.Errorf("job %s failed: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✓ %s finished in %s (%s)\n", args[0], took.Round(time.Millisecond), where)
			return nil
		},
	}
}

// runJob prefers a running daemon so its per-job lock applies. It reports
// where the job ran and how long it took.
func runJob(ctx context.Context, cfg *config.Config, name string) (string, time.Duration, error) {
	client, err := grpc.NewDaemonClient(cfg.Scheduler.SocketPath)
	if err != nil {
		return "", 0, err
	}
	defer client.Close()

	probeCtx, cancel := context.WithTimeout(ctx, daemonProbeTimeout)
	_, err = client.ListJobs(probeCtx)
	cancel()

	switch {
	case err == nil:
		took, err := client.RunJob(ctx, name)
		return "daemon", took, err
	case errors.Is(err, grpc.ErrDaemonUnavailable):
		took, err := runJobLocally(ctx, cfg, name)
		return "local", took, err
	default:
		return "", 0, err
	}
}

func runJobLocally(ctx context.Context, cfg *config.Config, name string) (time.Duration, error) {
	pf := pidfile.New(cfg.Scheduler.PIDFile)
	if err := pf.Acquire(); err != nil {
		var running *pidfile.AlreadyRunningError
		if errors.As(err, &running) {
			return 0, fmt.Errorf("daemon holds %s but does not answer on %s: %w",
				cfg.Scheduler.PIDFile, cfg.Scheduler.SocketPath, err)
		}
		return 0, err
	}
	defer func() { _ = pf.Release() }()

	s, err := newSession(cfg)
	if err != nil {
		return 0, err
	}
	defer s.Close()

	eng, err := s.engine()
	if err != nil {
		return 0, err
	}

	start := time.Now()
	err = eng.RunJob(ctx, name)
	return time.Since(start), err
}
