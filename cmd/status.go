package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	appagent "mosaic-media/application/agent"
	"mosaic-media/domain/agent"
	"mosaic-media/infrastructure/config"
	"mosaic-media/infrastructure/mosaic"

	"github.com/spf13/cobra"
)

var (
	statusRunID    string
	statusWatch    bool
	statusInterval time.Duration
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of an agent run",
	Long: `Fetch the current status of an agent run, or watch it until it
reaches a terminal state.

Example:
  mosaic-media status --run run-456
  mosaic-media status --run run-456 --watch --interval 10s`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVar(&statusRunID, "run", "", "Run ID (required)")
	statusCmd.Flags().BoolVar(&statusWatch, "watch", false, "Poll until the run completes or fails")
	statusCmd.Flags().DurationVar(&statusInterval, "interval", 5*time.Second, "Polling interval with --watch")
	statusCmd.MarkFlagRequired("run")
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if err := config.ValidateAPIKey(cfg.API.Key); err != nil {
		return err
	}

	client := mosaic.NewClient(cfg.API.BaseURL, cfg.API.Key)
	return RunStatusWithDependencies(cmd.Context(), client, statusRunID, statusWatch, statusInterval, os.Stdout)
}

// RunStatusWithDependencies runs the status command with injected dependencies (for testing)
func RunStatusWithDependencies(
	ctx context.Context,
	runner appagent.Runner,
	runID string,
	watch bool,
	interval time.Duration,
	output io.Writer,
) error {
	service := appagent.NewService(runner, output)

	var run agent.Run
	var err error
	if watch {
		run, err = service.Watch(ctx, runID, interval)
	} else {
		run, err = service.Status(ctx, runID)
	}
	if err != nil {
		return fmt.Errorf("failed to fetch run status: %w", err)
	}
	if !watch {
		printRun(output, run)
	}

	if run.Status == agent.StatusFailed {
		return fmt.Errorf("run %s failed", runID)
	}
	return nil
}

func printRun(output io.Writer, run agent.Run) {
	fmt.Fprintf(output, "status %s\n", run.Status)
	if len(run.Outputs) == 0 {
		return
	}
	fmt.Fprintf(output, "outputs %d\n", len(run.Outputs))
	for i, out := range run.Outputs {
		fmt.Fprintf(output, "  %d. %s\n", i+1, out.VideoURL)
	}
}
