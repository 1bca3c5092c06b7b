package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	appagent "mosaic-media/application/agent"
	"mosaic-media/domain/agent"
	"mosaic-media/domain/trigger"
	"mosaic-media/infrastructure/config"
	"mosaic-media/infrastructure/mosaic"

	"github.com/spf13/cobra"
)

var (
	runAgentID     string
	runVideoIDs    string
	runCallbackURL string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an agent run over uploaded videos",
	Long: `Start a Mosaic agent run over one or more uploaded videos.

The optional callback URL receives run webhooks; point it at a relay
started with "mosaic-media webhook".

Example:
  mosaic-media run --agent agent-123 --videos vid-1,vid-2
  mosaic-media run --agent agent-123 --videos vid-1 --callback https://example.com/webhook`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&runAgentID, "agent", "", "Agent ID (required)")
	runCmd.Flags().StringVar(&runVideoIDs, "videos", "", "Comma-separated video IDs (required)")
	runCmd.Flags().StringVar(&runCallbackURL, "callback", "", "Webhook callback URL for run events")
	runCmd.MarkFlagRequired("agent")
	runCmd.MarkFlagRequired("videos")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if err := config.ValidateAPIKey(cfg.API.Key); err != nil {
		return err
	}
	if runCallbackURL != "" && !trigger.ValidCallbackURL(runCallbackURL) {
		return fmt.Errorf("invalid callback URL %q: must be an http or https URL", runCallbackURL)
	}

	client := mosaic.NewClient(cfg.API.BaseURL, cfg.API.Key)
	return RunStartWithDependencies(cmd.Context(), client, runAgentID, agent.ParseVideoIDs(runVideoIDs), runCallbackURL, os.Stdout)
}

// RunStartWithDependencies runs the run command with injected dependencies (for testing)
func RunStartWithDependencies(
	ctx context.Context,
	runner appagent.Runner,
	agentID string,
	videoIDs []string,
	callbackURL string,
	output io.Writer,
) error {
	service := appagent.NewService(runner, output)

	runID, err := service.Start(ctx, agentID, videoIDs, callbackURL)
	if err != nil {
		return fmt.Errorf("failed to start run: %w", err)
	}

	fmt.Fprintf(output, "Watch it with: mosaic-media status --run %s --watch\n", runID)
	return nil
}
