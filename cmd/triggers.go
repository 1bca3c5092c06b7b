package cmd

import (
	"context"
	"io"
	"os"

	apptrigger "mosaic-media/application/trigger"
	"mosaic-media/domain/trigger"
	"mosaic-media/infrastructure/config"
	"mosaic-media/infrastructure/mosaic"

	"github.com/spf13/cobra"
)

var (
	triggersAgentID     string
	triggersChannels    string
	triggersCallbackURL string
)

var triggersCmd = &cobra.Command{
	Use:   "triggers",
	Short: "Manage YouTube channel triggers on an agent",
}

var triggersAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Attach YouTube channel triggers to an agent",
	Long: `Attach YouTube channels to an agent so new uploads on those channels
trigger agent runs automatically.

Channels can be given as channel IDs (UC...), channel URLs, or @handles.

Example:
  mosaic-media triggers add --agent agent-123 --channels @somecreator
  mosaic-media triggers add --agent agent-123 --channels UCabc...,@other --callback https://example.com/webhook`,
	RunE: runTriggersAdd,
}

var triggersListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the trigger configuration of an agent",
	RunE:  runTriggersList,
}

func init() {
	rootCmd.AddCommand(triggersCmd)
	triggersCmd.AddCommand(triggersAddCmd, triggersListCmd)

	triggersCmd.PersistentFlags().StringVar(&triggersAgentID, "agent", "", "Agent ID (required)")
	triggersCmd.MarkPersistentFlagRequired("agent")

	triggersAddCmd.Flags().StringVar(&triggersChannels, "channels", "", "Comma-separated channel references (required)")
	triggersAddCmd.Flags().StringVar(&triggersCallbackURL, "callback", "", "Webhook callback URL for triggered runs")
	triggersAddCmd.MarkFlagRequired("channels")
}

func runTriggersAdd(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if err := config.ValidateAPIKey(cfg.API.Key); err != nil {
		return err
	}

	client := mosaic.NewClient(cfg.API.BaseURL, cfg.API.Key)
	return RunTriggersAddWithDependencies(
		cmd.Context(),
		client,
		triggersAgentID,
		trigger.ParseChannels(triggersChannels),
		triggersCallbackURL,
		os.Stdout,
	)
}

func runTriggersList(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if err := config.ValidateAPIKey(cfg.API.Key); err != nil {
		return err
	}

	client := mosaic.NewClient(cfg.API.BaseURL, cfg.API.Key)
	return RunTriggersListWithDependencies(cmd.Context(), client, triggersAgentID, os.Stdout)
}

// RunTriggersAddWithDependencies runs triggers add with injected dependencies (for testing)
func RunTriggersAddWithDependencies(
	ctx context.Context,
	manager apptrigger.Manager,
	agentID string,
	channels []string,
	callbackURL string,
	output io.Writer,
) error {
	service := apptrigger.NewService(manager, output)
	return service.Add(ctx, agentID, channels, callbackURL)
}

// RunTriggersListWithDependencies runs triggers list with injected dependencies (for testing)
func RunTriggersListWithDependencies(
	ctx context.Context,
	manager apptrigger.Manager,
	agentID string,
	output io.Writer,
) error {
	service := apptrigger.NewService(manager, output)
	_, err := service.List(ctx, agentID)
	return err
}
