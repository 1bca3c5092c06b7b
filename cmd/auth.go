package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"mosaic-media/infrastructure/config"
	"mosaic-media/infrastructure/mosaic"

	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Verify the configured API key against the platform",
	Long: `Check the configured API key: first its format, then a live call to
the platform's account endpoint.

Example:
  mosaic-media auth`,
	RunE: runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	client := mosaic.NewClient(cfg.API.BaseURL, cfg.API.Key)
	return RunAuthWithDependencies(cmd.Context(), client, cfg.API.Key, os.Stdout)
}

// AccountChecker abstracts the whoami endpoint (allows mocking in tests)
type AccountChecker interface {
	WhoAmI(ctx context.Context) (json.RawMessage, error)
}

// RunAuthWithDependencies runs the auth command with injected dependencies (for testing)
func RunAuthWithDependencies(ctx context.Context, checker AccountChecker, apiKey string, output io.Writer) error {
	if err := config.ValidateAPIKey(apiKey); err != nil {
		return err
	}
	fmt.Fprintf(output, "Key format OK: %s\n", config.MaskAPIKey(apiKey))

	account, err := checker.WhoAmI(ctx)
	if err != nil {
		return fmt.Errorf("the platform rejected the key: %w", err)
	}

	fmt.Fprintf(output, "Authenticated. Account: %s\n", account)
	return nil
}
