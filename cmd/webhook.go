package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mosaic-media/domain/webhook"
	"mosaic-media/infrastructure/relay"

	"github.com/spf13/cobra"
)

var (
	webhookPort   int
	webhookSecret string
)

var webhookCmd = &cobra.Command{
	Use:   "webhook",
	Short: "Run a local webhook relay for agent-run events",
	Long: `Run a local HTTP server that receives Mosaic agent-run webhooks and
renders them to the terminal.

When a secret is configured the relay rejects deliveries whose
X-Mosaic-Signature header does not match, but still records them so a
misconfigured secret can be diagnosed from /history.

Example:
  mosaic-media webhook
  mosaic-media webhook --port 8080 --secret shh`,
	RunE: runWebhook,
}

func init() {
	rootCmd.AddCommand(webhookCmd)
	webhookCmd.Flags().IntVar(&webhookPort, "port", 0, "Listen port (defaults to the configured port)")
	webhookCmd.Flags().StringVar(&webhookSecret, "secret", "", "Shared webhook secret (defaults to config or MOSAIC_WEBHOOK_SECRET)")
}

func runWebhook(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	port := webhookPort
	if port == 0 {
		port = cfg.Webhook.Port
	}
	secret := webhookSecret
	if secret == "" {
		secret = cfg.Webhook.Secret
	}

	server := relay.NewServer(relay.ServerConfig{
		Port:    port,
		Secret:  secret,
		History: webhook.NewHistory(webhook.DefaultHistoryCapacity),
		Logger:  slog.New(slog.NewTextHandler(os.Stderr, nil)),
		Output:  os.Stdout,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
