package cmd

import (
	"fmt"
	"os"

	"mosaic-media/infrastructure/config"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "mosaic-media",
	Short: "Upload videos to Mosaic and drive agent runs over them",
	Long: `mosaic-media is a client for the Mosaic video platform:

  - Probe local videos and upload them through the negotiated flow
  - Start agent runs over uploaded videos and watch their progress
  - Manage YouTube channel triggers on agents
  - Relay agent-run webhooks to your terminal

Example:
  mosaic-media upload --file recording.mp4
  mosaic-media run --agent agent-123 --videos vid-1,vid-2`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = "config/config.yaml"
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		// No config file is fine; environment variables and defaults
		// cover everything except the interactive setup values
		cfg = config.Default()
	}
}

// GetConfig returns the loaded configuration
func GetConfig() *config.Config {
	return cfg
}
