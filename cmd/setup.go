package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"mosaic-media/infrastructure/config"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates config.yaml.

This command guides you through setting up the API key, the upload flow,
and the webhook relay settings.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	return RunSetupWithPrompter(DefaultPrompter, "config/config.yaml")
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm("config.yaml already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Println("Setup cancelled.")
			return nil
		}
	}

	fmt.Println("Welcome to mosaic-media setup!")
	fmt.Println()

	cfg := &config.Config{}

	if err := promptAPI(prompter, cfg); err != nil {
		return err
	}
	if err := promptUpload(prompter, cfg); err != nil {
		return err
	}
	if err := promptWebhook(prompter, cfg); err != nil {
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Println()
	fmt.Printf("Configuration saved to %s\n", configPath)
	return nil
}

func promptAPI(prompter Prompter, cfg *config.Config) error {
	key, err := prompter.Input("Mosaic API key (mk_...)?", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if err := config.ValidateAPIKey(key); err != nil {
		return err
	}
	cfg.API.Key = key

	baseURL, err := prompter.Input("API base URL?", config.DefaultBaseURL)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}
	cfg.API.BaseURL = baseURL

	return nil
}

func promptUpload(prompter Prompter, cfg *config.Config) error {
	flow, err := prompter.Input("Upload flow (legacy or upfront)?", config.FlowUpfront)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if flow == "" {
		flow = config.FlowUpfront
	}
	if err := config.ValidateFlow(flow); err != nil {
		return err
	}
	cfg.Upload.Flow = flow
	return nil
}

func promptWebhook(prompter Prompter, cfg *config.Config) error {
	portStr, err := prompter.Input("Webhook relay port?", strconv.Itoa(config.DefaultWebhookPort))
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	port := config.DefaultWebhookPort
	if portStr != "" {
		port, err = strconv.Atoi(portStr)
		if err != nil || port < 1 || port > 65535 {
			return fmt.Errorf("invalid port %q", portStr)
		}
	}
	cfg.Webhook.Port = port

	secret, err := prompter.Input("Webhook secret (empty to disable validation)?", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Webhook.Secret = secret

	return nil
}
