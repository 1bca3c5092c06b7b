package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied when the config file or environment leaves them unset
const (
	DefaultBaseURL     = "https://api.mosaic.so"
	DefaultWebhookPort = 3000
)

// Upload flow variants
const (
	FlowLegacy  = "legacy"
	FlowUpfront = "upfront"
)

// Environment variables consulted as fallbacks for sensitive values
const (
	EnvAPIKey        = "MOSAIC_API_KEY"
	EnvBaseURL       = "MOSAIC_BASE_URL"
	EnvWebhookSecret = "MOSAIC_WEBHOOK_SECRET"
)

// Config represents the complete application configuration
type Config struct {
	API     APIConfig     `yaml:"api"`
	Upload  UploadConfig  `yaml:"upload"`
	Webhook WebhookConfig `yaml:"webhook"`
}

// APIConfig contains Mosaic control-plane settings
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Key     string `yaml:"key"`
}

// UploadConfig contains upload pipeline settings
type UploadConfig struct {
	Flow string `yaml:"flow"` // "legacy" or "upfront"
}

// WebhookConfig contains webhook relay settings
type WebhookConfig struct {
	Port   int    `yaml:"port"`
	Secret string `yaml:"secret"`
}

// Load reads and parses the configuration from the specified YAML file,
// then applies environment fallbacks and defaults
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnvironment()
	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a configuration built from environment and defaults
// alone, for running without a config file
func Default() *Config {
	cfg := &Config{}
	cfg.applyEnvironment()
	cfg.applyDefaults()
	return cfg
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (c *Config) applyEnvironment() {
	if c.API.Key == "" {
		c.API.Key = os.Getenv(EnvAPIKey)
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = os.Getenv(EnvBaseURL)
	}
	if c.Webhook.Secret == "" {
		c.Webhook.Secret = os.Getenv(EnvWebhookSecret)
	}
}

func (c *Config) applyDefaults() {
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.Upload.Flow == "" {
		c.Upload.Flow = FlowUpfront
	}
	if c.Webhook.Port == 0 {
		c.Webhook.Port = DefaultWebhookPort
	}
}

// ValidateFlow checks that flow names a known upload flow variant
func ValidateFlow(flow string) error {
	switch flow {
	case FlowLegacy, FlowUpfront:
		return nil
	default:
		return fmt.Errorf("unknown upload flow %q: must be %q or %q", flow, FlowLegacy, FlowUpfront)
	}
}
