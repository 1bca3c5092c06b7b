package trigger

import (
	"context"
	"errors"
	"fmt"
	"io"

	"mosaic-media/domain/trigger"
)

// Manager abstracts the control-plane trigger endpoints
type Manager interface {
	AddYouTubeChannels(ctx context.Context, agentID string, channels []string, callbackURL string) error
	GetTriggers(ctx context.Context, agentID string) (*trigger.Triggers, error)
}

// ErrNoChannels is returned when an add is attempted with an empty channel list
var ErrNoChannels = errors.New("at least one channel reference is required")

// ErrInvalidCallback is returned when the callback URL is not an http(s) URL
var ErrInvalidCallback = errors.New("callback URL must be an http or https URL")

// Service manages YouTube channel triggers on agents
type Service struct {
	manager Manager
	output  io.Writer
}

// NewService creates a new trigger service
func NewService(manager Manager, output io.Writer) *Service {
	if output == nil {
		output = io.Discard
	}
	return &Service{manager: manager, output: output}
}

// Add attaches the given channel references to an agent. Channel
// references that do not look like channel IDs, URLs or handles produce a
// warning but are still sent; the platform validates them authoritatively.
func (s *Service) Add(ctx context.Context, agentID string, channels []string, callbackURL string) error {
	if len(channels) == 0 {
		return ErrNoChannels
	}
	if callbackURL != "" && !trigger.ValidCallbackURL(callbackURL) {
		return ErrInvalidCallback
	}

	for _, ch := range channels {
		if !trigger.ValidChannelRef(ch) {
			fmt.Fprintf(s.output, "Warning: %q does not look like a YouTube channel reference\n", ch)
		}
	}

	if err := s.manager.AddYouTubeChannels(ctx, agentID, channels, callbackURL); err != nil {
		return err
	}

	fmt.Fprintf(s.output, "Added %d channel(s) to agent %s\n", len(channels), agentID)
	return nil
}

// List prints the trigger configuration of an agent
func (s *Service) List(ctx context.Context, agentID string) (*trigger.Triggers, error) {
	triggers, err := s.manager.GetTriggers(ctx, agentID)
	if err != nil {
		return nil, err
	}
	if triggers == nil || len(triggers.YouTubeChannels) == 0 {
		fmt.Fprintf(s.output, "No triggers configured for agent %s\n", agentID)
		return triggers, nil
	}

	fmt.Fprintf(s.output, "YouTube channels (%d):\n", len(triggers.YouTubeChannels))
	for _, ch := range triggers.YouTubeChannels {
		fmt.Fprintf(s.output, "  - %s\n", ch)
	}
	if triggers.CallbackURL != "" {
		fmt.Fprintf(s.output, "Callback URL: %s\n", triggers.CallbackURL)
	}
	return triggers, nil
}
