package mosaic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"mosaic-media/domain/trigger"
)

type addChannelsPayload struct {
	YouTubeChannels    []string `json:"youtube_channels"`
	TriggerCallbackURL string   `json:"trigger_callback_url,omitempty"`
}

type triggersResponse struct {
	YouTubeChannels    []string `json:"youtube_channels"`
	TriggerCallbackURL string   `json:"trigger_callback_url"`
}

// AddYouTubeChannels attaches YouTube channel triggers to an agent.
// callbackURL is optional.
func (c *Client) AddYouTubeChannels(ctx context.Context, agentID string, channels []string, callbackURL string) error {
	payload := addChannelsPayload{YouTubeChannels: channels, TriggerCallbackURL: callbackURL}
	path := fmt.Sprintf("/agent/%s/triggers/add_youtube_channels", url.PathEscape(agentID))

	status, body, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return fmt.Errorf("failed to add channels: %w", err)
	}
	if status < 200 || status > 299 {
		return fmt.Errorf("failed to add channels: %w", &APIError{StatusCode: status, Body: string(body)})
	}

	return nil
}

// GetTriggers fetches the trigger configuration of an agent.
// A 404 means the agent has no triggers configured and is reported as nil,
// not an error.
func (c *Client) GetTriggers(ctx context.Context, agentID string) (*trigger.Triggers, error) {
	path := fmt.Sprintf("/agent/%s/triggers", url.PathEscape(agentID))

	status, body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch triggers: %w", err)
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if status < 200 || status > 299 {
		return nil, fmt.Errorf("failed to fetch triggers: %w", &APIError{StatusCode: status, Body: string(body)})
	}

	var tr triggersResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("failed to parse triggers: %w", err)
	}

	return &trigger.Triggers{
		YouTubeChannels: tr.YouTubeChannels,
		CallbackURL:     tr.TriggerCallbackURL,
	}, nil
}
