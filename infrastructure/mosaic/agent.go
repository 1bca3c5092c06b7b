package mosaic

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"mosaic-media/domain/agent"
)

type runPayload struct {
	VideoIDs    []string `json:"video_ids"`
	CallbackURL string   `json:"callback_url,omitempty"`
}

type runResponse struct {
	RunID string `json:"run_id"`
}

type runStatusResponse struct {
	Status  string `json:"status"`
	Outputs []struct {
		VideoURL     string `json:"video_url"`
		URL          string `json:"url"`
		ThumbnailURL string `json:"thumbnail_url"`
	} `json:"outputs"`
}

// StartRun launches an agent run over the given uploaded videos and
// returns the run ID. callbackURL is optional.
func (c *Client) StartRun(ctx context.Context, agentID string, videoIDs []string, callbackURL string) (string, error) {
	payload := runPayload{VideoIDs: videoIDs, CallbackURL: callbackURL}
	path := fmt.Sprintf("/agent/%s/run", url.PathEscape(agentID))

	status, body, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return "", fmt.Errorf("failed to start agent run: %w", err)
	}
	if status < 200 || status > 299 {
		return "", fmt.Errorf("failed to start agent run: %w", &APIError{StatusCode: status, Body: string(body)})
	}

	var rr runResponse
	if err := json.Unmarshal(body, &rr); err != nil {
		return "", fmt.Errorf("failed to parse run response: %w", err)
	}
	if rr.RunID == "" {
		return "", fmt.Errorf("run response missing run_id: %s", body)
	}

	return rr.RunID, nil
}

// GetRun fetches the current state of an agent run
func (c *Client) GetRun(ctx context.Context, runID string) (agent.Run, error) {
	path := fmt.Sprintf("/agent_run/%s", url.PathEscape(runID))

	status, body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return agent.Run{}, fmt.Errorf("failed to fetch run status: %w", err)
	}
	if status < 200 || status > 299 {
		return agent.Run{}, fmt.Errorf("failed to fetch run status: %w", &APIError{StatusCode: status, Body: string(body)})
	}

	var rs runStatusResponse
	if err := json.Unmarshal(body, &rs); err != nil {
		return agent.Run{}, fmt.Errorf("failed to parse run status: %w", err)
	}

	run := agent.Run{ID: runID, Status: rs.Status}
	for _, out := range rs.Outputs {
		videoURL := out.VideoURL
		if videoURL == "" {
			videoURL = out.URL
		}
		run.Outputs = append(run.Outputs, agent.Output{
			VideoURL:     videoURL,
			ThumbnailURL: out.ThumbnailURL,
		})
	}

	return run, nil
}
