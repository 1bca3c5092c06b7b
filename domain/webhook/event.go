package webhook

import (
	"fmt"
	"strings"
)

// Event flags delivered by the Mosaic platform
const (
	FlagRunStarted      = "RUN_STARTED"
	FlagOutputsFinished = "OUTPUTS_FINISHED"
	FlagRunFinished     = "RUN_FINISHED"
)

// Media is one input or output referenced by an event
type Media struct {
	VideoURL     string `json:"video_url"`
	FileURL      string `json:"file_url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// URL returns the media's primary URL, whichever field carries it
func (m Media) URL() string {
	if m.VideoURL != "" {
		return m.VideoURL
	}
	return m.FileURL
}

// Event is a webhook payload for an agent run state change.
// The platform uses "output" for OUTPUTS_FINISHED and "outputs" for
// RUN_FINISHED; both are kept and merged when rendering.
type Event struct {
	Flag    string  `json:"flag"`
	AgentID string  `json:"agent_id"`
	RunID   string  `json:"run_id"`
	Status  string  `json:"status"`
	Inputs  []Media `json:"inputs,omitempty"`
	Output  []Media `json:"output,omitempty"`
	Outputs []Media `json:"outputs,omitempty"`
}

// Summary renders a human-readable block describing the event
func (e Event) Summary() string {
	flag := e.Flag
	if flag == "" {
		flag = "UNKNOWN"
	}

	rule := strings.Repeat("=", 80)
	lines := []string{rule, flag, rule}
	lines = append(lines,
		fmt.Sprintf("agent:  %s", e.AgentID),
		fmt.Sprintf("run:    %s", e.RunID),
		fmt.Sprintf("status: %s", e.Status),
	)

	if e.Flag == FlagRunStarted && len(e.Inputs) > 0 {
		lines = append(lines, fmt.Sprintf("inputs: %d", len(e.Inputs)))
		for i, in := range e.Inputs {
			lines = append(lines, fmt.Sprintf("  %d. %s", i+1, in.URL()))
		}
	}

	outputs := e.Output
	if len(outputs) == 0 {
		outputs = e.Outputs
	}
	if (e.Flag == FlagOutputsFinished || e.Flag == FlagRunFinished) && len(outputs) > 0 {
		lines = append(lines, fmt.Sprintf("outputs: %d", len(outputs)))
		for i, out := range outputs {
			lines = append(lines, fmt.Sprintf("  %d. %s (thumb: %s)", i+1, out.URL(), out.ThumbnailURL))
		}
	}

	lines = append(lines, rule)
	return strings.Join(lines, "\n")
}
