package agent

import "strings"

// Run statuses reported by the control plane
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Run represents the state of one agent run
type Run struct {
	ID      string
	Status  string
	Outputs []Output
}

// Output is one produced artifact of a run
type Output struct {
	VideoURL     string
	ThumbnailURL string
}

// Terminal returns true once the run will not change state again
func (r Run) Terminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusFailed
}

// ParseVideoIDs splits a comma-separated list of video IDs, dropping
// empty entries and surrounding whitespace
func ParseVideoIDs(s string) []string {
	var ids []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}
