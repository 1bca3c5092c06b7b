package webhook

import (
	"encoding/json"
	"sync"
	"time"
)

// DefaultHistoryCapacity bounds how many deliveries a relay remembers
const DefaultHistoryCapacity = 100

// Entry records one received webhook delivery
type Entry struct {
	Timestamp time.Time       `json:"timestamp"`
	Path      string          `json:"path"`
	Token     string          `json:"token,omitempty"`
	Payload   json.RawMessage `json:"data"`
}

// History is a bounded, concurrency-safe record of received deliveries,
// owned by the relay server instance. Once capacity is reached the oldest
// entry is dropped.
type History struct {
	mu       sync.Mutex
	entries  []Entry
	capacity int
}

// NewHistory creates a history holding at most capacity entries.
// A non-positive capacity falls back to DefaultHistoryCapacity.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History{capacity: capacity}
}

// Append records a delivery, evicting the oldest entry when full
func (h *History) Append(e Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, e)
	if len(h.entries) > h.capacity {
		h.entries = h.entries[1:]
	}
}

// Last returns up to n most recent entries, oldest first
func (h *History) Last(n int) []Entry {
	h.mu.Lock()
	defer h.mu.Unlock()

	if n > len(h.entries) {
		n = len(h.entries)
	}
	out := make([]Entry, n)
	copy(out, h.entries[len(h.entries)-n:])
	return out
}

// Len returns the number of recorded entries
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
