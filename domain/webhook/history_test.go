package webhook

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"
)

func entryWithPath(path string) Entry {
	return Entry{
		Timestamp: time.Now().UTC(),
		Path:      path,
		Payload:   json.RawMessage(`{}`),
	}
}

func TestHistory_AppendBounded(t *testing.T) {
	h := NewHistory(3)

	for i := 0; i < 5; i++ {
		h.Append(entryWithPath(fmt.Sprintf("/webhook/%d", i)))
	}

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}

	last := h.Last(3)
	if last[0].Path != "/webhook/2" || last[2].Path != "/webhook/4" {
		t.Errorf("expected oldest entries evicted, got %q..%q", last[0].Path, last[2].Path)
	}
}

func TestHistory_Last(t *testing.T) {
	h := NewHistory(10)
	for i := 0; i < 4; i++ {
		h.Append(entryWithPath(fmt.Sprintf("/webhook/%d", i)))
	}

	last := h.Last(2)
	if len(last) != 2 {
		t.Fatalf("Last(2) returned %d entries", len(last))
	}
	if last[0].Path != "/webhook/2" || last[1].Path != "/webhook/3" {
		t.Errorf("Last(2) = %q, %q; want the two most recent oldest-first", last[0].Path, last[1].Path)
	}

	// Asking for more than recorded returns everything
	if got := h.Last(100); len(got) != 4 {
		t.Errorf("Last(100) returned %d entries, want 4", len(got))
	}
}

func TestHistory_DefaultCapacity(t *testing.T) {
	h := NewHistory(0)
	for i := 0; i < DefaultHistoryCapacity+10; i++ {
		h.Append(entryWithPath("/webhook"))
	}
	if h.Len() != DefaultHistoryCapacity {
		t.Errorf("Len() = %d, want %d", h.Len(), DefaultHistoryCapacity)
	}
}

func TestHistory_ConcurrentAppend(t *testing.T) {
	h := NewHistory(50)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				h.Append(entryWithPath("/webhook"))
				h.Last(5)
			}
		}()
	}
	wg.Wait()

	if h.Len() != 50 {
		t.Errorf("Len() = %d, want capacity 50 after 200 appends", h.Len())
	}
}
