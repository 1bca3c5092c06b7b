package mosaic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"mosaic-media/domain/agent"
)

func TestClient_StartRun(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/agent/agent-1/run" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"run_id": "run-42"})
	}))
	defer server.Close()

	c := NewClient(server.URL, "mk_testkey123")
	runID, err := c.StartRun(context.Background(), "agent-1", []string{"v1", "v2"}, "https://example.com/hook")
	if err != nil {
		t.Fatalf("StartRun() error = %v", err)
	}
	if runID != "run-42" {
		t.Errorf("runID = %q", runID)
	}

	ids, ok := captured["video_ids"].([]any)
	if !ok || len(ids) != 2 {
		t.Errorf("video_ids = %v", captured["video_ids"])
	}
	if captured["callback_url"] != "https://example.com/hook" {
		t.Errorf("callback_url = %v", captured["callback_url"])
	}
}

func TestClient_StartRun_OmitsEmptyCallback(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]string{"run_id": "run-42"})
	}))
	defer server.Close()

	c := NewClient(server.URL, "mk_testkey123")
	if _, err := c.StartRun(context.Background(), "agent-1", []string{"v1"}, ""); err != nil {
		t.Fatalf("StartRun() error = %v", err)
	}
	if _, ok := captured["callback_url"]; ok {
		t.Error("empty callback_url must be omitted")
	}
}

func TestClient_StartRun_MissingRunID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	c := NewClient(server.URL, "mk_testkey123")
	if _, err := c.StartRun(context.Background(), "agent-1", []string{"v1"}, ""); err == nil {
		t.Error("expected error for a response without run_id")
	}
}

func TestClient_GetRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/agent_run/run-42" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"status": "completed",
			"outputs": []map[string]string{
				{"video_url": "https://cdn/out1.mp4", "thumbnail_url": "https://cdn/out1.jpg"},
				{"url": "https://cdn/out2.mp4"},
			},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL, "mk_testkey123")
	run, err := c.GetRun(context.Background(), "run-42")
	if err != nil {
		t.Fatalf("GetRun() error = %v", err)
	}
	if run.Status != agent.StatusCompleted {
		t.Errorf("Status = %q", run.Status)
	}
	if len(run.Outputs) != 2 {
		t.Fatalf("Outputs = %d, want 2", len(run.Outputs))
	}
	if run.Outputs[0].ThumbnailURL != "https://cdn/out1.jpg" {
		t.Errorf("ThumbnailURL = %q", run.Outputs[0].ThumbnailURL)
	}
	// legacy payloads put the video URL under "url"
	if run.Outputs[1].VideoURL != "https://cdn/out2.mp4" {
		t.Errorf("legacy VideoURL = %q", run.Outputs[1].VideoURL)
	}
}

func TestClient_GetTriggers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/agent/agent-1/triggers" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"youtube_channels":     []string{"@creator"},
			"trigger_callback_url": "https://example.com/hook",
		})
	}))
	defer server.Close()

	c := NewClient(server.URL, "mk_testkey123")
	triggers, err := c.GetTriggers(context.Background(), "agent-1")
	if err != nil {
		t.Fatalf("GetTriggers() error = %v", err)
	}
	if len(triggers.YouTubeChannels) != 1 || triggers.YouTubeChannels[0] != "@creator" {
		t.Errorf("channels = %v", triggers.YouTubeChannels)
	}
	if triggers.CallbackURL != "https://example.com/hook" {
		t.Errorf("callback = %q", triggers.CallbackURL)
	}
}

func TestClient_GetTriggers_NotConfigured(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient(server.URL, "mk_testkey123")
	triggers, err := c.GetTriggers(context.Background(), "agent-1")
	if err != nil {
		t.Fatalf("GetTriggers() error = %v", err)
	}
	if triggers != nil {
		t.Errorf("triggers = %+v, want nil for 404", triggers)
	}
}

func TestClient_WhoAmI(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/whoami" {
			t.Errorf("path = %q", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]string{"account": "acct-1"})
	}))
	defer server.Close()

	c := NewClient(server.URL, "mk_testkey123")
	raw, err := c.WhoAmI(context.Background())
	if err != nil {
		t.Fatalf("WhoAmI() error = %v", err)
	}

	var payload map[string]string
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if payload["account"] != "acct-1" {
		t.Errorf("account = %q", payload["account"])
	}
}

func TestClient_WhoAmI_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid api key", http.StatusUnauthorized)
	}))
	defer server.Close()

	c := NewClient(server.URL, "mk_badkey1234")
	_, err := c.WhoAmI(context.Background())

	var ae *APIError
	if !errors.As(err, &ae) {
		t.Fatalf("error = %v, want APIError", err)
	}
	if ae.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d", ae.StatusCode)
	}
}

func TestDetailFrom(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"json detail", `{"detail":"duration limit exceeded"}`, "duration limit exceeded"},
		{"plain text", "bad gateway\n", "bad gateway"},
		{"empty detail falls back", `{"detail":""}`, `{"detail":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detailFrom([]byte(tt.body)); got != tt.want {
				t.Errorf("detailFrom(%q) = %q, want %q", tt.body, got, tt.want)
			}
		})
	}
}
