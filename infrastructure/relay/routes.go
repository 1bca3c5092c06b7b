package relay

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"mosaic-media/domain/webhook"
)

// historyPageSize is how many entries the /history endpoint returns
const historyPageSize = 10

func (s *Server) router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(s.logger))
	r.Use(LoggingMiddleware(s.logger))

	r.Get("/health", s.handleHealth)
	r.Get("/history", s.handleHistory)
	r.Get("/", s.handleIndex)

	// The platform may be configured with any of these paths; all of them
	// feed the same handler.
	r.Post("/", s.handleWebhook)
	r.Post("/webhook", s.handleWebhook)
	r.Post("/webhook/{token}", s.handleWebhook)
	r.Post("/webhooks/mosaic", s.handleWebhook)
	r.Post("/webhooks/mosaic/{token}", s.handleWebhook)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"total":   s.history.Len(),
		"history": s.history.Last(historyPageSize),
	})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "running",
		"service": "Mosaic Webhook Relay",
		"endpoints": map[string]string{
			"webhook":                    "/webhook",
			"webhook_with_token":         "/webhook/{token}",
			"webhooks_mosaic":            "/webhooks/mosaic",
			"webhooks_mosaic_with_token": "/webhooks/mosaic/{token}",
			"history":                    "/history",
			"health":                     "/health",
		},
		"webhooks_received": s.history.Len(),
	})
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var payload json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || len(payload) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no JSON payload"})
		return
	}

	secretValid := s.validSignature(r)

	// Record and render the delivery even when the signature fails,
	// so a misconfigured secret can be debugged from the relay side.
	s.history.Append(webhook.Entry{
		Timestamp: time.Now().UTC(),
		Path:      r.URL.Path,
		Token:     chi.URLParam(r, "token"),
		Payload:   payload,
	})

	var event webhook.Event
	if err := json.Unmarshal(payload, &event); err == nil {
		fmt.Fprintln(s.output, event.Summary())
		s.logger.Info("webhook received",
			"flag", event.Flag,
			"agent_id", event.AgentID,
			"run_id", event.RunID,
			"status", event.Status,
		)
	}

	if !secretValid {
		s.logger.Warn("webhook signature validation failed", "path", r.URL.Path)
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"error": "invalid webhook signature",
			"data":  payload,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"received": true,
		"data":     payload,
	})
}

// validSignature checks the shared-secret header. Validation is skipped
// entirely when no secret is configured.
func (s *Server) validSignature(r *http.Request) bool {
	if s.secret == "" {
		return true
	}
	return r.Header.Get(SignatureHeader) == s.secret
}
