package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wellnessgrove/clinic-assistant/pkg/logging"
)

// LogWebhookHandler acknowledges and logs any webhook Vapi is
// configured to send besides function calls (status updates, call
// reports). Empty or malformed bodies are still acknowledged.
type LogWebhookHandler struct {
	logger *logging.Logger
}

func NewLogWebhookHandler(logger *logging.Logger) *LogWebhookHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogWebhookHandler{logger: logger}
}

// Handle is the HTTP handler for POST /webhooks/*.
func (h *LogWebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "*")

	var payload map[string]any
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err == nil && len(body) > 0 {
		_ = json.Unmarshal(body, &payload)
	}

	h.logger.Info("received webhook", "path", path, "keys", len(payload))
	writeJSON(w, http.StatusOK, map[string]string{"status": "received"})
}
