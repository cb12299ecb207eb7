package handlers

import (
	"crypto/hmac"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wellnessgrove/clinic-assistant/internal/clinic"
	"github.com/wellnessgrove/clinic-assistant/internal/observability/metrics"
	"github.com/wellnessgrove/clinic-assistant/pkg/logging"
)

// ----- Vapi webhook event types -----

// VapiEnvelope is the top-level Vapi webhook payload. Vapi assistants
// send a function-call event when the voice LLM decides it needs one of
// our clinic tools; everything else (status updates, transcripts) is
// acknowledged and ignored.
type VapiEnvelope struct {
	Message *VapiMessage `json:"message"`
}

// VapiMessage carries the event type and, for function calls, the call.
type VapiMessage struct {
	Type         string           `json:"type"`
	FunctionCall VapiFunctionCall `json:"functionCall"`
}

// VapiFunctionCall names the tool and its flat parameter set.
type VapiFunctionCall struct {
	Name       string            `json:"name"`
	Parameters map[string]string `json:"parameters"`
}

// ----- Handler -----

// VapiHandler handles Vapi function-call webhooks. It verifies the
// shared secret, decodes the envelope, dispatches to the clinic
// service, and maps every outcome to the plain JSON shapes the voice
// agent expects. Store faults never escape as transport faults.
type VapiHandler struct {
	secret  string
	svc     *clinic.Service
	cfg     clinic.Config
	metrics *metrics.WebhookMetrics
	logger  *logging.Logger
}

// VapiHandlerConfig configures the VapiHandler.
type VapiHandlerConfig struct {
	Secret  string
	Service *clinic.Service
	Clinic  clinic.Config
	Metrics *metrics.WebhookMetrics
	Logger  *logging.Logger
}

// NewVapiHandler creates a new VapiHandler.
func NewVapiHandler(cfg VapiHandlerConfig) *VapiHandler {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &VapiHandler{
		secret:  strings.TrimSpace(cfg.Secret),
		svc:     cfg.Service,
		cfg:     cfg.Clinic,
		metrics: cfg.Metrics,
		logger:  cfg.Logger,
	}
}

// Live is the HTTP handler for GET /.
func (h *VapiHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "API is live"})
}

// Handle is the HTTP handler for POST / and POST /agent.
func (h *VapiHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.secret != "" {
		incoming := r.Header.Get("x-vapi-secret")
		if !hmac.Equal([]byte(incoming), []byte(h.secret)) {
			h.logger.Warn("vapi webhook rejected: invalid secret")
			writeJSON(w, http.StatusForbidden, map[string]string{"detail": "Forbidden: invalid secret"})
			return
		}
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unreadable body"})
		return
	}

	var envelope VapiEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		h.logger.Warn("vapi webhook rejected: malformed JSON", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformed JSON payload"})
		return
	}

	if envelope.Message == nil || envelope.Message.Type != "function-call" {
		writeJSON(w, http.StatusOK, map[string]string{"message": "Ignored non-function-call"})
		return
	}

	fn := envelope.Message.FunctionCall.Name
	params := envelope.Message.FunctionCall.Parameters
	h.logger.Info("received function call", "function", fn, "params", len(params))

	start := time.Now()
	outcome := h.dispatch(w, r, fn, params)
	h.metrics.ObserveCall(fn, outcome)
	h.metrics.ObserveLatency(fn, time.Since(start).Seconds())
}

// dispatch routes one function call and returns the outcome label used
// for metrics.
func (h *VapiHandler) dispatch(w http.ResponseWriter, r *http.Request, fn string, params map[string]string) string {
	ctx := r.Context()

	switch fn {
	case "findPatient":
		rec, err := h.svc.FindPatient(ctx, params["mobileNumber"], params["dob"])
		switch {
		case errors.Is(err, clinic.ErrPatientNotFound):
			writeJSON(w, http.StatusOK, map[string]string{"patientName": "Not Found"})
			return "not_found"
		case err != nil:
			h.logger.Error("findPatient failed", "error", err)
			writeJSON(w, http.StatusOK, map[string]string{"patientName": "Not Found"})
			return "error"
		}
		writeJSON(w, http.StatusOK, map[string]string{"patientName": firstName(rec.FullName())})
		return "ok"

	case "registerNewPatient":
		err := h.svc.Register(ctx, params)
		switch {
		case errors.Is(err, clinic.ErrDuplicatePatient):
			writeJSON(w, http.StatusOK, map[string]string{"status": "Duplicate"})
			return "duplicate"
		case err != nil:
			h.logger.Error("registerNewPatient failed", "error", err)
			writeJSON(w, http.StatusOK, map[string]string{"status": "Failure"})
			return "error"
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "Success"})
		return "ok"

	case "checkAvailability":
		avail, err := h.svc.CheckAvailability(ctx, params["dateTime"])
		switch {
		case errors.Is(err, clinic.ErrInvalidTimestamp):
			writeJSON(w, http.StatusOK, map[string]string{"result": "Sorry, I couldn't understand the requested date and time."})
			return "invalid_time"
		case err != nil:
			h.logger.Error("checkAvailability failed", "error", err)
			writeJSON(w, http.StatusOK, map[string]string{"result": "There was an error checking the calendar."})
			return "error"
		}
		result, outcome := h.availabilityMessage(avail)
		writeJSON(w, http.StatusOK, map[string]string{"result": result})
		return outcome

	case "scheduleAppointment":
		confirmed, err := h.svc.Schedule(ctx, params["dateTime"], params["mobileNumber"], params["dob"])
		if err != nil {
			outcome := "error"
			if errors.Is(err, clinic.ErrPatientNotFound) {
				outcome = "patient_not_found"
			} else if errors.Is(err, clinic.ErrInvalidTimestamp) {
				outcome = "invalid_time"
			}
			h.logger.Warn("scheduleAppointment failed", "error", err)
			writeJSON(w, http.StatusOK, map[string]string{"confirmationTime": "Failure"})
			return outcome
		}
		writeJSON(w, http.StatusOK, map[string]string{
			"confirmationTime": confirmed.Format("Monday, January 2 at 3:04 PM"),
		})
		return "ok"

	case "cancelAppointment":
		err := h.svc.Cancel(ctx, params["dateTime"], params["mobileNumber"], params["dob"])
		switch {
		case errors.Is(err, clinic.ErrNoMatchingEvent), errors.Is(err, clinic.ErrPatientNotFound):
			h.logger.Info("cancelAppointment found nothing to cancel", "reason", err)
			writeJSON(w, http.StatusOK, map[string]string{"status": "Not Found"})
			return "not_found"
		case errors.Is(err, clinic.ErrInvalidTimestamp):
			writeJSON(w, http.StatusOK, map[string]string{"status": "Failure"})
			return "invalid_time"
		case err != nil:
			h.logger.Error("cancelAppointment failed", "error", err)
			writeJSON(w, http.StatusOK, map[string]string{"status": "Failure"})
			return "error"
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "Success"})
		return "ok"
	}

	writeJSON(w, http.StatusOK, map[string]string{"error": fmt.Sprintf("Unknown function: %s", fn)})
	return "unknown_function"
}

// availabilityMessage formats an availability result as the single
// human-readable string the voice agent speaks.
func (h *VapiHandler) availabilityMessage(avail clinic.Availability) (string, string) {
	switch avail.Status {
	case clinic.SlotFree:
		return "AVAILABLE", "available"
	case clinic.SlotOutOfHours:
		return fmt.Sprintf("Sorry, that time is outside our clinic hours (%s – %s).",
			clockHour(h.cfg.OpenHour), clockHour(h.cfg.CloseHour)), "out_of_hours"
	case clinic.SlotNoneLeft:
		return "I'm sorry, no free slots found later today.", "none_left"
	}

	times := make([]string, len(avail.Suggestions))
	for i, s := range avail.Suggestions {
		times[i] = s.Format("3:04 PM")
	}
	return "Suggestions: " + strings.Join(times, ", "), "busy"
}

// clockHour renders an hour-of-day as spoken clinic hours ("9 AM").
func clockHour(hour int) string {
	return time.Date(2000, 1, 1, hour, 0, 0, 0, time.UTC).Format("3 PM")
}

// firstName returns the leading token of a full name, as the voice
// agent greets patients by first name.
func firstName(full string) string {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return full
	}
	return fields[0]
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
