package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wellnessgrove/clinic-assistant/internal/clinic"
	"github.com/wellnessgrove/clinic-assistant/internal/gcal"
	"github.com/wellnessgrove/clinic-assistant/internal/http/handlers"
	"github.com/wellnessgrove/clinic-assistant/internal/registry"
	"github.com/wellnessgrove/clinic-assistant/pkg/logging"
)

type emptyRegistry struct{}

func (emptyRegistry) ListAll(ctx context.Context) ([]registry.Record, error) { return nil, nil }
func (emptyRegistry) Append(ctx context.Context, rec registry.Record) error  { return nil }

type emptyCalendar struct{}

func (emptyCalendar) Events(ctx context.Context, from, to time.Time) ([]gcal.Event, error) {
	return nil, nil
}
func (emptyCalendar) Insert(ctx context.Context, ev gcal.Event) (gcal.Event, error) {
	return ev, nil
}
func (emptyCalendar) Delete(ctx context.Context, id string) error { return nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.New("error")
	clinicCfg, err := clinic.NewConfig("Australia/Sydney", 9, 17, 30*time.Minute)
	if err != nil {
		t.Fatalf("clinic.NewConfig: %v", err)
	}
	svc := clinic.NewService(clinicCfg, emptyRegistry{}, emptyCalendar{}, logger)

	promReg := prometheus.NewRegistry()
	cfg := &Config{
		Logger: logger,
		VapiHandler: handlers.NewVapiHandler(handlers.VapiHandlerConfig{
			Service: svc,
			Clinic:  clinicCfg,
			Logger:  logger,
		}),
		LogWebhook:     handlers.NewLogWebhookHandler(logger),
		MetricsHandler: promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}),
	}
	return New(cfg)
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestRouterLiveEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "API is live") {
		t.Errorf("body = %q", rr.Body.String())
	}
}

func TestRouterAgentMirrorsRoot(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/", "/agent"} {
		req := httptest.NewRequest(http.MethodPost, path,
			strings.NewReader(`{"message":{"type":"status-update"}}`))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("POST %s status = %d, want 200", path, rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "Ignored non-function-call") {
			t.Errorf("POST %s body = %q", path, rr.Body.String())
		}
	}
}

func TestRouterGenericWebhook(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/webhooks/call-report",
		strings.NewReader(`{"anything":"goes"}`))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "received") {
		t.Errorf("body = %q", rr.Body.String())
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
}
