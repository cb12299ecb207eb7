package main

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/wellnessgrove/clinic-assistant/internal/api/router"
	"github.com/wellnessgrove/clinic-assistant/internal/clinic"
	appconfig "github.com/wellnessgrove/clinic-assistant/internal/config"
	"github.com/wellnessgrove/clinic-assistant/internal/gcal"
	"github.com/wellnessgrove/clinic-assistant/internal/http/handlers"
	"github.com/wellnessgrove/clinic-assistant/internal/observability/metrics"
	"github.com/wellnessgrove/clinic-assistant/internal/registry"
	"github.com/wellnessgrove/clinic-assistant/pkg/logging"
)

func main() {
	_ = godotenv.Load()
	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting clinic-assistant API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	clinicCfg, err := clinic.NewConfig(cfg.ClinicTimezone, cfg.ClinicOpenHour, cfg.ClinicCloseHour, cfg.AppointmentDuration)
	if err != nil {
		logger.Error("invalid clinic configuration", "error", err)
		os.Exit(1)
	}

	creds, err := decodeCredentials(cfg.GoogleCredentialsJSON)
	if err != nil {
		logger.Error("failed to decode GOOGLE_CREDENTIALS_JSON", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	sheetsSvc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(creds),
		option.WithScopes(sheets.SpreadsheetsScope))
	if err != nil {
		logger.Error("failed to build Sheets client", "error", err)
		os.Exit(1)
	}
	calendarSvc, err := calendar.NewService(ctx,
		option.WithCredentialsJSON(creds),
		option.WithScopes(calendar.CalendarScope))
	if err != nil {
		logger.Error("failed to build Calendar client", "error", err)
		os.Exit(1)
	}

	patientStore := registry.NewSheetsStore(sheetsSvc, cfg.SpreadsheetID, cfg.SheetName)
	appointmentStore := gcal.NewGoogleStore(calendarSvc, cfg.CalendarID, clinicCfg.Location)
	clinicSvc := clinic.NewService(clinicCfg, patientStore, appointmentStore, logger)

	webhookMetrics := metrics.NewWebhookMetrics(nil)
	vapiHandler := handlers.NewVapiHandler(handlers.VapiHandlerConfig{
		Secret:  cfg.VapiSecretKey,
		Service: clinicSvc,
		Clinic:  clinicCfg,
		Metrics: webhookMetrics,
		Logger:  logger,
	})

	r := router.New(&router.Config{
		Logger:         logger,
		VapiHandler:    vapiHandler,
		LogWebhook:     handlers.NewLogWebhookHandler(logger),
		MetricsHandler: promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// decodeCredentials accepts the service-account key either base64
// encoded (the deployed form) or as raw JSON (convenient locally).
func decodeCredentials(value string) ([]byte, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, errors.New("GOOGLE_CREDENTIALS_JSON environment variable not set")
	}
	if decoded, err := base64.StdEncoding.DecodeString(value); err == nil {
		return decoded, nil
	}
	return []byte(value), nil
}
