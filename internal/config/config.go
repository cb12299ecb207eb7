package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// VapiSecretKey is the shared secret Vapi sends in the
	// x-vapi-secret header. Empty disables verification.
	VapiSecretKey string

	// GoogleCredentialsJSON is the base64-encoded service-account key
	// used for both Sheets and Calendar.
	GoogleCredentialsJSON string

	SpreadsheetID string
	SheetName     string
	CalendarID    string

	ClinicTimezone      string
	ClinicOpenHour      int
	ClinicCloseHour     int
	AppointmentDuration time.Duration
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		Port:                  getEnv("PORT", "8080"),
		Env:                   getEnv("ENV", "development"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		VapiSecretKey:         getEnv("VAPI_SECRET_KEY", ""),
		GoogleCredentialsJSON: getEnv("GOOGLE_CREDENTIALS_JSON", ""),
		SpreadsheetID:         getEnv("SPREADSHEET_ID", ""),
		SheetName:             getEnv("SHEET_NAME", "Sheet1"),
		CalendarID:            getEnv("CALENDAR_ID", "primary"),
		ClinicTimezone:        getEnv("CLINIC_TIMEZONE", "Australia/Sydney"),
		ClinicOpenHour:        getEnvAsInt("CLINIC_OPEN_HOUR", 9),
		ClinicCloseHour:       getEnvAsInt("CLINIC_CLOSE_HOUR", 17),
		AppointmentDuration:   time.Duration(getEnvAsInt("APPOINTMENT_DURATION_MINUTES", 30)) * time.Minute,
	}
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
