package app

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SESSION_SECRET", "session")
	t.Setenv("CSRF_SECRET", "csrf")
	t.Setenv("EMAILJS_PUBLIC_KEY", "public")
	t.Setenv("EMAILJS_SERVICE_ID", "service_x")
	t.Setenv("EMAILJS_TEMPLATE_ID", "template_x")
	// Optional settings must come from defaults, not the caller's shell.
	for _, key := range []string{"APP_ENV", "APP_ADDR", "EMAILJS_BASE_URL", "EMAILJS_TIMEOUT", "EMAILJS_RATE", "EMAILJS_BURST", "SESSION_TTL", "SUBMIT_RATE_LIMIT", "LEAD_RECIPIENTS", "LEAD_TIMEZONE"} {
		unsetEnv(t, key)
	}
}

// unsetEnv removes key for the test and restores it afterwards.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadConfigDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppAddr)
	assert.Equal(t, "https://api.emailjs.com", cfg.EmailJSBaseURL)
	assert.Equal(t, 15*time.Second, cfg.EmailJSTimeout)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10, cfg.SubmitRateLimit)
	assert.Equal(t, 5, cfg.EmailJSBurst)
	assert.Equal(t, time.UTC, cfg.Location())
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigRecipientsAndZone(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LEAD_RECIPIENTS", "ops@example.com,sales@example.com")
	t.Setenv("LEAD_TIMEZONE", "America/New_York")
	t.Setenv("APP_ENV", "production")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, []string{"ops@example.com", "sales@example.com"}, cfg.LeadRecipients)
	assert.Equal(t, "America/New_York", cfg.Location().String())
	assert.True(t, cfg.IsProduction())
}

func TestLoadConfigIgnoresTestModeEnvironment(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LANDING_TEST_MODE", "1")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://api.emailjs.com", cfg.EmailJSBaseURL)
}

func TestLoadConfigRejectsMissingCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EMAILJS_TEMPLATE_ID", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigRejectsUnknownZone(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("LEAD_TIMEZONE", "Mars/Olympus")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "timezone")
}

func TestLocationNilConfig(t *testing.T) {
	var cfg *Config
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLoggerFormats(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&Config{AppEnv: "production", LogFormat: "json"}, &buf).Info("ready")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "ready", entry["msg"])
	assert.Equal(t, "production", entry["env"])

	buf.Reset()
	logger := newLogger(&Config{AppEnv: "production"}, &buf)
	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	logger = newLogger(&Config{AppEnv: "development"}, &buf)
	logger.Debug("shown")
	assert.Contains(t, buf.String(), "msg=shown")
}
