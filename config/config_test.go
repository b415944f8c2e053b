package config

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestLoadConfigDefaults(t *testing.T) {
	// envconfig treats an empty value as set, so the keys are removed for the test.
	for _, key := range []string{"ADMIN_PORT", "API_BASE_URL", "API_PORT", "SETTINGS_FILE", "REQUEST_TIMEOUT", "LOG_LEVEL"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := LoadConfig(quietLogger())
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AdminPort)
	assert.Equal(t, "8000", cfg.APIPort)
	assert.Equal(t, "admin_settings.json", cfg.SettingsFile)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.APIBaseURL)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("ADMIN_PORT", ":9090")
	t.Setenv("API_BASE_URL", "http://api.local:8000/")
	t.Setenv("REQUEST_TIMEOUT", "3s")

	cfg, err := LoadConfig(quietLogger())
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.AdminPort)
	assert.Equal(t, "http://api.local:8000/", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
}

func TestLoadConfigBadDuration(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "soon")

	_, err := LoadConfig(quietLogger())
	assert.Error(t, err)
}
