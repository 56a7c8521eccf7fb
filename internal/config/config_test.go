package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("WEB3FORMS_ACCESS_KEY", "key-123")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "portfolio.db", cfg.DatabasePath)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, RelayWeb3Forms, cfg.Relay.Provider)
	assert.Equal(t, "key-123", cfg.Relay.AccessKey)
	assert.Equal(t, 30*time.Second, cfg.Relay.Timeout)
	assert.Equal(t, 587, cfg.Relay.SMTPPort)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("RELAY_PROVIDER=SMTP\nSMTP_USER=me@example.com\nSMTP_PASS=pw\nPORT=9090\nRELAY_TIMEOUT=5s\n"), 0o600))
	for _, key := range []string{"RELAY_PROVIDER", "SMTP_USER", "SMTP_PASS", "PORT", "RELAY_TIMEOUT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, RelaySMTP, cfg.Relay.Provider)
	assert.Equal(t, "me@example.com", cfg.Relay.SMTPUser)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 5*time.Second, cfg.Relay.Timeout)
}

func TestLoadMissingEnvFileIsFine(t *testing.T) {
	t.Setenv("WEB3FORMS_ACCESS_KEY", "k")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NoError(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing access key", map[string]string{}},
		{"unknown provider", map[string]string{"RELAY_PROVIDER": "pigeon", "WEB3FORMS_ACCESS_KEY": "k"}},
		{"smtp without credentials", map[string]string{"RELAY_PROVIDER": "smtp"}},
		{"bad log level", map[string]string{"WEB3FORMS_ACCESS_KEY": "k", "LOG_LEVEL": "loud"}},
		{"bad relay url", map[string]string{"WEB3FORMS_ACCESS_KEY": "k", "RELAY_URL": "not a url"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}
