package conf

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 9090, cfg.Server.MetricsPort)
	assert.Equal(t, 2*time.Second, cfg.Engine.MaxResponseTime)
	assert.True(t, cfg.Engine.CacheEnabled)
	assert.Equal(t, 1024, cfg.Engine.CacheSize)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "triage", cfg.Redis.KeyPrefix)
	assert.False(t, cfg.Persistence.Enabled)
	assert.Equal(t, "triage-service", cfg.Observability.ServiceName)
	assert.Equal(t, "My Family Clinic", cfg.Knowledge.ClinicName)
	assert.Equal(t, "995", cfg.Knowledge.EmergencyNumber)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  http_port: 9000
engine:
  max_response_time: 500ms
  cache_enabled: false
knowledge:
  clinic_name: Sunrise Medical
  services:
    - name: Consultation
      category: general
      price: 40
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.HTTPPort)
	assert.Equal(t, 500*time.Millisecond, cfg.Engine.MaxResponseTime)
	assert.False(t, cfg.Engine.CacheEnabled)
	assert.Equal(t, "Sunrise Medical", cfg.Knowledge.ClinicName)
	require.Len(t, cfg.Knowledge.Services, 1)
	assert.Equal(t, 40.0, cfg.Knowledge.Services[0].Price)

	// Untouched keys keep their defaults.
	assert.Equal(t, 9090, cfg.Server.MetricsPort)
	assert.Equal(t, "995", cfg.Knowledge.EmergencyNumber)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CT_SERVER_HTTP_PORT", "7070")
	t.Setenv("CT_OBSERVABILITY_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.HTTPPort)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}
