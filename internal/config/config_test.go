package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 3, cfg.Pipeline.DefaultCopyCount)
	assert.Equal(t, 10, cfg.Pipeline.MaxItemCount)
	assert.Equal(t, "https://api.groq.com/openai/v1", cfg.Groq.BaseURL)
	assert.Equal(t, "https://api.stability.ai", cfg.Stability.BaseURL)
	assert.Equal(t, 90, cfg.Stability.TimeoutSeconds)
	assert.Equal(t, 100, cfg.Replicate.TimeoutSeconds)
	assert.Equal(t, 15, cfg.Pexels.TimeoutSeconds)
	assert.Equal(t, "us-east-1", cfg.Bedrock.Region)

	// Nothing is enabled without credentials.
	assert.False(t, cfg.OpenAI.Enabled)
	assert.False(t, cfg.Stability.Enabled)
	assert.False(t, cfg.Pipeline.ForceMock)
}

func TestLoadReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
server:
  port: 9090
pipeline:
  force_mock: true
  default_image_count: 5
groq:
  api_key: file-key
  enabled: true
  timeout_seconds: 45
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Pipeline.ForceMock)
	assert.Equal(t, 5, cfg.Pipeline.DefaultImageCount)
	assert.Equal(t, "file-key", cfg.Groq.APIKey)
	assert.True(t, cfg.Groq.Enabled)
	assert.Equal(t, 45*time.Second, cfg.Groq.Timeout())
	// Untouched sections still get defaults.
	assert.Equal(t, 3, cfg.Pipeline.DefaultCopyCount)
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAI.BaseURL)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "env-key")
	t.Setenv("GROQ_MODEL", "llama-3.1-8b-instant")
	t.Setenv("PEXELS_API_KEY", "px-key")
	t.Setenv("FORCE_MOCK_MODE", "true")
	t.Setenv("SERVER_PORT", "3001")
	t.Setenv("ANTHROPIC_API_KEY", "")

	cfg, err := LoadFromEnv(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.Groq.APIKey)
	assert.Equal(t, "llama-3.1-8b-instant", cfg.Groq.Model)
	assert.True(t, cfg.Groq.Enabled, "setting a key should enable the provider")
	assert.True(t, cfg.Pexels.Enabled)
	assert.True(t, cfg.Pipeline.ForceMock)
	assert.Equal(t, 3001, cfg.Server.Port)

	// Providers without env credentials stay disabled.
	assert.False(t, cfg.Anthropic.Enabled)
}

func TestGetHostContainerDetection(t *testing.T) {
	cfg := ServerConfig{Host: "localhost"}
	assert.Equal(t, "localhost", cfg.GetHost())

	t.Setenv("AWS_EXECUTION_ENV", "AWS_ECS_FARGATE")
	assert.Equal(t, "0.0.0.0", cfg.GetHost())
}

func TestGetHostEnvOverride(t *testing.T) {
	cfg := ServerConfig{Host: "localhost"}
	t.Setenv("SERVER_HOST", "10.0.0.5")
	assert.Equal(t, "10.0.0.5", cfg.GetHost())
}
