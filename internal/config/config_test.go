package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8000", cfg.Addr())
	assert.Equal(t, int64(32), cfg.Server.MaxUploadMB)
	assert.Equal(t, "gosseract", cfg.OCR.Engine)
	assert.Equal(t, []string{"eng"}, cfg.OCR.Languages)
	assert.False(t, cfg.OCR.Cleanup)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "gemma2:2b", cfg.LLM.Model)
	assert.Equal(t, 0.0, cfg.LLM.Temperature)
	assert.Zero(t, cfg.LLM.Timeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LLM_PROVIDER", "gemini")
	t.Setenv("LLM_API_KEY", "key")
	t.Setenv("LLM_TIMEOUT", "45s")
	t.Setenv("OCR_ENGINE", "cli")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "key", cfg.LLM.APIKey)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "cli", cfg.OCR.Engine)
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	path := filepath.Join(t.TempDir(), "receiptscan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 8081
ocr:
  languages: [eng, fra]
  cleanup: true
pdf:
  dpi: 200
`), 0o600))

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, []string{"eng", "fra"}, cfg.OCR.Languages)
	assert.True(t, cfg.OCR.Cleanup)
	assert.Equal(t, 200.0, cfg.PDF.DPI)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	base, err := Load(New(), "")
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"bad engine", func(c *Config) { c.OCR.Engine = "paddle" }},
		{"bad provider", func(c *Config) { c.LLM.Provider = "llama" }},
		{"openai without key", func(c *Config) { c.LLM.Provider = "openai" }},
		{"negative dpi", func(c *Config) { c.PDF.DPI = -1 }},
		{"zero upload", func(c *Config) { c.Server.MaxUploadMB = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
