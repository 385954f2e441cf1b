package app

import (
	"testing"

	"receiptscan/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	t.Setenv("APP_ENV", "production")
	cfg, err := config.Load(config.New(), "")
	require.NoError(t, err)
	return cfg
}

func TestBuild_Defaults(t *testing.T) {
	cfg := testConfig(t)
	cfg.OCR.Engine = "cli"
	cfg.OCR.Cleanup = true

	p, err := Build(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.NotNil(t, p.Service)
	assert.NotNil(t, p.Metrics)
}

func TestBuild_Errors(t *testing.T) {
	cfg := testConfig(t)
	cfg.OCR.Engine = "paddle"
	_, err := Build(cfg, nil)
	assert.ErrorContains(t, err, "unknown ocr engine")

	cfg = testConfig(t)
	cfg.LLM.Provider = "bard"
	_, err = Build(cfg, nil)
	assert.ErrorContains(t, err, "unsupported llm provider")
}
