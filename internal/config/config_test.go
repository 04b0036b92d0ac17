package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil, t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Server.RateLimitMax)
	assert.Equal(t, time.Minute, cfg.Server.RateLimitWindow)
	assert.Equal(t, "googleai", cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.LLM.Model)
	assert.Equal(t, 120*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 15*time.Second, cfg.Search.Timeout)
	assert.Equal(t, 5, cfg.Search.MaxResults)
	assert.Equal(t, 1, cfg.Generation.Concurrency)
	assert.Equal(t, 8000, cfg.Generation.ExcerptBudget)
	assert.True(t, cfg.Generation.IncludeVideos)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTLs.VideoLookup)
	assert.Len(t, cfg.Generation.DefaultAssessmentKinds, 5)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`
server:
  port: 9000
llm:
  provider: ollama
  model: qwen3:0.6b
generation:
  concurrency: 0
  excerpt_budget: 4000
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	t.Setenv("GEMINI_API_KEY", "gemini-secret")
	t.Setenv("TAVILY_API_KEY", "tvly-secret")
	t.Setenv("LLM_MODEL", "gemini-2.5-flash")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")

	cfg, err := Load(nil, dir)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.Model)
	assert.Equal(t, "gemini-secret", cfg.LLM.APIKey)
	assert.Equal(t, "tvly-secret", cfg.Search.APIKey)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, 4000, cfg.Generation.ExcerptBudget)
	assert.Equal(t, 1, cfg.Generation.Concurrency, "concurrency is at least one")
}

func TestLoad_ShippedConfigIsSequential(t *testing.T) {
	cfg, err := Load(nil, filepath.Join("..", ".."))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Generation.Concurrency)
}

func TestLoad_Flags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("llm.model", "", "")
	fs.Int("generation.concurrency", 1, "")
	require.NoError(t, fs.Parse([]string{"--llm.model=flag-model", "--generation.concurrency=4"}))

	cfg, err := Load(fs, t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "flag-model", cfg.LLM.Model)
	assert.Equal(t, 4, cfg.Generation.Concurrency)
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [unclosed"), 0o600))

	_, err := Load(nil, dir)
	assert.Error(t, err)
}
