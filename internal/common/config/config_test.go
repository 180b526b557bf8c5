package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prospect-pipeline", cfg.App.Name)
	assert.NotEmpty(t, cfg.Server.PipelineAddr)
	assert.NotEmpty(t, cfg.Server.ToolsAddr)
	assert.Equal(t, "https://api.crustdata.com", cfg.Crustdata.BaseURL)
	assert.Equal(t, "claude-3-haiku-20240307", cfg.LLM.Model)
	assert.Positive(t, cfg.LLM.MaxTokens)
}

func TestLoad_CredentialEnvOverrides(t *testing.T) {
	t.Setenv("CRUSTDATA_API_KEY", "cd-secret")
	t.Setenv("CLAUDE_API_KEY", "sk-secret")
	t.Setenv("OPENWEATHER_API_KEY", "ow-secret")
	t.Setenv("PORT", "9999")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "cd-secret", cfg.Crustdata.APIKey)
	assert.Equal(t, "sk-secret", cfg.LLM.APIKey)
	assert.Equal(t, "ow-secret", cfg.Tools.WeatherAPIKey)
	assert.Equal(t, ":9999", cfg.Server.PipelineAddr)
}

func TestDurationHelpers(t *testing.T) {
	assert.Equal(t, 30*time.Second, CrustdataConfig{Timeout: 30}.TimeoutDuration())
	assert.Equal(t, 15*time.Second, ServerConfig{ReadTimeout: 15}.ReadTimeoutDuration())
	assert.Equal(t, 2*time.Minute, ToolsConfig{CacheTTL: 120}.CacheTTLDuration())
}

func TestValidateConfig(t *testing.T) {
	valid := &Config{
		Server:    ServerConfig{PipelineAddr: ":4000", ToolsAddr: ":4100"},
		Crustdata: CrustdataConfig{BaseURL: "https://api.crustdata.com"},
		LLM:       LLMConfig{MaxTokens: 1000},
	}
	assert.NoError(t, validateConfig(valid))

	broken := *valid
	broken.Crustdata.BaseURL = ""
	assert.Error(t, validateConfig(&broken))

	broken = *valid
	broken.LLM.MaxTokens = 0
	assert.Error(t, validateConfig(&broken))
}
