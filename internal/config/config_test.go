package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/scrypster/dashrag/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	_ = os.Unsetenv("DASHRAG_API_KEY")
	_ = os.Unsetenv("DASHRAG_MODEL")
	_ = os.Unsetenv("DASHRAG_LLM_TYPE")
	_ = os.Unsetenv("DASHRAG_BASE_URL")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.LLM.APIKey, "Default API key must be empty")
	assert.Equal(t, "", cfg.LLM.Model, "Model defaults are applied by the adapters")
	assert.Equal(t, "static_response", cfg.LLM.Type)
	assert.Equal(t, "https://dashscope.aliyuncs.com", cfg.Client.BaseURL)
	assert.Equal(t, 60, cfg.Client.TimeoutSeconds)
	assert.Equal(t, float64(0), cfg.Client.RequestsPerSecond,
		"Throttling must be disabled by default")
	assert.Equal(t, 1, cfg.Client.Burst)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DASHRAG_API_KEY", "sk-test")
	t.Setenv("DASHRAG_MODEL", "qwen-max")
	t.Setenv("DASHRAG_EMBEDDING_MODEL", "text-embedding-v2")
	t.Setenv("DASHRAG_LLM_TYPE", "chat")
	t.Setenv("DASHRAG_TIMEOUT_SECONDS", "15")
	t.Setenv("DASHRAG_REQUESTS_PER_SECOND", "2.5")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "qwen-max", cfg.LLM.Model)
	assert.Equal(t, "text-embedding-v2", cfg.LLM.EmbeddingModel)
	assert.Equal(t, "chat", cfg.LLM.Type)
	assert.Equal(t, 15, cfg.Client.TimeoutSeconds)
	assert.Equal(t, 2.5, cfg.Client.RequestsPerSecond)
}

func TestLoadConfig_UnparseableEnvFallsBackToDefault(t *testing.T) {
	t.Setenv("DASHRAG_TIMEOUT_SECONDS", "not-a-number")
	t.Setenv("DASHRAG_REQUESTS_PER_SECOND", "fast")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.Client.TimeoutSeconds)
	assert.Equal(t, float64(0), cfg.Client.RequestsPerSecond)
}

func TestLoadFile_OverlaysEnv(t *testing.T) {
	t.Setenv("DASHRAG_API_KEY", "env-key")
	t.Setenv("DASHRAG_MODEL", "env-model")

	path := writeConfigFile(t, `
llm:
  api_key: file-key
  type: chat
client:
  timeout_seconds: 30
  requests_per_second: 5
`)

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.LLM.APIKey, "File value must take precedence")
	assert.Equal(t, "env-model", cfg.LLM.Model, "Unset file fields must keep env values")
	assert.Equal(t, "chat", cfg.LLM.Type)
	assert.Equal(t, 30, cfg.Client.TimeoutSeconds)
	assert.Equal(t, float64(5), cfg.Client.RequestsPerSecond)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := config.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	path := writeConfigFile(t, "llm: [unclosed")
	_, err := config.LoadFile(path)
	assert.Error(t, err)
}

// writeConfigFile writes a temporary YAML config file and returns its path.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dashrag.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
