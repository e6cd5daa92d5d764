// Package config provides configuration management for dashrag.
// It loads settings from environment variables with the DASHRAG_ prefix
// and provides sensible defaults for all configuration options.
//
// An optional YAML file can be layered on top of the environment via
// LoadFile; file values take precedence over environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration settings for the dashrag adapters.
type Config struct {
	LLM    LLMConfig
	Client ClientConfig
}

// LLMConfig contains adapter-level settings.
type LLMConfig struct {
	APIKey         string // DashScope API key (default: empty)
	Model          string // Generation model identifier (default: qwen-turbo)
	EmbeddingModel string // Embedding model identifier (default: text-embedding-v1)
	Type           string // Completion mode: static_response, chat (default: static_response)
}

// ClientConfig contains HTTP client settings.
type ClientConfig struct {
	BaseURL           string  // API base URL (default: https://dashscope.aliyuncs.com)
	TimeoutSeconds    int     // Per-request timeout in seconds (default: 60)
	RequestsPerSecond float64 // Outbound rate limit; 0 disables throttling (default: 0)
	Burst             int     // Rate limiter burst size (default: 1)
}

// fileConfig mirrors Config for YAML decoding; empty fields leave the
// corresponding environment/default value untouched.
type fileConfig struct {
	LLM struct {
		APIKey         string `yaml:"api_key"`
		Model          string `yaml:"model"`
		EmbeddingModel string `yaml:"embedding_model"`
		Type           string `yaml:"type"`
	} `yaml:"llm"`
	Client struct {
		BaseURL           string  `yaml:"base_url"`
		TimeoutSeconds    int     `yaml:"timeout_seconds"`
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
	} `yaml:"client"`
}

// LoadConfig loads configuration from environment variables with sensible
// defaults. All environment variables use the DASHRAG_ prefix.
func LoadConfig() (*Config, error) {
	return buildBaseConfig(), nil
}

// LoadFile loads configuration from environment variables and then overlays
// values set in the YAML file at path. File values take precedence.
func LoadFile(path string) (*Config, error) {
	cfg := buildBaseConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	if fc.LLM.APIKey != "" {
		cfg.LLM.APIKey = fc.LLM.APIKey
	}
	if fc.LLM.Model != "" {
		cfg.LLM.Model = fc.LLM.Model
	}
	if fc.LLM.EmbeddingModel != "" {
		cfg.LLM.EmbeddingModel = fc.LLM.EmbeddingModel
	}
	if fc.LLM.Type != "" {
		cfg.LLM.Type = fc.LLM.Type
	}
	if fc.Client.BaseURL != "" {
		cfg.Client.BaseURL = fc.Client.BaseURL
	}
	if fc.Client.TimeoutSeconds > 0 {
		cfg.Client.TimeoutSeconds = fc.Client.TimeoutSeconds
	}
	if fc.Client.RequestsPerSecond > 0 {
		cfg.Client.RequestsPerSecond = fc.Client.RequestsPerSecond
	}
	if fc.Client.Burst > 0 {
		cfg.Client.Burst = fc.Client.Burst
	}

	return cfg, nil
}

// buildBaseConfig constructs a Config with values from environment variables
// and defaults. This is the shared base for both LoadConfig and LoadFile.
func buildBaseConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			APIKey:         getEnv("DASHRAG_API_KEY", ""),
			Model:          getEnv("DASHRAG_MODEL", ""),
			EmbeddingModel: getEnv("DASHRAG_EMBEDDING_MODEL", ""),
			Type:           getEnv("DASHRAG_LLM_TYPE", "static_response"),
		},
		Client: ClientConfig{
			BaseURL:           getEnv("DASHRAG_BASE_URL", "https://dashscope.aliyuncs.com"),
			TimeoutSeconds:    getEnvInt("DASHRAG_TIMEOUT_SECONDS", 60),
			RequestsPerSecond: getEnvFloat("DASHRAG_REQUESTS_PER_SECOND", 0),
			Burst:             getEnvInt("DASHRAG_BURST", 1),
		},
	}
}

// getEnv retrieves a string environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value.
// If the environment variable exists but cannot be parsed as an integer,
// it returns the default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat retrieves a float environment variable or returns a default value.
// If the environment variable exists but cannot be parsed as a float,
// it returns the default value.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
