// Package llm provides the provider adapters used by the retrieval pipeline
// to call DashScope: a completion adapter (flat prompt or chat conversation,
// with a best-effort structured-JSON variant) and an embedding adapter.
//
// Adapters are constructed once from a Config and hold no mutable state
// afterwards, so a single instance is safe for concurrent use. Retries,
// timeouts and rate limiting are the client's concern, not the adapters'.
package llm

import "log/slog"

// LLMType selects the completion adapter's operating mode.
type LLMType string

const (
	// TypeStaticResponse is the default mode: a flat prompt in, generated
	// text out.
	TypeStaticResponse LLMType = "static_response"

	// TypeChat sends a role-tagged conversation instead of a flat prompt.
	TypeChat LLMType = "chat"
)

// Default model identifiers used when Config.Model is empty.
const (
	DefaultGenerationModel = "qwen-turbo"
	DefaultEmbeddingModel  = "text-embedding-v1"
)

// Config holds adapter configuration. The zero value is valid: empty API key,
// the adapter-specific default model, and static-response mode.
type Config struct {
	// APIKey authenticates against DashScope (default: empty).
	APIKey string

	// Model overrides the adapter's default model identifier.
	Model string

	// Type selects chat or static-response mode; only the completion
	// adapter distinguishes the two.
	Type LLMType
}

// pickLogger returns the injected logger tagged with the adapter name, or a
// tagged slog.Default when none was provided.
func pickLogger(logger *slog.Logger, component string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With("component", component)
}
