package llm

import (
	"context"

	"github.com/scrypster/dashrag/internal/dashscope"
)

// GenerationCaller is the slice of the DashScope client consumed by the
// completion adapter: single-prompt and multi-turn text generation.
type GenerationCaller interface {
	GenerateFromPrompt(ctx context.Context, model, apiKey, prompt string) (*dashscope.GenerationResponse, error)
	GenerateFromMessages(ctx context.Context, model, apiKey string, messages []dashscope.Message) (*dashscope.GenerationResponse, error)
}

// EmbeddingCaller is the slice of the DashScope client consumed by the
// embedding adapter.
type EmbeddingCaller interface {
	CreateEmbeddings(ctx context.Context, model, apiKey string, texts []string) (*dashscope.EmbeddingResponse, error)
}
