package llm

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/scrypster/dashrag/internal/dashscope"
)

// EmbeddingAdapter produces vector embeddings through DashScope. Unlike the
// completion adapter it has no structured variant: failures always propagate
// to the caller.
type EmbeddingAdapter struct {
	client EmbeddingCaller
	apiKey string
	model  string
	logger *slog.Logger
}

// NewEmbeddingAdapter creates an embedding adapter from cfg. An empty model
// falls back to DefaultEmbeddingModel; a nil logger falls back to
// slog.Default. The adapter is immutable after construction.
func NewEmbeddingAdapter(cfg Config, client EmbeddingCaller, logger *slog.Logger) *EmbeddingAdapter {
	model := cfg.Model
	if model == "" {
		model = DefaultEmbeddingModel
	}
	return &EmbeddingAdapter{
		client: client,
		apiKey: cfg.APIKey,
		model:  model,
		logger: pickLogger(logger, "embedding-adapter"),
	}
}

// Model returns the configured model name.
func (a *EmbeddingAdapter) Model() string {
	return a.model
}

// Embed returns one embedding vector per input text, in response order. On a
// non-success status it returns a *dashscope.CallError.
func (a *EmbeddingAdapter) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	a.logger.Info("embedding texts", "model", a.model, "count", len(texts))

	resp, err := a.client.CreateEmbeddings(ctx, a.model, a.apiKey, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding call: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &dashscope.CallError{
			StatusCode: resp.StatusCode,
			Code:       resp.Code,
			Message:    resp.Message,
		}
	}

	vectors := make([][]float64, 0, len(resp.Output.Embeddings))
	for _, item := range resp.Output.Embeddings {
		vectors = append(vectors, item.Embedding)
	}
	return vectors, nil
}
