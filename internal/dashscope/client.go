// Package dashscope provides a minimal HTTP client for the Alibaba Cloud
// DashScope API, covering the three call shapes the pipeline consumes:
// single-prompt text generation, multi-turn message generation, and text
// embedding. All calls are wrapped with circuit breaker protection and an
// optional outbound rate limiter; retries are out of scope.
//
// HTTP error statuses are not converted to Go errors here. They are decoded
// into the response's Code and Message fields and the caller decides how to
// map them; only transport and decode failures surface as errors.
package dashscope

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	generationPath = "/api/v1/services/aigc/text-generation/generation"
	embeddingPath  = "/api/v1/services/embeddings/text-embedding/text-embedding"

	// resultFormatMessage asks the generation endpoint to return structured
	// chat choices instead of a flat text field.
	resultFormatMessage = "message"
)

// ClientConfig holds configuration for the DashScope client.
type ClientConfig struct {
	// BaseURL is the API base URL (default: https://dashscope.aliyuncs.com)
	BaseURL string

	// Timeout is the per-request timeout duration (default: 60s)
	Timeout time.Duration

	// RequestsPerSecond throttles outbound calls. Zero disables throttling.
	RequestsPerSecond float64

	// Burst is the rate limiter burst size (default: 1 when throttling is enabled)
	Burst int

	// Breaker configures the circuit breaker; zero values use defaults.
	Breaker BreakerConfig
}

// Client communicates with the DashScope API. It is safe for concurrent use.
type Client struct {
	cfg     ClientConfig
	client  *http.Client
	breaker *circuitBreaker
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewClient creates a new DashScope client with the given configuration.
// A nil logger falls back to slog.Default.
func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://dashscope.aliyuncs.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &Client{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		breaker: newCircuitBreaker(cfg.Breaker),
		limiter: limiter,
		logger:  logger.With("component", "dashscope"),
	}
}

// generationRequest is the request body for the text-generation endpoint.
type generationRequest struct {
	Model      string            `json:"model"`
	Input      generationInput   `json:"input"`
	Parameters *generationParams `json:"parameters,omitempty"`
}

type generationInput struct {
	Prompt   string    `json:"prompt,omitempty"`
	Messages []Message `json:"messages,omitempty"`
}

type generationParams struct {
	ResultFormat string `json:"result_format,omitempty"`
}

// embeddingRequest is the request body for the text-embedding endpoint.
type embeddingRequest struct {
	Model string         `json:"model"`
	Input embeddingInput `json:"input"`
}

type embeddingInput struct {
	Texts []string `json:"texts"`
}

// GenerateFromPrompt sends a single-prompt generation request and returns the
// decoded response. The response may carry a non-success status; callers are
// expected to inspect StatusCode.
func (c *Client) GenerateFromPrompt(ctx context.Context, model, apiKey, prompt string) (*GenerationResponse, error) {
	reqBody := generationRequest{
		Model: model,
		Input: generationInput{Prompt: prompt},
	}
	return c.generate(ctx, apiKey, reqBody)
}

// GenerateFromMessages sends a multi-turn generation request using the
// message result format and returns the decoded response.
func (c *Client) GenerateFromMessages(ctx context.Context, model, apiKey string, messages []Message) (*GenerationResponse, error) {
	reqBody := generationRequest{
		Model:      model,
		Input:      generationInput{Messages: messages},
		Parameters: &generationParams{ResultFormat: resultFormatMessage},
	}
	return c.generate(ctx, apiKey, reqBody)
}

func (c *Client) generate(ctx context.Context, apiKey string, reqBody generationRequest) (*GenerationResponse, error) {
	status, body, err := c.post(ctx, generationPath, apiKey, reqBody)
	if err != nil {
		return nil, err
	}

	resp := &GenerationResponse{}
	if err := json.Unmarshal(body, resp); err != nil {
		if status == http.StatusOK {
			return nil, fmt.Errorf("failed to decode generation response: %w", err)
		}
		// Error bodies from intermediaries are not always JSON; keep the raw
		// text so the caller still sees what went wrong.
		resp.Message = strings.TrimSpace(string(body))
	}
	resp.StatusCode = status
	return resp, nil
}

// CreateEmbeddings sends an embedding request for the given texts and returns
// the decoded response. One embedding is returned per input text.
func (c *Client) CreateEmbeddings(ctx context.Context, model, apiKey string, texts []string) (*EmbeddingResponse, error) {
	reqBody := embeddingRequest{
		Model: model,
		Input: embeddingInput{Texts: texts},
	}

	status, body, err := c.post(ctx, embeddingPath, apiKey, reqBody)
	if err != nil {
		return nil, err
	}

	resp := &EmbeddingResponse{}
	if err := json.Unmarshal(body, resp); err != nil {
		if status == http.StatusOK {
			return nil, fmt.Errorf("failed to decode embedding response: %w", err)
		}
		resp.Message = strings.TrimSpace(string(body))
	}
	resp.StatusCode = status
	return resp, nil
}

// rawResponse carries the HTTP status and raw body through the breaker.
type rawResponse struct {
	status int
	body   []byte
}

// post marshals payload, applies the rate limiter, and performs the HTTP call
// through the circuit breaker. It returns the HTTP status and raw body; any
// status is a successful outcome at this level.
func (c *Client) post(ctx context.Context, path, apiKey string, payload interface{}) (int, []byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, nil, fmt.Errorf("rate limiter wait: %w", err)
		}
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	requestID := uuid.NewString()
	req, err := http.NewRequestWithContext(ctx, "POST", c.cfg.BaseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("X-Request-Id", requestID)

	c.logger.Debug("calling dashscope", "path", path, "request_id", requestID)

	result, err := c.breaker.execute(ctx, func() (interface{}, error) {
		resp, err := c.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to send request: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}
		return &rawResponse{status: resp.StatusCode, body: body}, nil
	})
	if err != nil {
		if errors.Is(err, ErrCircuitOpen) {
			c.logger.Warn("dashscope circuit breaker rejected call",
				"path", path, "request_id", requestID, "state", c.breaker.state())
			return 0, nil, fmt.Errorf("dashscope circuit breaker open: %w", err)
		}
		return 0, nil, err
	}

	raw := result.(*rawResponse)
	c.logger.Debug("dashscope responded",
		"path", path, "request_id", requestID, "status", raw.status)
	return raw.status, raw.body, nil
}
