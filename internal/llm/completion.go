package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/scrypster/dashrag/internal/dashscope"
)

// CompletionAdapter produces text completions through DashScope in one of two
// modes fixed at construction: static-response (flat prompt) or chat
// (role-tagged conversation).
type CompletionAdapter struct {
	client   GenerationCaller
	apiKey   string
	model    string
	chatMode bool
	logger   *slog.Logger
}

// Result is the outcome of ExecuteJSON. JSON holds the first JSON object
// extracted from the completion text, and Output its serialized form. Both
// are nil when the completion failed or no object could be parsed; callers
// detect failure by checking for a nil Output rather than an error.
type Result struct {
	Output *string
	JSON   map[string]interface{}
}

// NewCompletionAdapter creates a completion adapter from cfg. An empty model
// falls back to DefaultGenerationModel; a nil logger falls back to
// slog.Default. The adapter is immutable after construction.
func NewCompletionAdapter(cfg Config, client GenerationCaller, logger *slog.Logger) *CompletionAdapter {
	model := cfg.Model
	if model == "" {
		model = DefaultGenerationModel
	}
	return &CompletionAdapter{
		client:   client,
		apiKey:   cfg.APIKey,
		model:    model,
		chatMode: cfg.Type == TypeChat,
		logger:   pickLogger(logger, "completion-adapter"),
	}
}

// Model returns the configured model name.
func (a *CompletionAdapter) Model() string {
	return a.model
}

// Execute substitutes "{key}" placeholders in input from vars and sends the
// result to DashScope: in chat mode as a conversation of history followed by
// one user turn, otherwise as a flat prompt. On a 200 status it returns the
// generated text (chat mode: the first choice's message content); any other
// status is returned as a *dashscope.CallError.
//
// history is ignored outside chat mode.
func (a *CompletionAdapter) Execute(ctx context.Context, input string, vars map[string]string, history []dashscope.Message) (string, error) {
	prompt := ReplacePlaceholders(input, vars)

	a.logger.Info("executing completion", "model", a.model, "chat_mode", a.chatMode)
	a.logger.Debug("completion input", "prompt", prompt, "history_turns", len(history))

	var (
		resp *dashscope.GenerationResponse
		err  error
	)
	if a.chatMode {
		messages := make([]dashscope.Message, 0, len(history)+1)
		messages = append(messages, history...)
		messages = append(messages, dashscope.Message{Role: "user", Content: prompt})
		resp, err = a.client.GenerateFromMessages(ctx, a.model, a.apiKey, messages)
	} else {
		resp, err = a.client.GenerateFromPrompt(ctx, a.model, a.apiKey, prompt)
	}
	if err != nil {
		return "", fmt.Errorf("generation call: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &dashscope.CallError{
			StatusCode: resp.StatusCode,
			Code:       resp.Code,
			Message:    resp.Message,
		}
	}

	if a.chatMode {
		if len(resp.Output.Choices) == 0 {
			return "", fmt.Errorf("dashscope returned no choices")
		}
		return resp.Output.Choices[0].Message.Content, nil
	}
	return resp.Output.Text, nil
}

// ExecuteJSON runs Execute and extracts the first JSON object embedded in the
// completion text. It never returns an error: any failure from Execute is
// logged and reported as a zero Result, indistinguishable from a completion
// that contained no JSON. Candidate spans that fail to parse are logged and
// discarded.
func (a *CompletionAdapter) ExecuteJSON(ctx context.Context, input string, vars map[string]string, history []dashscope.Message) Result {
	text, err := a.Execute(ctx, input, vars, history)
	if err != nil {
		a.logger.Error("completion failed, returning empty structured result", "error", err)
		return Result{}
	}

	obj := a.firstJSONObject(text)
	if obj == nil {
		return Result{}
	}

	serialized, err := json.Marshal(obj)
	if err != nil {
		// Values that came out of json.Unmarshal always re-marshal; keep the
		// parsed object anyway if that assumption ever breaks.
		a.logger.Error("failed to serialize extracted JSON", "error", err)
		return Result{JSON: obj}
	}

	output := string(serialized)
	return Result{Output: &output, JSON: obj}
}

// firstJSONObject parses every candidate span in text and returns the first
// one that is a valid JSON object, or nil when none is. Every invalid
// candidate is reported, including ones after a successful parse.
func (a *CompletionAdapter) firstJSONObject(text string) map[string]interface{} {
	var first map[string]interface{}
	for _, candidate := range extractJSONCandidates(text) {
		var obj map[string]interface{}
		if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
			a.logger.Warn("discarding invalid JSON candidate", "candidate", snippet(candidate), "error", err)
			continue
		}
		if first == nil {
			first = obj
		}
	}
	return first
}

// snippet truncates s for log output.
func snippet(s string) string {
	const max = 120
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
