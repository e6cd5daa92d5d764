package dashscope

// Message is a single turn in a multi-turn conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Usage reports token consumption as returned by the API.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// Choice is one generated alternative in a message-format response.
type Choice struct {
	FinishReason string  `json:"finish_reason"`
	Message      Message `json:"message"`
}

// GenerationOutput is the output payload of a text-generation call.
// Text is populated for prompt-style calls, Choices for message-style calls.
type GenerationOutput struct {
	Text    string   `json:"text"`
	Choices []Choice `json:"choices"`
}

// GenerationResponse is the full result of a text-generation call.
// StatusCode carries the HTTP status; on non-2xx responses Code and Message
// describe the remote error and Output is empty.
type GenerationResponse struct {
	StatusCode int    `json:"-"`
	RequestID  string `json:"request_id"`
	Code       string `json:"code"`
	Message    string `json:"message"`

	Output GenerationOutput `json:"output"`
	Usage  Usage            `json:"usage"`
}

// EmbeddingItem is a single embedding vector in an embedding response.
// TextIndex refers to the position of the corresponding input text.
type EmbeddingItem struct {
	TextIndex int       `json:"text_index"`
	Embedding []float64 `json:"embedding"`
}

// EmbeddingOutput is the output payload of a text-embedding call.
type EmbeddingOutput struct {
	Embeddings []EmbeddingItem `json:"embeddings"`
}

// EmbeddingResponse is the full result of a text-embedding call.
type EmbeddingResponse struct {
	StatusCode int    `json:"-"`
	RequestID  string `json:"request_id"`
	Code       string `json:"code"`
	Message    string `json:"message"`

	Output EmbeddingOutput `json:"output"`
	Usage  Usage           `json:"usage"`
}
