package chatbot

import "context"

// Default model ids per generation provider. Used when neither config nor
// options pin a model.
const (
	DefaultGeminiModel = "gemini-1.5-flash"
	DefaultOpenAIModel = "gpt-4o-mini"
)

// GenerationRequest carries a single prompt plus sampling parameters to the
// text-generation backend. The engine treats the backend purely as
// "prompt in, text out, or failure".
type GenerationRequest struct {
	Model       string
	Prompt      string
	MaxTokens   int32
	Temperature float32
}

// TokenUsage reports token accounting when the backend provides it.
type TokenUsage struct {
	InputTokens  int32
	OutputTokens int32
	TotalTokens  int32
}

// GenerationResponse is the raw backend output before parsing.
type GenerationResponse struct {
	Text       string
	Usage      TokenUsage
	StopReason string
}

// LLMClient abstracts the text-generation backend.
type LLMClient interface {
	Complete(ctx context.Context, req GenerationRequest) (GenerationResponse, error)
}
