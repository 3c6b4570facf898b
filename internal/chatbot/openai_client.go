package chatbot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIClient implements LLMClient against the OpenAI chat completion API.
// The whole prompt travels as a single user message since the template
// already embeds role, context, and format instructions.
type OpenAIClient struct {
	client  *openai.Client
	modelID string
}

// NewOpenAIClient creates an OpenAI-backed LLM client.
func NewOpenAIClient(apiKey, modelID string) (*OpenAIClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("chatbot: openai api key is required")
	}
	if strings.TrimSpace(modelID) == "" {
		modelID = DefaultOpenAIModel
	}
	return &OpenAIClient{
		client:  openai.NewClient(apiKey),
		modelID: modelID,
	}, nil
}

// Complete sends the prompt as a chat completion and returns the text.
func (c *OpenAIClient) Complete(ctx context.Context, req GenerationRequest) (GenerationResponse, error) {
	modelID := req.Model
	if modelID == "" {
		modelID = c.modelID
	}

	chatReq := openai.ChatCompletionRequest{
		Model: modelID,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
	}
	if req.MaxTokens > 0 {
		chatReq.MaxTokens = int(req.MaxTokens)
	}
	if req.Temperature > 0 {
		chatReq.Temperature = req.Temperature
	}

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return GenerationResponse{}, fmt.Errorf("chatbot: openai completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return GenerationResponse{}, errors.New("chatbot: openai returned no choices")
	}

	return GenerationResponse{
		Text:       strings.TrimSpace(resp.Choices[0].Message.Content),
		StopReason: string(resp.Choices[0].FinishReason),
		Usage: TokenUsage{
			InputTokens:  int32(resp.Usage.PromptTokens),
			OutputTokens: int32(resp.Usage.CompletionTokens),
			TotalTokens:  int32(resp.Usage.TotalTokens),
		},
	}, nil
}
