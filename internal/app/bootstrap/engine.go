package bootstrap

import (
	"context"
	"fmt"
	"io"

	"github.com/redis/go-redis/v9"

	"github.com/ethosdigital/agency-ai-platform/internal/chatbot"
	appconfig "github.com/ethosdigital/agency-ai-platform/internal/config"
	"github.com/ethosdigital/agency-ai-platform/internal/observability/metrics"
	"github.com/ethosdigital/agency-ai-platform/pkg/logging"
)

// BuildEngine wires the chatbot session engine from config. A missing
// generation credential is fatal: the engine is never constructed without a
// working text-generation backend. The returned cleanup releases the backend
// and store connections and is safe to call exactly once.
func BuildEngine(ctx context.Context, cfg *appconfig.Config, m *metrics.ConversationMetrics, logger *logging.Logger) (*chatbot.Engine, func(), error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	llm, modelID, err := buildLLMClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	repo, closeRepo := buildRepository(cfg, logger)

	engine := chatbot.NewEngine(repo, llm, logger,
		chatbot.WithModel(modelID),
		chatbot.WithSamplingParams(int32(cfg.LLMMaxTokens), float32(cfg.LLMTemperature)),
		chatbot.WithGenerationTimeout(cfg.GenerationTimeout),
		chatbot.WithSlotProvider(chatbot.NewStaticSlotProvider()),
		chatbot.WithMetrics(m),
	)

	cleanup := func() {
		if closer, ok := llm.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				logger.Warn("failed to close llm client", "error", err)
			}
		}
		if closeRepo != nil {
			if err := closeRepo(); err != nil {
				logger.Warn("failed to close conversation store", "error", err)
			}
		}
	}

	logger.Info("chatbot engine ready", "provider", cfg.LLMProvider, "model", modelID)
	return engine, cleanup, nil
}

// buildLLMClient constructs the configured provider and reports the model id
// the engine should pin, resolving the provider default when config leaves
// the model unset.
func buildLLMClient(ctx context.Context, cfg *appconfig.Config) (chatbot.LLMClient, string, error) {
	switch cfg.LLMProvider {
	case "gemini", "":
		client, err := chatbot.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
		if err != nil {
			return nil, "", fmt.Errorf("bootstrap: %w", err)
		}
		modelID := cfg.GeminiModelID
		if modelID == "" {
			modelID = chatbot.DefaultGeminiModel
		}
		return client, modelID, nil
	case "openai":
		client, err := chatbot.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModelID)
		if err != nil {
			return nil, "", fmt.Errorf("bootstrap: %w", err)
		}
		modelID := cfg.OpenAIModelID
		if modelID == "" {
			modelID = chatbot.DefaultOpenAIModel
		}
		return client, modelID, nil
	default:
		return nil, "", fmt.Errorf("bootstrap: unknown llm provider %q", cfg.LLMProvider)
	}
}

func buildRepository(cfg *appconfig.Config, logger *logging.Logger) (chatbot.ConversationRepository, func() error) {
	if cfg.RedisAddr == "" {
		logger.Info("using in-memory conversation store")
		return chatbot.NewMemoryRepository(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	logger.Info("using redis conversation store", "addr", cfg.RedisAddr)
	return chatbot.NewRedisRepository(client), client.Close
}
