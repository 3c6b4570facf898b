package chatbot

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ethosdigital/agency-ai-platform/internal/observability/metrics"
	"github.com/ethosdigital/agency-ai-platform/pkg/logging"
)

var engineTracer = otel.Tracer("agency.internal.chatbot.engine")

const (
	defaultModelID           = DefaultGeminiModel
	defaultMaxTokens         = 1024
	defaultTemperature       = 0.7
	defaultGenerationTimeout = 30 * time.Second
)

// fallbackErrorReply is returned whenever the generation call fails. The
// failure is absorbed: the visitor always gets a reply.
var fallbackErrorReply = StructuredReply{
	Message:           "I apologize, but I'm having trouble processing your request right now. Could you please try rephrasing your question or contact us directly?",
	Intent:            IntentError,
	Confidence:        0,
	Suggestions:       []string{"Contact us directly", "Try again later"},
	ShouldQualifyLead: false,
}

// Engine is the conversational session orchestrator. It owns no state of its
// own; all conversation data lives in the repository, and all mutation goes
// through it. One Engine instance serves the whole process; callers are
// expected to serialize requests per conversation id.
type Engine struct {
	repo    ConversationRepository
	llm     LLMClient
	slots   SlotProvider
	logger  *logging.Logger
	metrics *metrics.ConversationMetrics

	modelID           string
	maxTokens         int32
	temperature       float32
	generationTimeout time.Duration
}

var _ Service = (*Engine)(nil)

// EngineOption configures the engine.
type EngineOption func(*Engine)

// WithModel overrides the generation model id.
func WithModel(modelID string) EngineOption {
	return func(e *Engine) {
		if modelID != "" {
			e.modelID = modelID
		}
	}
}

// WithSamplingParams overrides max output tokens and temperature.
func WithSamplingParams(maxTokens int32, temperature float32) EngineOption {
	return func(e *Engine) {
		if maxTokens > 0 {
			e.maxTokens = maxTokens
		}
		if temperature >= 0 {
			e.temperature = temperature
		}
	}
}

// WithGenerationTimeout bounds each generation call.
func WithGenerationTimeout(d time.Duration) EngineOption {
	return func(e *Engine) {
		if d > 0 {
			e.generationTimeout = d
		}
	}
}

// WithSlotProvider wires the scheduling collaborator.
func WithSlotProvider(slots SlotProvider) EngineOption {
	return func(e *Engine) {
		e.slots = slots
	}
}

// WithMetrics wires Prometheus metrics. Nil-safe either way.
func WithMetrics(m *metrics.ConversationMetrics) EngineOption {
	return func(e *Engine) {
		e.metrics = m
	}
}

// NewEngine constructs the session engine. The repository and LLM client are
// required; the engine must not exist without a working generation backend.
func NewEngine(repo ConversationRepository, llm LLMClient, logger *logging.Logger, opts ...EngineOption) *Engine {
	if repo == nil {
		panic("chatbot: repository cannot be nil")
	}
	if llm == nil {
		panic("chatbot: llm client cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}

	e := &Engine{
		repo:              repo,
		llm:               llm,
		logger:            logger,
		modelID:           defaultModelID,
		maxTokens:         defaultMaxTokens,
		temperature:       defaultTemperature,
		generationTimeout: defaultGenerationTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// StartConversation opens a new conversation seeded with the canonical
// greeting. The greeting is deterministic, never model-generated.
func (e *Engine) StartConversation(ctx context.Context, visitorID, initialMessage string) (*Conversation, error) {
	ctx, span := engineTracer.Start(ctx, "chatbot.start_conversation")
	defer span.End()

	if visitorID == "" {
		return nil, ErrMissingVisitorID
	}

	conv, err := e.repo.CreateConversation(ctx, visitorID, initialMessage)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("chatbot: failed to create conversation: %w", err)
	}

	span.SetAttributes(attribute.String("agency.conversation_id", conv.ID))
	e.logger.Info("started conversation", "conversation_id", conv.ID, "visitor_id", visitorID)
	return conv, nil
}

// ProcessMessage runs one conversation turn: append the visitor message,
// generate a reply, apply the deterministic scheduling override, persist the
// assistant message, and update the conversation's rolling state. The only
// failure that propagates is an unknown conversation id.
func (e *Engine) ProcessMessage(ctx context.Context, conversationID, message, visitorID string) (*StructuredReply, error) {
	ctx, span := engineTracer.Start(ctx, "chatbot.process_message")
	defer span.End()
	span.SetAttributes(
		attribute.String("agency.conversation_id", conversationID),
		attribute.String("agency.visitor_id", visitorID),
	)

	if message == "" {
		return nil, ErrEmptyMessage
	}

	started := time.Now()

	conv, err := e.repo.GetConversation(ctx, conversationID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	var visitorMeta map[string]string
	if signals := ExtractBusinessSignals(message); !signals.Empty() {
		visitorMeta = signalMetadata(signals)
	}
	conv, err = e.repo.AppendMessage(ctx, conversationID, RoleVisitor, message, visitorMeta)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	reply := e.generateReply(ctx, conv, message)

	if signal, ok := DetectSchedulingIntent(message, reply.Message); ok {
		reply.Intent = signal.Intent
		reply.Confidence = signal.Confidence
		reply.Suggestions = append([]string(nil), schedulingSuggestions...)
		e.metrics.ObserveSchedulingIntent()
		e.logger.Info("scheduling intent detected",
			"conversation_id", conversationID,
			"visitor_id", conv.VisitorID,
			"intent", signal.Intent,
			"confidence", signal.Confidence,
		)
	}

	assistantMeta := map[string]string{
		"intent":     reply.Intent,
		"confidence": strconv.FormatFloat(reply.Confidence, 'f', -1, 64),
	}
	if _, err := e.repo.AppendMessage(ctx, conversationID, RoleAssistant, reply.Message, assistantMeta); err != nil {
		span.RecordError(err)
		return nil, err
	}

	if reply.Intent != "" {
		if err := e.repo.SetIntent(ctx, conversationID, reply.Intent); err != nil {
			span.RecordError(err)
			return nil, err
		}
	}
	if reply.ShouldQualifyLead {
		if err := e.repo.MarkLeadQualified(ctx, conversationID); err != nil {
			span.RecordError(err)
			return nil, err
		}
	}

	e.metrics.ObserveTurn(reply.Intent, time.Since(started).Seconds())
	return &reply, nil
}

// generateReply builds the prompt, calls the backend, and parses the result.
// Backend failures never escape: they degrade to the fixed fallback reply.
func (e *Engine) generateReply(ctx context.Context, conv *Conversation, message string) StructuredReply {
	ctx, span := engineTracer.Start(ctx, "chatbot.generate_reply")
	defer span.End()

	var availableSlots []string
	if e.slots != nil && IsSchedulingQuery(message) {
		slots, err := e.slots.AvailableSlots(ctx)
		if err != nil {
			e.logger.Warn("failed to fetch appointment slots", "error", err, "conversation_id", conv.ID)
		} else {
			availableSlots = slots
		}
	}

	prompt := BuildPrompt(message, BuildContext(conv), availableSlots)

	callCtx, cancel := context.WithTimeout(ctx, e.generationTimeout)
	defer cancel()

	resp, err := e.llm.Complete(callCtx, GenerationRequest{
		Model:       e.modelID,
		Prompt:      prompt,
		MaxTokens:   e.maxTokens,
		Temperature: e.temperature,
	})
	if err != nil {
		span.RecordError(err)
		e.metrics.ObserveGenerationFailure()
		e.logger.Error("generation call failed", "error", err, "conversation_id", conv.ID)
		fallback := fallbackErrorReply
		fallback.Suggestions = append([]string(nil), fallbackErrorReply.Suggestions...)
		return fallback
	}

	return ParseStructuredReply(resp.Text)
}

// GetConversation returns the conversation transcript.
func (e *Engine) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	return e.repo.GetConversation(ctx, id)
}

// CreateLead records a lead against a conversation. The conversation id is
// not validated here or in the repository.
func (e *Engine) CreateLead(ctx context.Context, conversationID string, info VisitorInfo, data QualificationData) (*Lead, error) {
	lead, err := e.repo.CreateLead(ctx, conversationID, info, data)
	if err != nil {
		return nil, err
	}
	e.logger.Info("created lead", "lead_id", lead.ID, "conversation_id", conversationID)
	return lead, nil
}

// GetSuggestions returns canned follow-ups for an intent label.
func (e *Engine) GetSuggestions(intent string) []string {
	return SuggestionsForIntent(intent)
}

// QueryAnalytics aggregates conversations and leads over a time range.
func (e *Engine) QueryAnalytics(ctx context.Context, start, end time.Time) (*Analytics, error) {
	conversations, err := e.repo.ListConversations(ctx)
	if err != nil {
		return nil, fmt.Errorf("chatbot: failed to list conversations: %w", err)
	}
	leads, err := e.repo.ListLeads(ctx)
	if err != nil {
		return nil, fmt.Errorf("chatbot: failed to list leads: %w", err)
	}
	return ComputeAnalytics(conversations, leads, start, end), nil
}

func signalMetadata(signals BusinessSignals) map[string]string {
	meta := make(map[string]string, 3)
	if signals.Industry != "" {
		meta["industry"] = signals.Industry
	}
	if signals.Budget != "" {
		meta["budget"] = signals.Budget
	}
	if len(signals.Goals) > 0 {
		meta["goals"] = signals.Goals[0]
		for _, g := range signals.Goals[1:] {
			meta["goals"] += ", " + g
		}
	}
	return meta
}
