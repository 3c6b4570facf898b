package chatbot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// conversationTTL bounds how long an idle conversation survives in Redis.
// Expiry acts as the external archival step the engine itself never performs.
const conversationTTL = 24 * time.Hour

const (
	conversationIndexKey = "chatbot:conversations"
	leadIndexKey         = "chatbot:leads"
)

// RedisRepository is a ConversationRepository backed by Redis. Conversations
// and leads are stored as JSON documents with list indexes preserving
// creation order.
type RedisRepository struct {
	client *redis.Client
	tracer trace.Tracer
	now    func() time.Time
}

var _ ConversationRepository = (*RedisRepository)(nil)

// NewRedisRepository creates a Redis-backed repository.
func NewRedisRepository(client *redis.Client) *RedisRepository {
	if client == nil {
		panic("chatbot: redis client cannot be nil")
	}
	return &RedisRepository{
		client: client,
		tracer: otel.Tracer("agency.internal.chatbot.redis"),
		now:    time.Now,
	}
}

func conversationKey(id string) string {
	return fmt.Sprintf("chatbot:conversation:%s", id)
}

func leadKey(id string) string {
	return fmt.Sprintf("chatbot:lead:%s", id)
}

// CreateConversation registers a new conversation seeded with the canonical
// welcome message.
func (r *RedisRepository) CreateConversation(ctx context.Context, visitorID, initialMessage string) (*Conversation, error) {
	ctx, span := r.tracer.Start(ctx, "chatbot.redis.create_conversation")
	defer span.End()

	conversationID := uuid.NewString()
	now := r.now().UTC()

	conv := &Conversation{
		ID:        conversationID,
		VisitorID: visitorID,
		SessionID: uuid.NewString(),
		StartTime: now,
		Status:    StatusActive,
	}
	conv.Messages = append(conv.Messages, Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Role:           RoleAssistant,
		Content:        welcomeMessage,
		Timestamp:      now,
	})
	if initialMessage != "" {
		conv.Messages = append(conv.Messages, Message{
			ID:             uuid.NewString(),
			ConversationID: conversationID,
			Role:           RoleVisitor,
			Content:        initialMessage,
			Timestamp:      now,
		})
	}

	if err := r.save(ctx, conv); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := r.client.RPush(ctx, conversationIndexKey, conversationID).Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("chatbot: failed to index conversation: %w", err)
	}
	return conv, nil
}

// GetConversation loads a conversation or returns ErrConversationNotFound.
func (r *RedisRepository) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	ctx, span := r.tracer.Start(ctx, "chatbot.redis.get_conversation")
	defer span.End()
	return r.load(ctx, id)
}

// AppendMessage loads, appends, and saves the conversation. Per-conversation
// requests are serialized by the caller, so read-modify-write is safe here.
func (r *RedisRepository) AppendMessage(ctx context.Context, conversationID string, role Role, content string, metadata map[string]string) (*Conversation, error) {
	ctx, span := r.tracer.Start(ctx, "chatbot.redis.append_message")
	defer span.End()

	conv, err := r.load(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	conv.Messages = append(conv.Messages, Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		Timestamp:      r.now().UTC(),
		Metadata:       metadata,
	})
	if err := r.save(ctx, conv); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return conv, nil
}

// SetIntent updates the rolling intent label.
func (r *RedisRepository) SetIntent(ctx context.Context, conversationID, intent string) error {
	conv, err := r.load(ctx, conversationID)
	if err != nil {
		return err
	}
	conv.Intent = intent
	return r.save(ctx, conv)
}

// MarkLeadQualified sets the monotonic lead-qualified flag.
func (r *RedisRepository) MarkLeadQualified(ctx context.Context, conversationID string) error {
	conv, err := r.load(ctx, conversationID)
	if err != nil {
		return err
	}
	conv.LeadQualified = true
	return r.save(ctx, conv)
}

// CreateLead stores a lead without validating the conversation id, matching
// the in-memory repository.
func (r *RedisRepository) CreateLead(ctx context.Context, conversationID string, info VisitorInfo, data QualificationData) (*Lead, error) {
	ctx, span := r.tracer.Start(ctx, "chatbot.redis.create_lead")
	defer span.End()

	lead := &Lead{
		ID:                uuid.NewString(),
		ConversationID:    conversationID,
		VisitorInfo:       info,
		QualificationData: data,
		Status:            LeadStatusNew,
		CreatedAt:         r.now().UTC(),
	}

	payload, err := json.Marshal(lead)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("chatbot: failed to marshal lead: %w", err)
	}
	if err := r.client.Set(ctx, leadKey(lead.ID), payload, 0).Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("chatbot: failed to persist lead: %w", err)
	}
	if err := r.client.RPush(ctx, leadIndexKey, lead.ID).Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("chatbot: failed to index lead: %w", err)
	}
	return lead, nil
}

// ListConversations returns all live conversations in creation order.
// Conversations whose keys have expired are skipped.
func (r *RedisRepository) ListConversations(ctx context.Context) ([]*Conversation, error) {
	ctx, span := r.tracer.Start(ctx, "chatbot.redis.list_conversations")
	defer span.End()

	ids, err := r.client.LRange(ctx, conversationIndexKey, 0, -1).Result()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("chatbot: failed to list conversations: %w", err)
	}

	out := make([]*Conversation, 0, len(ids))
	for _, id := range ids {
		conv, err := r.load(ctx, id)
		if err == ErrConversationNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, conv)
	}
	return out, nil
}

// ListLeads returns all stored leads in creation order.
func (r *RedisRepository) ListLeads(ctx context.Context) ([]*Lead, error) {
	ctx, span := r.tracer.Start(ctx, "chatbot.redis.list_leads")
	defer span.End()

	ids, err := r.client.LRange(ctx, leadIndexKey, 0, -1).Result()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("chatbot: failed to list leads: %w", err)
	}

	out := make([]*Lead, 0, len(ids))
	for _, id := range ids {
		data, err := r.client.Get(ctx, leadKey(id)).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("chatbot: failed to load lead: %w", err)
		}
		var lead Lead
		if err := json.Unmarshal(data, &lead); err != nil {
			return nil, fmt.Errorf("chatbot: failed to decode lead: %w", err)
		}
		out = append(out, &lead)
	}
	return out, nil
}

func (r *RedisRepository) save(ctx context.Context, conv *Conversation) error {
	data, err := json.Marshal(conv)
	if err != nil {
		return fmt.Errorf("chatbot: failed to marshal conversation: %w", err)
	}
	if err := r.client.Set(ctx, conversationKey(conv.ID), data, conversationTTL).Err(); err != nil {
		return fmt.Errorf("chatbot: failed to persist conversation: %w", err)
	}
	return nil
}

func (r *RedisRepository) load(ctx context.Context, id string) (*Conversation, error) {
	data, err := r.client.Get(ctx, conversationKey(id)).Bytes()
	if err == redis.Nil {
		return nil, ErrConversationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("chatbot: failed to load conversation: %w", err)
	}
	var conv Conversation
	if err := json.Unmarshal(data, &conv); err != nil {
		return nil, fmt.Errorf("chatbot: failed to decode conversation: %w", err)
	}
	return &conv, nil
}
