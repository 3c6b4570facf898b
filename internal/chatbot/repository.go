package chatbot

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// welcomeMessage is the single canonical greeting. It is deterministic, never
// model-generated, and always the first message of a conversation.
const welcomeMessage = `Hi there! I'm your AI assistant from Ethos Digital. I'm here to help you learn about our digital marketing services and see how we can help grow your business.

We specialize in:
- SEO & Search Engine Optimization
- PPC Advertising & Google Ads
- Web Development & Design
- Content Marketing & Strategy
- Social Media Management
- Analytics & Performance Tracking

What brings you to our website today? Are you looking for help with any specific aspect of your digital marketing?`

// ConversationRepository owns all Conversation and Lead entities. The
// in-memory implementation is the default; a durable backend can be swapped
// in without touching the engine.
type ConversationRepository interface {
	CreateConversation(ctx context.Context, visitorID, initialMessage string) (*Conversation, error)
	GetConversation(ctx context.Context, id string) (*Conversation, error)
	AppendMessage(ctx context.Context, conversationID string, role Role, content string, metadata map[string]string) (*Conversation, error)
	SetIntent(ctx context.Context, conversationID, intent string) error
	MarkLeadQualified(ctx context.Context, conversationID string) error
	CreateLead(ctx context.Context, conversationID string, info VisitorInfo, data QualificationData) (*Lead, error)
	ListConversations(ctx context.Context) ([]*Conversation, error)
	ListLeads(ctx context.Context) ([]*Lead, error)
}

// MemoryRepository keeps conversations and leads in process memory behind a
// RWMutex. Entities live for the process lifetime; archival is an external
// concern.
type MemoryRepository struct {
	mu            sync.RWMutex
	conversations map[string]*Conversation
	leads         map[string]*Lead
	convOrder     []string
	leadOrder     []string
	now           func() time.Time
}

var _ ConversationRepository = (*MemoryRepository)(nil)

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		conversations: make(map[string]*Conversation),
		leads:         make(map[string]*Lead),
		now:           time.Now,
	}
}

// CreateConversation registers a new conversation seeded with the canonical
// welcome message and, when provided, the visitor's opening message.
func (r *MemoryRepository) CreateConversation(_ context.Context, visitorID, initialMessage string) (*Conversation, error) {
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

	r.mu.Lock()
	r.conversations[conversationID] = conv
	r.convOrder = append(r.convOrder, conversationID)
	r.mu.Unlock()

	return copyConversation(conv), nil
}

// GetConversation returns a copy of the conversation or ErrConversationNotFound.
func (r *MemoryRepository) GetConversation(_ context.Context, id string) (*Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conv, ok := r.conversations[id]
	if !ok {
		return nil, ErrConversationNotFound
	}
	return copyConversation(conv), nil
}

// AppendMessage appends one immutable message to the transcript.
func (r *MemoryRepository) AppendMessage(_ context.Context, conversationID string, role Role, content string, metadata map[string]string) (*Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv, ok := r.conversations[conversationID]
	if !ok {
		return nil, ErrConversationNotFound
	}

	conv.Messages = append(conv.Messages, Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		Role:           role,
		Content:        content,
		Timestamp:      r.now().UTC(),
		Metadata:       metadata,
	})
	return copyConversation(conv), nil
}

// SetIntent updates the conversation's rolling intent label.
func (r *MemoryRepository) SetIntent(_ context.Context, conversationID, intent string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv, ok := r.conversations[conversationID]
	if !ok {
		return ErrConversationNotFound
	}
	conv.Intent = intent
	return nil
}

// MarkLeadQualified sets the lead-qualified flag. The flag is monotonic:
// there is deliberately no operation to clear it.
func (r *MemoryRepository) MarkLeadQualified(_ context.Context, conversationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	conv, ok := r.conversations[conversationID]
	if !ok {
		return ErrConversationNotFound
	}
	conv.LeadQualified = true
	return nil
}

// CreateLead records a lead tied to a conversation id. The conversation id
// is not validated on purpose; lead capture must not fail because the
// originating conversation was already archived.
func (r *MemoryRepository) CreateLead(_ context.Context, conversationID string, info VisitorInfo, data QualificationData) (*Lead, error) {
	lead := &Lead{
		ID:                uuid.NewString(),
		ConversationID:    conversationID,
		VisitorInfo:       info,
		QualificationData: data,
		Status:            LeadStatusNew,
		CreatedAt:         r.now().UTC(),
	}

	r.mu.Lock()
	r.leads[lead.ID] = lead
	r.leadOrder = append(r.leadOrder, lead.ID)
	r.mu.Unlock()

	out := *lead
	return &out, nil
}

// ListConversations returns a snapshot of all conversations in creation order.
func (r *MemoryRepository) ListConversations(_ context.Context) ([]*Conversation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Conversation, 0, len(r.convOrder))
	for _, id := range r.convOrder {
		if conv, ok := r.conversations[id]; ok {
			out = append(out, copyConversation(conv))
		}
	}
	return out, nil
}

// ListLeads returns a snapshot of all leads in creation order.
func (r *MemoryRepository) ListLeads(_ context.Context) ([]*Lead, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Lead, 0, len(r.leadOrder))
	for _, id := range r.leadOrder {
		if lead, ok := r.leads[id]; ok {
			copied := *lead
			out = append(out, &copied)
		}
	}
	return out, nil
}

// copyConversation returns a deep enough copy that callers cannot mutate the
// stored transcript.
func copyConversation(conv *Conversation) *Conversation {
	out := *conv
	out.Messages = make([]Message, len(conv.Messages))
	copy(out.Messages, conv.Messages)
	if conv.EndTime != nil {
		end := *conv.EndTime
		out.EndTime = &end
	}
	return &out
}
