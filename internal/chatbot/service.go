package chatbot

import (
	"context"
	"time"
)

// Role identifies the author of a transcript message.
type Role string

const (
	RoleVisitor   Role = "visitor"
	RoleAssistant Role = "assistant"
)

// ConversationStatus tracks the lifecycle of a conversation. Conversations
// are created active; ending them is an external concern (archival, timeout).
type ConversationStatus string

const (
	StatusActive ConversationStatus = "active"
	StatusEnded  ConversationStatus = "ended"
)

// Intent labels form a closed vocabulary shared by the prompt template, the
// response parser, and the suggestion table.
const (
	IntentServiceInquiry        = "service_inquiry"
	IntentPricing               = "pricing"
	IntentTeamInfo              = "team_info"
	IntentLeadQualification     = "lead_qualification"
	IntentAppointment           = "appointment"
	IntentGeneral               = "general"
	IntentError                 = "error"
	IntentAppointmentScheduling = "appointment_scheduling"
)

var knownIntents = map[string]struct{}{
	IntentServiceInquiry:        {},
	IntentPricing:               {},
	IntentTeamInfo:              {},
	IntentLeadQualification:     {},
	IntentAppointment:           {},
	IntentGeneral:               {},
	IntentError:                 {},
	IntentAppointmentScheduling: {},
}

// IsKnownIntent reports whether label is part of the closed intent set.
func IsKnownIntent(label string) bool {
	_, ok := knownIntents[label]
	return ok
}

// Message is a single transcript entry. Messages are immutable once appended.
type Message struct {
	ID             string            `json:"id"`
	ConversationID string            `json:"conversationId"`
	Role           Role              `json:"role"`
	Content        string            `json:"content"`
	Timestamp      time.Time         `json:"timestamp"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// Conversation is a bounded, ordered exchange between one visitor and the
// assistant. Messages are append-only and chronological.
type Conversation struct {
	ID            string             `json:"id"`
	VisitorID     string             `json:"visitorId"`
	SessionID     string             `json:"sessionId"`
	StartTime     time.Time          `json:"startTime"`
	EndTime       *time.Time         `json:"endTime,omitempty"`
	Status        ConversationStatus `json:"status"`
	Messages      []Message          `json:"messages"`
	Intent        string             `json:"intent,omitempty"`
	LeadQualified bool               `json:"leadQualified"`
}

// StructuredReply is the normalized output of one generation turn.
type StructuredReply struct {
	Message           string   `json:"message"`
	Intent            string   `json:"intent"`
	Confidence        float64  `json:"confidence"`
	Suggestions       []string `json:"suggestions"`
	ShouldQualifyLead bool     `json:"shouldQualifyLead"`
}

// VisitorInfo holds whatever contact details the visitor shared. All fields
// are optional.
type VisitorInfo struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Company string `json:"company,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
}

// QualificationData captures the business context gathered during the
// conversation for sales follow-up.
type QualificationData struct {
	BusinessType      string   `json:"businessType"`
	Budget            string   `json:"budget"`
	Timeline          string   `json:"timeline"`
	PrimaryGoal       string   `json:"primaryGoal"`
	CurrentChallenges []string `json:"currentChallenges"`
}

// LeadStatus tracks a lead through the sales pipeline.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusQualified LeadStatus = "qualified"
	LeadStatusConverted LeadStatus = "converted"
)

// Lead is a qualified visitor record produced from conversation data.
type Lead struct {
	ID                string            `json:"id"`
	ConversationID    string            `json:"conversationId"`
	VisitorInfo       VisitorInfo       `json:"visitorInfo"`
	QualificationData QualificationData `json:"qualificationData"`
	Status            LeadStatus        `json:"status"`
	CreatedAt         time.Time         `json:"createdAt"`
}

// Service describes the operation surface the chatbot engine exposes to the
// rest of the application.
type Service interface {
	StartConversation(ctx context.Context, visitorID, initialMessage string) (*Conversation, error)
	ProcessMessage(ctx context.Context, conversationID, message, visitorID string) (*StructuredReply, error)
	GetConversation(ctx context.Context, id string) (*Conversation, error)
	CreateLead(ctx context.Context, conversationID string, info VisitorInfo, data QualificationData) (*Lead, error)
	GetSuggestions(intent string) []string
	QueryAnalytics(ctx context.Context, start, end time.Time) (*Analytics, error)
}
