package chatbot

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService lets each handler test script the engine's behavior.
type stubService struct {
	startFn       func(ctx context.Context, visitorID, initialMessage string) (*Conversation, error)
	processFn     func(ctx context.Context, conversationID, message, visitorID string) (*StructuredReply, error)
	getFn         func(ctx context.Context, id string) (*Conversation, error)
	createLeadFn  func(ctx context.Context, conversationID string, info VisitorInfo, data QualificationData) (*Lead, error)
	suggestionsFn func(intent string) []string
	analyticsFn   func(ctx context.Context, start, end time.Time) (*Analytics, error)
}

func (s *stubService) StartConversation(ctx context.Context, visitorID, initialMessage string) (*Conversation, error) {
	return s.startFn(ctx, visitorID, initialMessage)
}

func (s *stubService) ProcessMessage(ctx context.Context, conversationID, message, visitorID string) (*StructuredReply, error) {
	return s.processFn(ctx, conversationID, message, visitorID)
}

func (s *stubService) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	return s.getFn(ctx, id)
}

func (s *stubService) CreateLead(ctx context.Context, conversationID string, info VisitorInfo, data QualificationData) (*Lead, error) {
	return s.createLeadFn(ctx, conversationID, info, data)
}

func (s *stubService) GetSuggestions(intent string) []string {
	if s.suggestionsFn == nil {
		return nil
	}
	return s.suggestionsFn(intent)
}

func (s *stubService) QueryAnalytics(ctx context.Context, start, end time.Time) (*Analytics, error) {
	return s.analyticsFn(ctx, start, end)
}

func doRequest(t *testing.T, h *Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHandler_StartConversation(t *testing.T) {
	svc := &stubService{
		startFn: func(_ context.Context, visitorID, _ string) (*Conversation, error) {
			return &Conversation{
				ID:        "conv-1",
				VisitorID: visitorID,
				Messages: []Message{
					{Role: RoleAssistant, Content: "Hi there! Welcome to Ethos Digital."},
				},
			}, nil
		},
	}
	h := NewHandler(svc, nil)

	rec := doRequest(t, h, http.MethodPost, "/conversation/start", map[string]string{
		"visitorId": "visitor-1",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "conv-1", body["conversationId"])
	assert.Equal(t, "Hi there! Welcome to Ethos Digital.", body["message"])
}

func TestHandler_StartConversation_MissingVisitor(t *testing.T) {
	svc := &stubService{
		startFn: func(_ context.Context, _, _ string) (*Conversation, error) {
			return nil, ErrMissingVisitorID
		},
	}
	h := NewHandler(svc, nil)

	rec := doRequest(t, h, http.MethodPost, "/conversation/start", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
}

func TestHandler_Message(t *testing.T) {
	svc := &stubService{
		processFn: func(_ context.Context, conversationID, message, _ string) (*StructuredReply, error) {
			assert.Equal(t, "conv-1", conversationID)
			assert.Equal(t, "hello", message)
			return &StructuredReply{
				Message:     "Hi! How can I help?",
				Intent:      IntentGeneral,
				Confidence:  0.8,
				Suggestions: []string{"Tell me about SEO"},
			}, nil
		},
	}
	h := NewHandler(svc, nil)

	rec := doRequest(t, h, http.MethodPost, "/message", map[string]string{
		"conversationId": "conv-1",
		"message":        "hello",
		"visitorId":      "visitor-1",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Hi! How can I help?", body["response"])
	assert.Equal(t, "general", body["intent"])
	assert.InDelta(t, 0.8, body["confidence"].(float64), 1e-9)
}

func TestHandler_Message_Validation(t *testing.T) {
	called := false
	svc := &stubService{
		processFn: func(_ context.Context, _, _, _ string) (*StructuredReply, error) {
			called = true
			return &StructuredReply{}, nil
		},
	}
	h := NewHandler(svc, nil)

	rec := doRequest(t, h, http.MethodPost, "/message", map[string]string{
		"conversationId": "conv-1",
		"message":        "",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, h, http.MethodPost, "/message", map[string]string{
		"conversationId": "conv-1",
		"message":        strings.Repeat("a", 1001),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, called)

	// Exactly at the limit is accepted.
	rec = doRequest(t, h, http.MethodPost, "/message", map[string]string{
		"conversationId": "conv-1",
		"message":        strings.Repeat("a", 1000),
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestHandler_Message_UnknownConversation(t *testing.T) {
	svc := &stubService{
		processFn: func(_ context.Context, _, _, _ string) (*StructuredReply, error) {
			return nil, ErrConversationNotFound
		},
	}
	h := NewHandler(svc, nil)

	rec := doRequest(t, h, http.MethodPost, "/message", map[string]string{
		"conversationId": "nope",
		"message":        "hello",
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_GetConversation(t *testing.T) {
	svc := &stubService{
		getFn: func(_ context.Context, id string) (*Conversation, error) {
			if id != "conv-1" {
				return nil, ErrConversationNotFound
			}
			return &Conversation{ID: "conv-1", Status: StatusActive}, nil
		},
	}
	h := NewHandler(svc, nil)

	rec := doRequest(t, h, http.MethodGet, "/conversation/conv-1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	conv := body["conversation"].(map[string]any)
	assert.Equal(t, "conv-1", conv["id"])

	rec = doRequest(t, h, http.MethodGet, "/conversation/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_CreateLead(t *testing.T) {
	svc := &stubService{
		createLeadFn: func(_ context.Context, conversationID string, info VisitorInfo, _ QualificationData) (*Lead, error) {
			assert.Equal(t, "conv-1", conversationID)
			assert.Equal(t, "Pat", info.Name)
			return &Lead{ID: "lead-1", ConversationID: conversationID}, nil
		},
	}
	h := NewHandler(svc, nil)

	rec := doRequest(t, h, http.MethodPost, "/lead", map[string]any{
		"conversationId": "conv-1",
		"visitorInfo":    map[string]string{"name": "Pat"},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "lead-1", body["leadId"])
}

func TestHandler_CreateLead_RequiresConversationID(t *testing.T) {
	h := NewHandler(&stubService{}, nil)

	rec := doRequest(t, h, http.MethodPost, "/lead", map[string]any{
		"visitorInfo": map[string]string{"name": "Pat"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Analytics(t *testing.T) {
	var gotStart, gotEnd time.Time
	svc := &stubService{
		analyticsFn: func(_ context.Context, start, end time.Time) (*Analytics, error) {
			gotStart, gotEnd = start, end
			return &Analytics{TotalConversations: 7}, nil
		},
	}
	h := NewHandler(svc, nil)

	rec := doRequest(t, h, http.MethodGet, "/analytics?startDate=2026-08-01&endDate=2026-08-31", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), gotStart)
	assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), gotEnd)
	body := decodeBody(t, rec)
	analytics := body["analytics"].(map[string]any)
	assert.Equal(t, float64(7), analytics["totalConversations"])
}

func TestHandler_Analytics_DefaultsToLastThirtyDays(t *testing.T) {
	var gotStart, gotEnd time.Time
	svc := &stubService{
		analyticsFn: func(_ context.Context, start, end time.Time) (*Analytics, error) {
			gotStart, gotEnd = start, end
			return &Analytics{}, nil
		},
	}
	h := NewHandler(svc, nil)

	rec := doRequest(t, h, http.MethodGet, "/analytics", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.WithinDuration(t, time.Now().UTC(), gotEnd, 5*time.Second)
	assert.WithinDuration(t, gotEnd.Add(-30*24*time.Hour), gotStart, 5*time.Second)
}

func TestHandler_Analytics_BadDate(t *testing.T) {
	h := NewHandler(&stubService{}, nil)

	rec := doRequest(t, h, http.MethodGet, "/analytics?startDate=not-a-date", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_Suggestions(t *testing.T) {
	svc := &stubService{
		suggestionsFn: func(intent string) []string {
			assert.Equal(t, "pricing", intent)
			return []string{"What are your typical project costs?"}
		},
	}
	h := NewHandler(svc, nil)

	rec := doRequest(t, h, http.MethodGet, "/suggestions/pricing", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, []any{"What are your typical project costs?"}, body["suggestions"])
}
