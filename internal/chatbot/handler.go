package chatbot

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ethosdigital/agency-ai-platform/pkg/logging"
)

const maxMessageLength = 1000

// Handler wires HTTP requests to the chatbot service.
type Handler struct {
	service Service
	logger  *logging.Logger
}

// NewHandler creates a chatbot handler.
func NewHandler(service Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Routes mounts the chatbot endpoints on a chi router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/conversation/start", h.StartConversation)
	r.Post("/message", h.Message)
	r.Get("/conversation/{id}", h.GetConversation)
	r.Post("/lead", h.CreateLead)
	r.Get("/analytics", h.Analytics)
	r.Get("/suggestions/{intent}", h.Suggestions)
	return r
}

type startConversationRequest struct {
	VisitorID      string `json:"visitorId"`
	InitialMessage string `json:"initialMessage"`
}

// StartConversation handles POST /chatbot/conversation/start.
func (h *Handler) StartConversation(w http.ResponseWriter, r *http.Request) {
	var req startConversationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	conv, err := h.service.StartConversation(r.Context(), req.VisitorID, req.InitialMessage)
	if err != nil {
		if errors.Is(err, ErrMissingVisitorID) {
			h.writeError(w, http.StatusBadRequest, "Visitor ID required")
			return
		}
		h.logger.Error("failed to start conversation", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to start conversation")
		return
	}

	greeting := "Welcome! How can I help you today?"
	for _, msg := range conv.Messages {
		if msg.Role == RoleAssistant {
			greeting = msg.Content
			break
		}
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"conversationId": conv.ID,
		"message":        greeting,
	})
}

type messageRequest struct {
	ConversationID string `json:"conversationId"`
	Message        string `json:"message"`
	VisitorID      string `json:"visitorId"`
}

// Message handles POST /chatbot/message.
func (h *Handler) Message(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" || len(req.Message) > maxMessageLength {
		h.writeError(w, http.StatusBadRequest, "Message must be between 1 and 1000 characters")
		return
	}

	reply, err := h.service.ProcessMessage(r.Context(), req.ConversationID, req.Message, req.VisitorID)
	if err != nil {
		if errors.Is(err, ErrConversationNotFound) {
			h.writeError(w, http.StatusNotFound, "Conversation not found")
			return
		}
		h.logger.Error("failed to process message", "error", err, "conversation_id", req.ConversationID)
		h.writeError(w, http.StatusInternalServerError, "Failed to process message")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"response":    reply.Message,
		"intent":      reply.Intent,
		"confidence":  reply.Confidence,
		"suggestions": reply.Suggestions,
	})
}

// GetConversation handles GET /chatbot/conversation/{id}.
func (h *Handler) GetConversation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	conv, err := h.service.GetConversation(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrConversationNotFound) {
			h.writeError(w, http.StatusNotFound, "Conversation not found")
			return
		}
		h.logger.Error("failed to fetch conversation", "error", err, "conversation_id", id)
		h.writeError(w, http.StatusInternalServerError, "Failed to fetch conversation")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"conversation": conv,
	})
}

type createLeadRequest struct {
	ConversationID    string            `json:"conversationId"`
	VisitorInfo       VisitorInfo       `json:"visitorInfo"`
	QualificationData QualificationData `json:"qualificationData"`
}

// CreateLead handles POST /chatbot/lead.
func (h *Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var req createLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ConversationID == "" {
		h.writeError(w, http.StatusBadRequest, "Valid conversation ID required")
		return
	}

	lead, err := h.service.CreateLead(r.Context(), req.ConversationID, req.VisitorInfo, req.QualificationData)
	if err != nil {
		h.logger.Error("failed to create lead", "error", err, "conversation_id", req.ConversationID)
		h.writeError(w, http.StatusInternalServerError, "Failed to create lead")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"leadId":  lead.ID,
		"message": "Lead created successfully",
	})
}

// Analytics handles GET /chatbot/analytics?startDate=&endDate=.
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	end := time.Now().UTC()
	start := end.Add(-30 * 24 * time.Hour)

	if raw := r.URL.Query().Get("startDate"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "Invalid startDate")
			return
		}
		start = parsed
	}
	if raw := r.URL.Query().Get("endDate"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "Invalid endDate")
			return
		}
		end = parsed
	}

	analytics, err := h.service.QueryAnalytics(r.Context(), start, end)
	if err != nil {
		h.logger.Error("failed to fetch analytics", "error", err)
		h.writeError(w, http.StatusInternalServerError, "Failed to fetch analytics")
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"analytics": analytics,
	})
}

// Suggestions handles GET /chatbot/suggestions/{intent}.
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	intent := chi.URLParam(r, "intent")
	h.writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"suggestions": h.service.GetSuggestions(intent),
	})
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]any{
		"success": false,
		"error":   message,
	})
}
