package chatbot

import "errors"

var (
	// ErrConversationNotFound is returned when a conversation id is unknown.
	// This is the only engine failure that propagates to the caller.
	ErrConversationNotFound = errors.New("chatbot: conversation not found")

	// ErrMissingVisitorID is returned when a conversation is started without
	// a visitor identity.
	ErrMissingVisitorID = errors.New("chatbot: visitor id is required")

	// ErrEmptyMessage is returned when a turn carries no text.
	ErrEmptyMessage = errors.New("chatbot: message is required")
)
