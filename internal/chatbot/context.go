package chatbot

import "strings"

// contextWindowSize bounds how many trailing messages feed the prompt.
const contextWindowSize = 6

// BuildContext renders the most recent messages of a conversation as a
// plain-text transcript, oldest first, one "Role: content" line per message.
// It is recomputed per turn and never persisted.
func BuildContext(conv *Conversation) string {
	if conv == nil || len(conv.Messages) == 0 {
		return ""
	}

	window := conv.Messages
	if len(window) > contextWindowSize {
		window = window[len(window)-contextWindowSize:]
	}

	lines := make([]string, 0, len(window))
	for _, msg := range window {
		label := "Assistant"
		if msg.Role == RoleVisitor {
			label = "Visitor"
		}
		lines = append(lines, label+": "+msg.Content)
	}
	return strings.Join(lines, "\n")
}
