package chatbot

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildContext_Empty(t *testing.T) {
	assert.Equal(t, "", BuildContext(nil))
	assert.Equal(t, "", BuildContext(&Conversation{}))
}

func TestBuildContext_Labels(t *testing.T) {
	conv := &Conversation{Messages: []Message{
		{Role: RoleAssistant, Content: "Hi there!"},
		{Role: RoleVisitor, Content: "I need help with SEO"},
	}}

	got := BuildContext(conv)

	assert.Equal(t, "Assistant: Hi there!\nVisitor: I need help with SEO", got)
}

func TestBuildContext_WindowKeepsLastSix(t *testing.T) {
	conv := &Conversation{}
	for i := 0; i < 9; i++ {
		role := RoleVisitor
		if i%2 == 0 {
			role = RoleAssistant
		}
		conv.Messages = append(conv.Messages, Message{Role: role, Content: fmt.Sprintf("msg-%d", i)})
	}

	got := BuildContext(conv)
	lines := strings.Split(got, "\n")

	assert.Len(t, lines, 6)
	assert.Equal(t, "Visitor: msg-3", lines[0])
	assert.Equal(t, "Assistant: msg-8", lines[5])
}
