package chatbot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt_ContainsMessageAndContext(t *testing.T) {
	prompt := BuildPrompt("How much is SEO?", "Visitor: hello\nAssistant: hi", nil)

	assert.Contains(t, prompt, "VISITOR MESSAGE: How much is SEO?")
	assert.Contains(t, prompt, "Visitor: hello\nAssistant: hi")
	assert.Contains(t, prompt, "Ethos Digital")
	assert.True(t, strings.HasSuffix(prompt, "Respond with only the JSON object:"))
}

func TestBuildPrompt_NoSlotDirectiveWithoutSlots(t *testing.T) {
	prompt := BuildPrompt("hello", "", nil)

	assert.NotContains(t, prompt, "AVAILABLE APPOINTMENT SLOTS")
}

func TestBuildPrompt_SlotDirective(t *testing.T) {
	slots := []string{"Monday at 9:00 AM", "Tuesday at 3:00 PM"}

	prompt := BuildPrompt("when are you free", "", slots)

	assert.Contains(t, prompt,
		"AVAILABLE APPOINTMENT SLOTS (use these exact times only): Monday at 9:00 AM, Tuesday at 3:00 PM")
}
