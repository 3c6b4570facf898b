package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAIClient(t *testing.T) {
	_, err := NewOpenAIClient("", "")
	assert.Error(t, err)

	_, err = NewOpenAIClient("   ", "gpt-4.1")
	assert.Error(t, err)

	client, err := NewOpenAIClient("sk-test", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultOpenAIModel, client.modelID)

	client, err = NewOpenAIClient("sk-test", "gpt-4.1")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4.1", client.modelID)
}
