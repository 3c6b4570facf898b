package chatbot

import (
	"encoding/json"
	"regexp"
	"strings"
)

// jsonObjectRE grabs the first balanced-looking JSON object: greedy, from the
// first '{' to the last '}'. Models often wrap the object in prose or code
// fences, so we never require the payload to be the whole response.
var jsonObjectRE = regexp.MustCompile(`(?s)\{.*\}`)

// replyEnvelope is the permissive wire shape of a model reply. Pointer fields
// distinguish "absent" from zero values so defaults apply per field.
type replyEnvelope struct {
	Message           *string  `json:"message"`
	Intent            *string  `json:"intent"`
	Confidence        *float64 `json:"confidence"`
	Suggestions       []string `json:"suggestions"`
	ShouldQualifyLead *bool    `json:"shouldQualifyLead"`
}

// Parser fallback defaults. A parsed object that merely omits a field gets
// the parsed-path defaults; unparsable output gets the lower fallback
// confidence.
const (
	parsedDefaultConfidence = 0.8
	fallbackReplyConfidence = 0.5
)

// ParseStructuredReply normalizes raw model output into a StructuredReply.
// It never fails: malformed or missing JSON degrades to treating the whole
// raw text as the reply message.
func ParseStructuredReply(raw string) StructuredReply {
	trimmed := strings.TrimSpace(raw)

	match := jsonObjectRE.FindString(trimmed)
	if match == "" {
		return fallbackReply(trimmed)
	}

	var envelope replyEnvelope
	if err := json.Unmarshal([]byte(match), &envelope); err != nil {
		return fallbackReply(trimmed)
	}

	reply := StructuredReply{
		Message:     trimmed,
		Intent:      IntentGeneral,
		Confidence:  parsedDefaultConfidence,
		Suggestions: []string{},
	}
	if envelope.Message != nil {
		reply.Message = *envelope.Message
	}
	if envelope.Intent != nil && IsKnownIntent(*envelope.Intent) {
		reply.Intent = *envelope.Intent
	}
	if envelope.Confidence != nil {
		reply.Confidence = clampConfidence(*envelope.Confidence)
	}
	if envelope.Suggestions != nil {
		reply.Suggestions = envelope.Suggestions
	}
	if envelope.ShouldQualifyLead != nil {
		reply.ShouldQualifyLead = *envelope.ShouldQualifyLead
	}
	return reply
}

func fallbackReply(raw string) StructuredReply {
	return StructuredReply{
		Message:     raw,
		Intent:      IntentGeneral,
		Confidence:  fallbackReplyConfidence,
		Suggestions: []string{},
	}
}

func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
