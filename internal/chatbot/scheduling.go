package chatbot

import (
	"regexp"
	"strings"
)

// slotQueryKeywords flag messages that should trigger an availability lookup
// before prompting the model. Pure substring containment, case-insensitive.
var slotQueryKeywords = []string{
	"available", "time", "slot", "when", "schedule", "appointment",
	"what time", "what day", "availability", "open",
}

// IsSchedulingQuery reports whether the visitor message is asking about
// availability or times.
func IsSchedulingQuery(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range slotQueryKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// schedulingActionKeywords indicate the visitor (or the drafted reply) is
// talking about arranging a meeting.
var schedulingActionKeywords = []string{
	"appointment", "schedule", "meeting", "consultation", "call", "meet",
	"book", "reserve", "set up", "arrange", "coordinate", "plan",
}

// dayTimeKeywords cover weekdays, day parts, clock terms, and months.
var dayTimeKeywords = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
	"morning", "afternoon", "evening", "am", "pm", "o'clock", "hour",
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// urgencyKeywords indicate frustration or a preference to move straight to
// scheduling. Checked against the visitor message only.
var urgencyKeywords = []string{
	"rather", "just", "simply", "directly", "instead", "prefer",
	"don't know", "not sure", "confused", "complicated",
}

var schedulingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:when|what time|what day).*(?:available|work|good|convenient)`),
	regexp.MustCompile(`(?i)(?:schedule|book|set up).*(?:appointment|meeting|consultation)`),
	regexp.MustCompile(`(?i)(?:available|free).*(?:monday|tuesday|wednesday|thursday|friday)`),
	regexp.MustCompile(`(?i)(?:prefer|like).*(?:morning|afternoon|evening)`),
	regexp.MustCompile(`(?i)(?:rather|just|simply).*(?:schedule|meet|call|consult)`),
}

// Scheduling confidence weights. The score is additive and order-independent;
// tests depend on the exact arithmetic, so treat these as frozen.
const (
	schedulingBaseConfidence    = 0.6
	schedulingKeywordWeight     = 0.2
	schedulingTimeWeight        = 0.1
	schedulingPatternWeight     = 0.1
	schedulingUrgencyWeight     = 0.2
	schedulingComboBonus        = 0.1
	schedulingConfidenceCeiling = 0.95
)

// IntentSignal is a deterministic intent detection result.
type IntentSignal struct {
	Intent     string
	Confidence float64
}

// DetectSchedulingIntent scores the combined visitor message and drafted
// assistant reply for scheduling intent. It returns false when none of the
// four signals fire. The scoring is a heuristic rule engine, not a
// classifier: fixed increments per signal, fixed combination bonuses, capped
// at 0.95.
func DetectSchedulingIntent(userText, assistantText string) (IntentSignal, bool) {
	lowerUser := strings.ToLower(userText)
	lowerAssistant := strings.ToLower(assistantText)

	hasKeyword := containsAny(lowerUser, schedulingActionKeywords) ||
		containsAny(lowerAssistant, schedulingActionKeywords)
	hasTime := containsAny(lowerUser, dayTimeKeywords) ||
		containsAny(lowerAssistant, dayTimeKeywords)
	hasUrgency := containsAny(lowerUser, urgencyKeywords)

	hasPattern := false
	for _, pat := range schedulingPatterns {
		if pat.MatchString(userText) || pat.MatchString(assistantText) {
			hasPattern = true
			break
		}
	}

	if !hasKeyword && !hasTime && !hasPattern && !hasUrgency {
		return IntentSignal{}, false
	}

	confidence := schedulingBaseConfidence
	if hasKeyword {
		confidence += schedulingKeywordWeight
	}
	if hasTime {
		confidence += schedulingTimeWeight
	}
	if hasPattern {
		confidence += schedulingPatternWeight
	}
	if hasUrgency {
		confidence += schedulingUrgencyWeight
	}

	// Combination bonuses for multiple independent indicators.
	if hasKeyword && hasTime {
		confidence += schedulingComboBonus
	}
	if hasPattern {
		confidence += schedulingComboBonus
	}
	if hasUrgency && (hasKeyword || hasPattern) {
		confidence += schedulingComboBonus
	}

	if confidence > schedulingConfidenceCeiling {
		confidence = schedulingConfidenceCeiling
	}

	return IntentSignal{Intent: IntentAppointmentScheduling, Confidence: confidence}, true
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// schedulingSuggestions replace the model's suggestions whenever the
// deterministic detector overrides the turn intent.
var schedulingSuggestions = []string{
	"What day works best for you?",
	"What time of day do you prefer?",
	"Do you have any specific requirements for the consultation?",
}
