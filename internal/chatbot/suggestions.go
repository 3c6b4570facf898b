package chatbot

// intentSuggestions is the static follow-up lookup keyed by intent label.
var intentSuggestions = map[string][]string{
	IntentServiceInquiry: {
		"Tell me more about your SEO services",
		"What's included in your PPC packages?",
		"Can you help with website development?",
		"How do you approach content marketing?",
	},
	IntentPricing: {
		"What are your typical project costs?",
		"Do you offer monthly retainers?",
		"What's included in your packages?",
		"Can you provide a custom quote?",
	},
	IntentTeamInfo: {
		"Tell me about your team's experience",
		"What industries do you specialize in?",
		"Can I see some case studies?",
		"How long have you been in business?",
	},
	IntentLeadQualification: {
		"What's your business size?",
		"What's your current marketing budget?",
		"What are your main goals?",
		"What challenges are you facing?",
	},
	IntentAppointment: {
		"Schedule a free consultation",
		"Book a strategy call",
		"Request a proposal",
		"Get a custom quote",
	},
}

// defaultSuggestions covers unknown or unmapped intents.
var defaultSuggestions = []string{
	"How can I help you today?",
	"Tell me more about your business",
	"What services interest you most?",
}

// SuggestionsForIntent returns the canned follow-ups for an intent, or the
// generic defaults for anything unmapped.
func SuggestionsForIntent(intent string) []string {
	if s, ok := intentSuggestions[intent]; ok {
		out := make([]string, len(s))
		copy(out, s)
		return out
	}
	out := make([]string, len(defaultSuggestions))
	copy(out, defaultSuggestions)
	return out
}
