package chatbot

import (
	"math"
	"sort"
	"time"
)

// IntentCount pairs an intent label with how many conversations carry it.
type IntentCount struct {
	Intent string `json:"intent"`
	Count  int    `json:"count"`
}

// Analytics is the read-side aggregation over conversations and leads.
type Analytics struct {
	TotalConversations        int           `json:"totalConversations"`
	TotalLeads                int           `json:"totalLeads"`
	AverageConversationLength int           `json:"averageConversationLength"`
	LeadConversionRate        int           `json:"leadConversionRate"`
	TopIntents                []IntentCount `json:"topIntents"`
	TimeRange                 TimeRange     `json:"timeRange"`
}

// TimeRange echoes the window the aggregation covered.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ComputeAnalytics aggregates conversations started and leads created within
// [start, end]. Average length is the rounded mean message count; conversion
// rate is the rounded percentage of conversations with a qualified lead; top
// intents are the up-to-five most frequent conversation intents, ties broken
// by first-encountered order.
func ComputeAnalytics(conversations []*Conversation, leads []*Lead, start, end time.Time) *Analytics {
	var inRange []*Conversation
	for _, conv := range conversations {
		if conv.StartTime.Before(start) || conv.StartTime.After(end) {
			continue
		}
		inRange = append(inRange, conv)
	}

	leadCount := 0
	for _, lead := range leads {
		if lead.CreatedAt.Before(start) || lead.CreatedAt.After(end) {
			continue
		}
		leadCount++
	}

	return &Analytics{
		TotalConversations:        len(inRange),
		TotalLeads:                leadCount,
		AverageConversationLength: averageConversationLength(inRange),
		LeadConversionRate:        leadConversionRate(inRange),
		TopIntents:                topIntents(inRange),
		TimeRange:                 TimeRange{Start: start, End: end},
	}
}

func averageConversationLength(conversations []*Conversation) int {
	if len(conversations) == 0 {
		return 0
	}
	total := 0
	for _, conv := range conversations {
		total += len(conv.Messages)
	}
	return int(math.Round(float64(total) / float64(len(conversations))))
}

func leadConversionRate(conversations []*Conversation) int {
	if len(conversations) == 0 {
		return 0
	}
	qualified := 0
	for _, conv := range conversations {
		if conv.LeadQualified {
			qualified++
		}
	}
	return int(math.Round(float64(qualified) / float64(len(conversations)) * 100))
}

func topIntents(conversations []*Conversation) []IntentCount {
	counts := make(map[string]int)
	var order []string
	for _, conv := range conversations {
		if conv.Intent == "" {
			continue
		}
		if _, seen := counts[conv.Intent]; !seen {
			order = append(order, conv.Intent)
		}
		counts[conv.Intent]++
	}

	out := make([]IntentCount, 0, len(order))
	for _, intent := range order {
		out = append(out, IntentCount{Intent: intent, Count: counts[intent]})
	}
	// Stable sort keeps first-encountered order as the tie break.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > 5 {
		out = out[:5]
	}
	return out
}
