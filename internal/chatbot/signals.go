package chatbot

import (
	"regexp"
	"strings"
)

// BusinessSignals holds whatever qualification hints were found in free text.
type BusinessSignals struct {
	Industry string   `json:"industry,omitempty"`
	Budget   string   `json:"budget,omitempty"`
	Goals    []string `json:"goals,omitempty"`
}

// industryPatterns map visitor phrasing to a canonical industry label.
// Ordered by specificity; first match wins.
var industryPatterns = []struct {
	pattern string
	name    string
}{
	{"e-commerce", "ecommerce"},
	{"ecommerce", "ecommerce"},
	{"online store", "ecommerce"},
	{"online shop", "ecommerce"},
	{"real estate", "real estate"},
	{"realtor", "real estate"},
	{"law firm", "legal"},
	{"attorney", "legal"},
	{"lawyer", "legal"},
	{"medical practice", "healthcare"},
	{"healthcare", "healthcare"},
	{"dental", "healthcare"},
	{"clinic", "healthcare"},
	{"restaurant", "hospitality"},
	{"hotel", "hospitality"},
	{"hospitality", "hospitality"},
	{"saas", "software"},
	{"software company", "software"},
	{"startup", "software"},
	{"tech company", "software"},
	{"construction", "construction"},
	{"contractor", "construction"},
	{"manufacturing", "manufacturing"},
	{"nonprofit", "nonprofit"},
	{"non-profit", "nonprofit"},
	{"retail", "retail"},
	{"boutique", "retail"},
	{"fitness", "fitness"},
	{"gym", "fitness"},
	{"salon", "beauty"},
	{"spa", "beauty"},
}

var budgetPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\s?\d[\d,]*(?:\.\d+)?\s?(?:k|m)?(?:\s?(?:/|per\s)\s?(?:month|mo|year|yr))?`),
	regexp.MustCompile(`(?i)\b\d[\d,]*\s?(?:dollars|bucks|usd)\b`),
	regexp.MustCompile(`(?i)\bbudget\s+(?:of|around|about|is)\s+\d[\d,]*\b`),
	regexp.MustCompile(`(?i)\b\d+k\s?(?:a|per)?\s?(?:mo|month|year|yr)?\b`),
}

// goalKeywords map phrases to canonical marketing goals.
var goalKeywords = []struct {
	pattern string
	goal    string
}{
	{"more leads", "lead generation"},
	{"generate leads", "lead generation"},
	{"lead generation", "lead generation"},
	{"more customers", "customer acquisition"},
	{"new customers", "customer acquisition"},
	{"more clients", "customer acquisition"},
	{"more traffic", "increase traffic"},
	{"website traffic", "increase traffic"},
	{"rank higher", "improve search ranking"},
	{"google ranking", "improve search ranking"},
	{"search ranking", "improve search ranking"},
	{"seo", "improve search ranking"},
	{"brand awareness", "brand awareness"},
	{"get noticed", "brand awareness"},
	{"social media", "social media growth"},
	{"more followers", "social media growth"},
	{"more sales", "increase sales"},
	{"increase sales", "increase sales"},
	{"grow revenue", "increase sales"},
	{"online presence", "online presence"},
	{"new website", "website redesign"},
	{"redesign", "website redesign"},
}

// ExtractBusinessSignals scans free text against fixed vocabularies and
// returns whichever qualification signals matched. No side effects.
func ExtractBusinessSignals(text string) BusinessSignals {
	lower := strings.ToLower(text)
	signals := BusinessSignals{}

	for _, ind := range industryPatterns {
		if strings.Contains(lower, ind.pattern) {
			signals.Industry = ind.name
			break
		}
	}

	for _, re := range budgetPatterns {
		if match := re.FindString(text); match != "" {
			signals.Budget = strings.TrimSpace(match)
			break
		}
	}

	for _, gk := range goalKeywords {
		if !strings.Contains(lower, gk.pattern) {
			continue
		}
		seen := false
		for _, g := range signals.Goals {
			if g == gk.goal {
				seen = true
				break
			}
		}
		if !seen {
			signals.Goals = append(signals.Goals, gk.goal)
		}
	}

	return signals
}

// Empty reports whether no signal matched at all.
func (s BusinessSignals) Empty() bool {
	return s.Industry == "" && s.Budget == "" && len(s.Goals) == 0
}
