package normalize

import (
	"regexp"
	"strings"
)

// categoryHeadingExact is the curated exact-phrase set (compared
// case-insensitively after whitespace collapse).
var categoryHeadingExact = map[string]bool{
	"past exhibitions":    true,
	"current exhibitions": true,
	"upcoming events":     true,
	"today's events":      true,
	"this week":           true,
	"tour":                true,
	"tours":                true,
	"events":              true,
	"exhibitions":         true,
	"view all":            true,
	"see all events":      true,
	"load more":           true,
}

var categoryHeadingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^exhibitions?\s*(&|and)?\s*events?$`),
	regexp.MustCompile(`(?i)^results?$`),
	regexp.MustCompile(`(?i)^(past|upcoming|current)\s+(exhibitions?|events?|programs?)$`),
	regexp.MustCompile(`(?i)^(today'?s?|tomorrow'?s?|this|next)\s+(events?|exhibitions?)$`),
	regexp.MustCompile(`(?i)^page\s+\d+$`),
}

// IsCategoryHeading reports whether title is a navigation/section
// label that must never persist as an Event.
func IsCategoryHeading(title string) bool {
	text, ok := CleanText(title)
	if !ok {
		return false
	}
	lower := strings.ToLower(text)
	if categoryHeadingExact[lower] {
		return true
	}
	for _, pattern := range categoryHeadingPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}
