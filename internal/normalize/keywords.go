package normalize

import "strings"

// babyFriendlyKeywords is ported from the original's
// mark_baby_friendly_events.py keyword list.
var babyFriendlyKeywords = []string{
	"baby", "babies", "toddler", "infant", "ages 0-2", "ages 0-3",
	"stroller", "family program", "family friendly", "parent and child",
	"lap sit", "storytime",
}

// IsBabyFriendly reports whether any keyword appears in title or
// description, case-insensitive. Running it twice on the same text
// always yields the same result (pure string match, no external state).
func IsBabyFriendly(title, description string) bool {
	haystack := strings.ToLower(title + " " + description)
	for _, keyword := range babyFriendlyKeywords {
		if strings.Contains(haystack, keyword) {
			return true
		}
	}
	return false
}
