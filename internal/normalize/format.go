package normalize

import "strings"

// acronymWhitelist holds tokens that must stay upper-cased by
// FormatVenueName/FormatCityName/FormatCountryName instead of being
// title-cased word by word.
var acronymWhitelist = map[string]string{
	"nyc":  "NYC",
	"dc":   "DC",
	"nga":  "NGA",
	"saam": "SAAM",
	"moma": "MoMA",
	"v&a":  "V&A",
}

func titleCaseWord(word string) string {
	if upper, ok := acronymWhitelist[strings.ToLower(word)]; ok {
		return upper
	}
	if word == "" {
		return word
	}
	runes := []rune(strings.ToLower(word))
	runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
	return string(runes)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = titleCaseWord(w)
	}
	return strings.Join(words, " ")
}

// FormatCityName title-cases a free-text city name, preserving known
// acronyms like "NYC" and "DC".
func FormatCityName(raw string) (string, bool) {
	text, ok := CleanText(raw)
	if !ok {
		return "", false
	}
	return titleCase(text), true
}

// FormatCountryName title-cases a free-text country name.
func FormatCountryName(raw string) (string, bool) {
	text, ok := CleanText(raw)
	if !ok {
		return "", false
	}
	return titleCase(text), true
}

// FormatVenueName title-cases a free-text venue name, preserving known
// institutional acronyms like "NGA", "SAAM", "MoMA", "V&A".
func FormatVenueName(raw string) (string, bool) {
	text, ok := CleanText(raw)
	if !ok {
		return "", false
	}
	return titleCase(text), true
}
