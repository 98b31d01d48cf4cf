// Package normalize canonicalizes scraped strings, URLs, emails,
// phones, and numerics, and rejects category-heading titles. Pure
// functions, no I/O, in the style of the teacher's internal/utils/slug.go.
package normalize

import (
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// CleanText trims and collapses whitespace; an empty result is
// reported as ok=false so callers can store null instead of "".
func CleanText(s string) (string, bool) {
	trimmed := whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
	if trimmed == "" {
		return "", false
	}
	return trimmed, true
}

// trackingParams is the known list of tracking query keys stripped by
// CleanURL. Meaningful query parameters are preserved.
var trackingParams = map[string]bool{
	"utm_source":   true,
	"utm_medium":   true,
	"utm_campaign": true,
	"utm_term":     true,
	"utm_content":  true,
	"fbclid":       true,
	"gclid":        true,
	"mc_cid":       true,
	"mc_eid":       true,
}

// CleanURL validates the scheme, lowercases the host, and strips
// tracking query parameters. Returns ok=false for unparseable or
// non-http(s) input.
func CleanURL(raw string) (string, bool) {
	text, ok := CleanText(raw)
	if !ok {
		return "", false
	}
	u, err := url.Parse(text)
	if err != nil || u.Host == "" {
		return "", false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	u.Host = strings.ToLower(u.Host)

	if u.RawQuery != "" {
		q := u.Query()
		for key := range q {
			if trackingParams[strings.ToLower(key)] {
				q.Del(key)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), true
}

// CleanEmail validates syntax via net/mail; on failure returns ok=false
// (non-fatal, per spec — callers store null).
func CleanEmail(raw string) (string, bool) {
	text, ok := CleanText(raw)
	if !ok {
		return "", false
	}
	addr, err := mail.ParseAddress(text)
	if err != nil {
		return "", false
	}
	return strings.ToLower(addr.Address), true
}

var phoneDigits = regexp.MustCompile(`[^0-9+]`)

// CleanPhone strips formatting punctuation, keeping a leading '+' and
// digits only. Best-effort: never errors, just reports whether any
// digits survived.
func CleanPhone(raw string) (string, bool) {
	text, ok := CleanText(raw)
	if !ok {
		return "", false
	}
	cleaned := phoneDigits.ReplaceAllString(text, "")
	digitCount := len(strings.TrimPrefix(cleaned, "+"))
	if digitCount < 7 { // fewer than 7 digits isn't a usable phone number
		return "", false
	}
	return cleaned, true
}

// CleanNumeric best-effort parses a float, stripping currency symbols
// and thousands separators.
func CleanNumeric(raw string) (float64, bool) {
	text, ok := CleanText(raw)
	if !ok {
		return 0, false
	}
	stripped := strings.NewReplacer("$", "", ",", "", "%", "").Replace(text)
	v, err := strconv.ParseFloat(strings.TrimSpace(stripped), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// CleanInteger is CleanNumeric truncated to int64.
func CleanInteger(raw string) (int64, bool) {
	f, ok := CleanNumeric(raw)
	if !ok {
		return 0, false
	}
	return int64(f), true
}
