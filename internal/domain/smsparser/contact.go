package smsparser

import (
	"regexp"
	"strings"
)

var (
	phonePattern   = regexp.MustCompile(`\+?1?\s*\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`)
	emailPattern   = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	addressPattern = regexp.MustCompile(`(?i)\b(?:address|addr|location):\s*([^,\n]+)`)

	// "for John Smith", "client: Jane Doe". Only the keyword is case-insensitive.
	keywordNamePattern = regexp.MustCompile(`(?i:\b(?:for|client|customer|to)\b)[:\s]\s*([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)+)`)
	// "John Smith," / "John Smith (555)..." / "John Smith - ..." / end of line.
	trailingNamePattern = regexp.MustCompile(`(?m)([A-Z][a-z]+(?:[ \t]+[A-Z][a-z]+)+)[ \t]*(?:[,(\-:;.]|$)`)
)

// ExtractPhone returns the first phone-shaped substring, trimmed but not normalized.
func ExtractPhone(text string) (string, bool) {
	m := phonePattern.FindString(text)
	m = strings.TrimSpace(m)
	return m, m != ""
}

// ExtractEmail returns the first email address in text.
func ExtractEmail(text string) (string, bool) {
	m := emailPattern.FindString(text)
	return m, m != ""
}

// ExtractAddress only recognizes addresses introduced by "address:",
// "addr:" or "location:"; the value runs to the next comma or newline.
func ExtractAddress(text string) (string, bool) {
	m := addressPattern.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	addr := strings.TrimSpace(m[1])
	return addr, addr != ""
}

// ExtractClientName finds a "Proper Case" name of two or more words. A name
// after for/client/customer/to wins; otherwise the first capitalized run
// followed by punctuation or end of line is used. A leading document keyword
// ("Invoice John Smith") is dropped from the run.
func ExtractClientName(text string) (string, bool) {
	if m := keywordNamePattern.FindStringSubmatch(text); m != nil {
		return strings.Join(strings.Fields(m[1]), " "), true
	}
	for _, m := range trailingNamePattern.FindAllStringSubmatch(text, -1) {
		words := strings.Fields(m[1])
		if first := strings.ToLower(words[0]); first == "invoice" || first == "quote" {
			words = words[1:]
		}
		if len(words) < 2 {
			continue
		}
		return strings.Join(words, " "), true
	}
	return "", false
}
