// Package enrich turns a complete FieldRecord into an EnrichedDeed: county
// resolution, grantee parsing, word-amount conversion, and fee estimates.
package enrich

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun  = regexp.MustCompile(`\s+`)
	partySeparator = regexp.MustCompile(`(?i)\s*[&,]\s*|\s+and\s+`)
)

// ParseParties splits a composite grantee string into individual full names.
//
//	"John & Sarah Connor"        -> ["John Connor", "Sarah Connor"]
//	"John Connor, Sarah Connor"  -> ["John Connor", "Sarah Connor"]
//
// When the last part carries a surname and earlier parts are first-name-only,
// the shared surname is propagated. Parts already holding two or more words
// are kept as written.
func ParseParties(raw string) []string {
	raw = whitespaceRun.ReplaceAllString(strings.TrimSpace(raw), " ")

	var parts []string
	for _, p := range partySeparator.Split(raw, -1) {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) <= 1 {
		return []string{raw}
	}

	lastWords := strings.Fields(parts[len(parts)-1])
	if len(lastWords) < 2 {
		return parts
	}

	surname := lastWords[len(lastWords)-1]
	out := make([]string, 0, len(parts))
	for _, part := range parts[:len(parts)-1] {
		if words := strings.Fields(part); len(words) == 1 {
			out = append(out, words[0]+" "+surname)
		} else {
			out = append(out, part)
		}
	}
	return append(out, parts[len(parts)-1])
}
