// Package jurisdiction resolves messy OCR county names ("S. Clara") against
// the canonical reference table ("Santa Clara"), and provides the table's
// file and SQLite sources.
//
// Resolution is not a hardcoded lookup: abbreviation tokens expand into every
// candidate full form, and each candidate is fuzzy-scored against every
// reference name. This generalizes to any abbreviated name without
// maintaining a brittle mapping.
package jurisdiction

import (
	"math"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/shopspring/decimal"

	"github.com/joelkehle/deedcheck/internal/deed"
)

// MatchThreshold is the minimum similarity score to accept a fuzzy match.
const MatchThreshold = 0.70

// General US geographic abbreviations, not county-specific.
var abbreviationExpansions = map[string][]string{
	"s.":  {"san", "santa", "south"},
	"n.":  {"north", "new"},
	"e.":  {"east", "el"},
	"w.":  {"west"},
	"ft.": {"fort"},
	"st.": {"saint"},
	"mt.": {"mount"},
	"pt.": {"port", "point"},
	"la.": {"los angeles", "la"}, // special case for LA county
}

// Match is the result of a successful resolution attempt.
type Match struct {
	Original   string          // what the OCR said
	Resolved   string          // canonical reference name
	TaxRate    decimal.Decimal // from the reference table
	Confidence float64         // 0.0-1.0, rounded to 3 decimals
}

// Resolve matches a raw county name against the reference table. An exact
// case-insensitive match wins at confidence 1.0; otherwise every abbreviation
// expansion candidate is scored against every reference name and the single
// best pair is kept, provided it clears MatchThreshold. Ties keep the first
// highest score encountered, so iteration order over the table is part of
// the contract.
func Resolve(rawName string, table []deed.Jurisdiction) (Match, bool) {
	trimmed := strings.TrimSpace(rawName)
	for _, j := range table {
		if strings.EqualFold(trimmed, j.Name) {
			return Match{Original: rawName, Resolved: j.Name, TaxRate: j.TaxRate, Confidence: 1.0}, true
		}
	}

	var best *deed.Jurisdiction
	bestScore := 0.0
	for _, candidate := range ExpandAbbreviations(rawName) {
		for i := range table {
			score := similarity(candidate, table[i].Name)
			if score > bestScore {
				bestScore = score
				best = &table[i]
			}
		}
	}
	if best == nil || bestScore < MatchThreshold {
		return Match{}, false
	}
	return Match{
		Original:   rawName,
		Resolved:   best.Name,
		TaxRate:    best.TaxRate,
		Confidence: math.Round(bestScore*1000) / 1000,
	}, true
}

// ExpandAbbreviations generates every full form of an abbreviated name by
// substituting each expansion into the original word position.
//
//	"S. Clara" -> ["San Clara", "Santa Clara", "South Clara"]
//	"N. York"  -> ["North York", "New York"]
//
// When a token expands, the unexpanded form is replaced by its expansions.
func ExpandAbbreviations(name string) []string {
	candidates := []string{name}
	tokens := strings.Fields(name)

	for i, token := range tokens {
		expansions, ok := abbreviationExpansions[strings.ToLower(token)]
		if !ok {
			continue
		}
		var next []string
		for _, expansion := range expansions {
			for _, candidate := range candidates {
				parts := strings.Fields(candidate)
				parts[i] = titleCase(expansion)
				next = append(next, strings.Join(parts, " "))
			}
		}
		candidates = next
	}
	return candidates
}

// similarity is a symmetric longest-matching-block ratio in [0, 1],
// case-insensitive, computed character-wise.
func similarity(a, b string) float64 {
	m := difflib.NewMatcher(runes(strings.ToLower(a)), runes(strings.ToLower(b)))
	return m.Ratio()
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
