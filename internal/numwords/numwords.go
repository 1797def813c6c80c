// Package numwords converts written-out English amounts ("One Million Two
// Hundred Thousand Dollars") to exact decimal values.
//
// This is a financial component: garbled input must fail loudly rather than
// silently yield a wrong number. The only caller expected to recover is the
// enricher, which records the failure as a finding.
package numwords

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnparseable is wrapped by every failure Parse returns.
var ErrUnparseable = errors.New("unparseable number words")

var ones = map[string]int64{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
}

var tens = map[string]int64{
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

var scales = map[string]int64{
	"thousand": 1_000,
	"million":  1_000_000,
	"billion":  1_000_000_000,
	"trillion": 1_000_000_000_000,
}

// Filler words that may legally appear inside a written amount but carry no
// numeric value.
var filler = map[string]struct{}{
	"and": {}, "dollars": {}, "dollar": {}, "cents": {}, "cent": {},
	"only": {}, "the": {}, "of": {},
}

// Parse converts English number words to an exact decimal.
//
// Two accumulators: current holds the value being built inside the active
// scale group, result the sum of completed groups. Digit and tens words add
// into current; "hundred" multiplies current by 100 (an empty current counts
// as 1); a scale word flushes current (or 1) times its magnitude into result
// and resets current. The final value is result + current.
func Parse(text string) (decimal.Decimal, error) {
	if strings.TrimSpace(text) == "" {
		return decimal.Zero, fmt.Errorf("%w: empty text", ErrUnparseable)
	}

	normalized := strings.Trim(strings.TrimSpace(text), "()[]")
	cleaned := strings.NewReplacer("-", " ", ",", " ").Replace(strings.ToLower(normalized))

	var words []string
	for _, w := range strings.Fields(cleaned) {
		if _, skip := filler[w]; !skip {
			words = append(words, w)
		}
	}
	if len(words) == 0 {
		return decimal.Zero, fmt.Errorf("%w: no number words in %q", ErrUnparseable, text)
	}

	result := decimal.Zero
	current := decimal.Zero
	for _, w := range words {
		switch {
		case hasKey(ones, w):
			current = current.Add(decimal.NewFromInt(ones[w]))
		case hasKey(tens, w):
			current = current.Add(decimal.NewFromInt(tens[w]))
		case w == "hundred":
			current = orOne(current).Mul(decimal.NewFromInt(100))
		case hasKey(scales, w):
			result = result.Add(orOne(current).Mul(decimal.NewFromInt(scales[w])))
			current = decimal.Zero
		default:
			return decimal.Zero, fmt.Errorf("%w: unrecognized word %q in %q", ErrUnparseable, w, normalized)
		}
	}
	result = result.Add(current)

	// A structurally valid token list that sums to zero is only meaningful
	// when the input literally said "zero".
	if result.IsZero() && !strings.Contains(strings.ToLower(normalized), "zero") {
		return decimal.Zero, fmt.Errorf("%w: no valid number in %q", ErrUnparseable, text)
	}
	return result, nil
}

func hasKey(m map[string]int64, k string) bool {
	_, ok := m[k]
	return ok
}

func orOne(d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.NewFromInt(1)
	}
	return d
}
