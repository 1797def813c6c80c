// Package extract produces FieldRecords from raw OCR deed text via two
// independent paths: a deterministic pattern baseline that always runs, and
// an optional LLM adapter that may be unavailable.
package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/joelkehle/deedcheck/internal/deed"
)

// The baseline is deliberately conservative: one fixed anchor pattern per
// field, and a miss extracts nil rather than guessing.
var (
	docIDPattern       = regexp.MustCompile(`Doc:\s*(\S+)`)
	countyPattern      = regexp.MustCompile(`(?m)County:\s*([^|\n]+)`)
	statePattern       = regexp.MustCompile(`State:\s*([A-Z]{2})`)
	signedDatePattern  = regexp.MustCompile(`Date\s+Signed:\s*(\d{4}-\d{2}-\d{2})`)
	recordedDatePattern = regexp.MustCompile(`Date\s+Recorded:\s*(\d{4}-\d{2}-\d{2})`)
	grantorPattern     = regexp.MustCompile(`(?m)Grantor:\s*(.+)$`)
	granteePattern     = regexp.MustCompile(`(?m)Grantee:\s*(.+)$`)
	apnPattern         = regexp.MustCompile(`(?m)APN:\s*(.+)$`)
	statusPattern      = regexp.MustCompile(`(?m)Status:\s*(.+)$`)
	amountPattern      = regexp.MustCompile(`\$([0-9,]+(?:\.\d{1,2})?)`)
	// The word-form amount is anchored to the parenthetical immediately after
	// a dollar figure, so earlier parenthesized text (e.g. "(LLC)") never
	// matches.
	amountWordsPattern = regexp.MustCompile(`\$[0-9,]+(?:\.\d{1,2})?\s*\(([^)]+)\)`)

	whitespaceRun = regexp.MustCompile(`\s+`)
)

// Pattern extracts deed fields from raw OCR text using fixed patterns only.
// It never fails; a field that cannot be matched is simply nil.
func Pattern(rawText string) deed.FieldRecord {
	return deed.FieldRecord{
		DocumentID:    matchString(docIDPattern, rawText),
		County:        matchString(countyPattern, rawText),
		State:         matchString(statePattern, rawText),
		DateSigned:    matchDate(signedDatePattern, rawText),
		DateRecorded:  matchDate(recordedDatePattern, rawText),
		Grantor:       matchString(grantorPattern, rawText),
		Grantee:       matchString(granteePattern, rawText),
		AmountNumeric: matchAmount(rawText),
		AmountWords:   matchString(amountWordsPattern, rawText),
		APN:           matchString(apnPattern, rawText),
		Status:        matchString(statusPattern, rawText),
	}
}

func matchString(re *regexp.Regexp, text string) *string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	// Collapse whitespace runs, a common OCR artifact.
	v := whitespaceRun.ReplaceAllString(strings.TrimSpace(m[1]), " ")
	if v == "" {
		return nil
	}
	return &v
}

func matchDate(re *regexp.Regexp, text string) *deed.Date {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	d, err := deed.ParseDate(m[1])
	if err != nil {
		return nil
	}
	return &d
}

func matchAmount(text string) *decimal.Decimal {
	m := amountPattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	v, err := decimal.NewFromString(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return nil
	}
	return &v
}
