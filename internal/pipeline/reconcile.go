package pipeline

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/joelkehle/deedcheck/internal/deed"
)

// Reconcile compares the pattern and LLM extractions field by field. Any
// disagreement where both sides are non-null is a WARNING: it catches the
// LLM "helpfully" correcting an error that should be reported, and the
// pattern extractor misparsing noisy OCR. Either side being null produces
// nothing.
func Reconcile(pattern, llm deed.FieldRecord) []deed.Finding {
	var findings []deed.Finding
	add := func(f *deed.Finding) {
		if f != nil {
			findings = append(findings, *f)
		}
	}

	add(compareStrings("document_id", "Document ID", pattern.DocumentID, llm.DocumentID))
	add(compareStrings("county", "County", pattern.County, llm.County))
	add(compareStrings("state", "State", pattern.State, llm.State))
	add(compareDates("date_signed", "Date Signed", pattern.DateSigned, llm.DateSigned))
	add(compareDates("date_recorded", "Date Recorded", pattern.DateRecorded, llm.DateRecorded))
	add(compareDecimals("amount_numeric", "Amount (Numeric)", pattern.AmountNumeric, llm.AmountNumeric))
	add(compareStrings("apn", "APN", pattern.APN, llm.APN))
	add(compareStrings("status", "Status", pattern.Status, llm.Status))
	return findings
}

func disagreement(field, display, patternVal, llmVal string) *deed.Finding {
	return &deed.Finding{
		Severity: deed.SeverityWarning,
		Code:     "EXTRACTION_DISAGREEMENT",
		Field:    field,
		Message: fmt.Sprintf(
			"LLM and pattern extraction disagree on %s: pattern=%q, LLM=%q. Manual review recommended.",
			display, patternVal, llmVal),
		Details: map[string]string{
			"pattern_value": patternVal,
			"llm_value":     llmVal,
		},
	}
}

func compareStrings(field, display string, a, b *string) *deed.Finding {
	if a == nil || b == nil {
		return nil
	}
	if strings.EqualFold(strings.TrimSpace(*a), strings.TrimSpace(*b)) {
		return nil
	}
	return disagreement(field, display, *a, *b)
}

func compareDates(field, display string, a, b *deed.Date) *deed.Finding {
	if a == nil || b == nil || a.Equal(*b) {
		return nil
	}
	return disagreement(field, display, a.String(), b.String())
}

func compareDecimals(field, display string, a, b *decimal.Decimal) *deed.Finding {
	if a == nil || b == nil || a.Equal(*b) {
		return nil
	}
	return disagreement(field, display, a.String(), b.String())
}
