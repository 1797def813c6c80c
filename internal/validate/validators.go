// Package validate is the deterministic rule engine. Every check here is a
// pure function of the enriched deed: no LLM, no network, no guessing.
package validate

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/joelkehle/deedcheck/internal/deed"
)

var recordableStatuses = map[string]struct{}{
	"RECORDED": {}, "FINAL": {}, "APPROVED": {}, "EXECUTED": {},
}

var usStateCodes = map[string]struct{}{
	"AL": {}, "AK": {}, "AZ": {}, "AR": {}, "CA": {}, "CO": {}, "CT": {}, "DE": {}, "FL": {}, "GA": {},
	"HI": {}, "ID": {}, "IL": {}, "IN": {}, "IA": {}, "KS": {}, "KY": {}, "LA": {}, "ME": {}, "MD": {},
	"MA": {}, "MI": {}, "MN": {}, "MS": {}, "MO": {}, "MT": {}, "NE": {}, "NV": {}, "NH": {}, "NJ": {},
	"NM": {}, "NY": {}, "NC": {}, "ND": {}, "OH": {}, "OK": {}, "OR": {}, "PA": {}, "RI": {}, "SC": {},
	"SD": {}, "TN": {}, "TX": {}, "UT": {}, "VT": {}, "VA": {}, "WA": {}, "WV": {}, "WI": {}, "WY": {},
	"DC": {}, "PR": {}, "GU": {}, "VI": {}, "AS": {}, "MP": {},
}

var nonAPNChars = regexp.MustCompile(`[^\d\-]`)

// All runs every validator and aggregates findings. The current date is a
// parameter so the future-date checks are reproducible.
func All(d deed.EnrichedDeed, today deed.Date) []deed.Finding {
	var findings []deed.Finding
	findings = append(findings, DateLogic(d)...)
	findings = append(findings, AmountConsistency(d)...)
	findings = append(findings, APNFormat(d)...)
	findings = append(findings, Status(d)...)
	findings = append(findings, GranteeParties(d)...)
	findings = append(findings, StateCode(d)...)
	findings = append(findings, FutureDates(d, today)...)
	findings = append(findings, GrantorName(d)...)
	return findings
}

// DateLogic: a deed cannot be recorded before it is signed.
func DateLogic(d deed.EnrichedDeed) []deed.Finding {
	if !d.DateRecorded.Before(d.DateSigned) {
		return nil
	}
	gap := d.DateSigned.DaysSince(d.DateRecorded)
	return []deed.Finding{{
		Severity: deed.SeverityError,
		Code:     "DATE_LOGIC_VIOLATION",
		Field:    "date_recorded",
		Message: fmt.Sprintf(
			"Document was recorded (%s) BEFORE it was signed (%s). A deed cannot be recorded before signing. Gap: %d day(s).",
			d.DateRecorded, d.DateSigned, gap),
		Details: map[string]string{
			"date_signed":   d.DateSigned.String(),
			"date_recorded": d.DateRecorded.String(),
			"gap_days":      strconv.Itoa(gap),
		},
	}}
}

// AmountConsistency cross-checks the numeric amount against the written-out
// amount. Legal documents carry both forms as a built-in integrity check;
// disagreement is never silently resolved in favor of either.
func AmountConsistency(d deed.EnrichedDeed) []deed.Finding {
	if d.AmountFromWords == nil {
		return []deed.Finding{{
			Severity: deed.SeverityWarning,
			Code:     "AMOUNT_WORDS_UNPARSEABLE",
			Field:    "amount_words",
			Message:  fmt.Sprintf("Could not parse written amount: %q", d.AmountWords),
			Details:  map[string]string{"raw_words": d.AmountWords},
		}}
	}

	if d.AmountFromWords.Equal(d.AmountNumeric) {
		return nil
	}
	discrepancy := d.AmountNumeric.Sub(*d.AmountFromWords).Abs()
	return []deed.Finding{{
		Severity: deed.SeverityError,
		Code:     "AMOUNT_MISMATCH",
		Field:    "amount_numeric",
		Message: fmt.Sprintf(
			"DISCREPANCY: Numeric amount ($%s) does not match written amount %q (=$%s). Difference: $%s. Both values must agree before recording.",
			deed.FormatMoney(d.AmountNumeric), d.AmountWords,
			deed.FormatMoney(*d.AmountFromWords), deed.FormatMoney(discrepancy)),
		Details: map[string]string{
			"amount_numeric":    d.AmountNumeric.String(),
			"amount_words":      d.AmountWords,
			"amount_from_words": d.AmountFromWords.String(),
			"discrepancy":       discrepancy.StringFixed(2),
		},
	}}
}

// APNFormat flags parcel numbers with characters outside digits and dashes,
// a common OCR corruption signature.
func APNFormat(d deed.EnrichedDeed) []deed.Finding {
	invalid := nonAPNChars.FindAllString(d.APN, -1)
	if len(invalid) == 0 {
		return nil
	}
	chars := strings.Join(invalid, "")
	return []deed.Finding{{
		Severity: deed.SeverityWarning,
		Code:     "APN_CONTAINS_ALPHA",
		Field:    "apn",
		Message: fmt.Sprintf(
			"APN %q contains non-numeric characters: %q. Standard APNs are numeric-only. This may indicate an OCR scanning error.",
			d.APN, chars),
		Details: map[string]string{"apn": d.APN, "invalid_chars": chars},
	}}
}

// Status: only certain statuses indicate a deed ready for recording.
func Status(d deed.EnrichedDeed) []deed.Finding {
	if _, ok := recordableStatuses[strings.ToUpper(d.Status)]; ok {
		return nil
	}
	valid := make([]string, 0, len(recordableStatuses))
	for s := range recordableStatuses {
		valid = append(valid, s)
	}
	sort.Strings(valid)
	return []deed.Finding{{
		Severity: deed.SeverityWarning,
		Code:     "STATUS_NOT_RECORDABLE",
		Field:    "status",
		Message: fmt.Sprintf(
			"Document status is %q, which is not a valid recording status. Expected one of: %s.",
			d.Status, strings.Join(valid, ", ")),
		Details: map[string]string{
			"current_status": d.Status,
			"valid_statuses": strings.Join(valid, ","),
		},
	}}
}

// GranteeParties: multi-party deeds need verification of ownership split and
// tenancy type.
func GranteeParties(d deed.EnrichedDeed) []deed.Finding {
	if len(d.Grantees) <= 1 {
		return nil
	}
	return []deed.Finding{{
		Severity: deed.SeverityInfo,
		Code:     "MULTI_PARTY_GRANTEE",
		Field:    "grantee",
		Message: fmt.Sprintf(
			"Multiple grantees detected (%d): %s. Verify ownership split / tenancy type (joint tenants, tenants-in-common, etc.).",
			len(d.Grantees), strings.Join(d.Grantees, ", ")),
		Details: map[string]string{
			"parties": strings.Join(d.Grantees, "; "),
			"count":   strconv.Itoa(len(d.Grantees)),
		},
	}}
}

// StateCode checks for a recognized US state or territory code.
func StateCode(d deed.EnrichedDeed) []deed.Finding {
	if _, ok := usStateCodes[strings.ToUpper(d.State)]; ok {
		return nil
	}
	return []deed.Finding{{
		Severity: deed.SeverityError,
		Code:     "INVALID_STATE_CODE",
		Field:    "state",
		Message:  fmt.Sprintf("%q is not a recognized US state code.", d.State),
		Details:  map[string]string{"state": d.State},
	}}
}

// FutureDates flags any date later than today, one finding per offender.
func FutureDates(d deed.EnrichedDeed, today deed.Date) []deed.Finding {
	var findings []deed.Finding
	if d.DateSigned.After(today) {
		findings = append(findings, deed.Finding{
			Severity: deed.SeverityWarning,
			Code:     "FUTURE_DATE_SIGNED",
			Field:    "date_signed",
			Message:  fmt.Sprintf("Date signed (%s) is in the future.", d.DateSigned),
			Details:  map[string]string{"date_signed": d.DateSigned.String(), "today": today.String()},
		})
	}
	if d.DateRecorded.After(today) {
		findings = append(findings, deed.Finding{
			Severity: deed.SeverityWarning,
			Code:     "FUTURE_DATE_RECORDED",
			Field:    "date_recorded",
			Message:  fmt.Sprintf("Date recorded (%s) is in the future.", d.DateRecorded),
			Details:  map[string]string{"date_recorded": d.DateRecorded.String(), "today": today.String()},
		})
	}
	return findings
}

// GrantorName flags names with an unusual density of periods, e.g.
// "T.E.S.L.A. Holdings LLC". Could be a real entity name or an OCR artifact.
func GrantorName(d deed.EnrichedDeed) []deed.Finding {
	dots := strings.Count(d.Grantor, ".")
	words := len(strings.Fields(d.Grantor))
	if dots < 3 || dots <= words {
		return nil
	}
	return []deed.Finding{{
		Severity: deed.SeverityInfo,
		Code:     "GRANTOR_NAME_UNUSUAL",
		Field:    "grantor",
		Message: fmt.Sprintf(
			"Grantor name %q contains an unusual number of periods (%d). This may be an OCR artifact; verify against the original document.",
			d.Grantor, dots),
		Details: map[string]string{"grantor": d.Grantor, "dot_count": strconv.Itoa(dots)},
	}}
}
