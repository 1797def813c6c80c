package validate

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/joelkehle/deedcheck/internal/deed"
)

var today = deed.NewDate(2024, 6, 1)

func cleanDeed() deed.EnrichedDeed {
	amount := decimal.RequireFromString("1200000.00")
	fromWords := decimal.RequireFromString("1200000")
	return deed.EnrichedDeed{
		DocumentID:      "DEED-0001",
		CountyRaw:       "Santa Clara",
		CountyResolved:  "Santa Clara",
		State:           "CA",
		DateSigned:      deed.NewDate(2024, 1, 10),
		DateRecorded:    deed.NewDate(2024, 1, 15),
		Grantor:         "Jane Smith",
		Grantees:        []string{"John Connor"},
		AmountNumeric:   amount,
		AmountWords:     "One Million Two Hundred Thousand",
		AmountFromWords: &fromWords,
		APN:             "123-456-789",
		Status:          "RECORDED",
	}
}

func TestCleanDeedHasNoFindings(t *testing.T) {
	if findings := All(cleanDeed(), today); len(findings) != 0 {
		t.Fatalf("expected no findings, got %+v", findings)
	}
}

func TestDateLogicViolation(t *testing.T) {
	d := cleanDeed()
	d.DateSigned = deed.NewDate(2024, 1, 15)
	d.DateRecorded = deed.NewDate(2024, 1, 10)

	findings := DateLogic(d)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	f := findings[0]
	if f.Code != "DATE_LOGIC_VIOLATION" || f.Severity != deed.SeverityError {
		t.Fatalf("unexpected finding: %+v", f)
	}
	if f.Details["gap_days"] != "5" {
		t.Fatalf("gap_days = %q, want 5", f.Details["gap_days"])
	}
}

func TestDateLogicSameDayAndAfterAreFine(t *testing.T) {
	d := cleanDeed()
	d.DateRecorded = d.DateSigned
	if findings := DateLogic(d); len(findings) != 0 {
		t.Fatalf("same-day recording flagged: %+v", findings)
	}
	d.DateRecorded = deed.NewDate(2024, 2, 1)
	if findings := DateLogic(d); len(findings) != 0 {
		t.Fatalf("later recording flagged: %+v", findings)
	}
}

func TestAmountMismatch(t *testing.T) {
	d := cleanDeed()
	d.AmountNumeric = decimal.RequireFromString("1250000.00")

	findings := AmountConsistency(d)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	f := findings[0]
	if f.Code != "AMOUNT_MISMATCH" || f.Severity != deed.SeverityError {
		t.Fatalf("unexpected finding: %+v", f)
	}
	if f.Details["discrepancy"] != "50000.00" {
		t.Fatalf("discrepancy = %q, want 50000.00", f.Details["discrepancy"])
	}
}

func TestAmountEqualDespiteScale(t *testing.T) {
	// 1200000 (from words) vs 1200000.00 (numeric) must compare equal.
	if findings := AmountConsistency(cleanDeed()); len(findings) != 0 {
		t.Fatalf("scale-only difference flagged: %+v", findings)
	}
}

func TestAmountWordsUnparseable(t *testing.T) {
	d := cleanDeed()
	d.AmountFromWords = nil

	findings := AmountConsistency(d)
	if len(findings) != 1 || findings[0].Code != "AMOUNT_WORDS_UNPARSEABLE" {
		t.Fatalf("unexpected findings: %+v", findings)
	}
	if findings[0].Severity != deed.SeverityWarning {
		t.Fatalf("severity = %s", findings[0].Severity)
	}
}

func TestAPNContainsAlpha(t *testing.T) {
	d := cleanDeed()
	d.APN = "992-001-XA"

	findings := APNFormat(d)
	if len(findings) != 1 || findings[0].Code != "APN_CONTAINS_ALPHA" {
		t.Fatalf("unexpected findings: %+v", findings)
	}
	if findings[0].Details["invalid_chars"] != "XA" {
		t.Fatalf("invalid_chars = %q", findings[0].Details["invalid_chars"])
	}
}

func TestStatusNotRecordable(t *testing.T) {
	d := cleanDeed()
	d.Status = "PRELIMINARY"
	findings := Status(d)
	if len(findings) != 1 || findings[0].Code != "STATUS_NOT_RECORDABLE" {
		t.Fatalf("unexpected findings: %+v", findings)
	}

	// Recordable set is case-insensitive.
	d.Status = "recorded"
	if findings := Status(d); len(findings) != 0 {
		t.Fatalf("lowercase recorded flagged: %+v", findings)
	}
}

func TestMultiPartyGrantee(t *testing.T) {
	d := cleanDeed()
	d.Grantees = []string{"John Connor", "Sarah Connor"}
	findings := GranteeParties(d)
	if len(findings) != 1 || findings[0].Code != "MULTI_PARTY_GRANTEE" {
		t.Fatalf("unexpected findings: %+v", findings)
	}
	if findings[0].Severity != deed.SeverityInfo {
		t.Fatalf("severity = %s", findings[0].Severity)
	}
}

func TestInvalidStateCode(t *testing.T) {
	d := cleanDeed()
	d.State = "ZZ"
	findings := StateCode(d)
	if len(findings) != 1 || findings[0].Code != "INVALID_STATE_CODE" || findings[0].Severity != deed.SeverityError {
		t.Fatalf("unexpected findings: %+v", findings)
	}

	// Territories count.
	d.State = "pr"
	if findings := StateCode(d); len(findings) != 0 {
		t.Fatalf("PR flagged: %+v", findings)
	}
}

func TestFutureDates(t *testing.T) {
	d := cleanDeed()
	d.DateSigned = deed.NewDate(2030, 1, 1)
	d.DateRecorded = deed.NewDate(2030, 1, 2)

	findings := FutureDates(d, today)
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings, got %+v", findings)
	}
	if findings[0].Code != "FUTURE_DATE_SIGNED" || findings[1].Code != "FUTURE_DATE_RECORDED" {
		t.Fatalf("unexpected codes: %s, %s", findings[0].Code, findings[1].Code)
	}
}

func TestGrantorNameUnusual(t *testing.T) {
	d := cleanDeed()
	d.Grantor = "T.E.S.L.A. Holdings LLC"

	findings := GrantorName(d)
	if len(findings) != 1 || findings[0].Code != "GRANTOR_NAME_UNUSUAL" {
		t.Fatalf("unexpected findings: %+v", findings)
	}
	if findings[0].Details["dot_count"] != "5" {
		t.Fatalf("dot_count = %q", findings[0].Details["dot_count"])
	}

	// Ordinary initials stay quiet: dots must outnumber words.
	d.Grantor = "J. R. R. Tolkien"
	if findings := GrantorName(d); len(findings) != 0 {
		t.Fatalf("initials flagged: %+v", findings)
	}
}
