package enrich

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/joelkehle/deedcheck/internal/deed"
)

func completeRecord() deed.FieldRecord {
	str := func(s string) *string { return &s }
	date := func(s string) *deed.Date {
		d, err := deed.ParseDate(s)
		if err != nil {
			panic(err)
		}
		return &d
	}
	amount := decimal.RequireFromString("1250000.00")
	return deed.FieldRecord{
		DocumentID:    str("DEED-TRUST-0042"),
		County:        str("S. Clara"),
		State:         str("CA"),
		DateSigned:    date("2024-01-15"),
		DateRecorded:  date("2024-01-10"),
		Grantor:       str("T.E.S.L.A. Holdings LLC"),
		Grantee:       str("John & Sarah Connor"),
		AmountNumeric: &amount,
		AmountWords:   str("One Million Two Hundred Thousand Dollars"),
		APN:           str("992-001-XA"),
		Status:        str("PRELIMINARY"),
	}
}

func testTable() []deed.Jurisdiction {
	return []deed.Jurisdiction{
		{Name: "Santa Clara", TaxRate: decimal.RequireFromString("0.012")},
		{Name: "San Francisco", TaxRate: decimal.RequireFromString("0.015")},
	}
}

func TestEnrichResolvesCountyAndFees(t *testing.T) {
	enriched, findings := Enrich(completeRecord(), testTable())

	if enriched.CountyResolved != "Santa Clara" {
		t.Fatalf("county resolved to %q", enriched.CountyResolved)
	}
	if enriched.TaxRate == nil || !enriched.TaxRate.Equal(decimal.RequireFromString("0.012")) {
		t.Fatalf("tax rate = %v", enriched.TaxRate)
	}
	// 0.012 * 1,250,000.00 = 15,000.00; closing = 15,075.00 to the cent.
	if enriched.EstimatedTransferTax == nil || enriched.EstimatedTransferTax.StringFixed(2) != "15000.00" {
		t.Fatalf("transfer tax = %v", enriched.EstimatedTransferTax)
	}
	if enriched.EstimatedClosingCosts == nil || enriched.EstimatedClosingCosts.StringFixed(2) != "15075.00" {
		t.Fatalf("closing costs = %v", enriched.EstimatedClosingCosts)
	}
	// Expansion lands exactly on the canonical name, so no fuzzy INFO.
	for _, f := range findings {
		if f.Code == "JURISDICTION_RESOLUTION_FAILED" {
			t.Fatalf("unexpected resolution failure: %+v", f)
		}
	}

	if len(enriched.Grantees) != 2 || enriched.Grantees[0] != "John Connor" || enriched.Grantees[1] != "Sarah Connor" {
		t.Fatalf("grantees = %v", enriched.Grantees)
	}
	if enriched.AmountFromWords == nil || enriched.AmountFromWords.StringFixed(2) != "1200000.00" {
		t.Fatalf("amount from words = %v", enriched.AmountFromWords)
	}
}

func TestEnrichUnresolvableCounty(t *testing.T) {
	rec := completeRecord()
	unknown := "Atlantis"
	rec.County = &unknown

	enriched, findings := Enrich(rec, testTable())

	if enriched.CountyResolved != "Atlantis" {
		t.Fatalf("unresolved county must pass through as written, got %q", enriched.CountyResolved)
	}
	if enriched.TaxRate != nil || enriched.EstimatedTransferTax != nil || enriched.EstimatedClosingCosts != nil {
		t.Fatal("no fee estimates without a tax rate")
	}
	var found bool
	for _, f := range findings {
		if f.Code == "JURISDICTION_RESOLUTION_FAILED" && f.Severity == deed.SeverityError {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing JURISDICTION_RESOLUTION_FAILED finding: %+v", findings)
	}
}

func TestEnrichFuzzyMatchFinding(t *testing.T) {
	rec := completeRecord()
	misspelled := "Santa Clarra"
	rec.County = &misspelled

	enriched, findings := Enrich(rec, testTable())

	if enriched.CountyResolved != "Santa Clara" {
		t.Fatalf("county resolved to %q", enriched.CountyResolved)
	}
	var info *deed.Finding
	for i, f := range findings {
		if f.Code == "JURISDICTION_FUZZY_MATCHED" {
			info = &findings[i]
		}
	}
	if info == nil {
		t.Fatalf("missing JURISDICTION_FUZZY_MATCHED finding: %+v", findings)
	}
	if info.Severity != deed.SeverityInfo {
		t.Fatalf("fuzzy match severity = %s", info.Severity)
	}
	if info.Details["resolved"] != "Santa Clara" || info.Details["original"] != "Santa Clarra" {
		t.Fatalf("fuzzy match details = %v", info.Details)
	}
}

func TestEnrichUnparseableWords(t *testing.T) {
	rec := completeRecord()
	garbled := "Blorp Quux Dollars"
	rec.AmountWords = &garbled

	enriched, _ := Enrich(rec, testTable())
	if enriched.AmountFromWords != nil {
		t.Fatalf("expected nil amount-from-words, got %v", enriched.AmountFromWords)
	}
}
