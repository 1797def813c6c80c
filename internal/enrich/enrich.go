package enrich

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/joelkehle/deedcheck/internal/deed"
	"github.com/joelkehle/deedcheck/internal/jurisdiction"
	"github.com/joelkehle/deedcheck/internal/numwords"
)

// Flat county recording fee added on top of the transfer tax estimate.
var recordingFee = decimal.RequireFromString("75.00")

// Enrich resolves the county, parses grantees, converts the written amount,
// and computes fee estimates. The record must already have passed the
// completeness gate: every field is non-nil.
//
// All failures here are recoverable and become findings: an unresolvable
// county is an ERROR (the deed keeps its as-written name and no tax rate),
// a fuzzy match is an INFO, and an unparseable written amount is left for
// the amount-consistency validator to report.
func Enrich(rec deed.FieldRecord, table []deed.Jurisdiction) (deed.EnrichedDeed, []deed.Finding) {
	var findings []deed.Finding

	countyResolved := *rec.County
	var taxRate *decimal.Decimal
	if match, ok := jurisdiction.Resolve(*rec.County, table); ok {
		countyResolved = match.Resolved
		rate := match.TaxRate
		taxRate = &rate
		if match.Confidence < 1.0 {
			findings = append(findings, deed.Finding{
				Severity: deed.SeverityInfo,
				Code:     "JURISDICTION_FUZZY_MATCHED",
				Field:    "county",
				Message: fmt.Sprintf("County %q fuzzy-matched to %q (confidence: %.1f%%)",
					*rec.County, match.Resolved, match.Confidence*100),
				Details: map[string]string{
					"original":   *rec.County,
					"resolved":   match.Resolved,
					"confidence": fmt.Sprintf("%.3f", match.Confidence),
				},
			})
		}
	} else {
		findings = append(findings, deed.Finding{
			Severity: deed.SeverityError,
			Code:     "JURISDICTION_RESOLUTION_FAILED",
			Field:    "county",
			Message:  fmt.Sprintf("Could not resolve county %q to any known jurisdiction.", *rec.County),
			Details:  map[string]string{"raw_county": *rec.County},
		})
	}

	var amountFromWords *decimal.Decimal
	if v, err := numwords.Parse(*rec.AmountWords); err == nil {
		amountFromWords = &v
	}

	var estimatedTax, estimatedClosing *decimal.Decimal
	if taxRate != nil {
		tax := taxRate.Mul(*rec.AmountNumeric)
		closing := tax.Add(recordingFee)
		estimatedTax = &tax
		estimatedClosing = &closing
	}

	return deed.EnrichedDeed{
		DocumentID:            *rec.DocumentID,
		CountyRaw:             *rec.County,
		CountyResolved:        countyResolved,
		State:                 *rec.State,
		DateSigned:            *rec.DateSigned,
		DateRecorded:          *rec.DateRecorded,
		Grantor:               *rec.Grantor,
		Grantees:              ParseParties(*rec.Grantee),
		AmountNumeric:         *rec.AmountNumeric,
		AmountWords:           *rec.AmountWords,
		AmountFromWords:       amountFromWords,
		APN:                   *rec.APN,
		Status:                *rec.Status,
		TaxRate:               taxRate,
		EstimatedTransferTax:  estimatedTax,
		EstimatedClosingCosts: estimatedClosing,
	}, findings
}
