// Package report renders a validation Report as markdown, HTML, and PDF.
package report

import (
	"fmt"
	"strings"

	"github.com/joelkehle/deedcheck/internal/deed"
)

// BuildMarkdown renders the full human-readable report.
func BuildMarkdown(r deed.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Deed Validation Report\n\n")
	fmt.Fprintf(&b, "- Document ID: %s\n", r.DocumentID)
	fmt.Fprintf(&b, "- Extraction method: %s\n", r.ExtractionMethod)
	fmt.Fprintf(&b, "- Input hash (SHA-256): `%s`\n\n", r.OriginalHash)

	fmt.Fprintf(&b, "## Verdict\n\n")
	if r.IsValid {
		fmt.Fprintf(&b, "**PASS**: no fatal findings. ")
	} else {
		fmt.Fprintf(&b, "**FAIL**: this deed must not be recorded. ")
	}
	errs, warns, infos := countBySeverity(r.Findings)
	fmt.Fprintf(&b, "%d error(s), %d warning(s), %d informational.\n\n", errs, warns, infos)

	fmt.Fprintf(&b, "## Findings\n\n")
	if len(r.Findings) == 0 {
		fmt.Fprintf(&b, "No findings.\n\n")
	} else {
		fmt.Fprintf(&b, "| Severity | Code | Field | Message |\n")
		fmt.Fprintf(&b, "|---|---|---|---|\n")
		for _, f := range r.Findings {
			fmt.Fprintf(&b, "| %s | `%s` | %s | %s |\n",
				f.Severity, f.Code, f.Field, escapeCell(f.Message))
		}
		b.WriteString("\n")
	}

	if r.Deed != nil {
		appendDeedDetails(&b, r.Deed)
	}
	return b.String()
}

func appendDeedDetails(b *strings.Builder, d *deed.EnrichedDeed) {
	fmt.Fprintf(b, "## Enriched Deed\n\n")
	fmt.Fprintf(b, "- County: %s -> **%s**\n", d.CountyRaw, d.CountyResolved)
	fmt.Fprintf(b, "- State: %s\n", d.State)
	fmt.Fprintf(b, "- Signed: %s\n", d.DateSigned)
	fmt.Fprintf(b, "- Recorded: %s\n", d.DateRecorded)
	fmt.Fprintf(b, "- Grantor: %s\n", d.Grantor)
	fmt.Fprintf(b, "- Grantee(s): %s\n", strings.Join(d.Grantees, ", "))
	fmt.Fprintf(b, "- Amount (numeric): $%s\n", deed.FormatMoney(d.AmountNumeric))
	fmt.Fprintf(b, "- Amount (words): %s\n", d.AmountWords)
	if d.AmountFromWords != nil {
		fmt.Fprintf(b, "- Words as value: $%s\n", deed.FormatMoney(*d.AmountFromWords))
	}
	fmt.Fprintf(b, "- APN: %s\n", d.APN)
	fmt.Fprintf(b, "- Status: %s\n", d.Status)
	if d.TaxRate != nil {
		fmt.Fprintf(b, "- Tax rate: %s\n", d.TaxRate.String())
	}
	if d.EstimatedTransferTax != nil {
		fmt.Fprintf(b, "- Est. transfer tax: $%s\n", deed.FormatMoney(*d.EstimatedTransferTax))
	}
	if d.EstimatedClosingCosts != nil {
		fmt.Fprintf(b, "- Est. closing costs: $%s\n", deed.FormatMoney(*d.EstimatedClosingCosts))
	}
	b.WriteString("\n")
}

func countBySeverity(findings []deed.Finding) (errs, warns, infos int) {
	for _, f := range findings {
		switch f.Severity {
		case deed.SeverityError:
			errs++
		case deed.SeverityWarning:
			warns++
		case deed.SeverityInfo:
			infos++
		}
	}
	return
}

func escapeCell(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "|", "\\|"), "\n", " ")
}
