package deed

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Severity of a validation finding.
type Severity string

const (
	SeverityError   Severity = "ERROR"   // fatal, deed must be rejected
	SeverityWarning Severity = "WARNING" // needs human review
	SeverityInfo    Severity = "INFO"    // observational
)

// Finding is a single validation observation. Details values are stringified
// so reports serialize reproducibly.
type Finding struct {
	Severity Severity          `json:"severity"`
	Code     string            `json:"code"`
	Field    string            `json:"field"`
	Message  string            `json:"message"`
	Details  map[string]string `json:"details,omitempty"`
}

// FieldRecord is the raw output of one extraction path. Every field is
// optional: extraction may fail per field, and absence is a normal outcome
// until the completeness gate runs.
type FieldRecord struct {
	DocumentID    *string          `json:"document_id"`
	County        *string          `json:"county"`
	State         *string          `json:"state"`
	DateSigned    *Date            `json:"date_signed"`
	DateRecorded  *Date            `json:"date_recorded"`
	Grantor       *string          `json:"grantor"`
	Grantee       *string          `json:"grantee"`
	AmountNumeric *decimal.Decimal `json:"amount_numeric"`
	AmountWords   *string          `json:"amount_words"`
	APN           *string          `json:"apn"`
	Status        *string          `json:"status"`
}

// EnrichedDeed is the fully resolved deed: county matched against the
// reference table, grantees split into individual parties, amounts
// cross-converted, and fee estimates attached. It exists only after every
// FieldRecord field passed the completeness gate.
type EnrichedDeed struct {
	DocumentID            string           `json:"document_id"`
	CountyRaw             string           `json:"county_raw"`
	CountyResolved        string           `json:"county_resolved"`
	State                 string           `json:"state"`
	DateSigned            Date             `json:"date_signed"`
	DateRecorded          Date             `json:"date_recorded"`
	Grantor               string           `json:"grantor"`
	Grantees              []string         `json:"grantee"`
	AmountNumeric         decimal.Decimal  `json:"amount_numeric"`
	AmountWords           string           `json:"amount_words"`
	AmountFromWords       *decimal.Decimal `json:"amount_from_words,omitempty"`
	APN                   string           `json:"apn"`
	Status                string           `json:"status"`
	TaxRate               *decimal.Decimal `json:"tax_rate,omitempty"`
	EstimatedTransferTax  *decimal.Decimal `json:"estimated_transfer_tax,omitempty"`
	EstimatedClosingCosts *decimal.Decimal `json:"estimated_closing_costs,omitempty"`
}

// Report is the terminal artifact of a validation run.
type Report struct {
	DocumentID       string        `json:"document_id"`
	IsValid          bool          `json:"is_valid"`
	Findings         []Finding     `json:"findings"`
	Deed             *EnrichedDeed `json:"deed,omitempty"`
	ExtractionMethod string        `json:"extraction_method"`
	OriginalHash     string        `json:"original_hash"`
}

// HasErrors reports whether any finding is ERROR severity.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Jurisdiction is one reference-table entry: a canonical county name and its
// transfer tax rate. The table is loaded once per pipeline and never mutated.
type Jurisdiction struct {
	Name    string          `json:"name"`
	TaxRate decimal.Decimal `json:"tax_rate"`
}

// FormatMoney renders a decimal as a comma-grouped dollar figure with two
// fractional digits, e.g. 1250000 -> "1,250,000.00".
func FormatMoney(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	neg := strings.HasPrefix(fixed, "-")
	if neg {
		fixed = fixed[1:]
	}
	whole, frac, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
