// Package pipeline orchestrates the full deed validation workflow:
//
//	raw OCR -> pattern extract + LLM extract -> reconcile -> completeness
//	gate -> enrich -> validate -> report
//
// The pattern extractor always runs. The LLM extractor is optional and its
// failure only changes which path is primary. Validators are pure functions.
// The original text is SHA-256 hashed for the audit trail.
package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/joelkehle/deedcheck/internal/deed"
	"github.com/joelkehle/deedcheck/internal/enrich"
	"github.com/joelkehle/deedcheck/internal/extract"
	"github.com/joelkehle/deedcheck/internal/validate"
)

const (
	MethodLLMWithPattern = "llm+pattern"
	MethodPatternOnly    = "pattern-only"
)

type Config struct {
	// Jurisdictions is the reference table, owned by the pipeline and
	// read-only for its lifetime.
	Jurisdictions []deed.Jurisdiction
	// Extractor is the optional AI path. Nil means pattern-only.
	Extractor extract.Extractor
	// Now is overridable for deterministic future-date checks in tests.
	Now func() time.Time
}

type Pipeline struct {
	jurisdictions []deed.Jurisdiction
	extractor     extract.Extractor
	now           func() time.Time
}

func New(cfg Config) *Pipeline {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		jurisdictions: cfg.Jurisdictions,
		extractor:     cfg.Extractor,
		now:           now,
	}
}

// Validate runs the full pipeline on raw OCR text. It always returns a
// structured Report and never fails for the defined input domain; malformed
// values surface as findings, not errors. Identical input yields a
// byte-identical report under a fixed clock.
func (p *Pipeline) Validate(ctx context.Context, rawText string) deed.Report {
	sum := sha256.Sum256([]byte(rawText))
	docHash := hex.EncodeToString(sum[:])

	patternRec := extract.Pattern(rawText)

	var llmRec deed.FieldRecord
	llmOK := false
	if p.extractor != nil {
		llmRec, llmOK = p.extractor.Extract(ctx, rawText)
	}

	primary := patternRec
	method := MethodPatternOnly
	if llmOK {
		primary = llmRec
		method = MethodLLMWithPattern
	}

	var reconciliation []deed.Finding
	if llmOK {
		reconciliation = Reconcile(patternRec, llmRec)
	}

	// Completeness gate: reject early rather than validate incomplete data.
	// The early report is minimal: reconciliation findings are not carried.
	if missing := missingRequiredFields(primary); len(missing) > 0 {
		return deed.Report{
			DocumentID:       documentIDOrUnknown(primary),
			IsValid:          false,
			Findings:         missing,
			ExtractionMethod: method,
			OriginalHash:     docHash,
		}
	}

	enriched, enrichmentFindings := enrich.Enrich(primary, p.jurisdictions)
	validationFindings := validate.All(enriched, deed.DateOf(p.now()))

	findings := make([]deed.Finding, 0, len(reconciliation)+len(enrichmentFindings)+len(validationFindings))
	findings = append(findings, reconciliation...)
	findings = append(findings, enrichmentFindings...)
	findings = append(findings, validationFindings...)

	return deed.Report{
		DocumentID:       enriched.DocumentID,
		IsValid:          !deed.HasErrors(findings),
		Findings:         findings,
		Deed:             &enriched,
		ExtractionMethod: method,
		OriginalHash:     docHash,
	}
}

type requiredField struct {
	name    string
	display string
	present func(deed.FieldRecord) bool
}

var requiredFields = []requiredField{
	{"document_id", "Document ID", func(r deed.FieldRecord) bool { return r.DocumentID != nil }},
	{"county", "County", func(r deed.FieldRecord) bool { return r.County != nil }},
	{"state", "State", func(r deed.FieldRecord) bool { return r.State != nil }},
	{"date_signed", "Date Signed", func(r deed.FieldRecord) bool { return r.DateSigned != nil }},
	{"date_recorded", "Date Recorded", func(r deed.FieldRecord) bool { return r.DateRecorded != nil }},
	{"grantor", "Grantor", func(r deed.FieldRecord) bool { return r.Grantor != nil }},
	{"grantee", "Grantee", func(r deed.FieldRecord) bool { return r.Grantee != nil }},
	{"amount_numeric", "Amount (Numeric)", func(r deed.FieldRecord) bool { return r.AmountNumeric != nil }},
	{"amount_words", "Amount (Words)", func(r deed.FieldRecord) bool { return r.AmountWords != nil }},
	{"apn", "APN", func(r deed.FieldRecord) bool { return r.APN != nil }},
	{"status", "Status", func(r deed.FieldRecord) bool { return r.Status != nil }},
}

func missingRequiredFields(rec deed.FieldRecord) []deed.Finding {
	var findings []deed.Finding
	for _, f := range requiredFields {
		if !f.present(rec) {
			findings = append(findings, deed.Finding{
				Severity: deed.SeverityError,
				Code:     "MISSING_REQUIRED_FIELD",
				Field:    f.name,
				Message:  fmt.Sprintf("Required field %q could not be extracted from OCR text.", f.display),
			})
		}
	}
	return findings
}

func documentIDOrUnknown(rec deed.FieldRecord) string {
	if rec.DocumentID != nil {
		return *rec.DocumentID
	}
	return "UNKNOWN"
}
