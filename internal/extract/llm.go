package extract

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/shopspring/decimal"

	"github.com/joelkehle/deedcheck/internal/deed"
)

const systemPrompt = `You are a legal document data extractor specializing in property deeds.
Parse the given OCR-scanned deed text into a structured JSON object.

CRITICAL RULES:
1. Extract EXACTLY what is written; do NOT correct errors or inconsistencies.
2. If a field looks wrong (e.g., impossible dates), extract it AS-IS.
3. Do not infer or hallucinate values for missing fields.
4. Preserve abbreviations as they appear in the text.

Return a JSON object with these exact keys:
{
    "document_id": "string or null",
    "county": "string exactly as written, or null",
    "state": "2-letter state code or null",
    "date_signed": "YYYY-MM-DD or null",
    "date_recorded": "YYYY-MM-DD or null",
    "grantor": "string or null",
    "grantee": "string or null",
    "amount_numeric": number (no $ sign, no commas) or null,
    "amount_words": "the written-out amount inside parentheses, or null",
    "apn": "string or null",
    "status": "string or null"
}

IMPORTANT: Extract raw data only. Validation happens in a separate step.`

const llmTimeout = 45 * time.Second

// Extractor is the AI extraction port. Exactly two outcomes: a record, or
// unavailable. Unavailability is never an error; it only changes which
// extraction path is primary.
type Extractor interface {
	Extract(ctx context.Context, rawText string) (deed.FieldRecord, bool)
}

type Messager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type ClientCreator func(apiKey string) Messager

func defaultClientCreator(apiKey string) Messager {
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &c.Messages
}

var newClient ClientCreator = defaultClientCreator

// AnthropicExtractor extracts deed fields with Claude in strict-JSON mode.
// Every field it returns is cross-checked downstream; it is never trusted
// blindly.
type AnthropicExtractor struct {
	messages Messager
	timeout  time.Duration
}

// NewAnthropicExtractorFromEnv returns ok=false when ANTHROPIC_API_KEY is
// not configured. A missing credential silently selects the pattern-only
// path; it is not an error.
func NewAnthropicExtractorFromEnv() (*AnthropicExtractor, bool) {
	apiKey := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	if apiKey == "" {
		return nil, false
	}
	return &AnthropicExtractor{messages: newClient(apiKey), timeout: llmTimeout}, true
}

func (a *AnthropicExtractor) Extract(ctx context.Context, rawText string) (deed.FieldRecord, bool) {
	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	resp, err := a.messages.New(callCtx, anthropic.MessageNewParams{
		Model:     anthropic.ModelClaudeSonnet4_20250514,
		MaxTokens: 2048,
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(
				"Extract structured data from this OCR-scanned deed:\n\n" + rawText)),
		},
		Temperature: anthropic.Float(0),
	})
	if err != nil {
		return deed.FieldRecord{}, false
	}

	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	return decodeWireRecord(sb.String())
}

// wireRecord tolerates the LLM's loose typing: every value decodes as raw
// JSON and converts safely, so a malformed field becomes nil instead of
// failing the whole extraction.
type wireRecord struct {
	DocumentID    json.RawMessage `json:"document_id"`
	County        json.RawMessage `json:"county"`
	State         json.RawMessage `json:"state"`
	DateSigned    json.RawMessage `json:"date_signed"`
	DateRecorded  json.RawMessage `json:"date_recorded"`
	Grantor       json.RawMessage `json:"grantor"`
	Grantee       json.RawMessage `json:"grantee"`
	AmountNumeric json.RawMessage `json:"amount_numeric"`
	AmountWords   json.RawMessage `json:"amount_words"`
	APN           json.RawMessage `json:"apn"`
	Status        json.RawMessage `json:"status"`
}

func decodeWireRecord(raw string) (deed.FieldRecord, bool) {
	clean := stripCodeFences(raw)
	if clean == "" {
		return deed.FieldRecord{}, false
	}
	var w wireRecord
	if err := json.Unmarshal([]byte(clean), &w); err != nil {
		return deed.FieldRecord{}, false
	}
	return deed.FieldRecord{
		DocumentID:    safeString(w.DocumentID),
		County:        safeString(w.County),
		State:         safeString(w.State),
		DateSigned:    safeDate(w.DateSigned),
		DateRecorded:  safeDate(w.DateRecorded),
		Grantor:       safeString(w.Grantor),
		Grantee:       safeString(w.Grantee),
		AmountNumeric: safeDecimal(w.AmountNumeric),
		AmountWords:   safeString(w.AmountWords),
		APN:           safeString(w.APN),
		Status:        safeString(w.Status),
	}, true
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		parts := strings.SplitN(s, "\n", 2)
		if len(parts) == 2 {
			s = parts[1]
		}
		s = strings.TrimPrefix(s, "json")
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}

func safeString(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func safeDate(raw json.RawMessage) *deed.Date {
	s := safeString(raw)
	if s == nil {
		return nil
	}
	d, err := deed.ParseDate(*s)
	if err != nil {
		return nil
	}
	return &d
}

func safeDecimal(raw json.RawMessage) *decimal.Decimal {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	text := strings.Trim(strings.TrimSpace(string(raw)), `"`)
	if text == "" {
		return nil
	}
	v, err := decimal.NewFromString(text)
	if err != nil {
		return nil
	}
	return &v
}
