package deed

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"75", "75.00"},
		{"1250000", "1,250,000.00"},
		{"1250000.5", "1,250,000.50"},
		{"999", "999.00"},
		{"1000", "1,000.00"},
		{"-15075.25", "-15,075.25"},
	}
	for _, c := range cases {
		if got := FormatMoney(decimal.RequireFromString(c.in)); got != c.want {
			t.Errorf("FormatMoney(%s) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestHasErrors(t *testing.T) {
	if HasErrors(nil) {
		t.Error("empty findings reported errors")
	}
	warnings := []Finding{{Severity: SeverityWarning}, {Severity: SeverityInfo}}
	if HasErrors(warnings) {
		t.Error("warnings reported as errors")
	}
	if !HasErrors(append(warnings, Finding{Severity: SeverityError})) {
		t.Error("error severity not detected")
	}
}

func TestDateArithmetic(t *testing.T) {
	signed := NewDate(2024, time.January, 15)
	recorded := NewDate(2024, time.January, 10)

	if !recorded.Before(signed) {
		t.Error("recorded should sort before signed")
	}
	if got := signed.DaysSince(recorded); got != 5 {
		t.Errorf("DaysSince = %d, want 5", got)
	}
	if got := recorded.DaysSince(signed); got != -5 {
		t.Errorf("DaysSince reversed = %d, want -5", got)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.January, 15)
	blob, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(blob) != `"2024-01-15"` {
		t.Fatalf("marshaled %s", blob)
	}
	var back Date
	if err := json.Unmarshal(blob, &back); err != nil {
		t.Fatal(err)
	}
	if !back.Equal(d) {
		t.Fatalf("round trip changed date: %s", back)
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, s := range []string{"", "01/15/2024", "2024-13-45", "yesterday"} {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q) accepted", s)
		}
	}
}
