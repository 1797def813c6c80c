package jurisdiction

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/joelkehle/deedcheck/internal/deed"
)

func TestSQLiteSeedAndLoad(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "jurisdictions.db")
	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	seed := []deed.Jurisdiction{
		{Name: "Santa Clara", TaxRate: decimal.RequireFromString("0.012")},
		{Name: "San Francisco", TaxRate: decimal.RequireFromString("0.015")},
		{Name: "Alameda", TaxRate: decimal.RequireFromString("0.011")},
	}
	if err := store.Seed(seed); err != nil {
		t.Fatal(err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(seed) {
		t.Fatalf("loaded %d entries, want %d", len(got), len(seed))
	}
	// Insertion order survives the round trip; the resolver's tie-break
	// depends on it.
	for i := range seed {
		if got[i].Name != seed[i].Name || !got[i].TaxRate.Equal(seed[i].TaxRate) {
			t.Fatalf("entry %d = %+v, want %+v", i, got[i], seed[i])
		}
	}
}

func TestSQLiteSeedReplacesExisting(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "jurisdictions.db")
	store, err := OpenSQLite(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	first := []deed.Jurisdiction{{Name: "Santa Clara", TaxRate: decimal.RequireFromString("0.012")}}
	if err := store.Seed(first); err != nil {
		t.Fatal(err)
	}
	updated := []deed.Jurisdiction{{Name: "Santa Clara", TaxRate: decimal.RequireFromString("0.013")}}
	if err := store.Seed(updated); err != nil {
		t.Fatal(err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].TaxRate.String() != "0.013" {
		t.Fatalf("got %+v", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jurisdictions.json")
	blob := `[
		{"name": "Santa Clara", "tax_rate": 0.012},
		{"name": "San Francisco", "tax_rate": "0.015"}
	]`
	if err := os.WriteFile(path, []byte(blob), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d entries", len(got))
	}
	// json.Number keeps the rate exact whether quoted or not.
	if got[0].TaxRate.String() != "0.012" || got[1].TaxRate.String() != "0.015" {
		t.Fatalf("rates = %s, %s", got[0].TaxRate, got[1].TaxRate)
	}
}

func TestLoadFileRejectsBadEntries(t *testing.T) {
	cases := map[string]string{
		"missing name":  `[{"tax_rate": 0.012}]`,
		"negative rate": `[{"name": "Santa Clara", "tax_rate": -0.01}]`,
		"bad rate":      `[{"name": "Santa Clara", "tax_rate": "lots"}]`,
	}
	for name, blob := range cases {
		path := filepath.Join(t.TempDir(), "jurisdictions.json")
		if err := os.WriteFile(path, []byte(blob), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFile(path); err == nil {
			t.Errorf("%s: accepted %s", name, blob)
		}
	}
}

func TestLoadFileMissingFile(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("missing file accepted")
	}
}
