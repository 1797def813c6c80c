package jurisdiction

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/joelkehle/deedcheck/internal/deed"
)

type fileEntry struct {
	Name    string      `json:"name"`
	TaxRate json.Number `json:"tax_rate"`
}

// LoadFile reads the reference table from a JSON array of
// {"name": ..., "tax_rate": ...} objects, preserving file order.
func LoadFile(path string) ([]deed.Jurisdiction, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read jurisdictions: %w", err)
	}
	var entries []fileEntry
	if err := json.Unmarshal(blob, &entries); err != nil {
		return nil, fmt.Errorf("decode jurisdictions: %w", err)
	}

	out := make([]deed.Jurisdiction, 0, len(entries))
	for _, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("jurisdiction entry missing name")
		}
		rate, err := decimal.NewFromString(e.TaxRate.String())
		if err != nil {
			return nil, fmt.Errorf("jurisdiction %q: bad tax rate %q: %w", e.Name, e.TaxRate, err)
		}
		if rate.IsNegative() {
			return nil, fmt.Errorf("jurisdiction %q: negative tax rate", e.Name)
		}
		out = append(out, deed.Jurisdiction{Name: e.Name, TaxRate: rate})
	}
	return out, nil
}
