package jurisdiction

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/joelkehle/deedcheck/internal/deed"
)

// SQLiteStore is the database-backed source of the jurisdiction reference
// table. The pipeline itself never touches it: callers load the table once
// at construction time and hand the immutable slice to the orchestrator.
type SQLiteStore struct {
	db *sqlx.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS jurisdictions (
	name     TEXT PRIMARY KEY,
	tax_rate TEXT NOT NULL
);
`

func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Seed inserts or replaces reference entries. Rates are stored as their
// exact decimal string representation, never as floats.
func (s *SQLiteStore) Seed(entries []deed.Jurisdiction) error {
	for _, e := range entries {
		if _, err := s.db.Exec(
			`INSERT OR REPLACE INTO jurisdictions (name, tax_rate) VALUES (?, ?)`,
			e.Name, e.TaxRate.String(),
		); err != nil {
			return fmt.Errorf("seed %q: %w", e.Name, err)
		}
	}
	return nil
}

// Load returns the full reference table in insertion order. Order matters:
// the resolver's tie-break keeps the first highest score encountered.
func (s *SQLiteStore) Load() ([]deed.Jurisdiction, error) {
	rows, err := s.db.Query(`SELECT name, tax_rate FROM jurisdictions ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("load jurisdictions: %w", err)
	}
	defer rows.Close()

	var out []deed.Jurisdiction
	for rows.Next() {
		var name, rate string
		if err := rows.Scan(&name, &rate); err != nil {
			return nil, err
		}
		taxRate, err := decimal.NewFromString(rate)
		if err != nil {
			return nil, fmt.Errorf("jurisdiction %q: bad tax rate %q: %w", name, rate, err)
		}
		out = append(out, deed.Jurisdiction{Name: name, TaxRate: taxRate})
	}
	return out, rows.Err()
}
