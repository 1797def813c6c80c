package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joelkehle/deedcheck/internal/deed"
	"github.com/joelkehle/deedcheck/internal/extract"
	"github.com/joelkehle/deedcheck/internal/jurisdiction"
	"github.com/joelkehle/deedcheck/internal/pipeline"
	"github.com/joelkehle/deedcheck/internal/report"
)

// sampleDeed is an intentionally ugly OCR scan that trips several rules:
// recorded before signed, mismatched amounts, alpha characters in the APN,
// and a non-recordable status.
const sampleDeed = `*** RECORDING REQ ***
Doc: DEED-TRUST-0042
County: S. Clara  |  State: CA
Date Signed: 2024-01-15
Date Recorded: 2024-01-10
Grantor:  T.E.S.L.A. Holdings LLC
Grantee:  John  &  Sarah  Connor
Amount: $1,250,000.00 (One Million Two Hundred Thousand Dollars)
APN: 992-001-XA
Status: PRELIMINARY
*** END ***`

const minTextChars = 20

func main() {
	inputPath := flag.String("input", "", "Path to OCR deed text (defaults to the built-in sample)")
	jurisdictionsPath := flag.String("jurisdictions", "jurisdictions.json", "Path to the jurisdiction reference table (JSON)")
	dbPath := flag.String("db", "", "Load the reference table from a SQLite database instead of JSON")
	jsonPath := flag.String("json", "", "Optional path to write the full report JSON")
	markdown := flag.Bool("markdown", false, "Print the markdown report instead of the summary")
	flag.Parse()

	rawText := sampleDeed
	if *inputPath != "" {
		blob, err := os.ReadFile(*inputPath)
		if err != nil {
			log.Fatalf("read input: %v", err)
		}
		rawText = string(blob)
	}
	if len(strings.TrimSpace(rawText)) < minTextChars {
		log.Fatal("deed text is too short to validate")
	}

	table, err := loadTable(*jurisdictionsPath, *dbPath)
	if err != nil {
		log.Fatal(err)
	}

	var extractor extract.Extractor
	if e, ok := extract.NewAnthropicExtractorFromEnv(); ok {
		extractor = e
	} else {
		log.Print("no ANTHROPIC_API_KEY set, running pattern-only extraction")
	}

	p := pipeline.New(pipeline.Config{Jurisdictions: table, Extractor: extractor})
	rep := p.Validate(context.Background(), rawText)

	if *markdown {
		fmt.Print(report.BuildMarkdown(rep))
	} else {
		printSummary(rep)
	}
	if *jsonPath != "" {
		blob, err := json.MarshalIndent(rep, "", "  ")
		if err != nil {
			log.Fatalf("encode report: %v", err)
		}
		if err := os.WriteFile(*jsonPath, blob, 0o644); err != nil {
			log.Fatalf("write report: %v", err)
		}
	}

	if !rep.IsValid {
		os.Exit(1)
	}
}

func loadTable(jsonPath, dbPath string) ([]deed.Jurisdiction, error) {
	if dbPath != "" {
		store, err := jurisdiction.OpenSQLite(dbPath)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.Load()
	}
	return jurisdiction.LoadFile(jsonPath)
}

func printSummary(rep deed.Report) {
	fmt.Printf("Document:   %s\n", rep.DocumentID)
	fmt.Printf("Extraction: %s\n", rep.ExtractionMethod)
	fmt.Printf("Hash:       %s\n", rep.OriginalHash)
	fmt.Println()
	for _, f := range rep.Findings {
		fmt.Printf("  [%s] %s (%s): %s\n", f.Severity, f.Code, f.Field, f.Message)
	}
	if len(rep.Findings) == 0 {
		fmt.Println("  no findings")
	}
	fmt.Println()
	if rep.IsValid {
		fmt.Println("VERDICT: VALID, deed may be recorded")
	} else {
		fmt.Println("VERDICT: REJECTED, deed must not be recorded")
	}
}
