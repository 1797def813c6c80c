package main

import (
	"flag"
	"log"
	"net/http"
	"time"

	"github.com/joelkehle/deedcheck/internal/deed"
	"github.com/joelkehle/deedcheck/internal/extract"
	"github.com/joelkehle/deedcheck/internal/httpapi"
	"github.com/joelkehle/deedcheck/internal/jurisdiction"
	"github.com/joelkehle/deedcheck/internal/pipeline"
)

func main() {
	addr := flag.String("addr", ":8080", "Listen address")
	jurisdictionsPath := flag.String("jurisdictions", "jurisdictions.json", "Path to the jurisdiction reference table (JSON)")
	dbPath := flag.String("db", "", "Load the reference table from a SQLite database instead of JSON")
	flag.Parse()

	var table []deed.Jurisdiction
	var err error
	if *dbPath != "" {
		var store *jurisdiction.SQLiteStore
		store, err = jurisdiction.OpenSQLite(*dbPath)
		if err != nil {
			log.Fatal(err)
		}
		table, err = store.Load()
		store.Close()
	} else {
		table, err = jurisdiction.LoadFile(*jurisdictionsPath)
	}
	if err != nil {
		log.Fatal(err)
	}
	if len(table) == 0 {
		log.Fatal("jurisdiction reference table is empty")
	}

	var extractor extract.Extractor
	if e, ok := extract.NewAnthropicExtractorFromEnv(); ok {
		extractor = e
		log.Print("LLM extraction enabled")
	} else {
		log.Print("no ANTHROPIC_API_KEY set, pattern-only extraction")
	}

	p := pipeline.New(pipeline.Config{Jurisdictions: table, Extractor: extractor})
	srv := &http.Server{
		Addr:              *addr,
		Handler:           httpapi.NewServer(p),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("deed-server listening on %s (%d jurisdictions)", *addr, len(table))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
