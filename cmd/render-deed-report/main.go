package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joelkehle/deedcheck/internal/deed"
	"github.com/joelkehle/deedcheck/internal/report"
)

func main() {
	inputPath := flag.String("input", "", "Path to a saved validation report JSON")
	outputPath := flag.String("output", "", "Path to write rebuilt markdown (defaults to stdout)")
	pdfPath := flag.String("pdf", "", "Optional path to write a PDF (requires Chromium)")
	flag.Parse()

	if *inputPath == "" {
		log.Fatal("missing required -input")
	}
	blob, err := os.ReadFile(*inputPath)
	if err != nil {
		log.Fatalf("read input: %v", err)
	}
	var rep deed.Report
	if err := json.Unmarshal(blob, &rep); err != nil {
		log.Fatalf("decode report JSON: %v", err)
	}

	markdown := report.BuildMarkdown(rep)
	if *outputPath == "" {
		fmt.Print(markdown)
	} else if err := os.WriteFile(*outputPath, []byte(markdown), 0o644); err != nil {
		log.Fatalf("write markdown: %v", err)
	}

	if *pdfPath != "" {
		renderer := report.NewChromiumPDFRenderer()
		pdf, err := renderer.Render(context.Background(), rep)
		if err != nil {
			log.Fatalf("render pdf: %v", err)
		}
		if err := os.WriteFile(*pdfPath, pdf, 0o644); err != nil {
			log.Fatalf("write pdf: %v", err)
		}
	}
}
