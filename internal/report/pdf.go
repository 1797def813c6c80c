package report

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/joelkehle/deedcheck/internal/deed"
)

// RenderHTML converts the report markdown to a standalone HTML document with
// a verdict badge and print-friendly styling.
func RenderHTML(r deed.Report) (string, error) {
	var content strings.Builder
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	if err := md.Convert([]byte(BuildMarkdown(r)), &content); err != nil {
		return "", fmt.Errorf("markdown convert: %w", err)
	}

	badge := "<span class='badge badge-pass'>VALID</span>"
	if !r.IsValid {
		badge = "<span class='badge badge-fail'>REJECTED</span>"
	}

	return "<!doctype html><html><head><meta charset='utf-8'><title>Deed Validation Report</title>" +
		"<style>" + reportCSS + "</style></head><body>" +
		"<div class='wrap'><div class='header'>" +
		"<div class='meta'><div><strong>Document:</strong> " + html.EscapeString(r.DocumentID) + "</div>" +
		"<div><strong>Hash:</strong> <code>" + html.EscapeString(r.OriginalHash) + "</code></div></div>" +
		"<div class='badges'>" + badge + "</div>" +
		"</div><div class='report-html'>" + content.String() + "</div></div>" +
		"</body></html>", nil
}

const reportCSS = `
html,body,*{-webkit-print-color-adjust:exact !important;print-color-adjust:exact !important;}
body{font-family:Georgia,serif;background:#fff;color:#1c1917;padding:0.6rem;}
.wrap{max-width:900px;margin:0 auto;border-left:3px solid #92400e;border-right:3px solid #92400e;padding:0 0.65rem;}
.header{display:flex;justify-content:space-between;align-items:flex-start;padding:0.5rem 0;border-bottom:1px solid #a8a29e;}
.meta{color:#44403c;font-size:0.85rem;}
.badge{padding:0.2rem 0.6rem;border-radius:4px;font-weight:700;font-size:0.8rem;}
.badge-pass{background:#dcfce7;color:#14532d;border:1px solid #86efac;}
.badge-fail{background:#fee2e2;color:#7f1d1d;border:1px solid #fca5a5;}
.report-html table{width:100%;border-collapse:collapse;border:1px solid #a8a29e;font-size:0.8rem;}
.report-html th,.report-html td{border:1px solid #a8a29e;padding:0.35rem 0.45rem;text-align:left;vertical-align:top;}
.report-html thead th{background:#f1f5f9;font-weight:700;}
@media print{ @page{size:auto;margin:12mm;} body{padding:0;} .wrap{max-width:none;} }
`

// ChromiumPDFRenderer prints the HTML report to PDF with headless Chromium.
type ChromiumPDFRenderer struct {
	chromePath string
}

func NewChromiumPDFRenderer() *ChromiumPDFRenderer {
	return &ChromiumPDFRenderer{chromePath: detectChromePath()}
}

func (r *ChromiumPDFRenderer) Render(ctx context.Context, rep deed.Report) ([]byte, error) {
	htmlDoc, err := RenderHTML(rep)
	if err != nil {
		return nil, err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := []chromedp.ExecAllocatorOption{
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
	}
	if r.chromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(timeoutCtx, append(chromedp.DefaultExecAllocatorOptions[:], opts...)...)
	defer allocCancel()

	taskCtx, taskCancel := chromedp.NewContext(allocCtx)
	defer taskCancel()

	var pdf []byte
	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(htmlDoc))
	if err := chromedp.Run(taskCtx,
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			footer := `<div style="width:100%;text-align:center;font-size:9px;color:#666;padding-right:8px;">` +
				`Page <span class="pageNumber"></span> of <span class="totalPages"></span></div>`
			out, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithDisplayHeaderFooter(true).
				WithHeaderTemplate(`<div></div>`).
				WithFooterTemplate(footer).
				WithPaperWidth(8.27).
				WithPaperHeight(11.69).
				WithMarginTop(0.5).
				WithMarginBottom(0.75).
				WithMarginLeft(0.45).
				WithMarginRight(0.45).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = out
			return nil
		}),
	); err != nil {
		return nil, err
	}
	return pdf, nil
}

func detectChromePath() string {
	if p := strings.TrimSpace(os.Getenv("CHROME_PATH")); p != "" {
		return p
	}
	candidates := []string{"chromium", "chromium-browser", "google-chrome", "google-chrome-stable"}
	if runtime.GOOS == "darwin" {
		candidates = append(candidates, "/Applications/Google Chrome.app/Contents/MacOS/Google Chrome")
	}
	for _, c := range candidates {
		if p, err := exec.LookPath(c); err == nil {
			return p
		}
	}
	return ""
}
