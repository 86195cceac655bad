package linkbook

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"os"
	"time"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-linkbook/internal/assets"
	"github.com/alnah/go-linkbook/internal/fileutil"
)

// printDocument wraps the rendered Markdown fragment in a complete HTML5
// document with the print stylesheet inlined.
const printDocument = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
%s
</style>
</head>
<body>
%s
</body>
</html>`

// goldmarkRenderer converts Markdown to an HTML fragment using goldmark.
type goldmarkRenderer struct {
	md goldmark.Markdown
}

// newGoldmarkRenderer creates a goldmarkRenderer with GFM extensions and
// class-based syntax highlighting.
func newGoldmarkRenderer() *goldmarkRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Footnote,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // CSS classes so the print stylesheet controls colors
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			htmlrenderer.WithHardWraps(),
			htmlrenderer.WithXHTML(),
			// Note: WithUnsafe() intentionally NOT used. Link names are
			// untrusted and raw HTML must stay inert.
		),
	)
	return &goldmarkRenderer{md: md}
}

// toHTML converts Markdown to an HTML fragment. Supports context
// cancellation via goroutine + select since goldmark does not take a
// context.
func (r *goldmarkRenderer) toHTML(ctx context.Context, content string) (string, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrGenerate, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}

// browserRenderer prints local HTML files to PDF using headless Chrome via
// go-rod. The browser launches lazily on first use and stays connected
// until Close.
type browserRenderer struct {
	browser *rod.Browser
	timeout time.Duration
}

// newBrowserRenderer creates a browserRenderer with the given render timeout.
func newBrowserRenderer(timeout time.Duration) *browserRenderer {
	return &browserRenderer{timeout: timeout}
}

// ensureBrowser lazily connects to the browser.
func (r *browserRenderer) ensureBrowser() error {
	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.browser = rod.New().ControlURL(u)
	if err := r.browser.Connect(); err != nil {
		r.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	return nil
}

// Close releases browser resources.
func (r *browserRenderer) Close() error {
	if r.browser != nil {
		err := r.browser.Close()
		r.browser = nil
		return err
	}
	return nil
}

// renderFromFile opens a local HTML file in headless Chrome and prints it
// to PDF. Returns explicit errors instead of panicking when browser
// operations fail.
func (r *browserRenderer) renderFromFile(ctx context.Context, filePath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filePath})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	// Wait for page load with the tighter of render timeout and context deadline
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The print stylesheet's @page rule sets A4 paper and margins, so the
	// browser defers to CSS instead of its own defaults.
	reader, err := page.PDF(&proto.PagePrintToPDF{
		PreferCSSPageSize: true,
		PrintBackground:   true,
		MarginTop:         floatPtr(0),
		MarginBottom:      floatPtr(0),
		MarginLeft:        floatPtr(0),
		MarginRight:       floatPtr(0),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: printing page: %v", ErrGenerate, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrGenerate, err)
	}

	return pdfBuf, nil
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}

// probeBrowser checks that a Chromium-based browser is available without
// launching one. Rod's automatic browser download is not used; an absent
// browser reports ErrMissingDependency instead.
func probeBrowser() error {
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		if fileutil.FileExists(bin) {
			return nil
		}
		return fmt.Errorf("%w: chromium (ROD_BROWSER_BIN=%s not found)", ErrMissingDependency, bin)
	}
	if _, has := launcher.LookPath(); !has {
		return fmt.Errorf("%w: chromium is required for pdf output", ErrMissingDependency)
	}
	return nil
}

// pdfGenerator renders the Markdown document to PDF through headless
// Chrome: goldmark produces the HTML body, the print stylesheet is
// inlined, and the browser prints the page.
type pdfGenerator struct {
	markdown *goldmarkRenderer
	renderer *browserRenderer
	loader   assets.AssetLoader
	probe    func() error // browser availability check, injectable for tests
}

// Compile-time interface check
var _ Generator = (*pdfGenerator)(nil)

func newPDFGenerator(loader assets.AssetLoader, renderer *browserRenderer) *pdfGenerator {
	return &pdfGenerator{
		markdown: newGoldmarkRenderer(),
		renderer: renderer,
		loader:   loader,
		probe:    probeBrowser,
	}
}

func (g *pdfGenerator) Generate(ctx context.Context, rc RenderContext, outputPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := g.probe(); err != nil {
		return "", err
	}

	fragment, err := g.markdown.toHTML(ctx, buildMarkdownDocument(rc))
	if err != nil {
		return "", err
	}
	style, err := g.loader.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerate, err)
	}
	page := fmt.Sprintf(printDocument, html.EscapeString(rc.Title), style, fragment)

	tmpPath, cleanup, err := fileutil.WriteTempFile(page, "html")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerate, err)
	}
	defer cleanup()

	pdf, err := g.renderer.renderFromFile(ctx, tmpPath)
	if err != nil {
		return "", err
	}

	if err := writeArtifact(outputPath, pdf); err != nil {
		return "", err
	}
	return outputPath, nil
}
