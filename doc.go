// Package linkbook turns a list of named links into a shareable artifact:
// a responsive web page, a Markdown, reStructuredText, or AsciiDoc
// document, structured JSON, a print-ready PDF, or an EPUB.
//
// # Quick Start
//
// Create a service, run a request, and close when done:
//
//	svc, err := linkbook.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer svc.Close()
//
//	res, err := svc.Run(ctx, linkbook.Input{
//	    Title:   "My Links",
//	    Payload: `{"Go": "https://go.dev", "Rod": "https://go-rod.github.io"}`,
//	    Format:  "html",
//	    Output:  "artifacts",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Path)
//
// The result carries the artifact path, the links that made it in, and one
// warning per entry that was skipped.
//
// # Payload Shapes
//
// Payloads are YAML or JSON in any of three shapes, and document order is
// preserved in every artifact:
//
//	Go: https://go.dev                       # mapping of name to URL
//	- {name: Go, url: https://go.dev}        # sequence of objects
//	- [Go, https://go.dev]                   # sequence of pairs
//
// Entries with an empty name, a blocked URL scheme, or a dangling relative
// path are skipped with a warning instead of failing the run.
//
// # Pipeline
//
// Each run follows these stages:
//
//  1. Payload parsing with per-entry name and URL validation
//  2. Optional network reachability probing (Input.CheckLinks)
//  3. Format resolution via the registry (names and aliases)
//  4. Artifact generation with an atomic write
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc, err := linkbook.New(
//	    linkbook.WithTimeout(10 * time.Second),
//	    linkbook.WithDelay(500 * time.Millisecond),
//	    linkbook.WithAssetsDir("/path/to/custom/assets"),
//	)
//
// Custom asset directories may override the page template and print
// stylesheet; missing names fall back to the embedded versions:
//
//	assets/
//	├── styles/
//	│   └── print.css
//	└── templates/
//	    └── page.html
//
// # External Tools
//
// The pdf format requires a Chromium-based browser, driven headless via
// go-rod. Set ROD_BROWSER_BIN to use a pre-installed binary in containers
// and CI. The epub format requires pandoc on PATH. Both formats fail fast
// with ErrMissingDependency when their tool is absent.
package linkbook
