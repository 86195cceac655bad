package linkbook

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/alnah/go-linkbook/internal/assets"
	"github.com/alnah/go-linkbook/internal/fileutil"
)

// Service orchestrates the pipeline: parse the links payload, optionally
// probe each link over the network, resolve the output format, and
// generate the artifact. Construct with New, release browser resources
// with Close.
type Service struct {
	cfg      serviceConfig
	registry *Registry
	checker  reachabilityChecker
	browser  *browserRenderer
	now      func() time.Time // injectable for tests
	newID    func() string    // injectable for tests
}

// New creates a Service with every built-in format registered.
func New(opts ...Option) (*Service, error) {
	cfg := serviceConfig{
		timeout:       DefaultTimeout,
		renderTimeout: DefaultRenderTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	loader, err := assets.NewAssetResolver(cfg.assetsDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}

	s := &Service{
		cfg:     cfg,
		checker: newLinkChecker(cfg.timeout, cfg.delay),
		browser: newBrowserRenderer(cfg.renderTimeout),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	s.registry = builtinRegistry(loader, s.browser)
	return s, nil
}

// builtinRegistry registers the built-in output formats in their canonical
// listing order.
func builtinRegistry(loader assets.AssetLoader, browser *browserRenderer) *Registry {
	r := newRegistry()
	r.register(PluginDescriptor{
		Name:            "html",
		Extension:       ".html",
		DefaultFilename: "index.html",
		Description:     "responsive web page with dark mode",
	}, newHTMLGenerator(loader))
	r.register(PluginDescriptor{
		Name:            "markdown",
		Aliases:         []string{"md"},
		Extension:       ".md",
		DefaultFilename: "links.md",
		Description:     "plain Markdown document",
	}, markdownGenerator{})
	r.register(PluginDescriptor{
		Name:            "json",
		Extension:       ".json",
		DefaultFilename: "links.json",
		Description:     "structured JSON document",
	}, jsonGenerator{})
	r.register(PluginDescriptor{
		Name:            "pdf",
		Extension:       ".pdf",
		DefaultFilename: "links.pdf",
		Description:     "print-ready PDF",
		Dependency:      "chromium",
	}, newPDFGenerator(loader, browser))
	r.register(PluginDescriptor{
		Name:            "epub",
		Extension:       ".epub",
		DefaultFilename: "output.epub",
		Description:     "EPUB3 e-book",
		Dependency:      "pandoc",
	}, newEPUBGenerator())
	r.register(PluginDescriptor{
		Name:            "rst",
		Aliases:         []string{"restructuredtext"},
		Extension:       ".rst",
		DefaultFilename: "output.rst",
		Description:     "reStructuredText document",
	}, rstGenerator{})
	r.register(PluginDescriptor{
		Name:            "asciidoc",
		Aliases:         []string{"adoc"},
		Extension:       ".adoc",
		DefaultFilename: "output.adoc",
		Description:     "AsciiDoc document",
	}, asciidocGenerator{})
	return r
}

// Registry exposes the format registry for listings and resolution.
func (s *Service) Registry() *Registry { return s.registry }

// Run executes one generation request. The returned Result carries the
// artifact path, the links included, and one warning per skipped entry.
// When every entry is skipped Run fails with ErrNoValidLinks but still
// returns the Result so callers can surface the warnings.
func (s *Service) Run(ctx context.Context, input Input) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	links, warnings, err := ParseLinks(input.Payload)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return &Result{Warnings: warnings}, ErrNoValidLinks
	}

	if input.CheckLinks {
		links, warnings = s.filterReachable(ctx, links, warnings)
		if len(links) == 0 {
			return &Result{Warnings: warnings}, ErrNoValidLinks
		}
	}

	format := input.Format
	if format == "" {
		format = DefaultFormat
	}
	gen, desc, err := s.registry.Resolve(format)
	if err != nil {
		return nil, err
	}

	rc := RenderContext{
		Title:         input.Title,
		Subtitle:      input.Subtitle,
		Description:   input.Description,
		Links:         links,
		GeneratedAt:   s.now(),
		RepositoryURL: input.RepositoryURL,
		DocumentID:    s.newID(),
		TemplatePath:  input.TemplatePath,
	}
	if rc.RepositoryURL == "" {
		rc.RepositoryURL = DefaultRepositoryURL
	}

	written, err := gen.Generate(ctx, rc, resolveOutputPath(input.Output, desc))
	if err != nil {
		return nil, err
	}
	return &Result{Path: written, Links: links, Warnings: warnings}, nil
}

// filterReachable probes every absolute link and drops the unreachable
// ones, appending one warning per drop. Relative references pass through
// untouched; their existence was already checked at parse time.
func (s *Service) filterReachable(ctx context.Context, links []Link, warnings []string) ([]Link, []string) {
	kept := make([]Link, 0, len(links))
	for _, link := range links {
		if !fileutil.IsURL(link.URL) {
			kept = append(kept, link)
			continue
		}
		if outcome := s.checker.CheckReachable(ctx, link.URL); !outcome.Valid() {
			warnings = append(warnings, fmt.Sprintf("%s (%s): %s", link.Name, link.URL, outcome.Reason()))
			continue
		}
		kept = append(kept, link)
	}
	return kept, warnings
}

// Close releases browser resources. Safe to call multiple times.
func (s *Service) Close() error {
	return s.browser.Close()
}
